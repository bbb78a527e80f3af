package classname

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelector(t *testing.T) {
	cfg := testCfg(t)

	tests := []struct {
		name  string
		class ClassName
		want  string
	}{
		{
			name:  "shorthand",
			class: FromTokens(cfg, "$block"),
			want:  `.\$block`,
		},
		{
			name:  "atom value",
			class: FromTokens(cfg, "p", "$px"),
			want:  `.p\:\:\$px`,
		},
		{
			name:  "escaped value name",
			class: FromTokens(cfg, "p", "$1.5"),
			want:  `.p\:\:\$1\.5`,
		},
		{
			name:  "modifiers in canonical order",
			class: FromTokens(cfg, "sm", "focus", "active", "p", "$px"),
			want:  `.sm\:active\:focus\:p\:\:\$px:active:focus`,
		},
		{
			name:  "argument",
			class: FromTokens(cfg, "md", "p").AddArguments(Value("10px")),
			want:  `.md\:p\:\:\[10px\]`,
		},
		{
			name:  "escaped argument",
			class: FromTokens(cfg, "p").AddArguments(Value("calc(1rem + 2px)")),
			want:  `.p\:\:\[calc\(1rem \+ 2px\)\]`,
		},
		{
			name:  "key value argument",
			class: FromTokens(cfg, "sm", "focus").AddArguments(KeyValue("padding", "10px")),
			want:  `.sm\:focus\:\:\[padding\:10px\]:focus`,
		},
		{
			name:  "modifier with three templates",
			class: FromTokens(cfg, "sm", "readOnly", "p", "$px"),
			want:  `.sm\:readOnly\:p\:\:\$px[aria-readonly=true], .sm\:readOnly\:p\:\:\$px[readonly], .sm\:readOnly\:p\:\:\$px:read-only`,
		},
		{
			name:  "parent modifier after modifiers",
			class: FromTokens(cfg, "sm", "groupActive", "focus", "active", "p", "$px"),
			want: `.\$group:active .sm\:groupActive\:active\:focus\:p\:\:\$px:active:focus, ` +
				`.group:active .sm\:groupActive\:active\:focus\:p\:\:\$px:active:focus, ` +
				`[role='group']:active .sm\:groupActive\:active\:focus\:p\:\:\$px:active:focus`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.class.Selector())
		})
	}
}

func TestSelector_MultiplicativeExpansion(t *testing.T) {
	cfg := testCfg(t)

	one := FromTokens(cfg, "readOnly", "p", "$px").Selector()
	assert.Len(t, strings.Split(one, ", "), 3)

	two := FromTokens(cfg, "readOnly", "disabled", "p", "$px").Selector()
	parts := strings.Split(two, ", ")
	assert.Len(t, parts, 9)
	assert.Equal(t, `.readOnly\:disabled\:p\:\:\$px[aria-readonly=true][aria-disabled=true]`, parts[0])
	assert.Equal(t, `.readOnly\:disabled\:p\:\:\$px:read-only.disabled`, parts[8])
}

func TestCSS(t *testing.T) {
	cfg := testCfg(t)

	tests := []struct {
		name  string
		class ClassName
		want  string
	}{
		{
			name:  "shorthand",
			class: FromTokens(cfg, "$block"),
			want:  ".\\$block {\n  display: block;\n}",
		},
		{
			name:  "multiple shorthand declarations",
			class: FromTokens(cfg, "$truncate"),
			want:  ".\\$truncate {\n  overflow: hidden;\n  white-space: nowrap;\n}",
		},
		{
			name:  "atom with several style rules",
			class: FromTokens(cfg, "px", "$1"),
			want:  ".px\\:\\:\\$1 {\n  padding-left: 0.25rem;\n  padding-right: 0.25rem;\n}",
		},
		{
			name:  "argument uses raw value",
			class: FromTokens(cfg, "p").AddArguments(Value("calc(1rem + 2px)")),
			want:  ".p\\:\\:\\[calc\\(1rem \\+ 2px\\)\\] {\n  padding: calc(1rem + 2px);\n}",
		},
		{
			name:  "key value without atom",
			class: New(cfg).AddArguments(KeyValue("color", "red")),
			want:  ".\\[color\\:red\\] {\n  color: red;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.class.CSS())
		})
	}
}

func TestVariables(t *testing.T) {
	cfg := testCfg(t)

	assert.Equal(t, []string{"--turn"}, FromTokens(cfg, "animate", "$spin").Variables(), "keyframes are scanned")
	assert.Equal(t, []string{"--tx"}, FromTokens(cfg, "translateX", "$full").Variables(), "groups are scanned")
	assert.Equal(t, []string{"--gap", "--inner"}, FromTokens(cfg, "p").AddArguments(Value("var(--gap, var(--inner))")).Variables())
	assert.Empty(t, FromTokens(cfg, "p", "$px").Variables())
}

func TestGroupsAndKeyframes(t *testing.T) {
	cfg := testCfg(t)

	c := FromTokens(cfg, "animate", "$spin")
	assert.Equal(t, []string{"spin"}, c.Keyframes())
	assert.Empty(t, c.Groups())

	c = FromTokens(cfg, "translateX", "$full")
	assert.Equal(t, []string{"transform"}, c.Groups())
}
