package typings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/skribble/internal/config"
)

const testConfig = `{
  "styleRules": { "p": ["padding"], "maxW": ["max-width"] },
  "shorthand": { "block": [["display", "block"]] },
  "breakpoints": { "sm": 640, "md": "768px" },
  "mediaQueries": { "print": "print" },
  "parentModifiers": { "groupHover": [".group:hover &"] },
  "modifiers": [
    { "hover": ["&:hover"], "focus": ["&:focus"] },
    { "disabled": ["&:disabled"] }
  ],
  "atoms": [
    { "styleRules": ["p"], "values": { "px": "1px" } },
    { "styleRules": ["maxW"], "values": { "comment": "/* closed */ 10px" } }
  ]
}`

func testCfg(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load([]byte(testConfig))
	require.NoError(t, err)
	return cfg
}

func TestGenerate_Members(t *testing.T) {
	got := Generate(testCfg(t))

	tests := []struct {
		name string
		want string
	}{
		{
			name: "breakpoint",
			want: "  /**\n   * ```css\n   * @media (min-width: 640px) {\n   *   &\n   * }\n   * ```\n   */\n  'sm': WithCustomClassName<SkribbleBreakpointCss>;",
		},
		{
			name: "media query",
			want: "   * @media print {\n   *   &\n   * }\n   * ```\n   */\n  'print': WithCustomClassName<SkribbleMediaQueryCss>;",
		},
		{
			name: "parent modifier",
			want: "   * .group:hover & {}\n   * ```\n   */\n  'groupHover': WithCustomClassName<SkribbleParentModifierCss>;",
		},
		{
			name: "first modifier group",
			want: "'focus': WithCustomClassName<SkribbleModifierCssGroup0>;",
		},
		{
			name: "second modifier group",
			want: "'disabled': WithCustomClassName<SkribbleModifierCssGroup1>;",
		},
		{
			name: "shorthand",
			want: "   * .\\$block {\n   *   display: block;\n   * }\n   * ```\n   */\n  '$block': ClassName;",
		},
		{
			name: "atom",
			want: "   *   padding: <value>;\n   * }\n   * ```\n   */\n  'p': WithDynamicClassName<PAtomStyle>;",
		},
		{
			name: "atom interface",
			want: "interface PAtomStyle {\n  /**\n   * ```css\n   * .p\\:\\:\\$px {\n   *   padding: 1px;\n   * }\n   * ```\n   */\n  '$px': ClassName;\n}",
		},
		{
			name: "comment cannot close early",
			want: "max-width: /* closed *\\/ 10px;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestGenerate_LayerTypes(t *testing.T) {
	got := Generate(testCfg(t))

	want := strings.Join([]string{
		"type BreakpointKeys = 'sm' | 'md';",
		"type SkribbleBreakpointCss = Omit<SkribbleCss, BreakpointKeys>;",
		"type MediaQueryKeys = 'print';",
		"type SkribbleMediaQueryCss = Omit<SkribbleCss, BreakpointKeys | MediaQueryKeys>;",
		"type ParentModifierKeys = 'groupHover';",
		"type SkribbleParentModifierCss = Omit<SkribbleCss, BreakpointKeys | MediaQueryKeys | ParentModifierKeys>;",
		"type ModifierKeys0 = 'hover' | 'focus';",
		"type SkribbleModifierCssGroup0 = Omit<SkribbleCss, BreakpointKeys | MediaQueryKeys | ParentModifierKeys | ModifierKeys0>;",
		"type ModifierKeys1 = 'disabled';",
		"type SkribbleModifierCssGroup1 = Omit<SkribbleCss, BreakpointKeys | MediaQueryKeys | ParentModifierKeys | ModifierKeys0 | ModifierKeys1>;",
	}, "\n")
	assert.Contains(t, got, want)
}

func TestGenerate_Layout(t *testing.T) {
	got := Generate(testCfg(t))

	assert.True(t, strings.HasPrefix(got, header+"\n\n"+utilities+"\n\nexport interface SkribbleCss {\n"))
	assert.True(t, strings.HasSuffix(got, "}\n"))
	assert.False(t, strings.HasSuffix(got, "\n\n"))
	assert.Less(t, strings.Index(got, "'sm':"), strings.Index(got, "'print':"))
	assert.Less(t, strings.Index(got, "'print':"), strings.Index(got, "'groupHover':"))
	assert.Less(t, strings.Index(got, "'$block':"), strings.Index(got, "'p': WithDynamicClassName"))
}

func TestGenerate_EmptyLayers(t *testing.T) {
	cfg, err := config.Load([]byte(`{}`))
	require.NoError(t, err)

	got := Generate(cfg)

	assert.Contains(t, got, "type BreakpointKeys = never;")
	assert.Contains(t, got, "export interface SkribbleCss {\n\n}")
	assert.NotContains(t, got, "AtomStyle")
}

func TestGenerate_DefaultConfig(t *testing.T) {
	got := Generate(config.Default())

	assert.Contains(t, got, "'sm': WithCustomClassName<SkribbleBreakpointCss>;")
	assert.Contains(t, got, "interface MaxWAtomStyle {")
}

func TestPascal(t *testing.T) {
	tests := map[string]string{
		"p":          "P",
		"maxW":       "MaxW",
		"translateX": "TranslateX",
		"bg-color":   "BgColor",
		"inset_x":    "InsetX",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Pascal(in))
		})
	}
}
