package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `{
  "styleRules": {
    "p": ["padding"],
    "px": ["padding-left", "padding-right"],
    "text": ["color"]
  },
  "shorthand": {
    "block": [["display", "block"]]
  },
  "palette": {
    "red": "#ff0000",
    "blue": "#0000ff"
  },
  "breakpoints": { "sm": "640px", "md": 768 },
  "mediaQueries": { "print": "print" },
  "parentModifiers": { "groupHover": [".group:hover &"] },
  "modifiers": [
    { "hover": ["&:hover"] },
    { "active": ["&:active"], "focus": ["&:focus"] }
  ],
  "colors": {
    "primary": "red",
    "themed": {
      "selectors": { ":root": "#00ff00", ".dark": "blue" },
      "mediaQueries": { "print": { ":root": "#000000" } }
    }
  },
  "atoms": [
    { "styleRules": ["p", "px"], "values": { "px": "1px", "1": "0.25rem" } },
    { "styleRules": ["p"], "values": { "2": "0.5rem" } },
    { "styleRules": ["text"], "colors": { "opacity": "--text-opacity", "palette": true } }
  ],
  "variables": {
    "--container": "container",
    "--gap": "1rem"
  }
}`

func TestLoad_PreservesOrder(t *testing.T) {
	cfg, err := Load([]byte(testConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{"p", "px", "text"}, cfg.StyleRules.Keys())
	assert.Equal(t, []string{"sm", "md"}, cfg.Breakpoints.Keys())
	assert.Equal(t, []string{"hover", "active", "focus"}, cfg.Modifiers.Keys())
	assert.Equal(t, 2, cfg.Modifiers.Index("focus"))

	p, ok := cfg.Atoms.Get("p")
	require.True(t, ok)
	assert.Equal(t, []string{"px", "1", "2"}, p.Values.Keys())

	px, ok := cfg.Atoms.Get("px")
	require.True(t, ok)
	assert.Equal(t, []string{"px", "1"}, px.Values.Keys())
}

func TestLoad_StyleRuleShapes(t *testing.T) {
	cfg, err := Load([]byte(testConfig))
	require.NoError(t, err)

	rules, _ := cfg.StyleRules.Get("px")
	require.Len(t, rules, 2)
	assert.Equal(t, "padding-left", rules[0].Property)
	assert.Nil(t, rules[0].Value)
	assert.Equal(t, "padding-left: 2px", rules[0].Declaration("2px"))
	assert.Empty(t, rules[0].Declaration(""))

	block, _ := cfg.Shorthand.Get("block")
	require.Len(t, block, 1)
	assert.Equal(t, "display: block", block[0].Declaration(""))
}

func TestLoad_Breakpoints(t *testing.T) {
	cfg, err := Load([]byte(testConfig))
	require.NoError(t, err)

	width, ok := cfg.BreakpointWidth("sm")
	require.True(t, ok)
	assert.Equal(t, "640px", width)

	width, ok = cfg.BreakpointWidth("md")
	require.True(t, ok)
	assert.Equal(t, "768px", width, "numeric breakpoints are pixels")
}

func TestLoad_ContainerVariable(t *testing.T) {
	cfg, err := Load([]byte(testConfig))
	require.NoError(t, err)

	container, ok := cfg.CSSVariables.Get("--container")
	require.True(t, ok)

	root, _ := container.Selectors.Get(RootSelector)
	assert.Equal(t, "none", root.Raw)
	assert.Equal(t, []string{"sm", "md"}, container.Breakpoints.Keys())

	md, _ := container.Breakpoints.Get("md")
	value, _ := md.Get(RootSelector)
	assert.Equal(t, "768px", value.Raw)

	gap, ok := cfg.CSSVariables.Get("--gap")
	require.True(t, ok)
	v, _ := gap.Selectors.Get(RootSelector)
	assert.Equal(t, "1rem", v.Raw)
	assert.Nil(t, gap.Breakpoints)
}

func TestLoad_ColorAtoms(t *testing.T) {
	cfg, err := Load([]byte(testConfig))
	require.NoError(t, err)

	text, ok := cfg.Atoms.Get("text")
	require.True(t, ok)
	assert.Equal(t, []string{"red", "blue", "primary", "themed"}, text.Values.Keys())

	red, _ := text.Values.Get("red")
	assert.Equal(t, "rgba(255, 0, 0, var(--text-opacity))", red.Raw)

	primary, _ := text.Values.Get("primary")
	assert.Equal(t, "var(--color-text-primary)", primary.Raw)

	variable, ok := cfg.CSSVariables.Get("--color-text-primary")
	require.True(t, ok)
	root, _ := variable.Selectors.Get(RootSelector)
	assert.Equal(t, "rgba(255, 0, 0, var(--text-opacity))", root.Raw, "palette names are resolved")

	themed, ok := cfg.CSSVariables.Get("--color-text-themed")
	require.True(t, ok)
	dark, _ := themed.Selectors.Get(".dark")
	assert.Equal(t, "rgba(0, 0, 255, var(--text-opacity))", dark.Raw)
	printQuery, _ := themed.MediaQueries.Get("print")
	printRoot, _ := printQuery.Get(RootSelector)
	assert.Equal(t, "rgba(0, 0, 0, var(--text-opacity))", printRoot.Raw)

	assert.Equal(t, []string{"--text-opacity"}, themed.VariableNames())
}

func TestLoad_YAML(t *testing.T) {
	cfg, err := Load([]byte(`
styleRules:
  m: [margin]
breakpoints:
  md: 768
  sm: 640
atoms:
  - styleRules: [m]
    values:
      auto: auto
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"md", "sm"}, cfg.Breakpoints.Keys(), "document order wins over value order")
	assert.True(t, cfg.Atoms.Has("m"))
}

func TestLoad_EmptySections(t *testing.T) {
	cfg, err := Load([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Atoms.Len())
	assert.Equal(t, 0, cfg.Breakpoints.Len())
	assert.Equal(t, ColorFormatHSL, cfg.Options.ColorFormat)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantErr  error
		wantPath string
	}{
		{
			name:    "malformed",
			source:  `{"styleRules": `,
			wantErr: ErrParse,
		},
		{
			name:    "empty document",
			source:  ``,
			wantErr: ErrParse,
		},
		{
			name:     "style rules not an object",
			source:   `{"styleRules": ["p"]}`,
			wantErr:  ErrParse,
			wantPath: "styleRules",
		},
		{
			name:     "bad style rule shape",
			source:   `{"styleRules": {"p": [["padding"]]}}`,
			wantErr:  ErrParse,
			wantPath: "styleRules.p[0]",
		},
		{
			name:     "atom without values",
			source:   `{"atoms": [{"styleRules": ["p"]}]}`,
			wantErr:  ErrParse,
			wantPath: "atoms[0]",
		},
		{
			name:     "object atom value",
			source:   `{"atoms": [{"styleRules": ["p"], "values": {"x": {"a": "b"}}}]}`,
			wantErr:  ErrParse,
			wantPath: "atoms[0].values.x",
		},
		{
			name:     "unknown color format",
			source:   `{"options": {"colorFormat": "lab"}}`,
			wantErr:  ErrParse,
			wantPath: "options.colorFormat",
		},
		{
			name:     "color atom without opacity",
			source:   `{"atoms": [{"styleRules": ["bg"], "colors": {"palette": true}}]}`,
			wantErr:  ErrParse,
			wantPath: "atoms[0].colors",
		},
		{
			name: "atom collides with breakpoint",
			source: `{
				"breakpoints": {"sm": 640},
				"atoms": [{"styleRules": ["sm"], "values": {"a": "b"}}]
			}`,
			wantErr: ErrCollision,
		},
		{
			name: "shorthand collides with modifier",
			source: `{
				"shorthand": {"hover": [["display", "block"]]},
				"modifiers": [{"hover": ["&:hover"]}]
			}`,
			wantErr: ErrCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.source))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.wantPath != "" {
				var perr *ParseError
				require.True(t, errors.As(err, &perr))
				assert.Equal(t, tt.wantPath, perr.Path)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skribble.config.json")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Atoms.Has("p"))

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"sm", "md", "lg", "xl"}, cfg.Breakpoints.Keys())
	assert.Less(t, cfg.Modifiers.Index("active"), cfg.Modifiers.Index("focus"))
	assert.True(t, cfg.MediaQueries.Has("print"))
	assert.True(t, cfg.ParentModifiers.Has("groupActive"))
	assert.True(t, cfg.Shorthand.Has("block"))

	p, ok := cfg.Atoms.Get("p")
	require.True(t, ok)
	px, _ := p.Values.Get("px")
	assert.Equal(t, "1px", px.Raw)

	animate, _ := cfg.Atoms.Get("animate")
	assert.Equal(t, []string{"spin", "ping", "pulse"}, animate.Keyframes)

	overlay, ok := cfg.CSSVariables.Get("--color-bg-overlay")
	require.True(t, ok)
	root, _ := overlay.Selectors.Get(RootSelector)
	assert.Equal(t, "rgba(0, 0, 0, calc(0.502 * var(--bg-opacity)))", root.Raw)
}

func TestKeyframesCSS(t *testing.T) {
	frames := NewOrderedMap[*OrderedMap[string]]()
	from := NewOrderedMap[string]()
	from.Set("transform", "rotate(0deg)")
	from.Set("animationTimingFunction", "ease-in")
	to := NewOrderedMap[string]()
	to.Set("-webkit-transform", "rotate(360deg)")
	frames.Set("from", from)
	frames.Set("to", to)

	got := Keyframes{Frames: frames}.CSS("spin")
	want := "@keyframes spin {\n" +
		"  from {\n" +
		"    transform: rotate(0deg);\n" +
		"    animation-timing-function: ease-in;\n" +
		"  }\n" +
		"  to {\n" +
		"    -webkit-transform: rotate(360deg);\n" +
		"  }\n" +
		"}"
	assert.Equal(t, want, got)
}

func TestGroupCSS(t *testing.T) {
	value := CSSValue{Raw: "translateX(var(--x))"}
	group := Group{Rules: []StyleRule{{Property: "transform", Value: &value}}}

	got := group.CSS([]string{`.translateX\:\:\$full`, `.rotate\:\:\$45`})
	want := ".translateX\\:\\:\\$full,\n.rotate\\:\\:\\$45 {\n  transform: translateX(var(--x));\n}"
	assert.Equal(t, want, got)
}
