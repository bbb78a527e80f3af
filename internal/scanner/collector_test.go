package scanner

import (
	"context"
	"testing"

	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/skribble/internal/classname"
	"github.com/yacobolo/skribble/internal/config"
)

const testConfig = `{
  "styleRules": {
    "p": ["padding"],
    "display": ["display"]
  },
  "shorthand": {
    "block": [["display", "block"]]
  },
  "breakpoints": { "sm": "640px", "md": "768px" },
  "mediaQueries": { "print": "print" },
  "modifiers": [
    { "hover": ["&:hover"], "focus": ["&:focus"] }
  ],
  "atoms": [
    { "styleRules": ["p"], "values": { "px": "1px", "1": "0.25rem" } },
    { "styleRules": ["display"], "values": { "block": "block", "none": "none" } }
  ]
}`

func testCfg(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load([]byte(testConfig))
	require.NoError(t, err)
	return cfg
}

func scan(t *testing.T, src string) *Collector {
	t.Helper()
	c := New(DefaultImports, testCfg(t))
	require.NoError(t, c.Scan(context.Background(), []byte(src)))
	return c
}

func classes(names []classname.ClassName) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n.String())
	}
	return out
}

func TestScan_Imports(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "named import",
			src:  "import { c } from 'skribble-css/client';\nconst a = c.p.$px;",
			want: []string{"p::$px"},
		},
		{
			name: "scoped package",
			src:  "import { c } from '@skribble-css/client';\nconst a = c.p.$px;",
			want: []string{"p::$px"},
		},
		{
			name: "aliased import",
			src:  "import { c as s } from 'skribble-css/client';\nconst a = s.p.$px;\nconst b = c.p.$1;",
			want: []string{"p::$px"},
		},
		{
			name: "other package",
			src:  "import { c } from 'other';\nconst a = c.p.$px;",
			want: nil,
		},
		{
			name: "type only import",
			src:  "import type { c } from 'skribble-css/client';\nconst a = c.p.$px;",
			want: nil,
		},
		{
			name: "type only specifier",
			src:  "import { type c } from 'skribble-css/client';\nconst a = c.p.$px;",
			want: nil,
		},
		{
			name: "import after use",
			src:  "const a = c.p.$px;\nimport { c } from 'skribble-css/client';",
			want: []string{"p::$px"},
		},
		{
			name: "no import",
			src:  "const a = c.p.$px;",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := scan(t, tt.src)
			got := classes(c.ClassNames())
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_NamespaceAndDefaultImports(t *testing.T) {
	imports := []Import{
		{Package: "ns-client", Name: "*"},
		{Package: "default-client", Name: ""},
	}
	src := `
import * as ns from 'ns-client';
import d from 'default-client';

const a = ns.p.$px;
const b = d.display.$block;
`
	c := New(imports, testCfg(t))
	require.NoError(t, c.Scan(context.Background(), []byte(src)))

	assert.Equal(t, []string{"p::$px", "display::$block"}, classes(c.ClassNames()))
}

func TestScan_Chains(t *testing.T) {
	src := `
import { c } from 'skribble-css/client';

export function Button({ disabled, size = c.sm.p.$1 }) {
  const { pad = c.md.p.$px } = props;
  const styles = { root: c.$block, [c.print.display.$none]: true };
  return (
    <button className={cx(c.hover.p.$1, disabled && c['focus'].p['$px'], [c.sm.$block])}>
      {label}
    </button>
  );
}
`
	c := scan(t, src)

	assert.Equal(t, []string{
		"sm:p::$1",
		"md:p::$px",
		"$block",
		"print:display::$none",
		"hover:p::$1",
		"focus:p::$px",
		"sm::$block",
	}, classes(c.ClassNames()))
	assert.Empty(t, c.Issues())
}

func TestScan_Calls(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "string value", src: "c.p('10px')", want: []string{"p::[10px]"}},
		{name: "number value", src: "c.sm.p(10)", want: []string{"sm:p::[10px]"}},
		{name: "float value", src: "c.p(1.50)", want: []string{"p::[1.5px]"}},
		{name: "hex value", src: "c.p(0x10)", want: []string{"p::[16px]"}},
		{name: "bigint value", src: "c.p(10n)", want: []string{"p::[10px]"}},
		{name: "key value", src: "c('padding', '10px')", want: []string{"[padding:10px]"}},
		{name: "key value after tokens", src: "c.hover('color', 'red')", want: []string{"hover::[color:red]"}},
		{name: "boolean", src: "c('visible', true)", want: []string{"[visible:true]"}},
		{name: "comment ignored", src: "c.p(/* pad */ '1rem')", want: []string{"p::[1rem]"}},
		{name: "no arguments", src: "c.p()", want: nil},
		{name: "three arguments", src: "c.p('a', 'b', 'c')", want: nil},
		{name: "non literal", src: "c.p(size)", want: nil},
		{name: "template literal", src: "c.p(`10px`)", want: nil},
		{name: "untracked callee", src: "cx(c.p.$px)", want: []string{"p::$px"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := scan(t, "import { c } from 'skribble-css/client';\n"+tt.src+";\n")
			got := classes(c.ClassNames())
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_CallArgumentsAreValues(t *testing.T) {
	c := scan(t, "import { c } from 'skribble-css/client';\nc.p('10px');\n")
	names := c.ClassNames()
	require.Len(t, names, 1)

	args, ok := names[0].Arguments()
	require.True(t, ok)
	assert.False(t, args.Keyed())
	assert.Equal(t, "10px", args.Value)
	assert.Equal(t, "padding: 10px", names[0].Declarations())
}

func TestScan_Deduplicates(t *testing.T) {
	c := scan(t, `
import { c } from 'skribble-css/client';
const a = [c.p.$px, c.p.$px, c.focus.hover.p.$1, c.hover.focus.p.$1];
`)
	assert.Equal(t, []string{"p::$px", "hover:focus:p::$1"}, classes(c.ClassNames()))
}

func TestScan_Issues(t *testing.T) {
	c := scan(t, "import { c } from 'skribble-css/client';\nconst a = c.sm.md.p.$px;\nconst b =   c.p.$huge;\n")

	assert.Empty(t, c.ClassNames())
	issues := c.Issues()
	require.Len(t, issues, 2)

	assert.Equal(t, 2, issues[0].Line)
	assert.Equal(t, 11, issues[0].Column)
	assert.Equal(t, "c.sm.md.p.$px", issues[0].Chain)
	assert.ErrorIs(t, issues[0].Err, classname.ErrConflict)

	assert.Equal(t, 3, issues[1].Line)
	assert.Equal(t, 13, issues[1].Column)
	assert.ErrorIs(t, issues[1].Err, classname.ErrUnknownValue)

	assert.Len(t, c.All(), 2)
}

func TestScan_UndefinedChainsAreNotRendered(t *testing.T) {
	c := scan(t, "import { c } from 'skribble-css/client';\nconst bp = c.sm;\n")

	assert.Empty(t, c.ClassNames())
	assert.Empty(t, c.Issues())
	require.Len(t, c.Incomplete(), 1)
	assert.Equal(t, "c.sm", c.Incomplete()[0].Chain)
	require.Len(t, c.All(), 1)
	assert.Equal(t, classname.Undefined, c.All()[0].Validity())
}

func TestSort(t *testing.T) {
	c := scan(t, `
import { c } from 'skribble-css/client';
const a = [c.md.p.$px, c.sm.p.$px, c.display.$block, c.p.$1, c.p.$px];
`)
	c.Sort()

	// The first breakpoint has position zero, so sm ties with no breakpoint
	// and discovery order decides.
	assert.Equal(t, []string{
		"sm:p::$px",
		"p::$px",
		"p::$1",
		"display::$block",
		"md:p::$px",
	}, classes(c.ClassNames()))
}

func TestMerge(t *testing.T) {
	cfg := testCfg(t)
	a := New(DefaultImports, cfg)
	b := New(DefaultImports, cfg)
	require.NoError(t, a.Scan(context.Background(), []byte("import { c } from 'skribble-css/client';\nc.sm.p.$px; c.p.$1;")))
	require.NoError(t, b.Scan(context.Background(), []byte("import { c } from 'skribble-css/client';\nc.p.$1; c.p.$px; c.p.$nope;")))

	merged := Merge(a, b)

	assert.Equal(t, []string{"sm:p::$px", "p::$px", "p::$1"}, classes(merged.ClassNames()))
	assert.Len(t, merged.Issues(), 1)
}

func TestParseImport(t *testing.T) {
	tests := []struct {
		in      string
		want    Import
		wantErr bool
	}{
		{in: "skribble-css/client:c", want: Import{Package: "skribble-css/client", Name: "c"}},
		{in: "@scope/pkg:css", want: Import{Package: "@scope/pkg", Name: "css"}},
		{in: "pkg:*", want: Import{Package: "pkg", Name: "*"}},
		{in: "pkg:", want: Import{Package: "pkg"}},
		{in: "pkg", want: Import{Package: "pkg"}},
		{in: "", wantErr: true},
		{in: ":c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseImport(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumberValue(t *testing.T) {
	tests := map[string]string{
		"10":    "10",
		"1.50":  "1.5",
		"0x10":  "16",
		"1_000": "1000",
		"10n":   "10",
		".5":    "0.5",
		"1e3":   "1000",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, numberValue(in))
		})
	}
}

func TestScanFile_GrammarByExtension(t *testing.T) {
	const header = "import { c } from 'skribble-css/client';\n"
	tests := []struct {
		name string
		path string
		src  string
		want []string
	}{
		{
			name: "type assertion in ts",
			path: "src/a.ts",
			src:  header + "const s = <string>foo;\nexport const a = c.sm.p.$px;\n",
			want: []string{"sm:p::$px"},
		},
		{
			name: "type assertion in mts",
			path: "src/a.mts",
			src:  header + "const n = <number>(<unknown>x);\nexport const a = [c.p.$1, c.sm.p.$px];\n",
			want: []string{"p::$1", "sm:p::$px"},
		},
		{
			name: "jsx in tsx",
			path: "src/a.tsx",
			src:  header + "export const A = () => <div className={c.sm.p.$px} />;\n",
			want: []string{"sm:p::$px"},
		},
		{
			name: "jsx in js",
			path: "src/a.js",
			src:  header + "export const A = () => <b className={c.p.$1}>{c.sm.p.$px}</b>;\n",
			want: []string{"p::$1", "sm:p::$px"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultImports, testCfg(t))
			require.NoError(t, c.ScanFile(context.Background(), tt.path, []byte(tt.src)))
			assert.Equal(t, tt.want, classes(c.ClassNames()))
		})
	}
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, typescript.GetLanguage(), Language("src/a.ts"))
	assert.Equal(t, typescript.GetLanguage(), Language("src/a.CTS"))
	assert.Equal(t, tsx.GetLanguage(), Language("src/a.tsx"))
	assert.Equal(t, tsx.GetLanguage(), Language("src/a.mjs"))
}
