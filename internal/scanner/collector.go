// Package scanner finds class name chains in JavaScript, TypeScript and JSX
// source. Only chains rooted at an identifier imported from one of the
// configured client modules are collected:
//
//	import { c } from 'skribble-css/client';
//
//	const className = cx(c.grid, c.md.flex, isDisabled && c.hidden);
//	const padded = c.sm.p('10px');
//
// Sources are parsed with the tree-sitter TSX grammar, which accepts plain
// JavaScript, TypeScript and JSX alike. Plain TypeScript files (.ts, .mts,
// .cts) use the TypeScript grammar, since <T>x is a type assertion there and
// not an element.
package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/yacobolo/skribble/internal/classname"
	"github.com/yacobolo/skribble/internal/config"
)

// Issue is an invalid class name found in the source.
type Issue struct {
	Line   int // 1-based
	Column int // 1-based
	Chain  string
	Err    error
}

func (i Issue) Error() string {
	return fmt.Sprintf("%d:%d: %s: %v", i.Line, i.Column, i.Chain, i.Err)
}

// Collector accumulates the class names of one or more sources into an
// ordered set keyed by selector.
type Collector struct {
	cfg     *config.Config
	imports []Import
	tracked map[string]bool

	names      []classname.ClassName
	index      map[string]int
	issues     []Issue
	incomplete []Issue
}

// New returns a collector tracking the given imports.
func New(imports []Import, cfg *config.Config) *Collector {
	return &Collector{
		cfg:     cfg,
		imports: imports,
		tracked: make(map[string]bool),
		index:   make(map[string]int),
	}
}

// Language returns the grammar for the source file at path.
func Language(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return tsx.GetLanguage()
	}
}

// Scan parses source with the TSX grammar and visits the resulting tree.
// Syntax errors do not fail the scan: tree-sitter recovers and the
// well-formed parts are still visited.
func (c *Collector) Scan(ctx context.Context, source []byte) error {
	return c.parse(ctx, source, tsx.GetLanguage())
}

// ScanFile is Scan with the grammar chosen by the extension of path.
func (c *Collector) ScanFile(ctx context.Context, path string, source []byte) error {
	return c.parse(ctx, source, Language(path))
}

func (c *Collector) parse(ctx context.Context, source []byte, lang *sitter.Language) error {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return fmt.Errorf("parsing source: %w", err)
	}
	defer tree.Close()

	c.Visit(tree.RootNode(), source)
	return nil
}

// Visit collects class names from a parsed program. Imports are registered
// first since ES imports are hoisted.
func (c *Collector) Visit(root *sitter.Node, src []byte) {
	c.tracked = make(map[string]bool)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if stmt := root.NamedChild(i); stmt.Type() == "import_statement" {
			c.collectImports(stmt, src)
		}
	}
	if len(c.tracked) == 0 {
		return
	}
	for _, f := range c.visit(root, src) {
		c.add(f)
	}
}

// found is a class name discovered at a node.
type found struct {
	name classname.ClassName
	node *sitter.Node
	text string
}

// visit returns the class names under n in depth-first, left-to-right order.
func (c *Collector) visit(n *sitter.Node, src []byte) []found {
	switch n.Type() {
	case "import_statement", "comment":
		return nil

	case "member_expression", "subscript_expression":
		if tokens, ok := c.chainTokens(n, src); ok {
			return []found{c.found(n, src, classname.FromTokens(c.cfg, tokens...))}
		}

	case "call_expression":
		if f, handled := c.visitCall(n, src); handled {
			return f
		}
	}

	var out []found
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, c.visit(n.NamedChild(i), src)...)
	}
	return out
}

// visitCall handles c.p('10px') and c('padding', '10px'). handled is false
// when the callee is not a tracked chain, in which case the caller descends
// into the call normally.
func (c *Collector) visitCall(n *sitter.Node, src []byte) ([]found, bool) {
	callee := n.ChildByFieldName("function")
	if callee == nil {
		return nil, false
	}

	var tokens []string
	switch callee.Type() {
	case "member_expression", "subscript_expression":
		var ok bool
		if tokens, ok = c.chainTokens(callee, src); !ok {
			return nil, false
		}
	case "identifier":
		if !c.tracked[callee.Content(src)] {
			return nil, false
		}
	default:
		return nil, false
	}

	args := n.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		return nil, true
	}

	var values []string
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() == "comment" {
			continue
		}
		v, ok := literalValue(arg, src)
		if !ok {
			return nil, true
		}
		values = append(values, v)
	}

	name := classname.FromTokens(c.cfg, tokens...)
	switch len(values) {
	case 1:
		name = name.AddArguments(classname.Value(values[0]))
	case 2:
		name = name.AddArguments(classname.KeyValue(values[0], values[1]))
	default:
		return nil, true
	}
	return []found{c.found(n, src, name)}, true
}

// chainTokens returns the property names of a member chain after its tracked
// root identifier. ok is false when the chain is not rooted at a tracked
// identifier or contains a computed key other than a string literal.
func (c *Collector) chainTokens(n *sitter.Node, src []byte) ([]string, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Type() {
	case "identifier":
		return []string{}, c.tracked[n.Content(src)]

	case "member_expression":
		tokens, ok := c.chainTokens(n.ChildByFieldName("object"), src)
		if !ok {
			return nil, false
		}
		prop := n.ChildByFieldName("property")
		if prop == nil || prop.Type() != "property_identifier" {
			return nil, false
		}
		return append(tokens, prop.Content(src)), true

	case "subscript_expression":
		tokens, ok := c.chainTokens(n.ChildByFieldName("object"), src)
		if !ok {
			return nil, false
		}
		index := n.ChildByFieldName("index")
		if index == nil || index.Type() != "string" {
			return nil, false
		}
		return append(tokens, stringValue(index, src)), true
	}
	return nil, false
}

func (c *Collector) found(n *sitter.Node, src []byte, name classname.ClassName) found {
	return found{name: name, node: n, text: n.Content(src)}
}

// add inserts a class name keyed by selector. The first occurrence wins,
// except that a valid class name replaces an invalid one with the same
// selector.
func (c *Collector) add(f found) {
	pos := f.node.StartPoint()
	issue := Issue{
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
		Chain:  f.text,
		Err:    f.name.Err(),
	}
	switch f.name.Validity() {
	case classname.Invalid:
		c.issues = append(c.issues, issue)
	case classname.Undefined:
		c.incomplete = append(c.incomplete, issue)
	}
	c.insert(f.name)
}

func (c *Collector) insert(name classname.ClassName) {
	key := name.Selector()
	if i, ok := c.index[key]; ok {
		if name.Valid() && !c.names[i].Valid() {
			c.names[i] = name
		}
		return
	}
	c.index[key] = len(c.names)
	c.names = append(c.names, name)
}

// Sort orders the class names by score. Ties keep discovery order.
func (c *Collector) Sort() {
	sort.SliceStable(c.names, func(i, j int) bool {
		return c.names[i].Score() < c.names[j].Score()
	})
	for i, name := range c.names {
		c.index[name.Selector()] = i
	}
}

// All returns every collected class name, valid or not.
func (c *Collector) All() []classname.ClassName {
	return append([]classname.ClassName(nil), c.names...)
}

// ClassNames returns the valid class names in their current order.
func (c *Collector) ClassNames() []classname.ClassName {
	var out []classname.ClassName
	for _, name := range c.names {
		if name.Valid() {
			out = append(out, name)
		}
	}
	return out
}

// Issues returns the invalid class names found, in source order.
func (c *Collector) Issues() []Issue {
	return append([]Issue(nil), c.issues...)
}

// Incomplete returns the chains that never received a value, such as a
// bare c.sm. They are not errors but produce no CSS.
func (c *Collector) Incomplete() []Issue {
	return append([]Issue(nil), c.incomplete...)
}

// Merge unions the collectors by selector, in argument order, and sorts the
// result once.
func Merge(collectors ...*Collector) *Collector {
	var imports []Import
	var cfg *config.Config
	if len(collectors) > 0 {
		imports, cfg = collectors[0].imports, collectors[0].cfg
	}
	merged := New(imports, cfg)
	for _, c := range collectors {
		for _, name := range c.names {
			merged.insert(name)
		}
		merged.issues = append(merged.issues, c.issues...)
		merged.incomplete = append(merged.incomplete, c.incomplete...)
	}
	merged.Sort()
	return merged
}
