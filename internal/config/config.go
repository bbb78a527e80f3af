// Package config loads the style configuration: the atoms, modifiers,
// breakpoints, media queries, colors and variables that class names are
// resolved against. A *Config is built once by Load and is read-only
// afterwards, so it can be shared between concurrent scanners.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/skribble/internal/cssfmt"
)

//go:embed default.json
var defaultSource []byte

// Config is the loaded style configuration.
type Config struct {
	Options         Options
	StyleRules      *OrderedMap[[]StyleRule]
	Shorthand       *OrderedMap[[]StyleRule]
	Groups          *OrderedMap[Group]
	Palette         *OrderedMap[string]
	Keyframes       *OrderedMap[Keyframes]
	Breakpoints     *OrderedMap[CSSValue]
	MediaQueries    *OrderedMap[string]
	ParentModifiers *OrderedMap[[]string]
	ModifierGroups  []*OrderedMap[[]string]
	Colors          *OrderedMap[Variable]
	AtomDefinitions []Atom
	Variables       *OrderedMap[Variable]

	// Modifiers is every modifier group flattened, in canonical order. The
	// position of a name is its sort position inside a class name.
	Modifiers *OrderedMap[[]string]
	// Atoms is keyed by atom name and merges every definition targeting it.
	Atoms *OrderedMap[*AtomMeta]
	// CSSVariables holds authored variables plus the generated color ones.
	CSSVariables *OrderedMap[PopulatedVariable]
}

func newConfig() *Config {
	return &Config{
		Options:         Options{ColorFormat: ColorFormatHSL},
		StyleRules:      NewOrderedMap[[]StyleRule](),
		Shorthand:       NewOrderedMap[[]StyleRule](),
		Groups:          NewOrderedMap[Group](),
		Palette:         NewOrderedMap[string](),
		Keyframes:       NewOrderedMap[Keyframes](),
		Breakpoints:     NewOrderedMap[CSSValue](),
		MediaQueries:    NewOrderedMap[string](),
		ParentModifiers: NewOrderedMap[[]string](),
		Colors:          NewOrderedMap[Variable](),
		Variables:       NewOrderedMap[Variable](),
		Modifiers:       NewOrderedMap[[]string](),
		Atoms:           NewOrderedMap[*AtomMeta](),
		CSSVariables:    NewOrderedMap[PopulatedVariable](),
	}
}

// Load parses a JSON (or YAML) configuration document.
func Load(source []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, &ParseError{Msg: "malformed document", Err: err}
	}
	if len(doc.Content) == 0 {
		return nil, &ParseError{Msg: "empty document"}
	}

	cfg := newConfig()
	if err := decodeDocument(cfg, doc.Content[0]); err != nil {
		return nil, err
	}
	cfg.build()
	if err := cfg.checkCollisions(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and parses the configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style config %s: %w", path, err)
	}
	cfg, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading style config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := Load(defaultSource)
	if err != nil {
		panic(fmt.Sprintf("embedded style config is invalid: %v", err))
	}
	return cfg
}

// DefaultSource returns the embedded configuration document.
func DefaultSource() []byte {
	return slices.Clone(defaultSource)
}

// build derives the flattened modifiers, the populated variables and the
// atom metadata from the authored sections.
func (c *Config) build() {
	for _, group := range c.ModifierGroups {
		for name, templates := range group.All() {
			c.Modifiers.Set(name, templates)
		}
	}

	for name, v := range c.Variables.All() {
		c.CSSVariables.Set(name, c.populate(v))
	}

	for _, atom := range c.AtomDefinitions {
		for _, rule := range atom.StyleRules {
			values := atom.Values
			if atom.Colors != nil {
				values = c.colorValues(rule, *atom.Colors)
			}

			meta, ok := c.Atoms.Get(rule)
			if !ok {
				meta = &AtomMeta{Values: NewOrderedMap[CSSValue]()}
				c.Atoms.Set(rule, meta)
			}
			meta.Keyframes = appendMissing(meta.Keyframes, atom.Keyframes...)
			meta.Groups = appendMissing(meta.Groups, atom.Groups...)
			for name, v := range values.All() {
				meta.Values.Set(name, v)
			}
		}
	}
}

// populate expands an authored variable into its selector tables. A variable
// whose value is "container" tracks the active breakpoint width.
func (c *Config) populate(v Variable) PopulatedVariable {
	if v.Object != nil {
		return *v.Object
	}

	p := PopulatedVariable{Selectors: NewOrderedMap[CSSValue]()}
	if v.Value.Raw != "container" {
		p.Selectors.Set(RootSelector, *v.Value)
		return p
	}

	p.Selectors.Set(RootSelector, CSSValue{Raw: "none"})
	p.Breakpoints = NewOrderedMap[*Selectors]()
	for name, width := range c.Breakpoints.All() {
		s := NewOrderedMap[CSSValue]()
		s.Set(RootSelector, CSSValue{Raw: width.Length()})
		p.Breakpoints.Set(name, s)
	}
	return p
}

// populateColor is populate for theme colors: every value is converted to
// rgba with the atom's opacity variable.
func (c *Config) populateColor(v Variable, opacity string) PopulatedVariable {
	if v.Value != nil {
		p := PopulatedVariable{Selectors: NewOrderedMap[CSSValue]()}
		p.Selectors.Set(RootSelector, convertColor(*v.Value, c.Palette, opacity))
		return p
	}

	convert := func(s *Selectors) *Selectors {
		out := NewOrderedMap[CSSValue]()
		for selector, value := range s.All() {
			out.Set(selector, convertColor(value, c.Palette, opacity))
		}
		return out
	}
	convertNested := func(n *OrderedMap[*Selectors]) *OrderedMap[*Selectors] {
		if n == nil {
			return nil
		}
		out := NewOrderedMap[*Selectors]()
		for name, s := range n.All() {
			out.Set(name, convert(s))
		}
		return out
	}

	return PopulatedVariable{
		Selectors:    convert(v.Object.Selectors),
		Breakpoints:  convertNested(v.Object.Breakpoints),
		MediaQueries: convertNested(v.Object.MediaQueries),
	}
}

// colorValues returns the values of a color atom for one style rule and
// registers the generated color variables.
func (c *Config) colorValues(rule string, opts AtomColorOptions) *OrderedMap[CSSValue] {
	values := NewOrderedMap[CSSValue]()
	if opts.Palette {
		for name, color := range c.Palette.All() {
			values.Set(name, CSSValue{Raw: RGBA(color, opts.Opacity)})
		}
	}
	for name, color := range c.Colors.All() {
		variable := fmt.Sprintf("--color-%s-%s", cssfmt.Kebab(rule), cssfmt.Kebab(name))
		values.Set(name, CSSValue{Raw: WrapVariable(variable)})
		c.CSSVariables.Set(variable, c.populateColor(color, opts.Opacity))
	}
	return values
}

func (c *Config) checkCollisions() error {
	layers := []struct {
		kind  string
		names interface{ Has(string) bool }
	}{
		{"breakpoint", c.Breakpoints},
		{"media query", c.MediaQueries},
		{"parent modifier", c.ParentModifiers},
		{"modifier", c.Modifiers},
	}
	check := func(kind string, names []string) error {
		for _, name := range names {
			for _, layer := range layers {
				if layer.names.Has(name) {
					return fmt.Errorf("%w: %s %q is also a %s", ErrCollision, kind, name, layer.kind)
				}
			}
		}
		return nil
	}
	if err := check("atom", c.Atoms.Keys()); err != nil {
		return err
	}
	return check("shorthand", c.Shorthand.Keys())
}

// BreakpointWidth returns the min-width of a named breakpoint.
func (c *Config) BreakpointWidth(name string) (string, bool) {
	v, ok := c.Breakpoints.Get(name)
	return v.Length(), ok
}

func appendMissing(list []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}
