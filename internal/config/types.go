package config

import (
	"fmt"
	"strings"

	"github.com/yacobolo/skribble/internal/cssfmt"
)

// RootSelector is the selector that holds default custom property values.
const RootSelector = ":root"

// CSSValue is a scalar configuration value. Numbers keep their literal text
// and are remembered as numbers so lengths can be given a unit.
type CSSValue struct {
	Raw    string
	Number bool
}

// String returns the value as authored.
func (v CSSValue) String() string {
	return v.Raw
}

// Length returns the value as a CSS length. Bare numbers are pixels.
func (v CSSValue) Length() string {
	if v.Number && v.Raw != "0" {
		return v.Raw + "px"
	}
	return v.Raw
}

// StyleRule is a declaration template. A rule with only a Property takes its
// value from the class name; a rule with a Value is fixed.
type StyleRule struct {
	Property string
	Value    *CSSValue
}

// Declaration renders "property: value". Templates with no fixed value and an
// empty dynamic value render nothing.
func (r StyleRule) Declaration(value string) string {
	if r.Value != nil {
		return fmt.Sprintf("%s: %s", r.Property, r.Value.Raw)
	}
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", r.Property, value)
}

// Group is a set of declarations applied to every selector whose atom names
// the group.
type Group struct {
	Rules []StyleRule
}

// CSS renders the group rule for the given selectors.
func (g Group) CSS(selectors []string) string {
	lines := make([]string, 0, len(g.Rules))
	for _, rule := range g.Rules {
		lines = append(lines, rule.Declaration("")+";")
	}
	return fmt.Sprintf("%s {\n%s\n}", strings.Join(selectors, ",\n"), cssfmt.Indent(strings.Join(lines, "\n")))
}

// Keyframes maps each keyframe selector (from, to, 50%) to its properties.
type Keyframes struct {
	Frames *OrderedMap[*OrderedMap[string]]
}

// CSS renders the @keyframes block. Property names are kebab-cased unless
// they start with a dash.
func (k Keyframes) CSS(name string) string {
	var sections []string
	for key, styles := range k.Frames.All() {
		var decls []string
		for property, value := range styles.All() {
			if !strings.HasPrefix(property, "-") {
				property = cssfmt.Kebab(property)
			}
			decls = append(decls, fmt.Sprintf("%s: %s;", property, value))
		}
		sections = append(sections, fmt.Sprintf("%s {\n%s\n}", key, cssfmt.Indent(strings.Join(decls, "\n"))))
	}
	return fmt.Sprintf("@keyframes %s {\n%s\n}", name, cssfmt.Indent(strings.Join(sections, "\n")))
}

// Selectors maps a selector to a custom property value.
type Selectors = OrderedMap[CSSValue]

// PopulatedVariable is a custom property with its default (per selector)
// values plus optional overrides per breakpoint and per media query.
type PopulatedVariable struct {
	Selectors    *Selectors
	Breakpoints  *OrderedMap[*Selectors]
	MediaQueries *OrderedMap[*Selectors]
}

// VariableNames returns the custom properties referenced by any of the
// variable's values.
func (p PopulatedVariable) VariableNames() []string {
	var b strings.Builder
	write := func(s *Selectors) {
		for _, v := range s.All() {
			b.WriteString(v.Raw)
			b.WriteByte('\n')
		}
	}
	write(p.Selectors)
	for _, s := range p.Breakpoints.All() {
		write(s)
	}
	for _, s := range p.MediaQueries.All() {
		write(s)
	}
	return cssfmt.VariableNames(b.String())
}

// Variable is an authored custom property: either a single value or a full
// selector table.
type Variable struct {
	Value  *CSSValue
	Object *PopulatedVariable
}

// AtomColorOptions configures a color atom.
type AtomColorOptions struct {
	// Opacity is the custom property that controls the alpha channel.
	Opacity string
	// Palette also exposes every palette entry as a value.
	Palette bool
}

// Atom is an authored atom definition. Color atoms set Colors; value atoms
// set Values.
type Atom struct {
	Keyframes  []string
	Groups     []string
	StyleRules []string
	Colors     *AtomColorOptions
	Values     *OrderedMap[CSSValue]
}

// AtomMeta is the resolved metadata of a single atom name.
type AtomMeta struct {
	Keyframes []string
	Groups    []string
	Values    *OrderedMap[CSSValue]
}

// ColorFormat is the preferred output color notation.
type ColorFormat string

const (
	ColorFormatRGB ColorFormat = "rgb"
	ColorFormatHSL ColorFormat = "hsl"
)

// Options are general settings.
type Options struct {
	ColorFormat ColorFormat
}
