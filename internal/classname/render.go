package classname

import (
	"strings"

	"github.com/yacobolo/skribble/internal/cssfmt"
)

// Selector renders the escaped CSS selector. Modifier templates multiply the
// selector list: three templates give three selectors, two modifiers with
// three templates each give nine. The result is comma separated.
func (c ClassName) Selector() string {
	tokens := c.tokens()
	for i, t := range tokens {
		tokens[i] = cssfmt.Escape(t)
	}

	var b strings.Builder
	b.WriteString(".")
	b.WriteString(strings.Join(tokens, `\:`))

	prefix := ""
	if len(tokens) > 0 {
		prefix = `\:\:`
	}
	switch {
	case c.shorthand != "":
		b.WriteString(prefix + `\$` + cssfmt.Escape(c.shorthand))
	case c.styleName != "":
		b.WriteString(prefix + `\$` + cssfmt.Escape(c.styleName))
	case c.argument != nil:
		b.WriteString(prefix + `\[` + c.argument.selector() + `\]`)
	}

	selectors := []string{b.String()}
	for _, modifier := range c.modifiers {
		templates, _ := c.cfg.Modifiers.Get(modifier)
		selectors = expand(selectors, templates)
	}
	if c.parentModifier != "" {
		templates, _ := c.cfg.ParentModifiers.Get(c.parentModifier)
		selectors = expand(selectors, templates)
	}

	return strings.Join(selectors, ", ")
}

// expand substitutes each selector for & in each template.
func expand(selectors, templates []string) []string {
	if len(templates) == 0 {
		return selectors
	}
	out := make([]string, 0, len(selectors)*len(templates))
	for _, template := range templates {
		for _, selector := range selectors {
			if s := strings.ReplaceAll(template, "&", selector); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Declarations renders the declarations of the rule body without braces,
// separated by ";\n".
func (c ClassName) Declarations() string {
	var decls []string

	if c.atom != "" {
		rules, _ := c.cfg.StyleRules.Get(c.atom)
		for _, rule := range rules {
			if d := rule.Declaration(c.value); d != "" {
				decls = append(decls, d)
			}
		}
	}

	if c.shorthand != "" {
		rules, _ := c.cfg.Shorthand.Get(c.shorthand)
		for _, rule := range rules {
			if d := rule.Declaration(""); d != "" {
				decls = append(decls, d)
			}
		}
	}

	if c.atom == "" && c.argument != nil && c.argument.keyed {
		decls = append(decls, c.argument.Key+": "+c.argument.Value)
	}

	return strings.Join(decls, ";\n")
}

// CSS renders the full rule.
func (c ClassName) CSS() string {
	decls := c.Declarations()
	if decls == "" {
		return c.Selector() + " {}"
	}
	return c.Selector() + " {\n" + cssfmt.Indent(decls) + ";\n}"
}

// Variables returns the custom properties referenced by the rule, its
// keyframes and its groups.
func (c ClassName) Variables() []string {
	var b strings.Builder
	b.WriteString(c.Declarations())
	for _, name := range c.keyframes {
		if k, ok := c.cfg.Keyframes.Get(name); ok {
			b.WriteString("\n" + k.CSS(name))
		}
	}
	for _, name := range c.groups {
		if g, ok := c.cfg.Groups.Get(name); ok {
			b.WriteString("\n" + g.CSS(nil))
		}
	}
	return cssfmt.VariableNames(b.String())
}
