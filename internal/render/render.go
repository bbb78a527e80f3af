// Package render turns sorted class names into a stylesheet.
//
// The document is laid out as keyframes and groups first, then one section
// per breakpoint in configured order (no breakpoint first). Inside each
// section rules without a media query come first, followed by one
// @media block per configured media query. Only the custom properties the
// class names actually reference, directly or through other variables, are
// declared.
package render

import (
	"slices"
	"strings"

	"github.com/yacobolo/skribble/internal/classname"
	"github.com/yacobolo/skribble/internal/config"
	"github.com/yacobolo/skribble/internal/cssfmt"
)

// declarations maps a selector to its custom property declarations.
type declarations = config.OrderedMap[[]string]

// variableBuckets holds the referenced custom properties grouped by where
// they are declared.
type variableBuckets struct {
	root         *declarations
	breakpoints  *config.OrderedMap[*declarations]
	mediaQueries *config.OrderedMap[*declarations]
}

// CSS renders the stylesheet for classNames, which should already be valid
// and sorted. An empty input renders as "". Anything else ends with a single
// newline.
func CSS(cfg *config.Config, classNames []classname.ClassName) string {
	byBreakpoint := config.NewOrderedMap[[]classname.ClassName]()
	var keyframes []string
	groups := config.NewOrderedMap[[]string]()

	for _, c := range classNames {
		if !c.Valid() {
			continue
		}
		keyframes = appendMissing(keyframes, c.Keyframes()...)
		for _, name := range c.Groups() {
			selectors, _ := groups.Get(name)
			groups.Set(name, append(selectors, c.Selector()))
		}
		list, _ := byBreakpoint.Get(c.Breakpoint())
		byBreakpoint.Set(c.Breakpoint(), append(list, c))
	}

	vars := bucketVariables(cfg, referencedVariables(cfg, classNames))

	var sections []string
	if s := keyframesAndGroups(cfg, keyframes, groups); s != "" {
		sections = append(sections, s)
	}

	breakpoints := append([]string{""}, cfg.Breakpoints.Keys()...)
	for _, bp := range breakpoints {
		list, _ := byBreakpoint.Get(bp)

		var parts []string
		if bp == "" {
			if s := variableDeclarations(vars.root); s != "" {
				parts = append(parts, s)
			}
		} else if bpVars, ok := vars.breakpoints.Get(bp); ok {
			if s := variableDeclarations(bpVars); s != "" {
				parts = append(parts, s)
			}
		}
		if s := mediaQuerySections(cfg, list, vars, bp); strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
		if len(parts) == 0 {
			continue
		}

		body := strings.Join(parts, "\n\n")
		if bp != "" {
			width, _ := cfg.BreakpointWidth(bp)
			body = "@media (min-width: " + width + ") {\n" + cssfmt.Indent(body) + "\n}"
		}
		sections = append(sections, body)
	}

	out := strings.Join(sections, "\n\n")
	if strings.TrimSpace(out) == "" {
		return ""
	}
	return out + "\n"
}

// mediaQuerySections renders the rules of one breakpoint: rules without a
// media query, then each configured media query in order. Media query
// variables are only declared outside any breakpoint.
func mediaQuerySections(cfg *config.Config, list []classname.ClassName, vars variableBuckets, bp string) string {
	var plain []string
	byQuery := config.NewOrderedMap[[]string]()
	for _, c := range list {
		if c.MediaQuery() == "" {
			plain = append(plain, c.CSS())
			continue
		}
		rules, _ := byQuery.Get(c.MediaQuery())
		byQuery.Set(c.MediaQuery(), append(rules, c.CSS()))
	}

	var out []string
	if s := strings.Join(plain, "\n\n"); strings.TrimSpace(s) != "" {
		out = append(out, s)
	}

	for name, query := range cfg.MediaQueries.All() {
		var inner []string
		if bp == "" {
			if mqVars, ok := vars.mediaQueries.Get(name); ok {
				if s := variableDeclarations(mqVars); s != "" {
					inner = append(inner, s)
				}
			}
		}
		rules, _ := byQuery.Get(name)
		inner = append(inner, rules...)
		if len(inner) == 0 {
			continue
		}
		out = append(out, "@media "+query+" {\n"+cssfmt.Indent(strings.Join(inner, "\n\n"))+"\n}")
	}

	return strings.Join(out, "\n\n")
}

func keyframesAndGroups(cfg *config.Config, keyframes []string, groups *config.OrderedMap[[]string]) string {
	var out []string
	for _, name := range keyframes {
		if k, ok := cfg.Keyframes.Get(name); ok {
			out = append(out, k.CSS(name))
		}
	}
	for name, selectors := range groups.All() {
		if g, ok := cfg.Groups.Get(name); ok {
			out = append(out, g.CSS(selectors))
		}
	}
	return strings.Join(out, "\n\n")
}

// referencedVariables returns every custom property the class names use,
// followed by the ones those variables reference in turn. Each variable is
// expanded at most once so reference cycles terminate.
func referencedVariables(cfg *config.Config, classNames []classname.ClassName) map[string]bool {
	seen := make(map[string]bool)
	var queue []string
	for _, c := range classNames {
		if !c.Valid() {
			continue
		}
		for _, name := range c.Variables() {
			if !seen[name] {
				seen[name] = true
				queue = append(queue, name)
			}
		}
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		v, ok := cfg.CSSVariables.Get(name)
		if !ok {
			continue
		}
		for _, next := range v.VariableNames() {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// bucketVariables groups the declarations of the referenced variables in
// configuration order.
func bucketVariables(cfg *config.Config, referenced map[string]bool) variableBuckets {
	b := variableBuckets{
		root:         config.NewOrderedMap[[]string](),
		breakpoints:  config.NewOrderedMap[*declarations](),
		mediaQueries: config.NewOrderedMap[*declarations](),
	}
	for name, v := range cfg.CSSVariables.All() {
		if !referenced[name] {
			continue
		}
		addDeclarations(b.root, name, v.Selectors)
		for bp, selectors := range v.Breakpoints.All() {
			addDeclarations(nested(b.breakpoints, bp), name, selectors)
		}
		for mq, selectors := range v.MediaQueries.All() {
			addDeclarations(nested(b.mediaQueries, mq), name, selectors)
		}
	}
	return b
}

func nested(m *config.OrderedMap[*declarations], key string) *declarations {
	d, ok := m.Get(key)
	if !ok {
		d = config.NewOrderedMap[[]string]()
		m.Set(key, d)
	}
	return d
}

func addDeclarations(d *declarations, name string, selectors *config.Selectors) {
	for selector, value := range selectors.All() {
		lines, _ := d.Get(selector)
		d.Set(selector, append(lines, name+": "+value.Raw+";"))
	}
}

// variableDeclarations renders one rule per selector.
func variableDeclarations(d *declarations) string {
	var blocks []string
	for selector, lines := range d.All() {
		blocks = append(blocks, selector+" {\n"+cssfmt.Indent(strings.Join(lines, "\n"))+"\n}")
	}
	return strings.Join(blocks, "\n\n")
}

func appendMissing(list []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}
