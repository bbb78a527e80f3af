package scanner

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Import names a module export whose local binding is tracked. Name is the
// exported name for named imports, "*" for namespace imports and "" for the
// default export.
type Import struct {
	Package string
	Name    string
}

// DefaultImports are the client entry points class names are written against.
var DefaultImports = []Import{
	{Package: "skribble-css/client", Name: "c"},
	{Package: "@skribble-css/client", Name: "c"},
}

// ParseImport parses "package:name". "package:*" tracks namespace imports
// and "package:" (or a bare package) tracks the default import.
func ParseImport(s string) (Import, error) {
	s = strings.TrimSpace(s)
	i := strings.LastIndex(s, ":")
	if i < 0 {
		if s == "" {
			return Import{}, fmt.Errorf("empty import")
		}
		return Import{Package: s}, nil
	}
	pkg := strings.TrimSpace(s[:i])
	if pkg == "" {
		return Import{}, fmt.Errorf("import %q has no package", s)
	}
	return Import{Package: pkg, Name: strings.TrimSpace(s[i+1:])}, nil
}

func (i Import) String() string {
	return i.Package + ":" + i.Name
}

// collectImports registers the local names bound by a top level import
// statement that matches one of the configured imports. Type-only imports
// never bind runtime values and are skipped.
func (c *Collector) collectImports(stmt *sitter.Node, src []byte) {
	if hasToken(stmt, "type") || hasToken(stmt, "typeof") {
		return
	}
	source := stmt.ChildByFieldName("source")
	if source == nil {
		return
	}
	pkg := stringValue(source, src)

	var wanted []string
	for _, imp := range c.imports {
		if imp.Package == pkg {
			wanted = append(wanted, imp.Name)
		}
	}
	if len(wanted) == 0 {
		return
	}
	matches := func(name string) bool {
		for _, w := range wanted {
			if w == name {
				return true
			}
		}
		return false
	}

	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		clause := stmt.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			part := clause.NamedChild(j)
			switch part.Type() {
			case "identifier":
				if matches("") {
					c.tracked[part.Content(src)] = true
				}
			case "namespace_import":
				if !matches("*") {
					continue
				}
				for k := 0; k < int(part.NamedChildCount()); k++ {
					if id := part.NamedChild(k); id.Type() == "identifier" {
						c.tracked[id.Content(src)] = true
					}
				}
			case "named_imports":
				c.collectSpecifiers(part, src, matches)
			}
		}
	}
}

func (c *Collector) collectSpecifiers(named *sitter.Node, src []byte, matches func(string) bool) {
	for i := 0; i < int(named.NamedChildCount()); i++ {
		spec := named.NamedChild(i)
		if spec.Type() != "import_specifier" || hasToken(spec, "type") || hasToken(spec, "typeof") {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Content(src)
		if nameNode.Type() == "string" {
			name = stringValue(nameNode, src)
		}
		if !matches(name) {
			continue
		}
		local := name
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			local = alias.Content(src)
		}
		c.tracked[local] = true
	}
}

// hasToken reports whether n has an anonymous child token of the given kind.
func hasToken(n *sitter.Node, kind string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.IsNamed() && child.Type() == kind {
			return true
		}
	}
	return false
}
