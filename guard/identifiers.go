package guard

import "sort"

// Identifiers returns the sorted, deduplicated set of variable names a
// guard references — spec.md §4.G's read_vars contribution from the
// guard side. Walks the typed AST directly rather than re-parsing
// Serialize(), since And/Atom/GuardTrue are already in hand.
func Identifiers(g Guard) []string {
	set := map[string]struct{}{}
	collectIdentifiers(g, set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectIdentifiers(g Guard, set map[string]struct{}) {
	switch t := g.(type) {
	case Atom:
		set[t.Var] = struct{}{}
	case And:
		for _, a := range t.Atoms {
			set[a.Var] = struct{}{}
		}
	case Or:
		for _, sub := range t.Guards {
			collectIdentifiers(sub, set)
		}
	case GuardTrue:
		// no identifiers
	}
}
