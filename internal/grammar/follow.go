package grammar

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// followSet is a FOLLOW set under construction. It tracks the terminals known
// to be in the set separately from the non-terminals whose FOLLOW sets must
// still be merged into it.
type followSet struct {
	concrete *linkedhashset.Set
	pending  *linkedhashset.Set
}

func newFollowSet() followSet {
	return followSet{
		concrete: linkedhashset.New(),
		pending:  linkedhashset.New(),
	}
}

// FOLLOW computes the FOLLOW set of every non-terminal in the grammar using
// the grammar's FIRST table.
//
// FOLLOW(Start) is seeded with the end marker. Then, for every occurrence of
// a non-terminal B in an alternative of A, the FIRST set of the symbol right
// after B is added to FOLLOW(B). If that symbol can derive ε, or B is the last
// symbol, FOLLOW(A) is recorded as a dependency of FOLLOW(B) unless B is A.
// Symbols further along the alternative are not examined. ε is never added to
// a FOLLOW set.
//
// Non-terminals whose FOLLOW sets depend on each other can never be resolved,
// so a NonConvergenceError naming the dependency cycle is returned for them.
// Otherwise each dependency is replaced by the terminals of its FOLLOW set once
// that set has no dependencies of its own. If more than passFactor times the
// number of non-terminals passes are needed, a NonConvergenceError is
// returned.
func (g Grammar) FOLLOW(first FirstTable, passFactor int) (FollowTable, error) {
	if err := g.Validate(); err != nil {
		return FollowTable{}, err
	}

	names := g.NonTerminals()

	follows := map[string]followSet{}
	for _, name := range names {
		follows[name] = newFollowSet()
	}
	if _, ok := follows[g.Start]; ok {
		follows[g.Start].concrete.Add(EndMarker)
	}

	for _, r := range g.rules {
		A := r.NonTerminal
		for _, alt := range r.Alternatives {
			for i := range alt {
				if !alt[i].IsNonTerminal() {
					continue
				}
				B := alt[i].Value

				deferToA := true
				if i+1 < len(alt) {
					deferToA = false
					for _, sym := range first.FirstOf(alt[i+1]) {
						if sym.IsEpsilon() {
							deferToA = true
							continue
						}
						follows[B].concrete.Add(sym)
					}
				}

				if deferToA && B != A {
					follows[B].pending.Add(A)
				}
			}
		}
	}

	if cycle := findCycle(names, followEdges(names, follows)); cycle != nil {
		return FollowTable{}, NonConvergenceError{Stage: "FOLLOW", Cycle: cycle}
	}

	budget := passBudget(len(names), passFactor)
	passes := 0
	for hasPendingFollow(follows) {
		passes++
		if passes > budget {
			cycle := findCycle(names, followEdges(names, follows))
			return FollowTable{}, NonConvergenceError{Stage: "FOLLOW", Cycle: cycle, Passes: passes - 1}
		}

		// only dependencies that were already resolved at the start of the
		// pass are merged
		var resolved []string
		for _, name := range names {
			if follows[name].pending.Empty() {
				resolved = append(resolved, name)
			}
		}

		for _, B := range names {
			fs := follows[B]
			for _, dep := range resolved {
				if !fs.pending.Contains(dep) {
					continue
				}
				fs.concrete.Add(follows[dep].concrete.Values()...)
				fs.pending.Remove(dep)
			}
		}
	}

	sets := map[string]*linkedhashset.Set{}
	for _, name := range names {
		sets[name] = follows[name].concrete
	}

	return FollowTable{newSetTable(names, sets)}, nil
}

func hasPendingFollow(follows map[string]followSet) bool {
	for _, fs := range follows {
		if !fs.pending.Empty() {
			return true
		}
	}
	return false
}

func followEdges(names []string, follows map[string]followSet) map[string][]string {
	edges := map[string][]string{}
	for _, name := range names {
		for _, dep := range follows[name].pending.Values() {
			edges[name] = append(edges[name], dep.(string))
		}
	}
	return edges
}
