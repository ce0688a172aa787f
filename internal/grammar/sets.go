package grammar

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// setTable maps each non-terminal of a grammar to an ordered set of symbols.
// It is the shared representation of FIRST and FOLLOW tables.
type setTable struct {
	names []string
	sets  map[string][]Symbol
}

func newSetTable(names []string, sets map[string]*linkedhashset.Set) setTable {
	st := setTable{
		names: make([]string, len(names)),
		sets:  make(map[string][]Symbol, len(names)),
	}
	copy(st.names, names)
	for _, name := range names {
		var syms []Symbol
		if s, ok := sets[name]; ok {
			for _, v := range s.Values() {
				syms = append(syms, v.(Symbol))
			}
		}
		st.sets[name] = syms
	}
	return st
}

// NonTerminals returns the names of the non-terminals in the table, in the
// order of the grammar it was computed from.
func (st setTable) NonTerminals() []string {
	names := make([]string, len(st.names))
	copy(names, st.names)
	return names
}

// Get returns the set for the given non-terminal in the order members were
// found. It returns nil if the non-terminal is not in the table.
func (st setTable) Get(nonTerminal string) []Symbol {
	set := st.sets[nonTerminal]
	if set == nil {
		return nil
	}
	cp := make([]Symbol, len(set))
	copy(cp, set)
	return cp
}

// Contains returns whether the set for the given non-terminal has sym as a
// member.
func (st setTable) Contains(nonTerminal string, sym Symbol) bool {
	for _, member := range st.sets[nonTerminal] {
		if member == sym {
			return true
		}
	}
	return false
}

// Equal returns whether two tables have the same non-terminals in the same
// order with the same sets.
func (st setTable) Equal(o setTable) bool {
	if len(st.names) != len(o.names) {
		return false
	}
	for i := range st.names {
		if st.names[i] != o.names[i] {
			return false
		}
		s1, s2 := st.sets[st.names[i]], o.sets[o.names[i]]
		if len(s1) != len(s2) {
			return false
		}
		for j := range s1 {
			if s1[j] != s2[j] {
				return false
			}
		}
	}
	return true
}

// FirstTable holds the FIRST set of every non-terminal in a grammar. Members
// are terminals and possibly Epsilon.
type FirstTable struct {
	setTable
}

// FollowTable holds the FOLLOW set of every non-terminal in a grammar.
// Members are terminals and possibly EndMarker.
type FollowTable struct {
	setTable
}

// findCycle returns a cycle in the directed graph given by edges, searching
// from nodes in the given order. The returned path begins and ends with the
// same node. Nil is returned if the graph has no cycle.
func findCycle(order []string, edges map[string][]string) []string {
	const (
		unvisited = iota
		visiting
		done
	)
	state := map[string]int{}
	var path []string

	var visit func(n string) []string
	visit = func(n string) []string {
		state[n] = visiting
		path = append(path, n)
		for _, next := range edges[n] {
			switch state[next] {
			case visiting:
				// cycle runs from the earlier occurrence of next to here
				for i := range path {
					if path[i] == next {
						cycle := append([]string{}, path[i:]...)
						return append(cycle, next)
					}
				}
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		path = path[:len(path)-1]
		state[n] = done
		return nil
	}

	for _, n := range order {
		if state[n] == unvisited {
			if cycle := visit(n); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// passBudget gives the maximum number of fixed-point passes allowed for a
// grammar with n non-terminals.
func passBudget(n, factor int) int {
	if factor < 1 {
		factor = 1
	}
	return factor * (n + 1)
}
