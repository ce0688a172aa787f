package grammar

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

func encSymbol(s Symbol) []byte {
	data := rezi.EncInt(int(s.Kind))
	data = append(data, rezi.EncString(s.Value)...)
	return data
}

func decSymbol(data []byte) (Symbol, int, error) {
	var s Symbol
	var totalRead int

	kind, n, err := rezi.DecInt(data)
	if err != nil {
		return s, 0, fmt.Errorf("kind: %w", err)
	}
	totalRead += n
	if kind < int(KindTerminal) || kind > int(KindEndMarker) {
		return s, 0, fmt.Errorf("kind: unknown symbol kind %d", kind)
	}
	s.Kind = Kind(kind)

	s.Value, n, err = rezi.DecString(data[totalRead:])
	if err != nil {
		return s, 0, fmt.Errorf("value: %w", err)
	}
	totalRead += n

	return s, totalRead, nil
}

// decCount decodes an element count. Counts are never negative in data that
// was encoded by this package.
func decCount(data []byte) (int, int, error) {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return 0, 0, err
	}
	if count < 0 {
		return 0, 0, fmt.Errorf("negative count %d", count)
	}
	return count, n, nil
}

func encSymbols(syms []Symbol) []byte {
	data := rezi.EncInt(len(syms))
	for i := range syms {
		data = append(data, encSymbol(syms[i])...)
	}
	return data
}

func decSymbols(data []byte) ([]Symbol, int, error) {
	var totalRead int

	count, n, err := decCount(data)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	totalRead += n

	if count == 0 {
		return nil, totalRead, nil
	}

	syms := make([]Symbol, count)
	for i := 0; i < count; i++ {
		syms[i], n, err = decSymbol(data[totalRead:])
		if err != nil {
			return nil, 0, fmt.Errorf("symbol %d: %w", i, err)
		}
		totalRead += n
	}

	return syms, totalRead, nil
}

// MarshalBinary converts g into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (g Grammar) MarshalBinary() ([]byte, error) {
	data := rezi.EncString(g.Start)
	data = append(data, rezi.EncInt(len(g.rules))...)
	for _, r := range g.rules {
		data = append(data, rezi.EncString(r.NonTerminal)...)
		data = append(data, rezi.EncInt(len(r.Alternatives))...)
		for _, alt := range r.Alternatives {
			data = append(data, encSymbols(alt)...)
		}
	}
	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into g.
// All of g's fields will be replaced by the fields decoded from data.
func (g *Grammar) UnmarshalBinary(data []byte) error {
	var decoded Grammar

	start, n, err := rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	data = data[n:]

	ruleCount, n, err := decCount(data)
	if err != nil {
		return fmt.Errorf("rule count: %w", err)
	}
	data = data[n:]

	for i := 0; i < ruleCount; i++ {
		nt, n, err := rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("rule %d: non-terminal: %w", i, err)
		}
		data = data[n:]

		altCount, n, err := decCount(data)
		if err != nil {
			return fmt.Errorf("rule %s: alternative count: %w", nt, err)
		}
		data = data[n:]

		alts := make([]Alternative, altCount)
		for j := 0; j < altCount; j++ {
			syms, n, err := decSymbols(data)
			if err != nil {
				return fmt.Errorf("rule %s: alternative %d: %w", nt, j, err)
			}
			data = data[n:]
			alts[j] = syms
		}
		decoded.AddRule(nt, alts...)
	}
	decoded.Start = start

	*g = decoded
	return nil
}

// MarshalBinary converts st into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (st setTable) MarshalBinary() ([]byte, error) {
	data := rezi.EncInt(len(st.names))
	for _, name := range st.names {
		data = append(data, rezi.EncString(name)...)
		data = append(data, encSymbols(st.sets[name])...)
	}
	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into st.
func (st *setTable) UnmarshalBinary(data []byte) error {
	count, n, err := decCount(data)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	data = data[n:]

	var decoded setTable
	for i := 0; i < count; i++ {
		name, n, err := rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("entry %d: name: %w", i, err)
		}
		data = data[n:]

		syms, n, err := decSymbols(data)
		if err != nil {
			return fmt.Errorf("entry %s: %w", name, err)
		}
		data = data[n:]

		if decoded.sets == nil {
			decoded.sets = map[string][]Symbol{}
		}
		decoded.names = append(decoded.names, name)
		decoded.sets[name] = syms
	}

	*st = decoded
	return nil
}

// MarshalBinary converts a into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (a Analysis) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncBinary(a.Initial)...)
	data = append(data, rezi.EncBinary(a.NoLeftRecursion)...)
	data = append(data, rezi.EncBinary(a.Factored)...)
	data = append(data, rezi.EncBinary(a.First)...)
	data = append(data, rezi.EncBinary(a.Follow)...)

	data = append(data, rezi.EncInt(len(a.Warnings))...)
	for _, w := range a.Warnings {
		data = append(data, rezi.EncString(w)...)
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into a.
// All of a's fields will be replaced by the fields decoded from data.
func (a *Analysis) UnmarshalBinary(data []byte) error {
	var decoded Analysis

	n, err := rezi.DecBinary(data, &decoded.Initial)
	if err != nil {
		return fmt.Errorf("initial grammar: %w", err)
	}
	data = data[n:]

	n, err = rezi.DecBinary(data, &decoded.NoLeftRecursion)
	if err != nil {
		return fmt.Errorf("left-recursion-free grammar: %w", err)
	}
	data = data[n:]

	n, err = rezi.DecBinary(data, &decoded.Factored)
	if err != nil {
		return fmt.Errorf("factored grammar: %w", err)
	}
	data = data[n:]

	n, err = rezi.DecBinary(data, &decoded.First)
	if err != nil {
		return fmt.Errorf("FIRST table: %w", err)
	}
	data = data[n:]

	n, err = rezi.DecBinary(data, &decoded.Follow)
	if err != nil {
		return fmt.Errorf("FOLLOW table: %w", err)
	}
	data = data[n:]

	warnCount, n, err := decCount(data)
	if err != nil {
		return fmt.Errorf("warning count: %w", err)
	}
	data = data[n:]

	for i := 0; i < warnCount; i++ {
		w, n, err := rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("warning %d: %w", i, err)
		}
		data = data[n:]
		decoded.Warnings = append(decoded.Warnings, w)
	}

	*a = decoded
	return nil
}
