package encoding

// stringPool is the encoder side of the string pool. Every inline string
// emission appends one entry, mirroring what the decoder reconstructs, so
// the index map and the decoder's list always agree. Only the earliest
// index per distinct string is kept; it is the cheapest to reference.
type stringPool struct {
	index map[string]uint64
	count uint64
}

func newStringPool() *stringPool {
	return &stringPool{index: make(map[string]uint64)}
}

// ref returns the pool index of an earlier inline emission of s.
func (p *stringPool) ref(s string) (uint64, bool) {
	idx, ok := p.index[s]
	return idx, ok
}

// addInline records one inline emission. Called for every inline string
// the encoder writes, whether or not it is ever referenced.
func (p *stringPool) addInline(s string) {
	if _, ok := p.index[s]; !ok {
		p.index[s] = p.count
	}
	p.count++
}
