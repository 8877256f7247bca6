package value

// Entry is one hash-part pair. The key is any scalar value.
type Entry struct {
	Key *Value
	Val *Value
}

// Table holds an ordered array part and an ordered list of hash-part
// entries. The wire format's array part covers indices 1..n; Array[0]
// corresponds to wire index 1.
//
// Hash order is preserved as inserted. The encoder emits entries in this
// order; decoders rebuild the same list, so two encodes of the same tree
// produce identical bytes.
type Table struct {
	Array []*Value
	Hash  []Entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Append adds v to the end of the array part.
func (t *Table) Append(v *Value) *Table {
	t.Array = append(t.Array, v)
	return t
}

// Set adds or replaces a hash-part entry keyed by a string. A nil value
// removes the entry.
func (t *Table) Set(key string, v *Value) *Table {
	return t.SetKey(Str(key), v)
}

// SetIndex adds or replaces an entry keyed by an integer index. Indices
// extending the array part contiguously land in the array part; all others
// land in the hash part.
func (t *Table) SetIndex(idx int64, v *Value) *Table {
	if idx >= 1 && idx <= int64(len(t.Array)) {
		t.Array[idx-1] = v
		return t
	}
	if idx == int64(len(t.Array))+1 {
		return t.Append(v)
	}
	return t.SetKey(Int(idx), v)
}

// SetKey adds or replaces a hash-part entry under an arbitrary scalar key.
// Setting a nil value removes the entry. Non-scalar keys panic; the codec
// never produces them and callers must not either.
func (t *Table) SetKey(key, v *Value) *Table {
	if !key.IsScalar() {
		panic("value: table key must be a scalar")
	}
	for i := range t.Hash {
		if t.Hash[i].Key.Equal(key) {
			if v.IsNil() {
				t.Hash = append(t.Hash[:i], t.Hash[i+1:]...)
			} else {
				t.Hash[i].Val = v
			}
			return t
		}
	}
	if !v.IsNil() {
		t.Hash = append(t.Hash, Entry{Key: key, Val: v})
	}
	return t
}

// Get returns the hash-part value under a string key, or nil Value if absent.
func (t *Table) Get(key string) *Value {
	return t.GetKey(Str(key))
}

// GetKey returns the value under an arbitrary scalar key. Integer keys
// inside the array part resolve there first.
func (t *Table) GetKey(key *Value) *Value {
	if key.Kind() == KindInt {
		if idx := key.IntVal(); idx >= 1 && idx <= int64(len(t.Array)) {
			return t.Array[idx-1]
		}
	}
	for i := range t.Hash {
		if t.Hash[i].Key.Equal(key) {
			return t.Hash[i].Val
		}
	}
	return Nil()
}

// Len returns the array-part length.
func (t *Table) Len() int { return len(t.Array) }

// Parts returns the effective array part and hash part for encoding.
// Integer keys sitting in the hash part that extend the array part
// contiguously (len+1, len+2, ...) are folded into the returned array;
// everything else stays in the hash slice. The table itself is not
// mutated.
func (t *Table) Parts() ([]*Value, []Entry) {
	next := int64(len(t.Array)) + 1
	promoted := 0
	for {
		found := false
		for i := range t.Hash {
			if k := t.Hash[i].Key; k.Kind() == KindInt && k.IntVal() == next {
				found = true
				break
			}
		}
		if !found {
			break
		}
		next++
		promoted++
	}
	if promoted == 0 {
		return t.Array, t.Hash
	}

	arr := make([]*Value, len(t.Array), len(t.Array)+promoted)
	copy(arr, t.Array)
	hash := make([]Entry, 0, len(t.Hash)-promoted)
	tail := make([]*Value, promoted)
	base := int64(len(t.Array)) + 1
	for i := range t.Hash {
		k := t.Hash[i].Key
		if k.Kind() == KindInt {
			if idx := k.IntVal(); idx >= base && idx < base+int64(promoted) {
				tail[idx-base] = t.Hash[i].Val
				continue
			}
		}
		hash = append(hash, t.Hash[i])
	}

	return append(arr, tail...), hash
}

// Equal reports structural equality. Array parts compare positionally;
// hash parts compare by key lookup so entry order does not matter.
func (t *Table) Equal(other *Table) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if len(t.Array) != len(other.Array) || len(t.Hash) != len(other.Hash) {
		return false
	}
	for i := range t.Array {
		if !t.Array[i].Equal(other.Array[i]) {
			return false
		}
	}
	for i := range t.Hash {
		found := false
		for j := range other.Hash {
			if t.Hash[i].Key.Equal(other.Hash[j].Key) {
				if !t.Hash[i].Val.Equal(other.Hash[j].Val) {
					return false
				}
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
