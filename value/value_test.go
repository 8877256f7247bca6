package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqual_Scalars(t *testing.T) {
	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"nil nil", Nil(), Nil(), true},
		{"bool equal", Bool(true), Bool(true), true},
		{"bool differ", Bool(true), Bool(false), false},
		{"int equal", Int(42), Int(42), true},
		{"int differ", Int(42), Int(43), false},
		{"float equal", Float(1.5), Float(1.5), true},
		{"nan equals nan", Float(math.NaN()), Float(math.NaN()), true},
		{"int never equals float", Int(5), Float(5), false},
		{"string equal", Str("hi"), Str("hi"), true},
		{"string never equals bytes", Str("hi"), Bytes([]byte("hi")), false},
		{"bytes equal", Bytes([]byte{1, 2}), Bytes([]byte{1, 2}), true},
		{"bytes differ", Bytes([]byte{1, 2}), Bytes([]byte{1, 3}), false},
		{"nil vs bool", Nil(), Bool(false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Equal(tt.b))
			require.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestEqual_NegativeZeroFloat(t *testing.T) {
	// -0.0 and +0.0 have distinct bit patterns; the codec preserves them.
	require.False(t, Float(math.Copysign(0, -1)).Equal(Float(0)))
}

func TestTable_SetGet(t *testing.T) {
	tbl := NewTable().
		Set("a", Int(1)).
		Set("b", Str("two"))

	require.True(t, tbl.Get("a").Equal(Int(1)))
	require.True(t, tbl.Get("b").Equal(Str("two")))
	require.True(t, tbl.Get("missing").IsNil())

	// Replace keeps a single entry.
	tbl.Set("a", Int(9))
	require.Len(t, tbl.Hash, 2)
	require.True(t, tbl.Get("a").Equal(Int(9)))

	// Setting nil removes.
	tbl.Set("a", Nil())
	require.Len(t, tbl.Hash, 1)
	require.True(t, tbl.Get("a").IsNil())
}

func TestTable_SetIndex(t *testing.T) {
	tbl := NewTable()
	tbl.SetIndex(1, Str("a"))
	tbl.SetIndex(2, Str("b"))
	require.Len(t, tbl.Array, 2)
	require.Empty(t, tbl.Hash)

	// A gap lands in the hash part.
	tbl.SetIndex(4, Str("d"))
	require.Len(t, tbl.Array, 2)
	require.Len(t, tbl.Hash, 1)

	// In-range replaces in place.
	tbl.SetIndex(1, Str("A"))
	require.True(t, tbl.Array[0].Equal(Str("A")))

	require.True(t, tbl.GetKey(Int(2)).Equal(Str("b")))
	require.True(t, tbl.GetKey(Int(4)).Equal(Str("d")))
	require.True(t, tbl.GetKey(Int(3)).IsNil())
}

func TestTable_PartsPromotion(t *testing.T) {
	// Keys {1,2,3} where 2 and 3 sit in the hash part fold into the array
	// view; the table itself is untouched.
	tbl := NewTable().Append(Int(10))
	tbl.SetKey(Int(3), Int(30))
	tbl.SetKey(Int(2), Int(20))
	tbl.Set("x", Bool(true))

	arr, hash := tbl.Parts()
	require.Len(t, arr, 3)
	require.True(t, arr[0].Equal(Int(10)))
	require.True(t, arr[1].Equal(Int(20)))
	require.True(t, arr[2].Equal(Int(30)))
	require.Len(t, hash, 1)
	require.True(t, hash[0].Key.Equal(Str("x")))

	require.Len(t, tbl.Array, 1)
	require.Len(t, tbl.Hash, 3)
}

func TestTable_PartsSparse(t *testing.T) {
	// {1, 3, 4}: the array part stops at the gap.
	tbl := NewTable()
	tbl.SetIndex(1, Str("a"))
	tbl.SetIndex(3, Str("c"))
	tbl.SetIndex(4, Str("d"))

	arr, hash := tbl.Parts()
	require.Len(t, arr, 1)
	require.Len(t, hash, 2)
}

func TestTable_EqualOrderInsensitive(t *testing.T) {
	a := NewTable().Set("x", Int(1)).Set("y", Int(2))
	b := NewTable().Set("y", Int(2)).Set("x", Int(1))
	require.True(t, a.Equal(b))

	c := NewTable().Set("x", Int(1)).Set("y", Int(3))
	require.False(t, a.Equal(c))

	d := NewTable().Set("x", Int(1))
	require.False(t, a.Equal(d))
}

func TestTable_EqualMixedKeyKinds(t *testing.T) {
	// Int(1) and Float(1) are distinct keys.
	a := NewTable().SetKey(Float(1), Str("f"))
	b := NewTable().SetKey(Int(1), Str("f"))
	require.False(t, a.Equal(b))
}

func TestSetKey_RejectsNonScalar(t *testing.T) {
	require.Panics(t, func() {
		NewTable().SetKey(Tbl(NewTable()), Int(1))
	})
	require.Panics(t, func() {
		NewTable().SetKey(Nil(), Int(1))
	})
}

func TestKindAccessors(t *testing.T) {
	require.Equal(t, KindInt, Int(1).Kind())
	require.Equal(t, int64(7), Int(7).IntVal())
	require.Equal(t, 2.5, Float(2.5).FloatVal())
	require.Equal(t, "s", Str("s").StrVal())
	require.Equal(t, []byte{9}, Bytes([]byte{9}).BytesVal())
	require.True(t, Bool(true).BoolVal())
	require.Panics(t, func() { Int(1).StrVal() })
}
