package encoding

import (
	"math"
	"strings"
	"testing"

	"github.com/arloliu/vpack/format"
	"github.com/arloliu/vpack/value"
	"github.com/stretchr/testify/require"
)

func encodeOne(t *testing.T, v *value.Value, pooled bool) []byte {
	t.Helper()
	enc := NewEncoder(pooled, 0)
	defer enc.Reset()
	require.NoError(t, enc.Encode(v))

	out := make([]byte, enc.Size())
	copy(out, enc.Bytes())

	return out
}

func roundTrip(t *testing.T, v *value.Value, pooled bool) *value.Value {
	t.Helper()
	data := encodeOne(t, v, pooled)
	dec := NewDecoder(data, 0)
	got, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, 0, dec.Remaining())

	return got
}

func TestRoundTrip_Scalars(t *testing.T) {
	tests := []struct {
		name string
		v    *value.Value
	}{
		{"true", value.Bool(true)},
		{"false", value.Bool(false)},
		{"int zero", value.Int(0)},
		{"int negative", value.Int(-77777)},
		{"float", value.Float(3.14159)},
		{"float nan", value.Float(math.NaN())},
		{"float neg zero", value.Float(math.Copysign(0, -1))},
		{"float inf", value.Float(math.Inf(1))},
		{"empty string", value.Str("")},
		{"string", value.Str("hello, world")},
		{"binary string", value.Str("\x00\xff\xfe")},
		{"empty buffer", value.Bytes(nil)},
		{"buffer", value.Bytes([]byte{0, 1, 2, 255})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, pooled := range []bool{false, true} {
				got := roundTrip(t, tt.v, pooled)
				require.True(t, got.Equal(tt.v), "pooled=%t: got %s want %s", pooled, got, tt.v)
			}
		})
	}
}

func TestRoundTrip_IntFloatDistinct(t *testing.T) {
	gotInt := roundTrip(t, value.Int(5), false)
	gotFloat := roundTrip(t, value.Float(5), false)
	require.Equal(t, value.KindInt, gotInt.Kind())
	require.Equal(t, value.KindFloat, gotFloat.Kind())
	require.False(t, gotInt.Equal(gotFloat))
}

func TestRoundTrip_StringBytesDistinct(t *testing.T) {
	gotStr := roundTrip(t, value.Str("data"), false)
	gotBuf := roundTrip(t, value.Bytes([]byte("data")), false)
	require.Equal(t, value.KindString, gotStr.Kind())
	require.Equal(t, value.KindBytes, gotBuf.Kind())
}

func TestRoundTrip_Tables(t *testing.T) {
	nested := value.NewTable().Set("d", value.Bool(true))
	v := value.Tbl(value.NewTable().
		Append(value.Int(1)).
		Append(value.Str("two")).
		Set("a", value.Int(1)).
		Set("b", value.Str("hi")).
		Set("c", value.Tbl(nested)).
		SetKey(value.Int(10), value.Str("sparse")).
		SetKey(value.Bool(true), value.Int(99)).
		SetKey(value.Float(2.5), value.Str("floatkey")))

	for _, pooled := range []bool{false, true} {
		got := roundTrip(t, v, pooled)
		require.True(t, got.Equal(v), "pooled=%t", pooled)
	}
}

func TestRoundTrip_NilHashValue(t *testing.T) {
	// A nil hash value can only appear in a hand-built table; it still
	// travels.
	tbl := &value.Table{Hash: []value.Entry{{Key: value.Str("k"), Val: value.Nil()}}}
	got := roundTrip(t, value.Tbl(tbl), false)
	require.True(t, got.TableVal().Get("k").IsNil())
}

func TestEncode_TopLevelNil(t *testing.T) {
	enc := NewEncoder(false, 0)
	defer enc.Reset()
	require.ErrorIs(t, enc.Encode(value.Nil()), format.ErrUnsupportedType)
	require.ErrorIs(t, enc.Encode(nil), format.ErrUnsupportedType)
}

func TestEncode_IntOutOfRange(t *testing.T) {
	enc := NewEncoder(false, 0)
	defer enc.Reset()
	require.ErrorIs(t, enc.Encode(value.Int(format.MaxInt+1)), format.ErrUnsupportedType)

	enc2 := NewEncoder(false, 0)
	defer enc2.Reset()
	require.ErrorIs(t, enc2.Encode(value.Int(format.MinInt-1)), format.ErrUnsupportedType)
}

func TestEncode_DepthGuard(t *testing.T) {
	v := value.Tbl(nestTables(100))
	enc := NewEncoder(false, 0)
	defer enc.Reset()
	require.ErrorIs(t, enc.Encode(v), format.ErrDepthExceeded)

	// A raised limit admits the same tree.
	enc2 := NewEncoder(false, 200)
	defer enc2.Reset()
	require.NoError(t, enc2.Encode(v))
}

func nestTables(depth int) *value.Table {
	inner := value.NewTable()
	for i := 1; i < depth; i++ {
		inner = value.NewTable().Append(value.Tbl(inner))
	}

	return inner
}

func TestDecode_DepthGuard(t *testing.T) {
	// [TagTable n=1 m=0] repeated, closed with a boolean.
	var data []byte
	for i := 0; i < 100; i++ {
		data = append(data, format.TagTable, format.TagU8, 1, format.TagU8, 0)
	}
	data = append(data, format.TagTrue)

	dec := NewDecoder(data, 0)
	_, err := dec.Decode()
	require.ErrorIs(t, err, format.ErrDepthExceeded)

	dec2 := NewDecoder(data, 200)
	_, err = dec2.Decode()
	require.NoError(t, err)
}

func TestStringPool_RefsShrinkOutput(t *testing.T) {
	tbl := value.NewTable()
	for i := 0; i < 10; i++ {
		tbl.Append(value.Str("metric.cpu.usage"))
	}
	v := value.Tbl(tbl)

	plain := encodeOne(t, v, false)
	pooled := encodeOne(t, v, true)
	require.Less(t, len(pooled), len(plain))

	got := roundTrip(t, v, true)
	require.True(t, got.Equal(v))
}

func TestStringPool_RepeatedKeysCollapse(t *testing.T) {
	records := value.NewTable()
	for i := 0; i < 16; i++ {
		records.Append(value.Tbl(value.NewTable().
			Set("identifier", value.Int(int64(i))).
			Set("description", value.Str("row"))))
	}
	v := value.Tbl(records)

	pooled := encodeOne(t, v, true)

	// Each key is spelled out exactly once; later occurrences are refs.
	require.Equal(t, 1, strings.Count(string(pooled), "identifier"))
	require.Equal(t, 1, strings.Count(string(pooled), "description"))

	got := roundTrip(t, v, true)
	require.True(t, got.Equal(v))
}

func TestStringPool_SingleInlineStaysInline(t *testing.T) {
	// With no repetition the pooled stream matches the plain one.
	v := value.Tbl(value.NewTable().Set("once", value.Str("only")))
	require.Equal(t, encodeOne(t, v, false), encodeOne(t, v, true))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", nil, format.ErrTruncated},
		{"unknown tag", []byte{0xFF}, format.ErrBadTag},
		{"float cut short", []byte{format.TagFloat64, 1, 2, 3}, format.ErrTruncated},
		{"int body missing", []byte{format.TagU32, 1, 2}, format.ErrTruncated},
		{"string length past end", []byte{format.TagStr, format.TagU8, 5, 'a'}, format.ErrTruncated},
		{"string length not uint", []byte{format.TagStr, format.TagN8, 1}, format.ErrBadTag},
		{"pool ref without pool", []byte{format.TagStrRef, format.TagU8, 0}, format.ErrBadPoolIndex},
		{
			"pool ref past high-water mark",
			[]byte{
				format.TagTable, format.TagU8, 2, format.TagU8, 0,
				format.TagStr, format.TagU8, 1, 'x',
				format.TagStrRef, format.TagU8, 1,
			},
			format.ErrBadPoolIndex,
		},
		{"table counts truncated", []byte{format.TagTable, format.TagU8, 3, format.TagU8, 0}, format.ErrTruncated},
		{"nil table key", []byte{format.TagTable, format.TagU8, 0, format.TagU8, 1, format.TagNil, format.TagTrue}, format.ErrBadTag},
		{
			"table as table key",
			[]byte{
				format.TagTable, format.TagU8, 0, format.TagU8, 1,
				format.TagTable, format.TagU8, 0, format.TagU8, 0,
				format.TagTrue,
			},
			format.ErrBadTag,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(tt.data, 0)
			_, err := dec.Decode()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_PoolResolvesInOrder(t *testing.T) {
	// Two inline strings then refs to each, inside one array.
	data := []byte{
		format.TagTable, format.TagU8, 4, format.TagU8, 0,
		format.TagStr, format.TagU8, 3, 'f', 'o', 'o',
		format.TagStr, format.TagU8, 3, 'b', 'a', 'r',
		format.TagStrRef, format.TagU8, 0,
		format.TagStrRef, format.TagU8, 1,
	}
	dec := NewDecoder(data, 0)
	v, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, 0, dec.Remaining())

	arr := v.TableVal().Array
	require.Equal(t, "foo", arr[0].StrVal())
	require.Equal(t, "bar", arr[1].StrVal())
	require.Equal(t, "foo", arr[2].StrVal())
	require.Equal(t, "bar", arr[3].StrVal())
}

func TestDecode_BufferIsCopied(t *testing.T) {
	data := []byte{format.TagBytes, format.TagU8, 2, 0xAA, 0xBB}
	dec := NewDecoder(data, 0)
	v, err := dec.Decode()
	require.NoError(t, err)

	data[3] = 0x00
	require.Equal(t, []byte{0xAA, 0xBB}, v.BytesVal())
}

func TestDecode_ExactConsumption(t *testing.T) {
	v := value.Tbl(value.NewTable().Append(value.Int(1)).Set("k", value.Str("v")))
	data := encodeOne(t, v, true)

	dec := NewDecoder(data, 0)
	_, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, len(data), dec.Pos())
	require.Equal(t, 0, dec.Remaining())
}
