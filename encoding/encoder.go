package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/vpack/endian"
	"github.com/arloliu/vpack/format"
	"github.com/arloliu/vpack/internal/pool"
	"github.com/arloliu/vpack/value"
)

// DefaultMaxDepth is the recursion limit applied when the caller does not
// configure one.
const DefaultMaxDepth = 64

// Encoder frames a value tree into a pooled byte buffer.
//
// An Encoder is good for one value; call Reset to return the buffer to the
// pool when the encoded bytes are no longer needed. Encoders are not safe
// for concurrent use.
type Encoder struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	strs     *stringPool
	maxDepth int
}

// NewEncoder creates an encoder. When pooled is true the string pool is
// active and repeated strings may be emitted as back-references; this
// corresponds to compression levels 2 and 3.
//
// Parameters:
//   - pooled: enable the string pool
//   - maxDepth: recursion limit; values <= 0 select DefaultMaxDepth
//
// Returns:
//   - *Encoder: encoder ready for one Encode call
func NewEncoder(pooled bool, maxDepth int) *Encoder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	e := &Encoder{
		buf:      pool.GetFrameBuffer(),
		engine:   endian.GetLittleEndianEngine(),
		maxDepth: maxDepth,
	}
	if pooled {
		e.strs = newStringPool()
	}

	return e
}

// Encode walks v and appends its framed bytes to the internal buffer.
// Nil is rejected at the top level; it is only legal as a hash-part value.
func (e *Encoder) Encode(v *value.Value) error {
	if v == nil || v.IsNil() {
		return fmt.Errorf("top-level nil value: %w", format.ErrUnsupportedType)
	}

	return e.encodeValue(v, 0)
}

// Bytes returns the framed bytes. The slice shares the encoder's buffer
// and is invalidated by Reset.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Size returns the number of framed bytes written so far.
func (e *Encoder) Size() int {
	return e.buf.Len()
}

// Reset returns the buffer to the pool. The encoder must not be used
// afterwards.
func (e *Encoder) Reset() {
	if e.buf != nil {
		pool.PutFrameBuffer(e.buf)
		e.buf = nil
	}
	e.strs = nil
}

func (e *Encoder) encodeValue(v *value.Value, depth int) error {
	if depth > e.maxDepth {
		return fmt.Errorf("depth %d: %w", depth, format.ErrDepthExceeded)
	}

	switch v.Kind() {
	case value.KindNil:
		e.buf.B = append(e.buf.B, format.TagNil)
	case value.KindBool:
		if v.BoolVal() {
			e.buf.B = append(e.buf.B, format.TagTrue)
		} else {
			e.buf.B = append(e.buf.B, format.TagFalse)
		}
	case value.KindInt:
		return e.encodeInt(v.IntVal())
	case value.KindFloat:
		e.buf.B = append(e.buf.B, format.TagFloat64)
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(v.FloatVal()))
	case value.KindString:
		return e.encodeString(v.StrVal())
	case value.KindBytes:
		return e.encodeBytes(v.BytesVal())
	case value.KindTable:
		return e.encodeTable(v.TableVal(), depth)
	default:
		return fmt.Errorf("kind %s: %w", v.Kind(), format.ErrUnsupportedType)
	}

	return nil
}

func (e *Encoder) encodeInt(i int64) error {
	if i > format.MaxInt || i < format.MinInt {
		return fmt.Errorf("integer %d outside 52-bit wire range: %w", i, format.ErrUnsupportedType)
	}
	e.buf.B = appendInt(e.buf.B, i)

	return nil
}

func (e *Encoder) encodeString(s string) error {
	if uint64(len(s)) > format.MaxElemLen {
		return fmt.Errorf("string length %d: %w", len(s), format.ErrSizeLimit)
	}

	if e.strs != nil {
		if idx, ok := e.strs.ref(s); ok {
			refCost := 1 + uintSize(idx)
			inlineCost := 1 + uintSize(uint64(len(s))) + len(s)
			if refCost < inlineCost {
				e.buf.B = append(e.buf.B, format.TagStrRef)
				e.buf.B = appendUint(e.buf.B, idx)

				return nil
			}
		}
		e.strs.addInline(s)
	}

	e.buf.Grow(2 + len(s))
	e.buf.B = append(e.buf.B, format.TagStr)
	e.buf.B = appendUint(e.buf.B, uint64(len(s)))
	e.buf.B = append(e.buf.B, s...)

	return nil
}

func (e *Encoder) encodeBytes(b []byte) error {
	if uint64(len(b)) > format.MaxElemLen {
		return fmt.Errorf("buffer length %d: %w", len(b), format.ErrSizeLimit)
	}

	e.buf.Grow(2 + len(b))
	e.buf.B = append(e.buf.B, format.TagBytes)
	e.buf.B = appendUint(e.buf.B, uint64(len(b)))
	e.buf.B = append(e.buf.B, b...)

	return nil
}

func (e *Encoder) encodeTable(t *value.Table, depth int) error {
	arr, hash := t.Parts()
	if uint64(len(arr)) > format.MaxElemLen || uint64(len(hash)) > format.MaxElemLen {
		return fmt.Errorf("table counts %d+%d: %w", len(arr), len(hash), format.ErrSizeLimit)
	}

	e.buf.B = append(e.buf.B, format.TagTable)
	e.buf.B = appendUint(e.buf.B, uint64(len(arr)))
	e.buf.B = appendUint(e.buf.B, uint64(len(hash)))

	for _, elem := range arr {
		if elem == nil {
			elem = value.Nil()
		}
		if err := e.encodeValue(elem, depth+1); err != nil {
			return err
		}
	}
	for i := range hash {
		key := hash[i].Key
		if key == nil || !key.IsScalar() {
			return fmt.Errorf("table key %s: %w", key, format.ErrUnsupportedType)
		}
		if err := e.encodeValue(key, depth+1); err != nil {
			return err
		}
		val := hash[i].Val
		if val == nil {
			val = value.Nil()
		}
		if err := e.encodeValue(val, depth+1); err != nil {
			return err
		}
	}

	return nil
}
