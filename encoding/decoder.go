package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/vpack/endian"
	"github.com/arloliu/vpack/format"
	"github.com/arloliu/vpack/value"
)

// Decoder reads framed values from a byte slice. The input is treated as
// read-only; every decoded value owns freshly allocated storage.
//
// The string pool is rebuilt on the fly: every inline string read is
// appended, in order, and references resolve against the list as it stands
// at the moment the reference is read. One byte of lookahead (the tag) is
// all the decoder ever needs.
type Decoder struct {
	data     []byte
	pos      int
	engine   endian.EndianEngine
	strs     []string
	maxDepth int
}

// NewDecoder creates a decoder over data. The slice is not copied.
//
// Parameters:
//   - data: framed bytes, without the payload header byte
//   - maxDepth: recursion limit; values <= 0 select DefaultMaxDepth
func NewDecoder(data []byte, maxDepth int) *Decoder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Decoder{
		data:     data,
		engine:   endian.GetLittleEndianEngine(),
		maxDepth: maxDepth,
	}
}

// Decode reads one framed value.
func (d *Decoder) Decode() (*value.Value, error) {
	return d.readValue(0)
}

// Remaining returns the number of unread bytes. Callers enforcing the
// exact-consumption rule check this after Decode.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// Pos returns the number of bytes consumed so far.
func (d *Decoder) Pos() int {
	return d.pos
}

// ReadUint reads one tagged non-negative integer. Exposed for the
// Level-3 frame reader, which shares the integer encoding.
func (d *Decoder) ReadUint() (uint64, error) {
	tag, err := d.readByte()
	if err != nil {
		return 0, err
	}
	if tag < format.TagU8 || tag > format.TagU52 {
		return 0, fmt.Errorf("tag 0x%02x where unsigned integer expected: %w", tag, format.ErrBadTag)
	}

	return d.readUintBody(int(tag-format.TagU8) + 1)
}

func (d *Decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, format.ErrTruncated
	}
	b := d.data[d.pos]
	d.pos++

	return b, nil
}

func (d *Decoder) readBytes(n int) ([]byte, error) {
	if n < 0 || len(d.data)-d.pos < n {
		return nil, format.ErrTruncated
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n

	return b, nil
}

// readUintBody reads a little-endian magnitude of the given byte width
// and validates it against the width class ceiling.
func (d *Decoder) readUintBody(width int) (uint64, error) {
	body, err := d.readBytes(width)
	if err != nil {
		return 0, err
	}
	var u uint64
	for k := width - 1; k >= 0; k-- {
		u = u<<8 | uint64(body[k])
	}
	if u > uintClassMax(width) {
		return 0, fmt.Errorf("u%d body 0x%x has reserved bits set: %w", width*8, u, format.ErrBadTag)
	}

	return u, nil
}

func (d *Decoder) readValue(depth int) (*value.Value, error) {
	if depth > d.maxDepth {
		return nil, fmt.Errorf("depth %d: %w", depth, format.ErrDepthExceeded)
	}

	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}

	switch {
	case tag == format.TagNil:
		return value.Nil(), nil
	case tag == format.TagFalse:
		return value.Bool(false), nil
	case tag == format.TagTrue:
		return value.Bool(true), nil
	case tag == format.TagFloat64:
		body, err := d.readBytes(8)
		if err != nil {
			return nil, err
		}
		return value.Float(math.Float64frombits(d.engine.Uint64(body))), nil
	case tag >= format.TagU8 && tag <= format.TagU52:
		u, err := d.readUintBody(int(tag-format.TagU8) + 1)
		if err != nil {
			return nil, err
		}
		return value.Int(int64(u)), nil
	case tag >= format.TagN8 && tag <= format.TagN52:
		return d.readNegative(int(tag-format.TagN8) + 1)
	case tag == format.TagStr:
		return d.readString()
	case tag == format.TagStrRef:
		return d.readStringRef()
	case tag == format.TagBytes:
		return d.readBuffer()
	case tag == format.TagTable:
		return d.readTable(depth)
	default:
		return nil, fmt.Errorf("tag 0x%02x: %w", tag, format.ErrBadTag)
	}
}

func (d *Decoder) readNegative(width int) (*value.Value, error) {
	body, err := d.readBytes(width)
	if err != nil {
		return nil, err
	}
	var mag uint64
	for k := width - 1; k >= 0; k-- {
		mag = mag<<8 | uint64(body[k])
	}
	if mag > negClassMax(width) {
		return nil, fmt.Errorf("n%d magnitude 0x%x out of class range: %w", width*8, mag, format.ErrBadTag)
	}

	return value.Int(-int64(mag)), nil
}

func (d *Decoder) readString() (*value.Value, error) {
	n, err := d.readLen()
	if err != nil {
		return nil, err
	}
	body, err := d.readBytes(n)
	if err != nil {
		return nil, err
	}
	s := string(body)
	d.strs = append(d.strs, s)

	return value.Str(s), nil
}

func (d *Decoder) readStringRef() (*value.Value, error) {
	idx, err := d.ReadUint()
	if err != nil {
		return nil, err
	}
	if idx >= uint64(len(d.strs)) {
		return nil, fmt.Errorf("index %d with %d pooled strings: %w", idx, len(d.strs), format.ErrBadPoolIndex)
	}

	return value.Str(d.strs[idx]), nil
}

func (d *Decoder) readBuffer() (*value.Value, error) {
	n, err := d.readLen()
	if err != nil {
		return nil, err
	}
	body, err := d.readBytes(n)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	copy(buf, body)

	return value.Bytes(buf), nil
}

// readLen reads a length or count prefix and bounds it by both the format
// cap and the bytes actually remaining, so corrupt prefixes cannot drive
// oversized allocations.
func (d *Decoder) readLen() (int, error) {
	u, err := d.ReadUint()
	if err != nil {
		return 0, err
	}
	if u > format.MaxElemLen {
		return 0, fmt.Errorf("length %d: %w", u, format.ErrSizeLimit)
	}
	if u > uint64(d.Remaining()) {
		return 0, format.ErrTruncated
	}

	return int(u), nil
}

func (d *Decoder) readTable(depth int) (*value.Value, error) {
	n, err := d.readCount()
	if err != nil {
		return nil, err
	}
	m, err := d.readCount()
	if err != nil {
		return nil, err
	}
	// Every element costs at least one tag byte; reject counts the
	// remaining input cannot possibly satisfy before allocating.
	if uint64(n)+2*uint64(m) > uint64(d.Remaining()) {
		return nil, format.ErrTruncated
	}

	t := &value.Table{}
	if n > 0 {
		t.Array = make([]*value.Value, 0, n)
	}
	for i := 0; i < n; i++ {
		elem, err := d.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		t.Array = append(t.Array, elem)
	}

	if m > 0 {
		t.Hash = make([]value.Entry, 0, m)
	}
	for i := 0; i < m; i++ {
		key, err := d.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if !key.IsScalar() {
			return nil, fmt.Errorf("%s table key: %w", key.Kind(), format.ErrBadTag)
		}
		val, err := d.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		t.Hash = append(t.Hash, value.Entry{Key: key, Val: val})
	}

	return value.Tbl(t), nil
}

func (d *Decoder) readCount() (int, error) {
	u, err := d.ReadUint()
	if err != nil {
		return 0, err
	}
	if u > format.MaxElemLen {
		return 0, fmt.Errorf("count %d: %w", u, format.ErrSizeLimit)
	}

	return int(u), nil
}
