package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// PutUint8 writes v at offset and returns the number of bytes written.
func PutUint8(buf []byte, offset int, v uint8) (int, error) {
	if err := checkBounds(buf, offset, 1); err != nil {
		return 0, err
	}
	buf[offset] = v
	return 1, nil
}

// PutUint16 writes v little endian at offset.
func PutUint16(buf []byte, offset int, v uint16) (int, error) {
	if err := checkBounds(buf, offset, 2); err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint16(buf[offset:], v)
	return 2, nil
}

// PutUint32 writes v little endian at offset.
func PutUint32(buf []byte, offset int, v uint32) (int, error) {
	if err := checkBounds(buf, offset, 4); err != nil {
		return 0, err
	}
	binary.LittleEndian.PutUint32(buf[offset:], v)
	return 4, nil
}

// PutPadding zeroes n reserved bytes at offset.
func PutPadding(buf []byte, offset, n int) (int, error) {
	if err := checkBounds(buf, offset, n); err != nil {
		return 0, err
	}
	clear(buf[offset : offset+n])
	return n, nil
}

// Uint8 reads one byte at offset.
func Uint8(buf []byte, offset int) (uint8, int, error) {
	if err := checkBounds(buf, offset, 1); err != nil {
		return 0, 0, err
	}
	return buf[offset], 1, nil
}

// Uint16 reads a little endian uint16 at offset.
func Uint16(buf []byte, offset int) (uint16, int, error) {
	if err := checkBounds(buf, offset, 2); err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint16(buf[offset:]), 2, nil
}

// Uint32 reads a little endian uint32 at offset.
func Uint32(buf []byte, offset int) (uint32, int, error) {
	if err := checkBounds(buf, offset, 4); err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint32(buf[offset:]), 4, nil
}

// SkipPadding consumes n reserved bytes at offset. Their contents are ignored.
func SkipPadding(buf []byte, offset, n int) (int, error) {
	if err := checkBounds(buf, offset, n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkBounds(buf []byte, offset, width int) error {
	if offset < 0 {
		return errors.Wrapf(ErrNegativeOffset, "offset=%d", offset)
	}
	if width < 0 {
		return errors.Wrapf(ErrOutOfBounds, "negative width=%d", width)
	}
	if offset > len(buf) || len(buf)-offset < width {
		return errors.Wrapf(ErrOutOfBounds, "offset=%d width=%d len=%d", offset, width, len(buf))
	}
	return nil
}

// FieldKind identifies how a layout entry is encoded.
type FieldKind uint8

const (
	KindUint8 FieldKind = iota + 1
	KindUint16
	KindUint32
	KindPadding
)

func (k FieldKind) String() string {
	switch k {
	case KindUint8:
		return "u8"
	case KindUint16:
		return "u16"
	case KindUint32:
		return "u32"
	case KindPadding:
		return "pad"
	default:
		return "invalid"
	}
}

func (k FieldKind) width() int {
	switch k {
	case KindUint8:
		return 1
	case KindUint16:
		return 2
	case KindUint32:
		return 4
	default:
		return 0
	}
}

// FieldSpec is one entry of a layout table. Offset is assigned by NewLayout.
type FieldSpec struct {
	Name   string
	Kind   FieldKind
	Offset int
	Width  int
}

// U8 declares a one byte unsigned field.
func U8(name string) FieldSpec { return FieldSpec{Name: name, Kind: KindUint8, Width: 1} }

// U16 declares a two byte little endian unsigned field.
func U16(name string) FieldSpec { return FieldSpec{Name: name, Kind: KindUint16, Width: 2} }

// U32 declares a four byte little endian unsigned field.
func U32(name string) FieldSpec { return FieldSpec{Name: name, Kind: KindUint32, Width: 4} }

// Pad declares n reserved bytes, written as zero and ignored on read.
func Pad(n int) FieldSpec { return FieldSpec{Name: "reserved", Kind: KindPadding, Width: n} }

// Layout is a validated, packed table of fixed-width fields.
type Layout struct {
	fields []FieldSpec
	size   int
	values int
}

// NewLayout assigns offsets in declaration order and rejects malformed entries.
func NewLayout(specs ...FieldSpec) (Layout, error) {
	if len(specs) == 0 {
		return Layout{}, errors.Wrap(ErrInvalidLayout, "no fields")
	}
	l := Layout{fields: make([]FieldSpec, 0, len(specs))}
	for i, spec := range specs {
		switch spec.Kind {
		case KindUint8, KindUint16, KindUint32:
			if spec.Name == "" {
				return Layout{}, errors.Wrapf(ErrInvalidLayout, "field %d has no name", i)
			}
			if spec.Width != spec.Kind.width() {
				return Layout{}, errors.Wrapf(ErrInvalidLayout, "field %q width=%d want %d", spec.Name, spec.Width, spec.Kind.width())
			}
			l.values++
		case KindPadding:
			if spec.Width <= 0 {
				return Layout{}, errors.Wrapf(ErrInvalidLayout, "padding %d width=%d", i, spec.Width)
			}
		default:
			return Layout{}, errors.Wrapf(ErrInvalidLayout, "field %d kind=%d", i, spec.Kind)
		}
		spec.Offset = l.size
		l.size += spec.Width
		l.fields = append(l.fields, spec)
	}
	return l, nil
}

// MustLayout is NewLayout for package-level tables.
func MustLayout(specs ...FieldSpec) Layout {
	l, err := NewLayout(specs...)
	if err != nil {
		panic(err)
	}
	return l
}

// Size is the packed width of the layout in bytes.
func (l Layout) Size() int { return l.size }

// Fields returns a copy of the resolved table.
func (l Layout) Fields() []FieldSpec {
	out := make([]FieldSpec, len(l.fields))
	copy(out, l.fields)
	return out
}

// Encode writes one value per non-padding field, in order, starting at offset.
// Nothing is written unless the whole layout fits and every value fits its width.
func (l Layout) Encode(buf []byte, offset int, values ...uint64) (int, error) {
	if len(values) != l.values {
		return 0, errors.Wrapf(ErrLayoutMismatch, "got %d values want %d", len(values), l.values)
	}
	if err := checkBounds(buf, offset, l.size); err != nil {
		return 0, err
	}
	vi := 0
	for _, f := range l.fields {
		if f.Kind == KindPadding {
			continue
		}
		if values[vi]>>(8*f.Width) != 0 {
			return 0, errors.Wrapf(ErrValueOverflow, "field %q value=%d", f.Name, values[vi])
		}
		vi++
	}

	vi = 0
	for _, f := range l.fields {
		at := offset + f.Offset
		var err error
		switch f.Kind {
		case KindUint8:
			_, err = PutUint8(buf, at, uint8(values[vi]))
		case KindUint16:
			_, err = PutUint16(buf, at, uint16(values[vi]))
		case KindUint32:
			_, err = PutUint32(buf, at, uint32(values[vi]))
		case KindPadding:
			_, err = PutPadding(buf, at, f.Width)
		}
		if err != nil {
			return 0, err
		}
		if f.Kind != KindPadding {
			vi++
		}
	}
	return l.size, nil
}

// Decode reads the layout at offset and returns one value per non-padding field.
func (l Layout) Decode(buf []byte, offset int) ([]uint64, int, error) {
	if err := checkBounds(buf, offset, l.size); err != nil {
		return nil, 0, err
	}
	values := make([]uint64, 0, l.values)
	for _, f := range l.fields {
		at := offset + f.Offset
		switch f.Kind {
		case KindUint8:
			v, _, err := Uint8(buf, at)
			if err != nil {
				return nil, 0, err
			}
			values = append(values, uint64(v))
		case KindUint16:
			v, _, err := Uint16(buf, at)
			if err != nil {
				return nil, 0, err
			}
			values = append(values, uint64(v))
		case KindUint32:
			v, _, err := Uint32(buf, at)
			if err != nil {
				return nil, 0, err
			}
			values = append(values, uint64(v))
		case KindPadding:
			if _, err := SkipPadding(buf, at, f.Width); err != nil {
				return nil, 0, err
			}
		}
	}
	return values, l.size, nil
}
