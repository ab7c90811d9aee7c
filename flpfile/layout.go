package flpfile

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FieldKind is the primitive type of one layout field.
type FieldKind uint8

const (
	FieldU8 FieldKind = iota
	FieldU16
	FieldU32
	FieldI32
	FieldF64
)

func (k FieldKind) width() int {
	switch k {
	case FieldU8:
		return 1
	case FieldU16:
		return 2
	case FieldU32, FieldI32:
		return 4
	default:
		return 8
	}
}

// Field is one named fixed-width field of a Layout.
type Field struct {
	Name string
	Kind FieldKind
}

// Layout is a fixed-field binary record format interpreting the
// payload of one DATA-kind event. Fields live at fixed offsets in
// declaration order; the total size never changes.
type Layout struct {
	Name   string
	Fields []Field
}

// Size returns the total byte width of the layout.
func (l *Layout) Size() int {
	n := 0
	for _, f := range l.Fields {
		n += f.Kind.width()
	}
	return n
}

func (l *Layout) offsetOf(name string) (int, FieldKind) {
	off := 0
	for _, f := range l.Fields {
		if f.Name == name {
			return off, f.Kind
		}
		off += f.Kind.width()
	}
	panic(fmt.Sprintf("flpfile: layout %s has no field %s", l.Name, name))
}

// TruncatedStructError reports a blob event too short for its layout.
// The rest of the model remains usable; only the struct-backed
// property fails.
type TruncatedStructError struct {
	Layout string
	Size   int
	Want   int
}

func (e *TruncatedStructError) Error() string {
	return fmt.Sprintf("%s struct is truncated: got %d bytes, want %d", e.Layout, e.Size, e.Want)
}

// View interprets data as l. The record aliases data: field writes
// modify the event payload in place and leave all other bytes intact.
func (l *Layout) View(data []byte) (Record, error) {
	if len(data) < l.Size() {
		return Record{}, &TruncatedStructError{Layout: l.Name, Size: len(data), Want: l.Size()}
	}
	return Record{layout: l, data: data}, nil
}

// Record is a typed view over one struct-backed event payload.
type Record struct {
	layout *Layout
	data   []byte
}

func (r Record) F64(name string) float64 {
	off, _ := r.layout.offsetOf(name)
	return math.Float64frombits(binary.LittleEndian.Uint64(r.data[off:]))
}

func (r Record) SetF64(name string, v float64) {
	off, _ := r.layout.offsetOf(name)
	binary.LittleEndian.PutUint64(r.data[off:], math.Float64bits(v))
}

func (r Record) U32(name string) uint32 {
	off, _ := r.layout.offsetOf(name)
	return binary.LittleEndian.Uint32(r.data[off:])
}

func (r Record) SetU32(name string, v uint32) {
	off, _ := r.layout.offsetOf(name)
	binary.LittleEndian.PutUint32(r.data[off:], v)
}

func (r Record) U16(name string) uint16 {
	off, _ := r.layout.offsetOf(name)
	return binary.LittleEndian.Uint16(r.data[off:])
}

func (r Record) SetU16(name string, v uint16) {
	off, _ := r.layout.offsetOf(name)
	binary.LittleEndian.PutUint16(r.data[off:], v)
}

func (r Record) U8(name string) uint8 {
	off, _ := r.layout.offsetOf(name)
	return r.data[off]
}

func (r Record) SetU8(name string, v uint8) {
	off, _ := r.layout.offsetOf(name)
	r.data[off] = v
}

// TimestampLayout interprets the project timestamp event: two 8-byte
// floats counting days since the Delphi epoch (30 Dec 1899), one for
// the creation date and one for the time spent in the project.
var TimestampLayout = &Layout{
	Name: "timestamp",
	Fields: []Field{
		{Name: "created_on", Kind: FieldF64},
		{Name: "time_spent", Kind: FieldF64},
	},
}

// InsertFlagsLayout interprets the per-insert flags event that also
// terminates the channel rack region of the stream.
var InsertFlagsLayout = &Layout{
	Name: "insert_flags",
	Fields: []Field{
		{Name: "window_state", Kind: FieldU32},
		{Name: "flags", Kind: FieldU32},
		{Name: "reserved", Kind: FieldU32},
	},
}
