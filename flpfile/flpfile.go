package flpfile

import (
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

// File is a decoded FLP/FST container.
// This is the raw event layer; it carries no interpretation of the
// project beyond what the header and the identifier registry state.
type File struct {
	// Format is the container payload type from the header (i16).
	// 0 means a complete project; other values are FST preset kinds.
	Format int16

	ChannelCount uint16

	// PPQ is the pulses-per-quarter timing resolution.
	PPQ uint16

	// Unicode reports whether TEXT-range payloads are stored as
	// UTF-16LE. FL Studio switched from single-byte text in 11.5;
	// the parser derives this from the version event, which is
	// itself always single-byte.
	Unicode bool

	Events []Event
}

// EventID is the one-byte event identifier. The identifier decides,
// through its range (and registry overrides), how the payload that
// follows it is encoded.
type EventID uint8

// Range bases. An identifier inherits the default payload kind of the
// range it falls into unless the registry overrides it.
const (
	RangeByte  EventID = 0
	RangeWord  EventID = 64
	RangeDWord EventID = 128
	RangeText  EventID = 192
	RangeData  EventID = 208
)

// Kind is the payload kind of one event, assigned once at decode time
// from the identifier. All downstream code switches over it instead of
// re-deriving the kind from the identifier.
type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32

	// KindASCII is text that stays single-byte regardless of the
	// file's Unicode flag (the version event keeps pre-11.5 files
	// readable).
	KindASCII

	KindText
	KindData
)

// Event is one (identifier, payload) record of the stream.
type Event struct {
	ID EventID

	// Index is the ordinal position in the original stream. FL Studio
	// is sensitive to the relative order of certain event groups, so
	// re-serialization sorts by it rather than by identifier.
	Index int

	Kind Kind

	// Int holds boolean and integer payloads. Booleans are 0 or 1.
	Int int64

	// Text holds KindASCII and KindText payloads, without the
	// trailing NUL terminator.
	Text string

	// Data holds KindData payloads.
	Data []byte
}

// NewIntEvent returns an integer or boolean event for id with the
// payload kind the registry assigns to it.
func NewIntEvent(id EventID, index int, v int64) Event {
	return Event{ID: id, Index: index, Kind: KindOf(id), Int: v}
}

// NewTextEvent returns a text event for id.
func NewTextEvent(id EventID, index int, s string) Event {
	return Event{ID: id, Index: index, Kind: KindOf(id), Text: s}
}

// NewDataEvent returns a blob event for id.
func NewDataEvent(id EventID, index int, data []byte) Event {
	return Event{ID: id, Index: index, Kind: KindOf(id), Data: data}
}

// Size returns the encoded byte size of the event, including the
// identifier byte and, for variable-width kinds, the length prefix.
// The unicode flag must match the File the event is written from.
func (e *Event) Size(unicode bool) int {
	switch e.Kind {
	case KindBool, KindU8, KindI8:
		return 2
	case KindU16, KindI16:
		return 3
	case KindU32, KindI32:
		return 5
	}

	var n int
	switch {
	case e.Kind == KindData:
		n = len(e.Data)
	case e.Kind == KindASCII || !unicode:
		// One byte per character plus the terminator.
		n = utf8.RuneCountInString(e.Text) + 1
	default:
		n = 2 * (len(utf16.Encode([]rune(e.Text))) + 1)
	}
	return 1 + ulebLen(uint64(n)) + n
}

// Parse reads FLP container data and decodes it into a File.
//
// A non-nil error is usually a *ParseError object.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes is like Parse, but operates on a byte slice directly.
// The returned File does not alias data.
func ParseBytes(data []byte) (*File, error) {
	p := &parser{data: data}
	if err := p.parse(); err != nil {
		return nil, err
	}
	f := p.file
	return &f, nil
}
