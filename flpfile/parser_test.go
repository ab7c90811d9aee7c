package flpfile

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func mustBytes(t *testing.T, f *File) []byte {
	t.Helper()
	data, err := f.Bytes()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return data
}

func testFile() *File {
	f := &File{
		Format:       0,
		ChannelCount: 2,
		PPQ:          96,
		Unicode:      true,
	}
	f.Events = []Event{
		NewTextEvent(IDVersion, 0, "20.8.3.2567"),
		NewIntEvent(IDBuild, 1, 2567),
		NewIntEvent(IDLicensed, 2, 1),
		NewIntEvent(IDMainPitch, 3, -12),
		NewIntEvent(IDTempo, 4, 140000),
		NewTextEvent(IDTitle, 5, "Demo Song"),
		NewIntEvent(EventID(40), 6, 7),            // unknown BYTE-range event
		NewDataEvent(EventID(250), 7, []byte{1, 2, 3, 4}), // unknown DATA-range event
		NewTextEvent(IDTrackName, 8, "Track 1"),   // DATA-range text override
		NewDataEvent(IDPatternNotes, 9, []byte{0xde, 0xad, 0xbe, 0xef}),
	}
	return f
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	f := testFile()
	data := mustBytes(t, f)

	got, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Format != f.Format || got.ChannelCount != f.ChannelCount || got.PPQ != f.PPQ {
		t.Fatalf("header mismatch: got %d/%d/%d", got.Format, got.ChannelCount, got.PPQ)
	}
	if !got.Unicode {
		t.Fatal("version 20.8 file must decode as unicode")
	}
	if !reflect.DeepEqual(got.Events, f.Events) {
		t.Fatalf("events mismatch:\ngot  %v\nwant %v", got.Events, f.Events)
	}

	again := mustBytes(t, got)
	if !bytes.Equal(again, data) {
		t.Fatal("encode(decode(bytes)) != bytes")
	}
}

func TestRoundTripSingleByteText(t *testing.T) {
	t.Parallel()

	f := &File{PPQ: 96}
	f.Events = []Event{
		NewTextEvent(IDVersion, 0, "10.0.9"),
		NewTextEvent(IDTitle, 1, "old school"),
	}
	data := mustBytes(t, f)

	got, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Unicode {
		t.Fatal("pre-11.5 file must not decode as unicode")
	}
	if got.Events[1].Text != "old school" {
		t.Fatalf("title = %q", got.Events[1].Text)
	}
	if again := mustBytes(t, got); !bytes.Equal(again, data) {
		t.Fatal("encode(decode(bytes)) != bytes")
	}
}

func TestResaveIdempotent(t *testing.T) {
	t.Parallel()

	data := mustBytes(t, testFile())
	f1, err := ParseBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	once := mustBytes(t, f1)
	f2, err := ParseBytes(once)
	if err != nil {
		t.Fatal(err)
	}
	if twice := mustBytes(t, f2); !bytes.Equal(twice, once) {
		t.Fatal("second re-save differs from the first")
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	valid := mustBytes(t, testFile())

	corrupt := func(mutate func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return mutate(b)
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"bad header magic", corrupt(func(b []byte) []byte {
			b[0] = 'X'
			return b
		})},
		{"bad header length", corrupt(func(b []byte) []byte {
			b[4] = 7
			return b
		})},
		{"bad data magic", corrupt(func(b []byte) []byte {
			b[14] = 'X'
			return b
		})},
		{"chunk length exceeds input", corrupt(func(b []byte) []byte {
			b[18] = 0xff
			b[19] = 0xff
			return b
		})},
		{"truncated event payload", corrupt(func(b []byte) []byte {
			return b[:len(b)-2]
		})},
		{"chunk length cuts an event short", corrupt(func(b []byte) []byte {
			b[18]--
			return b
		})},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseBytes(test.input)
			if err == nil {
				t.Fatal("expected a decode error")
			}
			var parseErr *ParseError
			if len(test.input) > 0 && !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseErrorsTruncatedChunk(t *testing.T) {
	t.Parallel()

	// A text payload whose length prefix claims more bytes than the
	// whole input holds.
	f := &File{PPQ: 96}
	f.Events = []Event{NewDataEvent(IDPatternNotes, 0, []byte{1, 2, 3})}
	data := mustBytes(t, f)
	data[len(data)-4] = 120 // inflate the length prefix

	if _, err := ParseBytes(data); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestLengthPrefixBoundaries(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 127, 128, 255, 300, 16384} {
		payload := make([]byte, size)
		for i := range payload {
			payload[i] = byte(i)
		}
		f := &File{PPQ: 96}
		f.Events = []Event{NewDataEvent(IDPluginData, 0, payload)}

		got, err := ParseBytes(mustBytes(t, f))
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if !bytes.Equal(got.Events[0].Data, payload) {
			t.Fatalf("size %d: payload mismatch", size)
		}
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   EventID
		want Kind
	}{
		{IDLicensed, KindBool},     // BYTE-range boolean override
		{IDMainVolume, KindU8},
		{IDMainPitch, KindI16},     // signed override
		{IDTempo, KindU32},
		{IDVersion, KindASCII},     // stays single-byte in unicode files
		{IDTitle, KindText},
		{IDTrackName, KindText},    // text stored in the DATA range
		{IDArrangementName, KindText},
		{IDTimestamp, KindData},
		{EventID(40), KindU8},      // range defaults for unmodeled ids
		{EventID(70), KindU16},
		{EventID(140), KindU32},
		{EventID(203), KindText},
		{EventID(250), KindData},
	}
	for _, test := range tests {
		if got := KindOf(test.id); got != test.want {
			t.Errorf("KindOf(%d) = %d, want %d", test.id, got, test.want)
		}
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	events := []Event{
		NewIntEvent(IDTempo, 0, 120000),
		NewIntEvent(IDNewChannel, 1, 0),
		NewIntEvent(IDAPDC, 2, 1),
		NewIntEvent(IDNewChannel, 3, 1),
		NewIntEvent(IDNewPattern, 4, 1),
	}

	got := Filter(events, ChannelIDs, MixerIDs)
	want := []int{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}

	if got := Filter(events, PatternIDs); !reflect.DeepEqual(got, []int{4}) {
		t.Fatalf("Filter(PatternIDs) = %v", got)
	}
}

func TestEventSize(t *testing.T) {
	t.Parallel()

	title := NewTextEvent(IDTitle, 0, "abc")
	// id + prefix + 2*(3 runes + terminator)
	if got := title.Size(true); got != 1+1+8 {
		t.Errorf("unicode text size = %d", got)
	}
	// id + prefix + 3 runes + terminator
	if got := title.Size(false); got != 1+1+4 {
		t.Errorf("single-byte text size = %d", got)
	}

	version := NewTextEvent(IDVersion, 0, "1.2.3")
	if got := version.Size(true); got != 1+1+6 {
		t.Errorf("ascii text size = %d, ascii events ignore the unicode flag", got)
	}

	blob := NewDataEvent(IDPluginData, 0, make([]byte, 128))
	// id + 2-byte prefix + payload
	if got := blob.Size(true); got != 1+2+128 {
		t.Errorf("blob size = %d", got)
	}

	tempo := NewIntEvent(IDTempo, 0, 1)
	if got := tempo.Size(false); got != 5 {
		t.Errorf("dword size = %d", got)
	}
}
