package flp

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/flpkit/flp/flpfile"
)

// fileBuilder assembles fixture event streams, assigning ordinal
// indices automatically.
type fileBuilder struct {
	events []flpfile.Event
}

func (b *fileBuilder) num(id flpfile.EventID, v int64) *fileBuilder {
	b.events = append(b.events, flpfile.NewIntEvent(id, len(b.events), v))
	return b
}

func (b *fileBuilder) text(id flpfile.EventID, s string) *fileBuilder {
	b.events = append(b.events, flpfile.NewTextEvent(id, len(b.events), s))
	return b
}

func (b *fileBuilder) data(id flpfile.EventID, payload []byte) *fileBuilder {
	b.events = append(b.events, flpfile.NewDataEvent(id, len(b.events), payload))
	return b
}

func (b *fileBuilder) file(unicode bool) *flpfile.File {
	return &flpfile.File{
		Format:       0,
		ChannelCount: 2,
		PPQ:          96,
		Unicode:      unicode,
		Events:       b.events,
	}
}

func encodeFile(t *testing.T, f *flpfile.File) []byte {
	t.Helper()
	data, err := f.Bytes()
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return data
}

func buildProject(t *testing.T, f *flpfile.File) *Project {
	t.Helper()
	p, err := Parse(bytes.NewReader(encodeFile(t, f)))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return p
}

func timestampPayload(createdOn, timeSpent float64) []byte {
	payload := make([]byte, 16)
	binary.LittleEndian.PutUint64(payload[0:], math.Float64bits(createdOn))
	binary.LittleEndian.PutUint64(payload[8:], math.Float64bits(timeSpent))
	return payload
}

// demoFile builds a representative project: metadata, two channels, a
// pattern, an arrangement with a track and a time marker, two mixer
// inserts, and a couple of events the registry does not model.
func demoFile() *flpfile.File {
	var b fileBuilder
	b.text(flpfile.IDVersion, "20.8.3.2567")
	b.num(flpfile.IDBuild, 2567)
	b.num(flpfile.IDLicensed, 1)
	b.text(flpfile.IDLicensee, encodeLicensee("SomeUser"))
	b.num(flpfile.IDShowInfo, 1)
	b.text(flpfile.IDTitle, "Demo Song")
	b.text(flpfile.IDArtists, "Unknown Artist")
	b.text(flpfile.IDGenre, "Electronic")
	b.num(flpfile.IDTempo, 140500)
	b.num(flpfile.IDTempoCoarse, 140)
	b.num(flpfile.IDTempoFine, 500)
	b.num(flpfile.IDMainPitch, 0)
	b.num(flpfile.IDMainVolume, 100)
	b.data(flpfile.IDTimestamp, timestampPayload(36526.25, 1.5))
	b.num(flpfile.EventID(40), 7) // unmodeled BYTE-range event

	// Channel rack.
	b.num(flpfile.IDSwing, 64)
	b.text(flpfile.IDDisplayGroupName, "Audio")
	b.num(flpfile.IDNewChannel, 0)
	b.num(flpfile.IDChannelType, 0)
	b.text(flpfile.IDChannelName, "Kick")
	b.text(flpfile.IDSamplePath, "/samples/kick.wav")
	b.num(flpfile.IDChannelEnabled, 1)
	b.num(flpfile.IDNewChannel, 1)
	b.num(flpfile.IDChannelType, 2)
	b.text(flpfile.IDChannelDefaultName, "Sytrus")

	// Patterns.
	b.num(flpfile.IDPlayTruncatedNotes, 1)
	b.num(flpfile.IDNewPattern, 1)
	b.text(flpfile.IDPatternName, "Main Beat")
	b.num(flpfile.IDPatternColor, 0x202020)
	b.data(flpfile.IDPatternNotes, []byte{1, 2, 3, 4})

	// Arrangements.
	b.num(flpfile.IDTimeSigNumerator, 4)
	b.num(flpfile.IDTimeSigBeat, 4)
	b.num(flpfile.IDNewArrangement, 0)
	b.text(flpfile.IDArrangementName, "Arrangement")
	b.data(flpfile.IDPlaylistItems, []byte{9, 9})
	b.num(flpfile.IDTimeMarkerPosition, 768)
	b.text(flpfile.IDTimeMarkerName, "Drop")
	b.data(flpfile.IDTrackData, make([]byte, 8))
	b.text(flpfile.IDTrackName, "Track 1")
	b.num(flpfile.IDCurrentArrangement, 0)

	// Mixer.
	b.num(flpfile.IDAPDC, 1)
	b.data(flpfile.IDMixerParams, []byte{5, 5})
	b.data(flpfile.IDInsertFlags, make([]byte, 12))
	b.text(flpfile.IDInsertName, "Master")
	b.num(flpfile.IDInsertOutput, 0)
	b.data(flpfile.IDInsertFlags, make([]byte, 12))
	b.text(flpfile.IDInsertName, "Insert 1")
	b.num(flpfile.IDSlotIndex, 0)
	b.num(flpfile.IDInsertOutput, 0)

	b.data(flpfile.EventID(250), []byte{0xaa}) // unmodeled DATA-range event

	return b.file(true)
}

func demoProject(t *testing.T) *Project {
	t.Helper()
	return buildProject(t, demoFile())
}
