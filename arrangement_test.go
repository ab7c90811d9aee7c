package flp

import (
	"testing"

	"github.com/flpkit/flp/flpfile"
)

func TestPatterns(t *testing.T) {
	t.Parallel()

	pats := demoProject(t).Patterns()

	if v, ok := pats.PlayTruncatedNotes(); !ok || !v {
		t.Errorf("PlayTruncatedNotes = %v, %v", v, ok)
	}

	all := pats.All()
	if len(all) != 1 {
		t.Fatalf("patterns = %d, want 1", len(all))
	}
	pat := all[0]
	if pat.Number() != 1 {
		t.Errorf("Number = %d", pat.Number())
	}
	if name, ok := pat.Name(); !ok || name != "Main Beat" {
		t.Errorf("Name = %q, %v", name, ok)
	}
	if color, ok := pat.Color(); !ok || color != 0x202020 {
		t.Errorf("Color = %#x, %v", color, ok)
	}
	if notes, ok := pat.Notes(); !ok || len(notes) != 4 {
		t.Errorf("Notes = %v, %v", notes, ok)
	}
	if _, ok := pat.Controllers(); ok {
		t.Error("Controllers reported present")
	}
}

func TestArrangements(t *testing.T) {
	t.Parallel()

	arrs := demoProject(t).Arrangements()

	if num, beat, ok := arrs.TimeSignature(); !ok || num != 4 || beat != 4 {
		t.Errorf("TimeSignature = %d/%d, %v", num, beat, ok)
	}
	if cur, ok := arrs.Current(); !ok || cur != 0 {
		t.Errorf("Current = %d, %v", cur, ok)
	}

	all := arrs.All()
	if len(all) != 1 {
		t.Fatalf("arrangements = %d, want 1", len(all))
	}
	ar := all[0]
	if ar.Number() != 0 {
		t.Errorf("Number = %d", ar.Number())
	}
	if name, ok := ar.Name(); !ok || name != "Arrangement" {
		t.Errorf("Name = %q, %v", name, ok)
	}
	if items, ok := ar.PlaylistItems(); !ok || len(items) != 2 {
		t.Errorf("PlaylistItems = %v, %v", items, ok)
	}

	markers := ar.TimeMarkers()
	if len(markers) != 1 {
		t.Fatalf("markers = %d, want 1", len(markers))
	}
	if markers[0].Position() != 768 {
		t.Errorf("Position = %d", markers[0].Position())
	}
	if name, _ := markers[0].Name(); name != "Drop" {
		t.Errorf("marker Name = %q", name)
	}
	if _, _, ok := markers[0].Signature(); ok {
		t.Error("plain marker reported a signature")
	}

	tracks := ar.Tracks()
	if len(tracks) != 1 {
		t.Fatalf("tracks = %d, want 1", len(tracks))
	}
	if name, _ := tracks[0].Name(); name != "Track 1" {
		t.Errorf("track Name = %q", name)
	}
	if data, ok := tracks[0].Data(); !ok || len(data) != 8 {
		t.Errorf("track Data = %v, %v", data, ok)
	}
}

func TestSignatureMarker(t *testing.T) {
	t.Parallel()

	var b fileBuilder
	b.num(flpfile.IDNewArrangement, 0)
	b.num(flpfile.IDTimeMarkerPosition, 0)
	b.num(flpfile.IDTimeMarkerNumerator, 3)
	b.num(flpfile.IDTimeMarkerDenominator, 4)
	p := buildProject(t, b.file(false))

	markers := p.Arrangements().All()[0].TimeMarkers()
	if len(markers) != 1 {
		t.Fatalf("markers = %d", len(markers))
	}
	num, den, ok := markers[0].Signature()
	if !ok || num != 3 || den != 4 {
		t.Errorf("Signature = %d/%d, %v", num, den, ok)
	}
}

func TestMultipleArrangements(t *testing.T) {
	t.Parallel()

	var b fileBuilder
	b.num(flpfile.IDNewArrangement, 0)
	b.text(flpfile.IDArrangementName, "A")
	b.data(flpfile.IDTrackData, make([]byte, 8))
	b.num(flpfile.IDNewArrangement, 1)
	b.text(flpfile.IDArrangementName, "B")
	b.data(flpfile.IDTrackData, make([]byte, 8))
	b.data(flpfile.IDTrackData, make([]byte, 8))
	p := buildProject(t, b.file(false))

	all := p.Arrangements().All()
	if len(all) != 2 {
		t.Fatalf("arrangements = %d, want 2", len(all))
	}
	if name, _ := all[0].Name(); name != "A" {
		t.Errorf("first Name = %q", name)
	}
	if got := len(all[0].Tracks()); got != 1 {
		t.Errorf("first arrangement tracks = %d", got)
	}
	if got := len(all[1].Tracks()); got != 2 {
		t.Errorf("second arrangement tracks = %d", got)
	}
}

func TestPatternSetName(t *testing.T) {
	t.Parallel()

	p := demoProject(t)
	if err := p.Patterns().All()[0].SetName("Fill"); err != nil {
		t.Fatal(err)
	}
	if name, _ := p.Patterns().All()[0].Name(); name != "Fill" {
		t.Errorf("Name = %q", name)
	}
}
