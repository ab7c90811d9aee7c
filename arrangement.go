package flp

import (
	"github.com/flpkit/flp/flpfile"
)

// Arrangements is a view over all arrangement, track and time-marker
// events of the stream.
type Arrangements struct {
	p   *Project
	idx []int
}

// TimeSignature returns the project time signature as numerator and
// beat value.
func (a Arrangements) TimeSignature() (num, beat int, ok bool) {
	n, ok1 := a.p.intIn(a.idx, flpfile.IDTimeSigNumerator)
	b, ok2 := a.p.intIn(a.idx, flpfile.IDTimeSigBeat)
	return int(n), int(b), ok1 && ok2
}

// Current returns the number of the arrangement open in FL.
func (a Arrangements) Current() (int, bool) {
	v, ok := a.p.intIn(a.idx, flpfile.IDCurrentArrangement)
	return int(v), ok
}

// All splits the view into per-arrangement views, one per
// new-arrangement event, in stream order.
func (a Arrangements) All() []Arrangement {
	_, groups := a.p.splitOn(a.idx, flpfile.IDNewArrangement)
	arrs := make([]Arrangement, len(groups))
	for i, g := range groups {
		arrs[i] = Arrangement{p: a.p, idx: g}
	}
	return arrs
}

// Arrangement is a view over one arrangement's events: its playlist,
// its time markers and its tracks.
type Arrangement struct {
	p   *Project
	idx []int
}

// Number returns the arrangement number from the new-arrangement event.
func (ar Arrangement) Number() int {
	v, _ := ar.p.intIn(ar.idx, flpfile.IDNewArrangement)
	return int(v)
}

func (ar Arrangement) Name() (string, bool) {
	return ar.p.textIn(ar.idx, flpfile.IDArrangementName)
}

func (ar Arrangement) SetName(v string) error {
	return ar.p.setTextIn(ar.idx, flpfile.IDArrangementName, v, "arrangement name")
}

// PlaylistItems returns the raw playlist item table. Item payloads are
// carried through unchanged; this package does not decode them.
func (ar Arrangement) PlaylistItems() ([]byte, bool) {
	return ar.p.dataIn(ar.idx, flpfile.IDPlaylistItems)
}

// TimeMarkers splits out the arrangement's time markers, one per
// marker position event.
func (ar Arrangement) TimeMarkers() []TimeMarker {
	_, groups := ar.p.splitOn(ar.idx, flpfile.IDTimeMarkerPosition)
	markers := make([]TimeMarker, len(groups))
	for i, g := range groups {
		markers[i] = TimeMarker{p: ar.p, idx: g}
	}
	return markers
}

// Tracks splits out the arrangement's playlist tracks, one per
// track-data event.
func (ar Arrangement) Tracks() []Track {
	_, groups := ar.p.splitOn(ar.idx, flpfile.IDTrackData)
	tracks := make([]Track, len(groups))
	for i, g := range groups {
		tracks[i] = Track{p: ar.p, idx: g}
	}
	return tracks
}

// TimeMarker is a view over one time marker's events.
type TimeMarker struct {
	p   *Project
	idx []int
}

// Position returns the marker position in pulses.
func (tm TimeMarker) Position() int {
	v, _ := tm.p.intIn(tm.idx, flpfile.IDTimeMarkerPosition)
	return int(v)
}

func (tm TimeMarker) Name() (string, bool) {
	return tm.p.textIn(tm.idx, flpfile.IDTimeMarkerName)
}

func (tm TimeMarker) SetName(v string) error {
	return tm.p.setTextIn(tm.idx, flpfile.IDTimeMarkerName, v, "time marker name")
}

// Signature returns the marker's time signature for signature markers,
// ok=false for plain markers.
func (tm TimeMarker) Signature() (num, den int, ok bool) {
	n, ok1 := tm.p.intIn(tm.idx, flpfile.IDTimeMarkerNumerator)
	d, ok2 := tm.p.intIn(tm.idx, flpfile.IDTimeMarkerDenominator)
	return int(n), int(d), ok1 && ok2
}

// Track is a view over one playlist track's events.
type Track struct {
	p   *Project
	idx []int
}

// Data returns the raw fixed-layout track record.
func (t Track) Data() ([]byte, bool) {
	return t.p.dataIn(t.idx, flpfile.IDTrackData)
}

func (t Track) Name() (string, bool) {
	return t.p.textIn(t.idx, flpfile.IDTrackName)
}

func (t Track) SetName(v string) error {
	return t.p.setTextIn(t.idx, flpfile.IDTrackName, v, "track name")
}
