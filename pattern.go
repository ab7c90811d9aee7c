package flp

import (
	"github.com/flpkit/flp/flpfile"
)

// Patterns is a view over the pattern events of the stream.
type Patterns struct {
	p   *Project
	idx []int
}

// PlayTruncatedNotes reports whether notes cut by a pattern's end keep
// playing when the pattern loops.
func (ps Patterns) PlayTruncatedNotes() (bool, bool) {
	return ps.p.boolIn(ps.idx, flpfile.IDPlayTruncatedNotes)
}

func (ps Patterns) SetPlayTruncatedNotes(v bool) error {
	return ps.p.setBoolIn(ps.idx, flpfile.IDPlayTruncatedNotes, v, "play truncated notes")
}

// All splits the view into per-pattern views, one per new-pattern
// event, in stream order. A partial file with no pattern events yields
// an empty slice.
func (ps Patterns) All() []Pattern {
	_, groups := ps.p.splitOn(ps.idx, flpfile.IDNewPattern)
	pats := make([]Pattern, len(groups))
	for i, g := range groups {
		pats[i] = Pattern{p: ps.p, idx: g}
	}
	return pats
}

// Pattern is a view over one pattern's events.
type Pattern struct {
	p   *Project
	idx []int
}

// Number returns the 1-based pattern number from the new-pattern event.
func (pt Pattern) Number() int {
	v, _ := pt.p.intIn(pt.idx, flpfile.IDNewPattern)
	return int(v)
}

func (pt Pattern) Name() (string, bool) {
	return pt.p.textIn(pt.idx, flpfile.IDPatternName)
}

func (pt Pattern) SetName(v string) error {
	return pt.p.setTextIn(pt.idx, flpfile.IDPatternName, v, "pattern name")
}

func (pt Pattern) Color() (int, bool) {
	v, ok := pt.p.intIn(pt.idx, flpfile.IDPatternColor)
	return int(v), ok
}

func (pt Pattern) SetColor(v int) error {
	return pt.p.setIntIn(pt.idx, flpfile.IDPatternColor, int64(v), "pattern color")
}

// Notes returns the raw note-event table. Note payloads are carried
// through unchanged; this package does not decode them.
func (pt Pattern) Notes() ([]byte, bool) {
	return pt.p.dataIn(pt.idx, flpfile.IDPatternNotes)
}

// Controllers returns the raw controller-event table.
func (pt Pattern) Controllers() ([]byte, bool) {
	return pt.p.dataIn(pt.idx, flpfile.IDPatternControllers)
}
