package flp

import (
	"github.com/flpkit/flp/flpfile"
)

// Mixer is a view over the insert and slot events of the stream.
type Mixer struct {
	p   *Project
	idx []int
}

// APDC reports whether automatic plugin delay compensation is on.
func (m Mixer) APDC() (bool, bool) {
	return m.p.boolIn(m.idx, flpfile.IDAPDC)
}

// Params returns the raw mixer parameter table holding most per-insert
// values. Carried through unchanged.
func (m Mixer) Params() ([]byte, bool) {
	return m.p.dataIn(m.idx, flpfile.IDMixerParams)
}

// Inserts splits the view into per-insert views. An insert's events
// run up to and including its output event; presets omit the final
// output marker, so a trailing group without one still counts.
func (m Mixer) Inserts() []Insert {
	var insertIdx []int
	for _, i := range m.idx {
		id := m.p.events[i].ID
		if flpfile.InsertIDs.Contains(id) || flpfile.SlotIDs.Contains(id) {
			insertIdx = append(insertIdx, i)
		}
	}
	groups := m.p.splitAfter(insertIdx, flpfile.IDInsertOutput)
	inserts := make([]Insert, len(groups))
	for i, g := range groups {
		inserts[i] = Insert{p: m.p, idx: g, index: i}
	}
	return inserts
}

// Insert is a view over one mixer insert's events.
type Insert struct {
	p     *Project
	idx   []int
	index int
}

// Index returns the insert's position in the mixer, master first.
func (ins Insert) Index() int { return ins.index }

func (ins Insert) Name() (string, bool) {
	return ins.p.textIn(ins.idx, flpfile.IDInsertName)
}

func (ins Insert) SetName(v string) error {
	return ins.p.setTextIn(ins.idx, flpfile.IDInsertName, v, "insert name")
}

func (ins Insert) Color() (int, bool) {
	v, ok := ins.p.intIn(ins.idx, flpfile.IDInsertColor)
	return int(v), ok
}

func (ins Insert) SetColor(v int) error {
	return ins.p.setIntIn(ins.idx, flpfile.IDInsertColor, int64(v), "insert color")
}

func (ins Insert) Icon() (int, bool) {
	v, ok := ins.p.intIn(ins.idx, flpfile.IDInsertIcon)
	return int(v), ok
}

// Input returns the audio input the insert records from.
func (ins Insert) Input() (int, bool) {
	v, ok := ins.p.intIn(ins.idx, flpfile.IDInsertInput)
	return int(v), ok
}

// Output returns the audio output the insert is routed to.
func (ins Insert) Output() (int, bool) {
	v, ok := ins.p.intIn(ins.idx, flpfile.IDInsertOutput)
	return int(v), ok
}

// Routing returns the raw insert-to-insert routing table.
func (ins Insert) Routing() ([]byte, bool) {
	return ins.p.dataIn(ins.idx, flpfile.IDInsertRouting)
}

// Flags returns a typed view over the insert's flags record. The
// record writes through to the underlying event payload.
func (ins Insert) Flags() (flpfile.Record, error) {
	ev := ins.p.findIn(ins.idx, flpfile.IDInsertFlags)
	if ev == nil {
		return flpfile.Record{}, &PropertyNotSettableError{Property: "insert flags"}
	}
	return flpfile.InsertFlagsLayout.View(ev.Data)
}

// Slots splits out the insert's effect slots, one per slot-index event.
func (ins Insert) Slots() []Slot {
	_, groups := ins.p.splitOn(ins.idx, flpfile.IDSlotIndex)
	slots := make([]Slot, len(groups))
	for i, g := range groups {
		slots[i] = Slot{p: ins.p, idx: g}
	}
	return slots
}

// Slot is a view over one effect slot's events.
type Slot struct {
	p   *Project
	idx []int
}

// Index returns the slot position within its insert.
func (s Slot) Index() int {
	v, _ := s.p.intIn(s.idx, flpfile.IDSlotIndex)
	return int(v)
}
