// Package flp parses and re-serializes FL Studio project files (.flp)
// and the FST preset formats sharing the same container encoding.
//
// The package decodes the file into a flat ordered event sequence
// (see the flpfile package) and projects a typed object graph over it:
// Project at the root, with Rack, Mixer, Patterns and Arrangements
// views below it. Views hold indices into the project's single event
// sequence, so a mutation made through any view is visible through all
// others and to the save path.
package flp

import (
	"fmt"
	"io"
	"os"

	"github.com/flpkit/flp/flpfile"
)

// FileFormat is the container payload type declared in the FLP header.
type FileFormat int16

const (
	FormatNone           FileFormat = -1
	FormatProject        FileFormat = 0    // complete project (*.flp)
	FormatScore          FileFormat = 0x10 // pattern notes and controller events
	FormatAutomation     FileFormat = 24
	FormatChannelState   FileFormat = 0x20
	FormatPluginState    FileFormat = 0x30
	FormatGeneratorState FileFormat = 0x31
	FormatFXState        FileFormat = 0x32
	FormatInsertState    FileFormat = 0x40
)

func (f FileFormat) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatProject:
		return "project"
	case FormatScore:
		return "score"
	case FormatAutomation:
		return "automation"
	case FormatChannelState:
		return "channel state"
	case FormatPluginState:
		return "plugin state"
	case FormatGeneratorState:
		return "generator state"
	case FormatFXState:
		return "effect state"
	case FormatInsertState:
		return "insert state"
	default:
		return fmt.Sprintf("format(%d)", int16(f))
	}
}

// Project is the decoded object graph of one FLP stream.
//
// It owns the ordered event sequence created at decode time; events
// live exactly as long as the Project does. Semantic views are cheap
// and reconstructed on every access, never cached.
type Project struct {
	format       FileFormat
	channelCount int
	ppq          int
	unicode      bool

	events []flpfile.Event

	// path is the file the project was parsed from, used as the
	// default save destination. Empty for reader-based parses.
	path string
}

// Parse decodes an FLP stream.
//
// Codec errors abort the whole decode; no partial Project is returned.
func Parse(r io.Reader) (*Project, error) {
	f, err := flpfile.Parse(r)
	if err != nil {
		return nil, err
	}
	return fromFile(f, ""), nil
}

// ParseFile decodes the FLP file at path and remembers path as the
// default save destination.
func ParseFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := flpfile.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return fromFile(f, path), nil
}

func fromFile(f *flpfile.File, path string) *Project {
	return &Project{
		format:       FileFormat(f.Format),
		channelCount: int(f.ChannelCount),
		ppq:          int(f.PPQ),
		unicode:      f.Unicode,
		events:       f.Events,
		path:         path,
	}
}

// Format returns the container payload type.
func (p *Project) Format() FileFormat { return p.format }

// Path returns the file the project was parsed from, or "".
func (p *Project) Path() string { return p.path }

// Events returns the underlying ordered event sequence. The slice is
// shared with the project: mutating an event mutates the project.
func (p *Project) Events() []flpfile.Event { return p.events }

// collect returns the indices of the events belonging to the union of
// the given identifier groups, in stream order.
func (p *Project) collect(sets ...flpfile.IDSet) []int {
	return flpfile.Filter(p.events, sets...)
}

func (p *Project) findEvent(id flpfile.EventID) *flpfile.Event {
	for i := range p.events {
		if p.events[i].ID == id {
			return &p.events[i]
		}
	}
	return nil
}

// Event payload helpers shared by the property accessors. Getters
// report presence with the second return value; setters return
// PropertyNotSettableError when the backing event is absent.

func (p *Project) intValue(id flpfile.EventID) (int64, bool) {
	if ev := p.findEvent(id); ev != nil {
		return ev.Int, true
	}
	return 0, false
}

func (p *Project) setIntValue(id flpfile.EventID, v int64, prop string) error {
	ev := p.findEvent(id)
	if ev == nil {
		return &PropertyNotSettableError{Property: prop}
	}
	ev.Int = v
	return nil
}

func (p *Project) boolValue(id flpfile.EventID) (bool, bool) {
	if ev := p.findEvent(id); ev != nil {
		return ev.Int != 0, true
	}
	return false, false
}

func (p *Project) setBoolValue(id flpfile.EventID, v bool, prop string) error {
	ev := p.findEvent(id)
	if ev == nil {
		return &PropertyNotSettableError{Property: prop}
	}
	ev.Int = 0
	if v {
		ev.Int = 1
	}
	return nil
}

func (p *Project) textValue(id flpfile.EventID) (string, bool) {
	if ev := p.findEvent(id); ev != nil {
		return ev.Text, true
	}
	return "", false
}

func (p *Project) setTextValue(id flpfile.EventID, v, prop string) error {
	ev := p.findEvent(id)
	if ev == nil {
		return &PropertyNotSettableError{Property: prop}
	}
	ev.Text = v
	return nil
}

// The same helpers scoped to a view's index list.

func (p *Project) findIn(idx []int, id flpfile.EventID) *flpfile.Event {
	for _, i := range idx {
		if p.events[i].ID == id {
			return &p.events[i]
		}
	}
	return nil
}

func (p *Project) intIn(idx []int, id flpfile.EventID) (int64, bool) {
	if ev := p.findIn(idx, id); ev != nil {
		return ev.Int, true
	}
	return 0, false
}

func (p *Project) setIntIn(idx []int, id flpfile.EventID, v int64, prop string) error {
	ev := p.findIn(idx, id)
	if ev == nil {
		return &PropertyNotSettableError{Property: prop}
	}
	ev.Int = v
	return nil
}

func (p *Project) boolIn(idx []int, id flpfile.EventID) (bool, bool) {
	if ev := p.findIn(idx, id); ev != nil {
		return ev.Int != 0, true
	}
	return false, false
}

func (p *Project) setBoolIn(idx []int, id flpfile.EventID, v bool, prop string) error {
	var n int64
	if v {
		n = 1
	}
	return p.setIntIn(idx, id, n, prop)
}

func (p *Project) textIn(idx []int, id flpfile.EventID) (string, bool) {
	if ev := p.findIn(idx, id); ev != nil {
		return ev.Text, true
	}
	return "", false
}

func (p *Project) setTextIn(idx []int, id flpfile.EventID, v, prop string) error {
	ev := p.findIn(idx, id)
	if ev == nil {
		return &PropertyNotSettableError{Property: prop}
	}
	ev.Text = v
	return nil
}

func (p *Project) dataIn(idx []int, id flpfile.EventID) ([]byte, bool) {
	if ev := p.findIn(idx, id); ev != nil {
		return ev.Data, true
	}
	return nil, false
}

// splitOn partitions idx into one group per occurrence of the marker
// identifier, each group starting at its marker event. Indices before
// the first marker form the shared prefix.
func (p *Project) splitOn(idx []int, marker flpfile.EventID) (prefix []int, groups [][]int) {
	start := -1
	for pos, i := range idx {
		if p.events[i].ID != marker {
			continue
		}
		if start == -1 {
			prefix = idx[:pos]
		} else {
			groups = append(groups, idx[start:pos])
		}
		start = pos
	}
	if start == -1 {
		return idx, nil
	}
	groups = append(groups, idx[start:])
	return prefix, groups
}

// splitAfter partitions idx into groups terminated by the marker
// identifier, each group including its terminator. Trailing indices
// with no terminator form a final group (FST presets omit it).
func (p *Project) splitAfter(idx []int, marker flpfile.EventID) [][]int {
	var groups [][]int
	start := 0
	for pos, i := range idx {
		if p.events[i].ID == marker {
			groups = append(groups, idx[start:pos+1])
			start = pos + 1
		}
	}
	if start < len(idx) {
		groups = append(groups, idx[start:])
	}
	return groups
}
