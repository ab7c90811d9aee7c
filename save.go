package flp

import (
	"fmt"
	"os"
	"sort"

	"github.com/flpkit/flp/flpfile"
)

// SavePolicy controls how the save orchestrator treats model
// collections that turn out to be empty while walking the graph.
type SavePolicy int

const (
	// PolicyLenient reports a warning and keeps assembling the
	// stream. Partial files and files full of unmodeled identifiers
	// still round-trip this way.
	PolicyLenient SavePolicy = iota

	// PolicyStrict aborts serialization on the first empty collection.
	PolicyStrict
)

// SaveOptions configures Serialize and SaveWith.
type SaveOptions struct {
	Policy SavePolicy

	// Warn receives structured warnings under the lenient policy. The
	// signature matches (*slog.Logger).Warn so a logger method can be
	// passed directly. Nil disables reporting.
	Warn func(msg string, args ...any)
}

func (o SaveOptions) report(what string, args ...any) error {
	if o.Policy == PolicyStrict {
		return fmt.Errorf("flp: %s has no events", what)
	}
	if o.Warn != nil {
		o.Warn("model has no events", append([]any{"model", what}, args...)...)
	}
	return nil
}

// MarshalBinary serializes the project with lenient, silent options.
func (p *Project) MarshalBinary() ([]byte, error) {
	return p.Serialize(SaveOptions{})
}

// Serialize walks the model graph in the order FL Studio's reader
// expects, gathers every owned event plus the unmodeled remainder,
// restores the original relative event order and encodes the container.
func (p *Project) Serialize(opts SaveOptions) ([]byte, error) {
	idx, err := p.gather(opts)
	if err != nil {
		return nil, err
	}
	// The serialized order must reproduce the original relative
	// layout, so sort by ordinal position, not by identifier.
	sort.Ints(idx)

	f := flpfile.File{
		Format:       int16(p.format),
		ChannelCount: uint16(p.channelCount),
		PPQ:          uint16(p.ppq),
		Unicode:      p.unicode,
		Events:       make([]flpfile.Event, len(idx)),
	}
	for i, j := range idx {
		f.Events[i] = p.events[j]
	}
	return f.Bytes()
}

// modelSets lists every identifier group some model claims. Events
// outside all of them are "unparsed" and pass through re-serialization
// unchanged.
var modelSets = []flpfile.IDSet{
	flpfile.ProjectIDs, flpfile.RackIDs, flpfile.ChannelIDs,
	flpfile.DisplayGroupIDs, flpfile.PluginIDs, flpfile.PatternsIDs,
	flpfile.PatternIDs, flpfile.ArrangementsIDs, flpfile.ArrangementIDs,
	flpfile.TrackIDs, flpfile.TimeMarkerIDs, flpfile.MixerIDs,
	flpfile.InsertIDs, flpfile.SlotIDs,
}

func (p *Project) gather(opts SaveOptions) ([]int, error) {
	seen := make([]bool, len(p.events))
	out := make([]int, 0, len(p.events))
	add := func(idx []int) {
		for _, i := range idx {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}

	// Project meta events first.
	add(p.collect(flpfile.ProjectIDs))

	// Then everything no model claims.
	modeled := flpfile.Union(modelSets...)
	for i := range p.events {
		if !modeled.Contains(p.events[i].ID) {
			add([]int{i})
		}
	}

	// Channel rack.
	rack := p.Channels()
	if len(rack.idx) == 0 {
		if err := opts.report("channel rack"); err != nil {
			return nil, err
		}
	}
	add(rack.idx)

	// Patterns.
	pats := p.Patterns()
	if len(pats.idx) == 0 {
		if err := opts.report("patterns"); err != nil {
			return nil, err
		}
	}
	add(pats.idx)

	// Arrangements, each with its playlist, markers and tracks.
	arrs := p.Arrangements()
	if len(arrs.idx) == 0 {
		if err := opts.report("arrangements"); err != nil {
			return nil, err
		}
	}
	for _, ar := range arrs.All() {
		if len(ar.Tracks()) == 0 {
			if err := opts.report("arrangement tracks", "arrangement", ar.Number()); err != nil {
				return nil, err
			}
		}
	}
	add(arrs.idx)

	// Inserts with their slots.
	mixer := p.Mixer()
	if len(mixer.idx) == 0 {
		if err := opts.report("mixer"); err != nil {
			return nil, err
		}
	}
	add(mixer.idx)

	// Filter (display) groups last.
	add(p.collect(flpfile.DisplayGroupIDs))

	// Safety net: grouped identifiers can sit outside every model
	// region (channel events after the rack boundary, for one).
	// Unparsed events are never dropped.
	for i := range p.events {
		if !seen[i] {
			out = append(out, i)
		}
	}
	return out, nil
}

// writeFile is swapped out by tests to simulate write failures.
var writeFile = os.WriteFile

// Save serializes the project and writes it to path with default
// options. An empty path falls back to the path the project was
// parsed from.
func (p *Project) Save(path string) error {
	return p.SaveWith(path, SaveOptions{})
}

// SaveWith writes the serialized project to path, rotating any
// existing file there to a .bak sibling first. On a write failure the
// rotated original is moved back, so the caller is never left without
// a readable copy; the underlying I/O error is returned.
func (p *Project) SaveWith(path string, opts SaveOptions) error {
	if path == "" {
		path = p.path
	}
	if path == "" {
		return &MissingDestinationError{}
	}

	// Serialize before touching the disk: an encoding failure must
	// not disturb the existing file.
	data, err := p.Serialize(opts)
	if err != nil {
		return err
	}

	backup := path + ".bak"
	hadOriginal := false
	if _, err := os.Stat(path); err == nil {
		hadOriginal = true
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("rotate backup: %w", err)
		}
	}

	if err := writeFile(path, data, 0o666); err != nil {
		if hadOriginal {
			os.Remove(path)
			os.Rename(backup, path)
		}
		return fmt.Errorf("write %s: %w", path, err)
	}
	p.path = path
	return nil
}
