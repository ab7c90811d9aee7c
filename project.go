package flp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/flpkit/flp/flpfile"
)

// delphiEpoch is day zero of the timestamp event fields.
var delphiEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// validPPQs is the closed set of timing resolutions FL Studio accepts.
var validPPQs = [...]int{24, 48, 72, 96, 120, 144, 168, 192, 384, 768, 960}

// PanLaw is the project-wide panning law.
type PanLaw uint8

const (
	PanLawCircular   PanLaw = 0
	PanLawTriangular PanLaw = 2
)

// Title returns the project title.
func (p *Project) Title() (string, bool) { return p.textValue(flpfile.IDTitle) }

func (p *Project) SetTitle(v string) error {
	return p.setTextValue(flpfile.IDTitle, v, "title")
}

func (p *Project) Artists() (string, bool) { return p.textValue(flpfile.IDArtists) }

func (p *Project) SetArtists(v string) error {
	return p.setTextValue(flpfile.IDArtists, v, "artists")
}

func (p *Project) Genre() (string, bool) { return p.textValue(flpfile.IDGenre) }

func (p *Project) SetGenre(v string) error {
	return p.setTextValue(flpfile.IDGenre, v, "genre")
}

func (p *Project) URL() (string, bool) { return p.textValue(flpfile.IDURL) }

func (p *Project) SetURL(v string) error {
	return p.setTextValue(flpfile.IDURL, v, "url")
}

// Comments returns the project description. Very old FL versions kept
// comments as RTF in a separate event; that raw RTF text is returned
// as-is, no conversion is attempted.
func (p *Project) Comments() (string, bool) {
	if v, ok := p.textValue(flpfile.IDComments); ok {
		return v, true
	}
	return p.textValue(flpfile.IDCommentsRTF)
}

func (p *Project) SetComments(v string) error {
	if _, ok := p.textValue(flpfile.IDComments); ok {
		return p.setTextValue(flpfile.IDComments, v, "comments")
	}
	return p.setTextValue(flpfile.IDCommentsRTF, v, "comments")
}

// DataPath returns the absolute path FL uses to store renders.
func (p *Project) DataPath() (string, bool) { return p.textValue(flpfile.IDDataPath) }

func (p *Project) SetDataPath(v string) error {
	if v == "." {
		v = ""
	}
	return p.setTextValue(flpfile.IDDataPath, v, "data path")
}

// ShowInfo reports whether FL shows the project info banner on load.
func (p *Project) ShowInfo() (bool, bool) { return p.boolValue(flpfile.IDShowInfo) }

func (p *Project) SetShowInfo(v bool) error {
	return p.setBoolValue(flpfile.IDShowInfo, v, "show info")
}

func (p *Project) Looped() (bool, bool) { return p.boolValue(flpfile.IDLoopActive) }

func (p *Project) SetLooped(v bool) error {
	return p.setBoolValue(flpfile.IDLoopActive, v, "looped")
}

// Licensed reports whether the project was last saved with a licensed
// copy of FL Studio.
func (p *Project) Licensed() (bool, bool) { return p.boolValue(flpfile.IDLicensed) }

func (p *Project) SetLicensed(v bool) error {
	return p.setBoolValue(flpfile.IDLicensed, v, "licensed")
}

func (p *Project) MainVolume() (int, bool) {
	v, ok := p.intValue(flpfile.IDMainVolume)
	return int(v), ok
}

func (p *Project) SetMainVolume(v int) error {
	return p.setIntValue(flpfile.IDMainVolume, int64(v), "main volume")
}

func (p *Project) MainPitch() (int, bool) {
	v, ok := p.intValue(flpfile.IDMainPitch)
	return int(v), ok
}

func (p *Project) SetMainPitch(v int) error {
	return p.setIntValue(flpfile.IDMainPitch, int64(v), "main pitch")
}

func (p *Project) PanLaw() (PanLaw, bool) {
	v, ok := p.intValue(flpfile.IDPanLaw)
	return PanLaw(v), ok
}

func (p *Project) SetPanLaw(v PanLaw) error {
	return p.setIntValue(flpfile.IDPanLaw, int64(v), "pan law")
}

func (p *Project) CurrentGroup() (int, bool) {
	v, ok := p.intValue(flpfile.IDCurrentGroup)
	return int(v), ok
}

// ChannelCount returns the channel count from the container header.
// For Patcher presets this counts the plugins used inside the preset.
func (p *Project) ChannelCount() int { return p.channelCount }

func (p *Project) SetChannelCount(n int) error {
	if n < 0 {
		return &InvalidValueError{Property: "channel count", Reason: "cannot be negative"}
	}
	p.channelCount = n
	return nil
}

// PPQ returns the pulses-per-quarter timing resolution. Every length,
// position and offset in the project is expressed in these pulses.
func (p *Project) PPQ() int { return p.ppq }

// SetPPQ sets the timing resolution. It does not recalculate any of
// the pulse-based positions and lengths; FL Studio does that itself
// when the value is changed from the UI.
func (p *Project) SetPPQ(v int) error {
	for _, valid := range validPPQs {
		if v == valid {
			p.ppq = v
			return nil
		}
	}
	return &ExpectedValueError{Property: "ppq", Want: fmt.Sprintf("one of %v", validPPQs)}
}

// Tempo returns the tempo in BPM at the playhead position.
//
// Files saved by recent FL versions store BPM*1000 in one event;
// legacy files split the whole and the fractional part across two
// events, either of which may be missing on its own.
func (p *Project) Tempo() (float64, bool) {
	if v, ok := p.intValue(flpfile.IDTempo); ok {
		return float64(v) / 1000, true
	}
	var bpm float64
	found := false
	if v, ok := p.intValue(flpfile.IDTempoCoarse); ok {
		bpm += float64(v)
		found = true
	}
	if v, ok := p.intValue(flpfile.IDTempoFine); ok {
		bpm += float64(v) / 1000
		found = true
	}
	return bpm, found
}

// SetTempo writes v into every tempo representation present in the
// stream, so the unified and legacy forms cannot diverge on save.
func (p *Project) SetTempo(v float64) error {
	found := false
	if ev := p.findEvent(flpfile.IDTempo); ev != nil {
		ev.Int = int64(math.Round(v * 1000))
		found = true
	}
	if ev := p.findEvent(flpfile.IDTempoCoarse); ev != nil {
		ev.Int = int64(math.Floor(v))
		found = true
	}
	if ev := p.findEvent(flpfile.IDTempoFine); ev != nil {
		ev.Int = int64((v - math.Floor(v)) * 1000)
		found = true
	}
	if !found {
		return &PropertyNotSettableError{Property: "tempo"}
	}
	return nil
}

// Version is an FL Studio version. Old versions did not emit a build
// number, so it is optional.
type Version struct {
	Major, Minor, Patch int

	Build    int
	HasBuild bool
}

func (v Version) String() string {
	if v.HasBuild {
		return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Build)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses a dot-joined version string with 3 or 4 decimal
// components.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 3 || len(parts) > 4 {
		return Version{}, &ExpectedValueError{Property: "version", Want: "major.minor.patch or major.minor.patch.build"}
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, &ExpectedValueError{Property: "version", Want: "decimal integer components"}
		}
		nums[i] = n
	}
	v := Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}
	if len(nums) == 4 {
		v.Build = nums[3]
		v.HasBuild = true
	}
	return v, nil
}

// Version returns the FL Studio version that saved the file. The
// backing event stays single-byte text in every file for backward
// compatibility, unlike the rest of the text events.
func (p *Project) Version() (Version, error) {
	s, ok := p.textValue(flpfile.IDVersion)
	if !ok {
		return Version{}, fmt.Errorf("flp: version event is absent")
	}
	return ParseVersion(s)
}

// SetVersion writes the dot-joined version string and, when a build
// component is present, echoes it into the redundant build event.
func (p *Project) SetVersion(v Version) error {
	ev := p.findEvent(flpfile.IDVersion)
	if ev == nil {
		return &PropertyNotSettableError{Property: "version"}
	}
	ev.Text = v.String()
	if v.HasBuild {
		if build := p.findEvent(flpfile.IDBuild); build != nil {
			build.Int = int64(v.Build)
		}
	}
	return nil
}

// SetVersionString parses s with ParseVersion and sets the version.
func (p *Project) SetVersionString(s string) error {
	v, err := ParseVersion(s)
	if err != nil {
		return err
	}
	return p.SetVersion(v)
}

// Build returns the FL build number event value.
func (p *Project) Build() (int, bool) {
	v, ok := p.intValue(flpfile.IDBuild)
	return int(v), ok
}

// Licensee returns the license holder's username, deobfuscated from
// the stored form. Saving with a trial copy leaves it empty.
//
// The cipher drops characters with no valid candidate at their
// position: it is lossy for arbitrary external input, but round-trips
// everything SetLicensee writes.
func (p *Project) Licensee() (string, bool) {
	s, ok := p.textValue(flpfile.IDLicensee)
	if !ok {
		return "", false
	}
	return decodeLicensee(s), true
}

func (p *Project) SetLicensee(name string) error {
	ev := p.findEvent(flpfile.IDLicensee)
	if ev == nil {
		return &PropertyNotSettableError{Property: "licensee"}
	}
	ev.Text = encodeLicensee(name)
	return nil
}

func decodeLicensee(s string) string {
	out := make([]byte, 0, len(s))
	for idx := 0; idx < len(s); idx++ {
		c1 := int(s[idx]) - 26 + idx
		c2 := int(s[idx]) + 49 + idx
		switch {
		case isASCIIAlnum(c1):
			out = append(out, byte(c1))
		case isASCIIAlnum(c2):
			out = append(out, byte(c2))
		}
	}
	return string(out)
}

func encodeLicensee(s string) string {
	out := make([]byte, 0, len(s))
	for idx := 0; idx < len(s); idx++ {
		c1 := int(s[idx]) + 26 - idx
		c2 := int(s[idx]) - 49 - idx
		for _, c := range [2]int{c1, c2} {
			if c >= 1 && c <= 127 {
				out = append(out, byte(c))
				break
			}
		}
	}
	return string(out)
}

func isASCIIAlnum(c int) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func (p *Project) timestamp() (flpfile.Record, error) {
	ev := p.findEvent(flpfile.IDTimestamp)
	if ev == nil {
		return flpfile.Record{}, ErrNoTimestamp
	}
	return flpfile.TimestampLayout.View(ev.Data)
}

// CreatedOn returns the local date and time the project was created.
// There is no setter: FL Studio manages time tracking exclusively.
func (p *Project) CreatedOn() (time.Time, error) {
	rec, err := p.timestamp()
	if err != nil {
		return time.Time{}, err
	}
	return delphiEpoch.Add(daysToDuration(rec.F64("created_on"))), nil
}

// TimeSpent returns the time worked on the project since its creation,
// or since the last reset through FL's interface.
func (p *Project) TimeSpent() (time.Duration, error) {
	rec, err := p.timestamp()
	if err != nil {
		return 0, err
	}
	return daysToDuration(rec.F64("time_spent")), nil
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}

// Channels returns the channel rack view. Rack data is not separated
// from mixer data by a dedicated boundary marker: the rack's slice of
// the stream ends at the first insert-flags event.
func (p *Project) Channels() Rack {
	var idx []int
	for i := range p.events {
		id := p.events[i].ID
		if id == flpfile.IDInsertFlags {
			break
		}
		if flpfile.ChannelIDs.Contains(id) ||
			flpfile.DisplayGroupIDs.Contains(id) ||
			flpfile.PluginIDs.Contains(id) ||
			flpfile.RackIDs.Contains(id) {
			idx = append(idx, i)
		}
	}
	return Rack{p: p, idx: idx}
}

// Mixer returns the mixer view over the insert and slot events.
func (p *Project) Mixer() Mixer {
	return Mixer{p: p, idx: p.collect(flpfile.MixerIDs, flpfile.InsertIDs, flpfile.SlotIDs)}
}

// Patterns returns the patterns view.
func (p *Project) Patterns() Patterns {
	return Patterns{p: p, idx: p.collect(flpfile.PatternsIDs, flpfile.PatternIDs)}
}

// Arrangements returns the arrangements view, including the playlist,
// track and time-marker events of every arrangement.
func (p *Project) Arrangements() Arrangements {
	return Arrangements{p: p, idx: p.collect(
		flpfile.ArrangementsIDs, flpfile.ArrangementIDs,
		flpfile.TrackIDs, flpfile.TimeMarkerIDs,
	)}
}
