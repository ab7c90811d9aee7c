package flp

import (
	"github.com/flpkit/flp/flpfile"
)

// ChannelKind classifies what a channel hosts, as far as the sample
// bundling collaborators need to know.
type ChannelKind uint8

const (
	ChannelSampler ChannelKind = iota
	ChannelAudio
	ChannelOther
)

func (k ChannelKind) String() string {
	switch k {
	case ChannelSampler:
		return "sampler"
	case ChannelAudio:
		return "audio"
	default:
		return "other"
	}
}

// Rack is a view over the channel rack region of the stream.
type Rack struct {
	p   *Project
	idx []int
}

// Swing returns the rack swing mix amount (0..128).
func (r Rack) Swing() (int, bool) {
	v, ok := r.p.intIn(r.idx, flpfile.IDSwing)
	return int(v), ok
}

func (r Rack) SetSwing(v int) error {
	if v < 0 || v > 128 {
		return &InvalidValueError{Property: "swing", Reason: "must be in 0..128"}
	}
	return r.p.setIntIn(r.idx, flpfile.IDSwing, int64(v), "swing")
}

// Channels splits the rack into per-channel views, one per new-channel
// event, in stream order.
func (r Rack) Channels() []Channel {
	_, groups := r.p.splitOn(r.idx, flpfile.IDNewChannel)
	chans := make([]Channel, len(groups))
	for i, g := range groups {
		chans[i] = Channel{p: r.p, idx: g}
	}
	return chans
}

// Channel is a view over one channel's events. The first event is
// always the new-channel event that opened it.
type Channel struct {
	p   *Project
	idx []int
}

// IID returns the channel's internal identifier.
func (c Channel) IID() int {
	v, _ := c.p.intIn(c.idx, flpfile.IDNewChannel)
	return int(v)
}

// Kind classifies the channel from its type event. Channels without
// one (very old files) default to sampler, matching FL's behavior.
func (c Channel) Kind() ChannelKind {
	v, ok := c.p.intIn(c.idx, flpfile.IDChannelType)
	if !ok {
		return ChannelSampler
	}
	switch v {
	case 0:
		return ChannelSampler
	case 1:
		return ChannelAudio
	default:
		return ChannelOther
	}
}

// Name returns the user-given channel name, falling back to the
// default name the generator supplied.
func (c Channel) Name() (string, bool) {
	if v, ok := c.p.textIn(c.idx, flpfile.IDChannelName); ok {
		return v, true
	}
	return c.p.textIn(c.idx, flpfile.IDChannelDefaultName)
}

func (c Channel) SetName(v string) error {
	return c.p.setTextIn(c.idx, flpfile.IDChannelName, v, "channel name")
}

func (c Channel) Enabled() (bool, bool) {
	return c.p.boolIn(c.idx, flpfile.IDChannelEnabled)
}

func (c Channel) SetEnabled(v bool) error {
	return c.p.setBoolIn(c.idx, flpfile.IDChannelEnabled, v, "channel enabled")
}

// SamplePath returns the path of the sample the channel plays.
// Relevant for sampler and audio channels only.
func (c Channel) SamplePath() (string, bool) {
	return c.p.textIn(c.idx, flpfile.IDSamplePath)
}

func (c Channel) SetSamplePath(v string) error {
	return c.p.setTextIn(c.idx, flpfile.IDSamplePath, v, "sample path")
}

// Zipped reports whether the channel is shown zipped in the rack.
func (c Channel) Zipped() (bool, bool) {
	return c.p.boolIn(c.idx, flpfile.IDZipped)
}

// Icon returns the channel icon id.
func (c Channel) Icon() (int, bool) {
	v, ok := c.p.intIn(c.idx, flpfile.IDChannelIcon)
	return int(v), ok
}
