package flpfile

import (
	"fmt"
)

// Known event identifiers. The registry is a closed set: FL Studio has
// emitted many more identifiers over the years than are modeled here,
// and unmodeled events are carried through re-serialization unchanged.
const (
	// BYTE range (boolean / 8-bit).
	IDChannelEnabled        EventID = 0
	IDLoopActive            EventID = 9
	IDShowInfo              EventID = 10
	IDSwing                 EventID = 11
	IDMainVolume            EventID = 12
	IDZipped                EventID = 15
	IDTimeSigNumerator      EventID = 17
	IDTimeSigBeat           EventID = 18
	IDChannelType           EventID = 21
	IDPanLaw                EventID = 23
	IDLicensed              EventID = 28
	IDAPDC                  EventID = 29
	IDPlayTruncatedNotes    EventID = 30
	IDTimeMarkerNumerator   EventID = 33
	IDTimeMarkerDenominator EventID = 34

	// WORD range (16-bit).
	IDNewChannel         EventID = RangeWord + 0
	IDNewPattern         EventID = RangeWord + 1
	IDTempoCoarse        EventID = RangeWord + 2
	IDMainPitch          EventID = RangeWord + 16
	IDTempoFine          EventID = RangeWord + 29
	IDSlotIndex          EventID = RangeWord + 30
	IDInsertIcon         EventID = RangeWord + 31
	IDNewArrangement     EventID = RangeWord + 35
	IDCurrentArrangement EventID = RangeWord + 36

	// DWORD range (32-bit).
	IDPluginColor        EventID = RangeDWord + 0
	IDCurrentGroup       EventID = RangeDWord + 18
	IDInsertOutput       EventID = RangeDWord + 19
	IDTimeMarkerPosition EventID = RangeDWord + 20
	IDInsertColor        EventID = RangeDWord + 21
	IDPatternColor       EventID = RangeDWord + 22
	IDInsertInput        EventID = RangeDWord + 26
	IDChannelIcon        EventID = RangeDWord + 27
	IDTempo              EventID = RangeDWord + 28
	IDBuild              EventID = RangeDWord + 31

	// TEXT range.
	IDChannelName        EventID = RangeText + 0
	IDPatternName        EventID = RangeText + 1
	IDTitle              EventID = RangeText + 2
	IDComments           EventID = RangeText + 3
	IDSamplePath         EventID = RangeText + 4
	IDURL                EventID = RangeText + 5
	IDCommentsRTF        EventID = RangeText + 6
	IDVersion            EventID = RangeText + 7
	IDLicensee           EventID = RangeText + 8
	IDChannelDefaultName EventID = RangeText + 9
	IDDataPath           EventID = RangeText + 10
	IDInsertName         EventID = RangeText + 12
	IDTimeMarkerName     EventID = RangeText + 13
	IDGenre              EventID = RangeText + 14
	IDArtists            EventID = RangeText + 15

	// DATA range (length-prefixed blobs, some overridden to text).
	IDNewPlugin          EventID = RangeData + 4
	IDPluginData         EventID = RangeData + 5
	IDChannelParams      EventID = RangeData + 7
	IDChannelEnvelope    EventID = RangeData + 10
	IDChannelLevels      EventID = RangeData + 11
	IDPatternControllers EventID = RangeData + 15
	IDPatternNotes       EventID = RangeData + 16
	IDMixerParams        EventID = RangeData + 17
	IDDisplayGroupName   EventID = RangeData + 23
	IDPlaylistItems      EventID = RangeData + 25
	IDInsertRouting      EventID = RangeData + 27
	IDInsertFlags        EventID = RangeData + 28
	IDTimestamp          EventID = RangeData + 29
	IDTrackData          EventID = RangeData + 30
	IDTrackName          EventID = RangeData + 31
	IDArrangementName    EventID = RangeData + 33
)

// Entry describes one registry identifier.
type Entry struct {
	Name string

	// Kind is the payload kind; it overrides the range default when
	// it differs (booleans inside BYTE, signed widths, text stored in
	// the DATA range, the always-ASCII version event).
	Kind Kind
}

var registry = map[EventID]Entry{
	IDChannelEnabled:        {"ChannelEnabled", KindBool},
	IDLoopActive:            {"LoopActive", KindBool},
	IDShowInfo:              {"ShowInfo", KindBool},
	IDSwing:                 {"Swing", KindU8},
	IDMainVolume:            {"MainVolume", KindU8},
	IDZipped:                {"Zipped", KindBool},
	IDTimeSigNumerator:      {"TimeSigNumerator", KindU8},
	IDTimeSigBeat:           {"TimeSigBeat", KindU8},
	IDChannelType:           {"ChannelType", KindU8},
	IDPanLaw:                {"PanLaw", KindU8},
	IDLicensed:              {"Licensed", KindBool},
	IDAPDC:                  {"APDC", KindBool},
	IDPlayTruncatedNotes:    {"PlayTruncatedNotes", KindBool},
	IDTimeMarkerNumerator:   {"TimeMarkerNumerator", KindU8},
	IDTimeMarkerDenominator: {"TimeMarkerDenominator", KindU8},

	IDNewChannel:         {"NewChannel", KindU16},
	IDNewPattern:         {"NewPattern", KindU16},
	IDTempoCoarse:        {"TempoCoarse", KindU16},
	IDMainPitch:          {"MainPitch", KindI16},
	IDTempoFine:          {"TempoFine", KindU16},
	IDSlotIndex:          {"SlotIndex", KindU16},
	IDInsertIcon:         {"InsertIcon", KindI16},
	IDNewArrangement:     {"NewArrangement", KindU16},
	IDCurrentArrangement: {"CurrentArrangement", KindU16},

	IDPluginColor:        {"PluginColor", KindI32},
	IDCurrentGroup:       {"CurrentGroup", KindI32},
	IDInsertOutput:       {"InsertOutput", KindI32},
	IDTimeMarkerPosition: {"TimeMarkerPosition", KindU32},
	IDInsertColor:        {"InsertColor", KindI32},
	IDPatternColor:       {"PatternColor", KindI32},
	IDInsertInput:        {"InsertInput", KindI32},
	IDChannelIcon:        {"ChannelIcon", KindI32},
	IDTempo:              {"Tempo", KindU32},
	IDBuild:              {"Build", KindU32},

	IDChannelName:        {"ChannelName", KindText},
	IDPatternName:        {"PatternName", KindText},
	IDTitle:              {"Title", KindText},
	IDComments:           {"Comments", KindText},
	IDSamplePath:         {"SamplePath", KindText},
	IDURL:                {"URL", KindText},
	IDCommentsRTF:        {"CommentsRTF", KindText},
	IDVersion:            {"Version", KindASCII},
	IDLicensee:           {"Licensee", KindText},
	IDChannelDefaultName: {"ChannelDefaultName", KindText},
	IDDataPath:           {"DataPath", KindText},
	IDInsertName:         {"InsertName", KindText},
	IDTimeMarkerName:     {"TimeMarkerName", KindText},
	IDGenre:              {"Genre", KindText},
	IDArtists:            {"Artists", KindText},

	IDNewPlugin:          {"NewPlugin", KindData},
	IDPluginData:         {"PluginData", KindData},
	IDChannelParams:      {"ChannelParams", KindData},
	IDChannelEnvelope:    {"ChannelEnvelope", KindData},
	IDChannelLevels:      {"ChannelLevels", KindData},
	IDPatternControllers: {"PatternControllers", KindData},
	IDPatternNotes:       {"PatternNotes", KindData},
	IDMixerParams:        {"MixerParams", KindData},
	IDDisplayGroupName:   {"DisplayGroupName", KindText},
	IDPlaylistItems:      {"PlaylistItems", KindData},
	IDInsertRouting:      {"InsertRouting", KindData},
	IDInsertFlags:        {"InsertFlags", KindData},
	IDTimestamp:          {"Timestamp", KindData},
	IDTrackData:          {"TrackData", KindData},
	IDTrackName:          {"TrackName", KindText},
	IDArrangementName:    {"ArrangementName", KindText},
}

// Lookup returns the registry entry for id.
func Lookup(id EventID) (Entry, bool) {
	e, ok := registry[id]
	return e, ok
}

// KindOf returns the payload kind for id: the registry override if one
// exists, the range default otherwise.
func KindOf(id EventID) Kind {
	if e, ok := registry[id]; ok {
		return e.Kind
	}
	return RangeKind(id)
}

// RangeKind returns the default payload kind of the range id falls into.
func RangeKind(id EventID) Kind {
	switch {
	case id < RangeWord:
		return KindU8
	case id < RangeDWord:
		return KindU16
	case id < RangeText:
		return KindU32
	case id < RangeData:
		return KindText
	default:
		return KindData
	}
}

// String returns the registry name for the identifier, or "event(N)"
// for identifiers the registry does not model.
func (id EventID) String() string {
	if e, ok := registry[id]; ok {
		return e.Name
	}
	return fmt.Sprintf("event(%d)", uint8(id))
}

// IDSet is a set of event identifiers. The model layer declares one
// set per domain and filters the event sequence through unions of them.
type IDSet struct {
	bits [4]uint64
}

// NewIDSet returns a set holding the given identifiers.
func NewIDSet(ids ...EventID) IDSet {
	var s IDSet
	for _, id := range ids {
		s.bits[id>>6] |= 1 << (id & 63)
	}
	return s
}

// Contains reports whether id belongs to the set.
func (s IDSet) Contains(id EventID) bool {
	return s.bits[id>>6]&(1<<(id&63)) != 0
}

// Union returns the union of the given sets.
func Union(sets ...IDSet) IDSet {
	var out IDSet
	for _, s := range sets {
		for i := range out.bits {
			out.bits[i] |= s.bits[i]
		}
	}
	return out
}

// Filter returns the indices of the events whose identifier belongs to
// the union of the given sets, preserving stream order.
func Filter(events []Event, sets ...IDSet) []int {
	u := Union(sets...)
	var out []int
	for i := range events {
		if u.Contains(events[i].ID) {
			out = append(out, i)
		}
	}
	return out
}

// Identifier groups, one per semantic model. These drive the grouped
// lookup every model uses to select its slice of the event sequence.
var (
	ProjectIDs = NewIDSet(
		IDLoopActive, IDShowInfo, IDMainVolume, IDPanLaw, IDLicensed,
		IDTempoCoarse, IDMainPitch, IDTempoFine, IDCurrentGroup,
		IDTempo, IDBuild, IDTitle, IDComments, IDURL, IDCommentsRTF,
		IDVersion, IDLicensee, IDDataPath, IDGenre, IDArtists,
		IDTimestamp,
	)
	RackIDs    = NewIDSet(IDSwing)
	ChannelIDs = NewIDSet(
		IDChannelEnabled, IDZipped, IDChannelType, IDNewChannel,
		IDChannelIcon, IDChannelName, IDSamplePath,
		IDChannelDefaultName, IDChannelParams, IDChannelEnvelope,
		IDChannelLevels,
	)
	DisplayGroupIDs = NewIDSet(IDDisplayGroupName)
	PluginIDs       = NewIDSet(IDPluginColor, IDNewPlugin, IDPluginData)
	PatternsIDs     = NewIDSet(IDPlayTruncatedNotes)
	PatternIDs      = NewIDSet(
		IDNewPattern, IDPatternColor, IDPatternName,
		IDPatternControllers, IDPatternNotes,
	)
	ArrangementsIDs = NewIDSet(IDTimeSigNumerator, IDTimeSigBeat, IDCurrentArrangement)
	ArrangementIDs  = NewIDSet(IDNewArrangement, IDArrangementName, IDPlaylistItems)
	TrackIDs        = NewIDSet(IDTrackData, IDTrackName)
	TimeMarkerIDs   = NewIDSet(
		IDTimeMarkerNumerator, IDTimeMarkerDenominator,
		IDTimeMarkerPosition, IDTimeMarkerName,
	)
	MixerIDs  = NewIDSet(IDAPDC, IDMixerParams)
	InsertIDs = NewIDSet(
		IDInsertIcon, IDInsertOutput, IDInsertColor, IDInsertInput,
		IDInsertName, IDInsertRouting, IDInsertFlags,
	)
	SlotIDs = NewIDSet(IDSlotIndex)
)
