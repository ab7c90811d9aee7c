package flpfile

import (
	"encoding/binary"
	"fmt"
)

// Bytes encodes the file back into the FLP container format.
//
// The chunk length is recomputed from the current event payloads, never
// reused from the decode: text and blob events may have changed size.
// Encoding the events is checked against that declared length; a
// mismatch means an encoder bug and is returned as a plain error.
func (f *File) Bytes() ([]byte, error) {
	chunkLen := 0
	for i := range f.Events {
		chunkLen += f.Events[i].Size(f.Unicode)
	}

	out := make([]byte, 0, 22+chunkLen)
	out = append(out, "FLhd"...)
	out = binary.LittleEndian.AppendUint32(out, 6)
	out = binary.LittleEndian.AppendUint16(out, uint16(f.Format))
	out = binary.LittleEndian.AppendUint16(out, f.ChannelCount)
	out = binary.LittleEndian.AppendUint16(out, f.PPQ)
	out = append(out, "FLdt"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(chunkLen))

	mark := len(out)
	for i := range f.Events {
		var err error
		out, err = appendEvent(out, &f.Events[i], f.Unicode)
		if err != nil {
			return nil, err
		}
	}
	if written := len(out) - mark; written != chunkLen {
		return nil, fmt.Errorf("flpfile: encoded %d event bytes, declared %d", written, chunkLen)
	}
	return out, nil
}

func appendEvent(out []byte, ev *Event, unicode bool) ([]byte, error) {
	out = append(out, byte(ev.ID))
	switch ev.Kind {
	case KindBool, KindU8, KindI8:
		out = append(out, byte(ev.Int))
	case KindU16, KindI16:
		out = binary.LittleEndian.AppendUint16(out, uint16(ev.Int))
	case KindU32, KindI32:
		out = binary.LittleEndian.AppendUint32(out, uint32(ev.Int))
	case KindASCII:
		payload := encodeSingleByte(ev.Text)
		out = appendUleb(out, uint64(len(payload)))
		out = append(out, payload...)
	case KindText:
		var payload []byte
		if unicode {
			payload = encodeUTF16(ev.Text)
		} else {
			payload = encodeSingleByte(ev.Text)
		}
		out = appendUleb(out, uint64(len(payload)))
		out = append(out, payload...)
	case KindData:
		out = appendUleb(out, uint64(len(ev.Data)))
		out = append(out, ev.Data...)
	default:
		return nil, fmt.Errorf("flpfile: event %d has unknown payload kind %d", ev.ID, ev.Kind)
	}
	return out, nil
}
