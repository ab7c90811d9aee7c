package flpfile

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

type parser struct {
	// Data holds the FLP file input data bytes.
	data []byte

	// Offset is our current position inside the data.
	offset int

	// File holds the results of the decode.
	file File

	// These fields below are needed for better error reporting.
	stage      string
	stageIndex int
}

func (p *parser) startStage(name string) {
	p.stage = name
	p.stageIndex = -1
}

func (p *parser) formatStage() string {
	if p.stageIndex >= 0 {
		return fmt.Sprintf("%s[%d]", p.stage, p.stageIndex)
	}
	return p.stage
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	text := fmt.Sprintf(format, args...)
	tag := p.formatStage()
	if tag != "" {
		text = tag + ": " + text
	}
	e := &ParseError{
		Message: text,
		Offset:  p.offset,
	}
	return e
}

func (p *parser) dataBytesRemaining() int {
	return len(p.data) - p.offset
}

func (p *parser) read(l int, what string) []byte {
	if p.dataBytesRemaining() < l {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	b := p.data[p.offset : p.offset+l]
	p.offset += l
	return b
}

func (p *parser) readByte(what string) uint8 {
	if p.dataBytesRemaining() < 1 {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	b := p.data[p.offset]
	p.offset++
	return b
}

func (p *parser) readWord(what string) uint16 {
	if p.dataBytesRemaining() < 2 {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	v := binary.LittleEndian.Uint16(p.data[p.offset:])
	p.offset += 2
	return v
}

func (p *parser) readDword(what string) uint32 {
	if p.dataBytesRemaining() < 4 {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	v := binary.LittleEndian.Uint32(p.data[p.offset:])
	p.offset += 4
	return v
}

// readLength reads the variable-length integer that prefixes text and
// blob payloads: 7 bits per byte, little-endian, MSB set on
// continuation bytes.
func (p *parser) readLength(what string) int {
	var v uint64
	var shift uint
	for {
		b := p.readByte(what)
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return int(v)
		}
		shift += 7
		if shift > 35 {
			panic(p.errorf("%s does not terminate", what))
		}
	}
}

func (p *parser) parse() (err error) {
	defer func() {
		rv := recover()
		if rv != nil {
			if panicErr, ok := rv.(*ParseError); ok {
				err = panicErr
			} else {
				panic(rv)
			}
		}
	}()

	p.parseFile()

	return err // See the deferred call above
}

func (p *parser) parseFile() {
	p.startStage("header")
	if magic := p.read(4, "header magic"); string(magic) != "FLhd" {
		panic(p.errorf("unexpected header magic: %q", magic))
	}
	if l := p.readDword("header length"); l != 6 {
		panic(p.errorf("unexpected header length: %d", l))
	}
	p.file.Format = int16(p.readWord("format"))
	p.file.ChannelCount = p.readWord("channel count")
	p.file.PPQ = p.readWord("ppq")

	p.startStage("data")
	if magic := p.read(4, "data magic"); string(magic) != "FLdt" {
		panic(p.errorf("unexpected data magic: %q", magic))
	}
	chunkLen := int(p.readDword("chunk length"))
	if p.dataBytesRemaining() < chunkLen {
		panic(p.errorf("declared chunk length %d exceeds the %d remaining bytes", chunkLen, p.dataBytesRemaining()))
	}
	end := p.offset + chunkLen

	p.startStage("event")
	for p.offset < end {
		p.stageIndex = len(p.file.Events)
		p.parseEvent()
	}
	if p.offset != end {
		panic(p.errorf("events consumed %d bytes past the declared chunk length", p.offset-end))
	}
}

func (p *parser) parseEvent() {
	id := EventID(p.readByte("event id"))
	ev := Event{
		ID:    id,
		Index: len(p.file.Events),
		Kind:  KindOf(id),
	}

	switch ev.Kind {
	case KindBool, KindU8:
		ev.Int = int64(p.readByte("event value"))
	case KindI8:
		ev.Int = int64(int8(p.readByte("event value")))
	case KindU16:
		ev.Int = int64(p.readWord("event value"))
	case KindI16:
		ev.Int = int64(int16(p.readWord("event value")))
	case KindU32:
		ev.Int = int64(p.readDword("event value"))
	case KindI32:
		ev.Int = int64(int32(p.readDword("event value")))
	default:
		size := p.readLength("payload length")
		payload := p.read(size, "event payload")
		switch ev.Kind {
		case KindASCII:
			ev.Text = decodeSingleByte(payload)
		case KindText:
			if p.file.Unicode {
				ev.Text = decodeUTF16(payload)
			} else {
				ev.Text = decodeSingleByte(payload)
			}
		default:
			// Events own their payloads; don't alias the input.
			ev.Data = append([]byte(nil), payload...)
		}
	}

	if id == IDVersion {
		p.file.Unicode = versionUsesUnicode(ev.Text)
	}

	p.file.Events = append(p.file.Events, ev)
}

// versionUsesUnicode reports whether a file saved by the given FL
// Studio version stores text as UTF-16. The switch happened in 11.5.
func versionUsesUnicode(version string) bool {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return major > 11 || (major == 11 && minor >= 5)
}
