// Package ctrl implements the pekwm_ctrl control channel: a command
// string is sent to the window manager as one or more ClientMessage
// events on the root window, each carrying a 20-byte payload whose last
// byte is a chunk opcode (spec.md 6 "Control channel").
package ctrl

import "fmt"

// Opcode identifies a chunk's position within a reassembled command.
type Opcode byte

const (
	// Only means the entire command fit in a single message.
	Only Opcode = 0
	// Start begins a multi-message command.
	Start Opcode = 1
	// Middle continues a multi-message command.
	Middle Opcode = 2
	// End completes a multi-message command.
	End Opcode = 3
)

// messageSize is the fixed ClientMessage payload size; the final byte
// is the opcode, leaving dataSize bytes of command text per message
// (spec.md 6: "a 20-byte payload... the per-message last byte is an
// opcode").
const (
	messageSize = 20
	dataSize    = messageSize - 1
)

// Message is one 20-byte ClientMessage payload.
type Message [messageSize]byte

// Opcode returns the chunk opcode carried in msg's last byte.
func (m Message) Opcode() Opcode { return Opcode(m[messageSize-1]) }

// Data returns the command-text bytes carried in msg, excluding any
// trailing zero padding for chunks shorter than dataSize.
func (m Message) Data() []byte {
	n := dataSize
	for n > 0 && m[n-1] == 0 {
		n--
	}
	return m[:n]
}

// Encode splits cmd into the ClientMessage sequence pekwm_ctrl would
// send: a single Only-opcode message if it fits in dataSize bytes,
// otherwise a Start chunk, zero or more Middle chunks, and an End
// chunk (spec.md 8 test scenario 5: a 45-byte command yields 3 messages
// with opcodes 1, 2, 3).
func Encode(cmd string) []Message {
	data := []byte(cmd)
	if len(data) <= dataSize {
		var m Message
		copy(m[:dataSize], data)
		m[messageSize-1] = byte(Only)
		return []Message{m}
	}

	var out []Message
	for offset := 0; offset < len(data); offset += dataSize {
		end := offset + dataSize
		if end > len(data) {
			end = len(data)
		}
		var m Message
		copy(m[:dataSize], data[offset:end])
		switch {
		case offset == 0:
			m[messageSize-1] = byte(Start)
		case end == len(data):
			m[messageSize-1] = byte(End)
		default:
			m[messageSize-1] = byte(Middle)
		}
		out = append(out, m)
	}
	return out
}

// Assembler reconstructs a command string from a sequence of Messages,
// one control channel's worth of in-flight state.
type Assembler struct {
	buf []byte
	inProgress bool
}

// Feed processes one incoming Message. It returns (cmd, true) once an
// Only or End chunk completes a command; otherwise ("", false) while
// more chunks are expected.
func (a *Assembler) Feed(m Message) (string, bool, error) {
	switch m.Opcode() {
	case Only:
		return string(m.Data()), true, nil
	case Start:
		a.buf = append([]byte(nil), m.Data()...)
		a.inProgress = true
		return "", false, nil
	case Middle:
		if !a.inProgress {
			return "", false, fmt.Errorf("ctrl: middle chunk with no start in progress")
		}
		a.buf = append(a.buf, m.Data()...)
		return "", false, nil
	case End:
		if !a.inProgress {
			return "", false, fmt.Errorf("ctrl: end chunk with no start in progress")
		}
		a.buf = append(a.buf, m.Data()...)
		a.inProgress = false
		cmd := string(a.buf)
		a.buf = nil
		return cmd, true, nil
	default:
		return "", false, fmt.Errorf("ctrl: unknown opcode %d", m.Opcode())
	}
}

// Reset discards any in-progress reassembly, used when the control
// channel's owning window goes away mid-sequence.
func (a *Assembler) Reset() {
	a.buf = nil
	a.inProgress = false
}
