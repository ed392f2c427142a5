package ctrl

import (
	"strings"
	"testing"
)

func TestEncodeShortCommandIsSingleMessage(t *testing.T) {
	msgs := Encode("Close")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Opcode() != Only {
		t.Fatalf("expected Only opcode, got %d", msgs[0].Opcode())
	}
	if string(msgs[0].Data()) != "Close" {
		t.Fatalf("got %q", msgs[0].Data())
	}
}

func TestEncode45ByteCommandYields3ChunksWithExpectedOpcodes(t *testing.T) {
	cmd := strings.Repeat("x", 45)
	msgs := Encode(cmd)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	wantOpcodes := []Opcode{Start, Middle, End}
	for i, want := range wantOpcodes {
		if msgs[i].Opcode() != want {
			t.Fatalf("message %d: got opcode %d, want %d", i, msgs[i].Opcode(), want)
		}
	}
	if len(msgs[0].Data()) != dataSize || len(msgs[1].Data()) != dataSize {
		t.Fatalf("expected first two chunks to carry %d bytes each", dataSize)
	}
	if len(msgs[2].Data()) != 45-2*dataSize {
		t.Fatalf("expected final chunk to carry the remainder, got %d bytes", len(msgs[2].Data()))
	}
}

func TestAssemblerReassemblesChunkedCommand(t *testing.T) {
	cmd := strings.Repeat("y", 45)
	msgs := Encode(cmd)
	var a Assembler
	var got string
	for _, m := range msgs {
		cmdOut, done, err := a.Feed(m)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if done {
			got = cmdOut
		}
	}
	if got != cmd {
		t.Fatalf("got %q, want original command back", got)
	}
}

func TestAssemblerHandlesSingleMessageCommand(t *testing.T) {
	var a Assembler
	got, done, err := a.Feed(Encode("Quit")[0])
	if err != nil || !done {
		t.Fatalf("expected immediate completion, got done=%v err=%v", done, err)
	}
	if got != "Quit" {
		t.Fatalf("got %q", got)
	}
}

func TestAssemblerRejectsMiddleWithoutStart(t *testing.T) {
	var a Assembler
	var m Message
	m[messageSize-1] = byte(Middle)
	if _, _, err := a.Feed(m); err == nil {
		t.Fatalf("expected error for orphan middle chunk")
	}
}
