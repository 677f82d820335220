package loopback

import (
	"bytes"
	"testing"
)

func TestPopNextLine(t *testing.T) {
	tests := []struct {
		name     string
		buf      string
		wantLine string
		wantRest string
		wantOK   bool
	}{
		{
			name:     "lone LF",
			buf:      "hello\nworld",
			wantLine: "hello",
			wantRest: "world",
			wantOK:   true,
		},
		{
			name:     "lone CR",
			buf:      "hello\rworld",
			wantLine: "hello",
			wantRest: "world",
			wantOK:   true,
		},
		{
			name:     "CRLF pair consumed as one terminator",
			buf:      "hello\r\nworld",
			wantLine: "hello",
			wantRest: "world",
			wantOK:   true,
		},
		{
			name:     "LFCR pair consumed as one terminator",
			buf:      "hello\n\rworld",
			wantLine: "hello",
			wantRest: "world",
			wantOK:   true,
		},
		{
			name:     "repeated LF closes one line per byte",
			buf:      "hello\n\nworld",
			wantLine: "hello",
			wantRest: "\nworld",
			wantOK:   true,
		},
		{
			name:     "repeated CR closes one line per byte",
			buf:      "hello\r\rworld",
			wantLine: "hello",
			wantRest: "\rworld",
			wantOK:   true,
		},
		{
			name:     "terminator at buffer start yields empty line",
			buf:      "\nhello",
			wantLine: "",
			wantRest: "hello",
			wantOK:   true,
		},
		{
			name:     "CR at buffer end consumed alone",
			buf:      "hello\r",
			wantLine: "hello",
			wantRest: "",
			wantOK:   true,
		},
		{
			name:     "no terminator leaves buffer untouched",
			buf:      "hello",
			wantLine: "",
			wantRest: "hello",
			wantOK:   false,
		},
		{
			name:     "empty buffer",
			buf:      "",
			wantLine: "",
			wantRest: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, rest, ok := PopNextLine([]byte(tt.buf))
			if ok != tt.wantOK {
				t.Fatalf("PopNextLine(%q) ok = %v, want %v", tt.buf, ok, tt.wantOK)
			}
			if string(line) != tt.wantLine {
				t.Errorf("PopNextLine(%q) line = %q, want %q", tt.buf, line, tt.wantLine)
			}
			if string(rest) != tt.wantRest {
				t.Errorf("PopNextLine(%q) rest = %q, want %q", tt.buf, rest, tt.wantRest)
			}
		})
	}
}

// Draining a buffer until ok is false must consume every terminator byte.
func TestPopNextLineDrainsAllTerminators(t *testing.T) {
	buf := []byte("a\r\nb\n\rc\n\nd\r\re\rf\ntail")

	var lines []string
	for {
		line, rest, ok := PopNextLine(buf)
		if !ok {
			break
		}
		lines = append(lines, string(line))
		buf = rest
	}

	want := []string{"a", "b", "c", "", "d", "", "e", "f"}
	if len(lines) != len(want) {
		t.Fatalf("drained %d lines %q, want %d %q", len(lines), lines, len(want), want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	if bytes.ContainsAny(buf, "\r\n") {
		t.Errorf("remainder %q still contains terminator bytes", buf)
	}
	if string(buf) != "tail" {
		t.Errorf("remainder = %q, want %q", buf, "tail")
	}
}

// A CRLF pair split across two reads is consumed as two lone terminators.
// The extra empty line this produces is dropped by the filter downstream.
func TestPopNextLineSplitPair(t *testing.T) {
	line, rest, ok := PopNextLine([]byte("hello\r"))
	if !ok || string(line) != "hello" || len(rest) != 0 {
		t.Fatalf("first half: line=%q rest=%q ok=%v", line, rest, ok)
	}

	// Second read delivers the LF that belonged to the pair.
	line, rest, ok = PopNextLine([]byte("\nworld\n"))
	if !ok || len(line) != 0 {
		t.Fatalf("second half: line=%q ok=%v, want empty line", line, ok)
	}
	line, _, ok = PopNextLine(rest)
	if !ok || string(line) != "world" {
		t.Fatalf("after split pair: line=%q ok=%v, want %q", line, ok, "world")
	}
}
