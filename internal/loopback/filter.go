package loopback

import (
	"bytes"
	"io"
)

// Echoer applies the filter policy to reassembled lines and writes the
// survivors to out, marker-prefixed and CRLF-terminated.
type Echoer struct {
	out    io.Writer
	policy Policy
}

func NewEchoer(out io.Writer, policy Policy) *Echoer {
	return &Echoer{out: out, policy: policy}
}

// ProcessLine decides whether line is echoed. Filters apply in order, first
// match wins: residual trailing CR bytes are stripped, then empty lines,
// self-originated lines (marker prefix), operationally ignored lines, and
// lines containing non-printable bytes are dropped. A surviving line is
// written as marker + line + CRLF in a single unbuffered Write; a write
// error is fatal to the caller, there is no retry.
func (e *Echoer) ProcessLine(line []byte) error {
	// A malformed split can leave a residual CR even though the
	// reassembler strips terminators.
	line = bytes.TrimRight(line, "\r")

	if len(line) == 0 {
		return nil
	}
	if bytes.HasPrefix(line, e.policy.Marker) {
		// Our own output read back over the loopback link.
		return nil
	}
	for _, prefix := range e.policy.IgnorePrefixes {
		if bytes.HasPrefix(line, prefix) {
			return nil
		}
	}
	if !printableASCII(line) {
		return nil
	}

	out := make([]byte, 0, len(e.policy.Marker)+len(line)+2)
	out = append(out, e.policy.Marker...)
	out = append(out, line...)
	out = append(out, '\r', '\n')
	_, err := e.out.Write(out)
	return err
}

// WriteShutdown sends the shutdown sequence to the peer.
func (e *Echoer) WriteShutdown() error {
	_, err := e.out.Write(e.policy.Shutdown)
	return err
}

// printableASCII reports whether every byte of line is printable ASCII
// (32-126) or horizontal tab. Binary or garbled data must never be echoed.
func printableASCII(line []byte) bool {
	for _, b := range line {
		if b == '\t' {
			continue
		}
		if b < 32 || b > 126 {
			return false
		}
	}
	return true
}
