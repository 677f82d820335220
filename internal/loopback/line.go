package loopback

// PopNextLine extracts the first complete line from buf. A line is closed by
// a lone LF, a lone CR, or the two-byte pairs CRLF and LFCR, each treated as
// a single terminator. Repeated identical terminator bytes ("\n\n", "\r\r")
// close one line per byte. The returned line excludes the terminator; rest
// is everything after the consumed terminator.
//
// If buf contains no terminator byte, PopNextLine returns (nil, buf, false)
// with nothing consumed and the caller must accumulate more input. Callers
// must invoke it repeatedly until ok is false so every complete line in the
// buffer is drained before blocking on the next read.
func PopNextLine(buf []byte) (line, rest []byte, ok bool) {
	for i, b := range buf {
		if b != '\n' && b != '\r' {
			continue
		}

		end := i + 1
		if end < len(buf) {
			next := buf[end]
			if (b == '\r' && next == '\n') || (b == '\n' && next == '\r') {
				end++
			}
		}

		return buf[:i], buf[end:], true
	}

	return nil, buf, false
}
