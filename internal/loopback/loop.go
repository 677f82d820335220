package loopback

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ReadChunkSize caps a single read from the input stream. Line boundaries
// never align with chunk boundaries; the pending buffer bridges reads.
const ReadChunkSize = 4096

type chunk struct {
	data []byte
	err  error
}

// Run filters the byte stream from in to out until the input closes, a
// termination signal arrives on signals, or a write fails.
//
// Reads happen on a separate goroutine so the main loop can observe signals
// between chunks; the shutdown sequence is written synchronously from the
// main control flow, never from a handler, and the process exits right
// after. Every complete line in the pending buffer is drained through the
// filter before the loop blocks for more input.
//
// Run returns nil on clean EOF and on signal shutdown. Read and write
// failures are returned wrapped and are fatal to the process.
func Run(in io.Reader, out io.Writer, policy Policy, signals <-chan os.Signal) error {
	echoer := NewEchoer(out, policy)
	chunks := make(chan chunk, 1)
	go readChunks(in, chunks)

	var pending []byte
	for {
		select {
		case sig := <-signals:
			slog.Info("termination signal, sending shutdown sequence", "signal", sig)
			if err := echoer.WriteShutdown(); err != nil {
				// Best effort: the peer may already be gone.
				slog.Warn("shutdown write failed", "error", err)
			}
			return nil

		case c := <-chunks:
			if c.err != nil {
				if errors.Is(c.err, io.EOF) {
					slog.Info("input stream closed")
					return nil
				}
				return fmt.Errorf("read input: %w", c.err)
			}

			pending = append(pending, c.data...)
			for {
				line, rest, ok := PopNextLine(pending)
				if !ok {
					break
				}
				pending = rest
				if err := echoer.ProcessLine(line); err != nil {
					return fmt.Errorf("write echo: %w", err)
				}
			}
		}
	}
}

// readChunks reads bounded chunks from in and sends them to out until a
// read error. Chunk data is copied because the read buffer is reused. A
// zero-byte read without an error means no data this cycle, not closure.
func readChunks(in io.Reader, out chan<- chunk) {
	buf := make([]byte, ReadChunkSize)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			out <- chunk{data: data}
		}
		if err != nil {
			out <- chunk{err: err}
			return
		}
	}
}
