// Package attach runs the loopback filter against a peer process spawned
// under a pseudo-terminal. It stands in for an external harness that would
// otherwise wire the filter's standard streams to a serial link.
package attach

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"

	"simhost/internal/loopback"
)

// Run spawns the peer command under a pty and filters its console output,
// echoing qualifying lines straight back into the pty. The peer exiting
// closes the pty and counts as clean stream closure; a termination signal
// on signals sends the shutdown sequence to the peer before returning.
func Run(policy loopback.Policy, signals <-chan os.Signal, name string, args ...string) error {
	cmd := exec.Command(name, args...)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s with pty: %w", name, err)
	}

	_ = pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80})

	runErr := loopback.Run(peerReader{ptmx}, ptmx, policy, signals)

	// Closing the master hangs up the peer's session, so Wait cannot
	// block on a peer that ignored the shutdown sequence.
	_ = ptmx.Close()
	_ = cmd.Wait()

	return runErr
}

// peerReader converts the EIO a pty master returns once the peer has exited
// into io.EOF, so the filter loop treats peer exit as clean closure.
type peerReader struct {
	r io.Reader
}

func (p peerReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if err != nil && errors.Is(err, syscall.EIO) {
		return n, io.EOF
	}
	return n, err
}
