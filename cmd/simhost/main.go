package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"simhost/internal/attach"
	"simhost/internal/loopback"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "simhost",
	Short: "SIMHOST - host-loopback line filter for a serial console peer",
	Long: `simhost sits between a terminal-emulation host and a remote
serial/console peer. It reassembles lines from the raw byte stream,
drops empty, self-originated, ignored and non-printable lines, and
echoes the rest back prefixed with "SIMHOST: ". On SIGINT or SIGTERM
it sends the shutdown sequence to the peer and exits.

All filter policy (marker, ignore list, shutdown bytes) is compiled in.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Filter between standard input and standard output",
	Long: `Run the loopback filter on the inherited standard streams.

The spawning process is expected to wire stdin and stdout to the
host-loopback link. Diagnostics go to stderr so stdout carries nothing
but echoes.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			slog.Warn("stdin is a terminal; simhost expects to read from a loopback link")
		}
		return loopback.Run(os.Stdin, os.Stdout, loopback.Default(), shutdownSignals())
	},
}

var attachCmd = &cobra.Command{
	Use:   "attach cmd [args...]",
	Short: "Spawn a peer command under a pty and filter its console",
	Long: `Spawn the given command under a pseudo-terminal and run the
loopback filter over it: the peer's console output is filtered and
qualifying lines are echoed straight back into the pty. The filter
exits cleanly when the peer exits.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return attach.Run(loopback.Default(), shutdownSignals(), args[0], args[1:]...)
	},
}

// shutdownSignals returns a buffered channel receiving SIGINT and SIGTERM.
// The buffer of one keeps a signal from being lost while the filter loop
// is draining lines.
func shutdownSignals() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(attachCmd)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
