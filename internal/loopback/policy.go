// Package loopback filters the byte stream between a terminal-emulation
// host and a remote serial/console peer. It reassembles lines out of
// arbitrarily chunked input and echoes qualifying lines back to the peer
// with a fixed marker prefix.
package loopback

// Policy holds the compiled-in filter constants. It is injected at
// construction so tests can substitute alternate markers and ignore lists.
type Policy struct {
	Marker         []byte   // prepended to every echoed line
	IgnorePrefixes [][]byte // lines starting with any of these are dropped
	Shutdown       []byte   // written once when a termination signal arrives
}

// Default returns the policy for the WLAN logging console of the terminal
// firmware: echoes carry the SIMHOST marker, the console's banner and log
// mirror lines are suppressed, and "exit\r" ends the remote session.
func Default() Policy {
	return Policy{
		Marker:   []byte("SIMHOST: "),
		Shutdown: []byte("exit\r"),
		IgnorePrefixes: [][]byte{
			[]byte("wlan-log:"),
			[]byte("Welcome to the Circle WLAN logging console"),
			[]byte("WLAN mode is active."),
			[]byte("Log output is mirrored here"),
			[]byte("Type 'help' for a list of commands."),
			[]byte("Host bridge mode auto-enabled by config."),
			[]byte("Press Ctrl-C or type +++ to return to command mode."),
		},
	}
}
