// Package cli implements the interactive ZeroTask terminal client.
//
// An App owns the task engine (services), the storage backend, and the
// terminal I/O. Run authenticates the session (local passcode or remote
// email/password, depending on configuration), loads the collection, and
// enters a read-eval-print loop; see runREPL for the command set.
//
// Interactive input goes through small seams (getSimpleText, getMultiline,
// getPasscode, printlnFn) so command handlers are testable without a
// terminal.
package cli
