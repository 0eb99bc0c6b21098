// Package cli provides the interactive authdemo command-line client.
//
// It wires configuration, the local database (cookie jar and request
// history), the HTTP client and the AuthService, then runs a REPL. Typical
// flow: probe the session with whoami, edit the form (email, password, id),
// fire actions, and read the panels printed after each one.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and renderState for details.
package cli
