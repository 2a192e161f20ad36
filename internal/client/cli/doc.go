// Package cli provides the interactive househunt command-line client.
//
// It wires configuration, the local session database, the rental API client
// and the session manager, then runs a REPL standing in for the web views:
// sign-in and sign-up forms, role dashboards behind route guards, profile
// edits and logout. A background watcher revalidates the session on an
// interval and reports a forced logout.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
