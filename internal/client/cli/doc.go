// Package cli provides the interactive doubtsolver command-line client.
//
// NewApp is the composition root: it opens the local state database, builds
// the REST client, the session and history stores and the services, and
// hands them to the REPL. Nothing in the client lives in package-level state.
//
// Typical flow: restore the persisted session, start the background
// connectivity watcher, then read commands until "exit". App.Run blocks until
// the user leaves and releases the database afterwards.
package cli
