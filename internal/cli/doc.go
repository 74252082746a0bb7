// Package cli implements the interactive console for the Bayan platform:
// a small REPL exposing login/logout, lesson and user management, dataset
// export/import, and the tutoring assistant. Every mutating command goes
// through the application services, which enforce the permission gate.
package cli
