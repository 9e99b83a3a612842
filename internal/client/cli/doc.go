// Package cli provides the interactive Findreve command-line client.
//
// It wires configuration, the credential store and the API client into an
// interactive REPL. Typical flow: restore the stored session or prompt for
// credentials, then execute user commands against the server.
//
// Key features:
//   - Login / Logout / Status / Whoami
//   - List, Get, Add, Update and Delete items
//   - About (raw markdown or sanitized HTML) and public object lookup
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Root and runREPL for details.
package cli
