// Package cli provides the interactive SiteCMS admin console.
//
// It wires configuration, local state, the Gateway client and one Editor per
// content type into a line-oriented REPL. Typical flow: paste an access
// token, pick a content type, edit items and save them one at a time.
//
// Key features:
//   - Login / Logout with a token obtained from the Gateway
//   - List, show, add and edit items of any content type
//   - Save / Delete / Toggle against the Gateway with notices
//   - Export / Import JSON files and a local stash for unsaved items
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
