// Package stash keeps unsaved local-only drafts in the local SQLite state
// DB so they survive between console sessions.
//
// Field values are stored as a JSON object whose entries carry an explicit
// type tag, which keeps int64 and bool values and pending image uploads
// intact across a round trip.
package stash
