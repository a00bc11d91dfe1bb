// Package drafts holds the in-memory Draft Collection of one entity.
//
// The Store is the only owner of drafts: callers get deep copies out and
// change state through its methods. Every method is safe for concurrent
// use.
package drafts
