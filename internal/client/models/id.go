// Package models defines the client-side draft model shared by the store,
// the validator and the editors.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Origin tells whether a draft's id was assigned by the Gateway.
type Origin int

const (
	OriginLocal Origin = iota
	OriginPersisted
)

func (o Origin) String() string {
	if o == OriginPersisted {
		return "persisted"
	}
	return "local"
}

// LegacyIDWindow is the distance from "now", in milliseconds, below which a
// bare numeric id is taken to be a server id.
const LegacyIDWindow int64 = 1_000_000

// DraftID identifies a draft. It is either Persisted, carrying the server
// id, or LocalOnly, carrying a random token and the time it was created.
// The zero value is invalid.
type DraftID struct {
	serverID  int64
	token     uuid.UUID
	createdAt time.Time
}

// PersistedID wraps a Gateway-assigned id.
func PersistedID(id int64) DraftID {
	return DraftID{serverID: id}
}

// NewLocalID mints a LocalOnly id created at now.
func NewLocalID(now time.Time) DraftID {
	return LocalIDFrom(uuid.New(), now)
}

// LocalIDFrom rebuilds a LocalOnly id from stored parts.
func LocalIDFrom(token uuid.UUID, createdAt time.Time) DraftID {
	return DraftID{token: token, createdAt: createdAt.UTC()}
}

func (d DraftID) Origin() Origin {
	if d.token == uuid.Nil {
		return OriginPersisted
	}
	return OriginLocal
}

func (d DraftID) IsZero() bool {
	return d.token == uuid.Nil && d.serverID == 0
}

func (d DraftID) ServerID() (int64, bool) {
	if d.Origin() != OriginPersisted {
		return 0, false
	}
	return d.serverID, true
}

func (d DraftID) Token() (uuid.UUID, bool) {
	if d.Origin() != OriginLocal {
		return uuid.Nil, false
	}
	return d.token, true
}

func (d DraftID) CreatedAt() time.Time {
	return d.createdAt
}

// Key is the integer that keys a draft row: the server id, or the creation
// time in Unix milliseconds for local drafts.
func (d DraftID) Key() int64 {
	if d.Origin() == OriginPersisted {
		return d.serverID
	}
	return d.createdAt.UnixMilli()
}

// Equal compares identity only; creation time of a local id is not part of it.
func (d DraftID) Equal(o DraftID) bool {
	return d.serverID == o.serverID && d.token == o.token
}

func (d DraftID) String() string {
	if d.Origin() == OriginPersisted {
		return fmt.Sprintf("%d", d.serverID)
	}
	return "local:" + d.token.String()
}

// OriginFromNumericID classifies a bare numeric id the way the browser admin
// did: ids far below the current Unix-millisecond clock are server ids,
// anything near "now" is a timestamp minted for an unsaved row.
func OriginFromNumericID(id int64, now time.Time) Origin {
	if id < now.UnixMilli()-LegacyIDWindow {
		return OriginPersisted
	}
	return OriginLocal
}
