// Package client contains the client-side building blocks for talking to
// the Entity Gateway and bootstrapping local state.
//
// # Overview
//
// The package provides:
//  1. A transport contract (see the Gateway interface) covering the four
//     calls every admin list needs: List, Create, Update and Delete.
//  2. A concrete REST implementation (see HTTPGateway) that attaches the
//     bearer token obtained from an injected TokenSource, encodes bodies as
//     JSON or multipart/form-data, and maps HTTP statuses to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors that callers match with
// errors.Is: ErrUnavailable for transport failures, ErrUnauthorized for a
// missing token or a 401/403 answer, ErrRejected for any other non-2xx
// status. The latter is carried by *RejectedError with the status code and
// a bounded copy of the response body.
//
// Concurrency & Contexts
//
// HTTPGateway is safe for concurrent use. All operations accept
// context.Context and honor cancellation on top of the client timeout.
//
// See Also
//
//   - Interface:  Gateway, TokenSource
//   - REST impl:  HTTPGateway
//   - DB helpers: InitDatabase, RunMigrations
package client
