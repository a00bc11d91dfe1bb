// Package services contains application services for the SiteCMS admin
// console. This file defines the session service: it keeps the Gateway
// access token in local storage and hands it to the Gateway client.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/sitecms/internal/client/client"
	"github.com/dmitrijs2005/sitecms/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sitecms/internal/common"
	"github.com/dmitrijs2005/sitecms/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

// SessionService manages the bearer token used for Gateway calls.
//
// Contract:
//   - Token: return the stored token; it satisfies client.TokenSource.
//   - Login: check and persist a token obtained out of band.
//   - Logout: forget the token.
//   - Info: describe the current session for display.
//   - LastEntity/SetLastEntity: remember which entity was edited last.
//
// All methods must honor context cancellation/timeouts.
type SessionService interface {
	client.TokenSource
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Info(ctx context.Context) (SessionInfo, error)
	LastEntity(ctx context.Context) (string, error)
	SetLastEntity(ctx context.Context, name string) error
}

// SessionInfo describes the stored token. ExpiresAt is zero for opaque
// tokens and for JWTs without an exp claim.
type SessionInfo struct {
	LoggedIn  bool
	ExpiresAt time.Time
	Subject   string
}

// sessionService is the concrete SessionService backed by the local
// metadata table.
type sessionService struct {
	db  *sql.DB
	now func() time.Time
}

// NewSessionService constructs a SessionService bound to the local DB.
func NewSessionService(db *sql.DB) SessionService {
	return &sessionService{db: db, now: time.Now}
}

func (s *sessionService) settings() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Token returns the stored token. Without one it returns common.ErrNoToken;
// a JWT whose exp lies in the past yields an error matching both
// client.ErrUnauthorized and common.ErrTokenExpired.
func (s *sessionService) Token(ctx context.Context) (string, error) {
	token, _, err := s.settings().Lookup(ctx, metadata.AccessToken)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrNoToken
	}

	if _, err := inspect(token, s.now()); err != nil {
		return "", fmt.Errorf("%w: %w", client.ErrUnauthorized, err)
	}
	return token, nil
}

// Login validates the shape of token and stores it, replacing any previous
// one. Tokens that look like JWTs must decode and must not be expired.
func (s *sessionService) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, common.BearerScheme+" ")
	if token == "" || strings.ContainsAny(token, " \t\r\n") {
		return common.ErrInvalidToken
	}
	if _, err := inspect(token, s.now()); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Store(ctx, metadata.AccessToken, token)
	})
}

// Logout removes the stored token. It is safe to call without a session.
func (s *sessionService) Logout(ctx context.Context) error {
	return s.settings().Forget(ctx, metadata.AccessToken)
}

func (s *sessionService) Info(ctx context.Context) (SessionInfo, error) {
	token, _, err := s.settings().Lookup(ctx, metadata.AccessToken)
	if err != nil {
		return SessionInfo{}, err
	}
	if token == "" {
		return SessionInfo{}, nil
	}
	info, err := inspect(token, s.now())
	if err != nil {
		return SessionInfo{ExpiresAt: info.ExpiresAt, Subject: info.Subject}, nil
	}
	info.LoggedIn = true
	return info, nil
}

func (s *sessionService) LastEntity(ctx context.Context) (string, error) {
	name, _, err := s.settings().Lookup(ctx, metadata.LastEntity)
	return name, err
}

func (s *sessionService) SetLastEntity(ctx context.Context, name string) error {
	return s.settings().Store(ctx, metadata.LastEntity, name)
}

// inspect decodes JWT-shaped tokens without verifying the signature; the
// Gateway does that. Opaque tokens are accepted as they are.
func inspect(token string, now time.Time) (SessionInfo, error) {
	if strings.Count(token, ".") != 2 {
		return SessionInfo{}, nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return SessionInfo{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	var info SessionInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return info, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if exp == nil {
		return info, nil
	}
	info.ExpiresAt = exp.Time
	if !now.Before(exp.Time) {
		return info, common.ErrTokenExpired
	}
	return info, nil
}
