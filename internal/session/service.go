package session

import (
	"context"

	"github.com/GabrijelGordic/ShoeSteraj/internal/api"
	"github.com/GabrijelGordic/ShoeSteraj/internal/model"
	"github.com/GabrijelGordic/ShoeSteraj/internal/store"
)

// Service runs the session flows. It is the only writer of both the
// credential store and the session store; everything else treats them as
// read-only.
type Service struct {
	client *api.Client
	creds  *store.CredentialStore
	store  *Store
}

func NewService(client *api.Client, creds *store.CredentialStore, st *Store) *Service {
	return &Service{client: client, creds: creds, store: st}
}

// Restore reconstructs the session from the persisted credential. It runs
// once at startup; the store stays in StatusRestoring until it returns.
//
// A failed restore is expected, not exceptional: any error (expired token,
// unreachable server) silently clears the credential and lands on
// anonymous. Restore itself never returns an error.
func (s *Service) Restore(ctx context.Context) {
	if s.creds.Get() == "" {
		s.store.setAnonymous()
		return
	}
	id, err := s.client.Me(ctx)
	if err != nil {
		_ = s.creds.Clear()
		s.store.setAnonymous()
		return
	}
	s.store.setAuthenticated(id)
}

// Login exchanges credentials for a token, persists it, and resolves the
// identity. Either both the credential and the identity end up set, or
// neither: an identity fetch failure rolls the stored token back out so the
// client never half-authenticates. On failure the session store is left
// untouched and the error surfaces verbatim for the caller to display.
func (s *Service) Login(ctx context.Context, username, secret string) (model.Identity, error) {
	tok, err := s.client.ObtainToken(ctx, username, secret)
	if err != nil {
		return model.Identity{}, err
	}
	if err := s.creds.Set(tok); err != nil {
		return model.Identity{}, err
	}
	id, err := s.client.Me(ctx)
	if err != nil {
		_ = s.creds.Clear()
		return model.Identity{}, err
	}
	s.store.setAuthenticated(id)
	return id, nil
}

// Logout revokes the token best-effort and always clears local state. The
// remote call failing (already-expired token, server down) must never leave
// the client stuck in an authenticated UI with no way out, so its outcome
// is deliberately ignored.
func (s *Service) Logout(ctx context.Context) {
	if s.creds.Get() != "" {
		// Revoke while we still have the token to authenticate with.
		_ = s.client.RevokeToken(ctx)
	}
	_ = s.creds.Clear()
	s.store.setAnonymous()
}

// Register creates the account and then runs the normal login flow, so a
// fresh registration ends fully authenticated under the same invariants as
// Login.
func (s *Service) Register(ctx context.Context, username, email, secret string) (model.Identity, error) {
	if _, err := s.client.CreateAccount(ctx, username, email, secret); err != nil {
		return model.Identity{}, err
	}
	return s.Login(ctx, username, secret)
}
