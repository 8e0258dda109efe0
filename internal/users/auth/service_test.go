// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvhoang/vietsu/internal/platform/apperr"
	"github.com/dvhoang/vietsu/internal/platform/dberr"
	"github.com/dvhoang/vietsu/internal/platform/sec"
	"github.com/dvhoang/vietsu/internal/users/auth"
)

type fakeAccounts struct {
	byUsername map[string]*auth.Account
}

func (f *fakeAccounts) FindByID(_ context.Context, id string) (*auth.Account, error) {
	for _, account := range f.byUsername {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeAccounts) FindByUsername(_ context.Context, username string) (*auth.Account, error) {
	if account, ok := f.byUsername[username]; ok {
		return account, nil
	}
	return nil, dberr.ErrNotFound
}

type fakeSessions struct {
	entries map[string]string
}

func (f *fakeSessions) Set(_ context.Context, tokenHash, accountID string, _ time.Duration) error {
	f.entries[tokenHash] = accountID
	return nil
}

func (f *fakeSessions) Get(_ context.Context, tokenHash string) (string, error) {
	if accountID, ok := f.entries[tokenHash]; ok {
		return accountID, nil
	}
	return "", apperr.Unauthorized("Session is invalid or expired")
}

func (f *fakeSessions) Delete(_ context.Context, tokenHash string) error {
	delete(f.entries, tokenHash)
	return nil
}

type staticTokens struct{}

func (staticTokens) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

func newAuthFixture(t *testing.T) (*auth.Service, *fakeSessions) {
	t.Helper()

	hash, err := sec.HashPassword("hoang-van-thu")
	require.NoError(t, err)

	accounts := &fakeAccounts{byUsername: map[string]*auth.Account{
		"admin": {ID: "a1", Username: "admin", PasswordHash: hash, Role: sec.RoleAdmin},
	}}
	sessions := &fakeSessions{entries: map[string]string{}}

	return auth.NewService(accounts, sessions, staticTokens{}, slog.New(slog.DiscardHandler)), sessions
}

func TestLogin_Success(t *testing.T) {
	service, sessions := newAuthFixture(t)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Username: "admin",
		Password: "hoang-van-thu",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-a1", session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, "admin", session.Account.Username)

	// The stored session is keyed by the token's hash, not the token itself.
	_, raw := sessions.entries[session.RefreshToken]
	assert.False(t, raw)
	assert.Contains(t, sessions.entries, sec.HashToken(session.RefreshToken))
}

func TestLogin_BadCredentials(t *testing.T) {
	service, _ := newAuthFixture(t)

	tests := []struct {
		name  string
		input auth.LoginInput
	}{
		{"wrong_password", auth.LoginInput{Username: "admin", Password: "wrong"}},
		{"unknown_user", auth.LoginInput{Username: "ghost", Password: "hoang-van-thu"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
			// Same message for both failure modes.
			assert.Equal(t, "Invalid login credentials", apperr.As(err).Message)
		})
	}
}

func TestRefreshSession_RotatesToken(t *testing.T) {
	service, sessions := newAuthFixture(t)

	first, err := service.Login(context.Background(), auth.LoginInput{
		Username: "admin", Password: "hoang-van-thu",
	})
	require.NoError(t, err)

	second, err := service.RefreshSession(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The consumed token cannot be replayed.
	_, err = service.RefreshSession(context.Background(), first.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	assert.Len(t, sessions.entries, 1)
}

func TestLogout_Idempotent(t *testing.T) {
	service, sessions := newAuthFixture(t)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Username: "admin", Password: "hoang-van-thu",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.entries)

	// A second logout with the same token still succeeds.
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, service.Logout(context.Background(), ""))
}
