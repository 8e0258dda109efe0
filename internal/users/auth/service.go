// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dvhoang/vietsu/internal/platform/apperr"
	"github.com/dvhoang/vietsu/internal/platform/constants"
	"github.com/dvhoang/vietsu/internal/platform/sec"
	"github.com/dvhoang/vietsu/internal/platform/validate"
)

// TokenProvider abstracts access-token generation for testability.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

func NewService(accounts AccountRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

/*
Login authenticates staff credentials and opens a session.

Description: Verifies the bcrypt password hash, issues a short-lived access
token, and stores a hashed refresh token in Redis. Lookup failure and a wrong
password return the same generic message to prevent account enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Access token, refresh token, and the account
  - error: Unauthorized on bad credentials
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByUsername(context, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.openSession(context, account)
	if err != nil {
		return nil, err
	}

	service.logger.Info("staff_login",
		slog.String("account_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	return session, nil
}

/*
RefreshSession rotates a refresh token and issues a fresh access token.

Description: The presented refresh token is hashed and looked up in Redis.
A hit consumes the old session and opens a new one, so a stolen token can be
used at most once.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New token pair and the account
  - error: Unauthorized for an unknown or expired token
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {
	if refreshToken == "" {
		return nil, validate.RequiredError(FieldToken, "This field is required")
	}

	tokenHash := sec.HashToken(refreshToken)
	accountID, err := service.sessions.Get(context, tokenHash)
	if err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return nil, apperr.Unauthorized("Session account no longer exists")
	}

	// Rotation: the presented token is consumed before the new one is issued.
	if err := service.sessions.Delete(context, tokenHash); err != nil {
		return nil, err
	}

	return service.openSession(context, account)
}

// Logout revokes the presented refresh session. Revoking an unknown token
// succeeds; logout is idempotent.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := service.sessions.Delete(context, sec.HashToken(refreshToken)); err != nil {
		return err
	}

	service.logger.Info("staff_logout")
	return nil
}

// openSession issues a token pair for the account and persists the session.
func (service *Service) openSession(context context.Context, account *Account) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		account.ID, account.Username, string(account.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("auth_refresh_generation_failed: %w", err)
	}

	if err := service.sessions.Set(context, sec.HashToken(refreshToken), account.ID, constants.RefreshTokenTTL); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(constants.AccessTokenTTL.Seconds()),
		Account:      account,
	}, nil
}
