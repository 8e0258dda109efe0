// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// AccountRepository defines the data access contract for staff accounts.
type AccountRepository interface {
	FindByID(context context.Context, id string) (*Account, error)
	FindByUsername(context context.Context, username string) (*Account, error)
}

// SessionRepository defines the contract for volatile refresh sessions.
// Sessions are keyed by the hash of the refresh token; the value is the
// account ID. Expiry is delegated to the store's TTL.
type SessionRepository interface {
	Set(context context.Context, tokenHash, accountID string, ttl time.Duration) error
	Get(context context.Context, tokenHash string) (string, error)
	Delete(context context.Context, tokenHash string) error
}
