// Copyright (c) 2026 VietSu. All rights reserved.
// Author: hoang.dv.dev@gmail.com

/*
Package auth implements authentication for the admin editorial staff.

Accounts are provisioned out of band (no self-registration). A successful
login issues a short-lived RS256 access token plus a Redis-backed refresh
session with token rotation.
*/
package auth

import (
	"time"

	"github.com/dvhoang/vietsu/internal/platform/sec"
)

// Account represents an editorial staff member.
type Account struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// LoginInput carries the credentials supplied to POST /auth/login.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginSession is the result of a successful login or refresh.
type LoginSession struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int      `json:"expiresIn"`
	Account      *Account `json:"account"`
}

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldToken    = "refreshToken"
)
