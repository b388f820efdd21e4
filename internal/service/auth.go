package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Auth implements the credential endpoints: register, login, refresh,
// invalidate and password change.
type Auth struct {
	accounts  model.AccountStore
	tokens    model.TokenManager
	hasher    *Hasher
	dummyHash string
	logger    *logger.Logger
}

func NewAuth(accounts model.AccountStore, tokens model.TokenManager, hasher *Hasher, logger *logger.Logger) (*Auth, error) {
	// A hash compared against when the username does not exist, so lookup
	// misses cost the same as password mismatches.
	dummyHash, err := hasher.Hash("---")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Auth{
		accounts:  accounts,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummyHash,
		logger:    logger,
	}, nil
}

// Register creates a new account and returns its id.
func (a *Auth) Register(ctx context.Context, username, password string) (int64, error) {
	a.logger.Debug("Auth service: registering user",
		"username", username)

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := a.accounts.Create(ctx, username, hash)
	if errors.Is(err, model.ErrConflict) {
		a.logger.Info("Auth service: username already taken",
			"username", username)
		return 0, apierr.NewUsernameAlreadyTaken()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create account",
			"username", username,
			"error", err.Error())
		return 0, fmt.Errorf("failed to create account: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username,
		"user_id", id)

	return id, nil
}

// verify checks a username/password pair. Misses and mismatches both cost a
// hash comparison and both surface as AuthFail.
func (a *Auth) verify(ctx context.Context, username, password string) (model.Credentials, error) {
	creds, err := a.accounts.GetCredentials(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.hasher.Verify(password, a.dummyHash)
		return model.Credentials{}, apierr.NewAuthFail()
	}
	if err != nil {
		return model.Credentials{}, fmt.Errorf("failed to get credentials: %w", err)
	}

	if !a.hasher.Verify(password, creds.PasswordHash) {
		return model.Credentials{}, apierr.NewAuthFail()
	}

	return creds, nil
}

// Login verifies credentials and mints an access/refresh token pair. The
// access token binds to the client origin; the refresh token binds to the
// account's current revocation nonce.
func (a *Auth) Login(ctx context.Context, username, password, origin string) (TokenPair, error) {
	a.logger.Debug("Auth service: logging in",
		"username", username)

	creds, err := a.verify(ctx, username, password)
	if err != nil {
		return TokenPair{}, err
	}

	accessToken, err := a.tokens.MintAccessToken(creds.ID, origin)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to mint access token: %w", err)
	}

	refreshToken, err := a.tokens.MintRefreshToken(creds.ID, creds.Nonce)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"username", username,
		"user_id", creds.ID)

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh mints a new access token from a refresh token. The token's
// embedded nonce must equal the account's current one; a rotated nonce makes
// the token indistinguishable from a forged one.
func (a *Auth) Refresh(ctx context.Context, refreshToken, origin string) (string, error) {
	accountID, nonce, err := a.tokens.ParseRefreshToken(refreshToken)
	if errors.Is(err, model.ErrExpiredToken) {
		return "", apierr.NewExpiredToken()
	}
	if err != nil {
		return "", apierr.NewInvalidToken()
	}

	creds, err := a.accounts.GetCredentialsByID(ctx, accountID)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierr.NewInvalidToken()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials: %w", err)
	}

	if creds.Nonce != nonce {
		a.logger.Info("Auth service: refresh with revoked nonce",
			"user_id", accountID)
		return "", apierr.NewInvalidToken()
	}

	accessToken, err := a.tokens.MintAccessToken(accountID, origin)
	if err != nil {
		return "", fmt.Errorf("failed to mint access token: %w", err)
	}

	return accessToken, nil
}

// Invalidate verifies credentials and rotates the revocation nonce, so every
// outstanding refresh token for the account stops validating. Outstanding
// access tokens remain valid until their own expiry.
func (a *Auth) Invalidate(ctx context.Context, username, password string) error {
	creds, err := a.verify(ctx, username, password)
	if err != nil {
		return err
	}

	if err := a.accounts.RotateNonce(ctx, creds.ID); err != nil {
		return fmt.Errorf("failed to rotate nonce: %w", err)
	}

	a.logger.Info("Auth service: refresh tokens invalidated",
		"user_id", creds.ID)

	return nil
}

// ChangePassword verifies the old credentials, rotates the nonce and stores
// the new password hash.
func (a *Auth) ChangePassword(ctx context.Context, username, password, newPassword string) error {
	creds, err := a.verify(ctx, username, password)
	if err != nil {
		return err
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.accounts.RotateNonce(ctx, creds.ID); err != nil {
		return fmt.Errorf("failed to rotate nonce: %w", err)
	}

	if err := a.accounts.SetPassword(ctx, creds.ID, hash); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	a.logger.Info("Auth service: password changed",
		"user_id", creds.ID)

	return nil
}
