// Package services contains server-side business logic: credential handling
// (registration, authentication, token issuance), the user profile, and
// bookmark management.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/logging"
	"github.com/dmitrijs2005/bookmarker/internal/server/models"
)

// AccessTokenTTL is the lifetime of a session token.
const AccessTokenTTL = 45 * time.Minute

// AccountStore persists accounts. Create must be an atomic insert-or-fail on
// email and report a clash as common.ErrorAlreadyExists; GetByEmail reports a
// miss as common.ErrorNotFound.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// PasswordHasher produces and checks self-describing salted password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(encoded, plaintext string) (bool, error)
}

// TokenSigner issues signed session tokens.
type TokenSigner interface {
	Sign(subject, email string, secret []byte, ttl time.Duration) (string, error)
}

// SecretSource resolves named secrets such as common.SecretKeyJWT.
type SecretSource interface {
	Get(key string) (string, error)
}

// AttemptRecorder is told the outcome of every register/authenticate call.
type AttemptRecorder interface {
	AuthAttempt(operation, outcome string)
}

// Outcome labels passed to AttemptRecorder.
const (
	OpRegister     = "register"
	OpAuthenticate = "authenticate"

	OutcomeSuccess            = "success"
	OutcomeDuplicate          = "duplicate"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeInvalidPassword    = "invalid_password"
	OutcomeError              = "error"
)

type nopRecorder struct{}

func (nopRecorder) AuthAttempt(string, string) {}

// CredentialService registers accounts and exchanges credentials for
// session tokens. It holds no mutable state; uniqueness of email is left to
// the AccountStore.
type CredentialService struct {
	store    AccountStore
	hasher   PasswordHasher
	signer   TokenSigner
	secrets  SecretSource
	ttl      time.Duration
	log      logging.Logger
	recorder AttemptRecorder
}

// NewCredentialService wires the collaborators together. A non-positive ttl
// falls back to AccessTokenTTL.
func NewCredentialService(
	store AccountStore,
	hasher PasswordHasher,
	signer TokenSigner,
	secrets SecretSource,
	ttl time.Duration,
	log logging.Logger,
) *CredentialService {
	if ttl <= 0 {
		ttl = AccessTokenTTL
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &CredentialService{
		store:    store,
		hasher:   hasher,
		signer:   signer,
		secrets:  secrets,
		ttl:      ttl,
		log:      log.With("module", "credentials"),
		recorder: nopRecorder{},
	}
}

// WithRecorder sets the AttemptRecorder and returns s.
func (s *CredentialService) WithRecorder(r AttemptRecorder) *CredentialService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Register hashes password and stores a new account for email. The returned
// value carries no password hash. A taken email yields
// common.ErrDuplicateAccount; any other store error is returned as is.
func (s *CredentialService) Register(ctx context.Context, email, password string) (*models.PublicAccount, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.recorder.AuthAttempt(OpRegister, OutcomeError)
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	account, err := s.store.Create(ctx, &models.Account{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.recorder.AuthAttempt(OpRegister, OutcomeDuplicate)
			s.log.Info(ctx, "registration rejected", "reason", "duplicate")
			return nil, common.ErrDuplicateAccount
		}
		s.recorder.AuthAttempt(OpRegister, OutcomeError)
		s.log.Error(ctx, "registration failed", "error", err)
		return nil, err
	}

	s.recorder.AuthAttempt(OpRegister, OutcomeSuccess)
	s.log.Info(ctx, "account registered", "account_id", account.ID)
	return account.Public(), nil
}

// Authenticate checks email and password and returns a fresh session token.
// An unknown email yields common.ErrInvalidCredentials and a wrong password
// yields common.ErrInvalidPassword.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (string, error) {
	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.recorder.AuthAttempt(OpAuthenticate, OutcomeInvalidCredentials)
			s.log.Info(ctx, "authentication rejected", "reason", "unknown_email")
			return "", common.ErrInvalidCredentials
		}
		s.recorder.AuthAttempt(OpAuthenticate, OutcomeError)
		s.log.Error(ctx, "account lookup failed", "error", err)
		return "", err
	}

	ok, err := s.hasher.Verify(account.PasswordHash, password)
	if err != nil {
		s.recorder.AuthAttempt(OpAuthenticate, OutcomeError)
		s.log.Error(ctx, "stored hash unusable", "account_id", account.ID, "error", err)
		return "", fmt.Errorf("%w: verify password: %w", common.ErrorInternal, err)
	}
	if !ok {
		s.recorder.AuthAttempt(OpAuthenticate, OutcomeInvalidPassword)
		s.log.Info(ctx, "authentication rejected", "reason", "wrong_password", "account_id", account.ID)
		return "", common.ErrInvalidPassword
	}

	token, err := s.IssueToken(ctx, account.ID, account.Email)
	if err != nil {
		s.recorder.AuthAttempt(OpAuthenticate, OutcomeError)
		return "", err
	}

	s.recorder.AuthAttempt(OpAuthenticate, OutcomeSuccess)
	return token, nil
}

// IssueToken signs a token with claims {sub: accountID, email} that expires
// one TTL from now. Secret and signing failures match common.ErrSigner.
func (s *CredentialService) IssueToken(ctx context.Context, accountID, email string) (string, error) {
	secret, err := s.secrets.Get(common.SecretKeyJWT)
	if err != nil {
		s.log.Error(ctx, "jwt secret unavailable", "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrSigner, err)
	}

	token, err := s.signer.Sign(accountID, email, []byte(secret), s.ttl)
	if err != nil {
		s.log.Error(ctx, "token signing failed", "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrSigner, err)
	}
	return token, nil
}
