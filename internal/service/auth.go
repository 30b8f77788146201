package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/learnhub-auth/internal/apierror"
	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/model"
)

var _ model.UserLookup = (*Auth)(nil)

// dummyPassword is hashed once at construction and compared against on login
// paths that have no stored digest, so they cost the same as a wrong password.
const dummyPassword = "learnhub-timing-equalizer"

type Auth struct {
	userStore      model.UserStore
	hasher         model.PasswordHasher
	ledger         *TokenLedger
	verifier       model.IdentityVerifier
	contextManager model.ContextManager
	audience       string
	logger         *logger.Logger
	dummyDigest    []byte
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	ledger *TokenLedger,
	verifier model.IdentityVerifier,
	contextManager model.ContextManager,
	audience string,
	logger *logger.Logger,
) (*Auth, error) {
	dummyDigest, err := hasher.Hash(context.Background(), dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash dummy password: %w", err)
	}

	return &Auth{
		userStore:      userStore,
		hasher:         hasher,
		ledger:         ledger,
		verifier:       verifier,
		contextManager: contextManager,
		audience:       audience,
		logger:         logger,
		dummyDigest:    dummyDigest,
	}, nil
}

// Register creates a local account and opens its first session.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.Session, error) {
	email := normalizeEmail(params.Email)
	a.logger.Debug("Auth service: registering user",
		"login", email)

	digest, err := a.hasher.Hash(ctx, params.Password)
	if err != nil {
		if errors.Is(err, model.ErrPasswordTooLong) {
			return model.Session{}, apierror.NewErrValidation("password must be at most 72 bytes long")
		}
		a.logger.Error("Auth service: failed to hash password",
			"login", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: digest,
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			a.logger.Info("Auth service: user already exists",
				"login", email)
			return model.Session{}, apierror.NewErrEmailIsTaken(email)
		}
		a.logger.Error("Auth service: failed to create user",
			"login", email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.startSession(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.Info("Auth service: user registered",
		"login", email,
		"user_id", user.ID)

	return session, nil
}

// Authenticate checks local credentials. Every failure, including an unknown
// login, a federated-only account and internal errors, yields the same
// authentication error.
func (a *Auth) Authenticate(ctx context.Context, email, password string) (model.Session, error) {
	email = normalizeEmail(email)
	a.logState(email, model.StateVerifying)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			a.logger.Error("Auth service: failed to get user by email",
				"login", email,
				"error", err.Error())
		}
		a.burnHash(ctx, password)
		return model.Session{}, a.reject(email, err)
	}

	if !user.HasPassword() {
		a.burnHash(ctx, password)
		return model.Session{}, a.reject(email, model.ErrInvalidCredentials)
	}

	ok, err := a.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return model.Session{}, a.reject(email, err)
	}
	if !ok {
		return model.Session{}, a.reject(email, model.ErrInvalidCredentials)
	}

	session, err := a.startSession(ctx, user)
	if err != nil {
		return model.Session{}, a.reject(email, err)
	}

	a.logState(email, model.StateAuthenticated)
	return session, nil
}

// FederatedLogin exchanges a verified identity assertion for a session,
// creating a password-less account on first sign-in.
func (a *Auth) FederatedLogin(ctx context.Context, assertionToken string) (model.Session, error) {
	a.logState("", model.StateVerifying)

	identity, err := a.verifier.Verify(ctx, assertionToken, a.audience)
	if err != nil {
		return model.Session{}, a.reject("", err)
	}

	user, err := a.findOrCreateFederated(ctx, identity)
	if err != nil {
		a.logger.Error("Auth service: failed to resolve federated user",
			"login", identity.Email,
			"error", err.Error())
		return model.Session{}, err
	}

	session, err := a.startSession(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logState(user.Email, model.StateAuthenticated)
	return session, nil
}

func (a *Auth) findOrCreateFederated(ctx context.Context, identity model.VerifiedIdentity) (model.User, error) {
	email := normalizeEmail(identity.Email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	now := time.Now()
	user, err = a.userStore.Create(ctx, model.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: identity.GivenName,
		LastName:  identity.FamilyName,
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, model.ErrConflict) {
		// Lost a first-login race; the winner's row is the account.
		user, err = a.userStore.GetByEmail(ctx, email)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create federated user: %w", err)
	}

	a.logger.Info("Auth service: federated user created",
		"login", email,
		"user_id", user.ID)

	return user, nil
}

// Logout drops the principal from the request context. Issued tokens stay
// valid until they expire or are revoked.
func (a *Auth) Logout(ctx context.Context) context.Context {
	if principal, ok := a.contextManager.GetPrincipalFromContext(ctx); ok {
		a.logger.Info("Auth service: user logged out",
			"user_id", principal.UserID)
	}
	return a.contextManager.ClearPrincipal(ctx)
}

// GetUser returns the account with the given id.
func (a *Auth) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// RevokeSessions revokes every token of target on behalf of actor. A nil
// target means the actor's own sessions.
func (a *Auth) RevokeSessions(ctx context.Context, actor model.Principal, target uuid.UUID) (int64, error) {
	if target == uuid.Nil {
		target = actor.UserID
	}

	allowed := actor.Role.Can(model.CapRevokeAnySessions) ||
		(target == actor.UserID && actor.Role.Can(model.CapRevokeOwnSessions))
	if !allowed {
		a.logger.Warn("Auth service: revocation denied",
			"actor_id", actor.UserID,
			"target_id", target,
			"role", actor.Role)
		return 0, apierror.NewErrInvalidAuthorizationToken()
	}

	revoked, err := a.ledger.RevokeAll(ctx, target)
	if err != nil {
		a.logger.Error("Auth service: failed to revoke sessions",
			"target_id", target,
			"error", err.Error())
		return 0, err
	}

	return revoked, nil
}

func (a *Auth) startSession(ctx context.Context, user model.User) (model.Session, error) {
	access, refresh, err := a.ledger.Issue(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return model.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

func (a *Auth) reject(login string, cause error) error {
	a.logState(login, model.StateRejected, "reason", cause.Error())
	return apierror.NewErrAuthentication(cause)
}

func (a *Auth) logState(login string, state model.AuthState, args ...any) {
	a.logger.Debug("Auth service: authentication state changed",
		append([]any{"login", login, "state", state}, args...)...)
}

func (a *Auth) burnHash(ctx context.Context, password string) {
	_, _ = a.hasher.Verify(ctx, password, a.dummyDigest)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
