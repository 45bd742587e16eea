package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
	"github.com/noah-isme/bimbel-api/pkg/password"
)

type authUserRepository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id int64, hash string) (*models.User, error)
}

// credentialVerifier is satisfied by *password.Chain.
type credentialVerifier interface {
	Verify(stored, plain string) (bool, string, error)
	NeedsRehash(stored string) bool
	Hash(plain string) (string, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	// DebugIdentity serves models.DebugUser to requests without a session.
	DebugIdentity bool
}

// loginRecorder is satisfied by *MetricsService.
type loginRecorder interface {
	RecordLogin(result string)
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authUserRepository
	verifier  credentialVerifier
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	recorder  loginRecorder
}

// NewAuthService constructs an AuthService instance. A nil verifier falls back to a chain
// without the legacy scheme.
func NewAuthService(repo authUserRepository, verifier credentialVerifier, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if verifier == nil {
		verifier = password.NewChain()
	}
	return &AuthService{repo: repo, verifier: verifier, validator: newValidator(validate), logger: logger, config: config}
}

// WithLoginRecorder attaches a sink for login outcomes.
func (s *AuthService) WithLoginRecorder(recorder loginRecorder) *AuthService {
	s.recorder = recorder
	return s
}

// Login verifies credentials. Unknown users and wrong passwords yield the same error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid login payload")
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		s.record("error")
		return nil, err
	}
	if user == nil {
		s.record("rejected")
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	ok, scheme, err := s.verifier.Verify(user.Password, req.Password)
	if err != nil {
		if errors.Is(err, password.ErrUnknownScheme) {
			s.logger.Warn("stored credential has unknown format", zap.Int64("user_id", user.ID))
		} else {
			s.logger.Warn("credential verification failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		s.record("rejected")
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	if !ok {
		s.record("rejected")
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if s.verifier.NeedsRehash(user.Password) {
		s.rehash(ctx, user, req.Password, scheme)
	}

	s.record("success")
	return user, nil
}

func (s *AuthService) rehash(ctx context.Context, user *models.User, plain, scheme string) {
	s.logger.Info("migrating stored credential", zap.Int64("user_id", user.ID), zap.String("from_scheme", scheme))

	hash, err := s.verifier.Hash(plain)
	if err != nil {
		s.logger.Warn("failed to hash migrated credential", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}
	if _, err := s.repo.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		s.logger.Warn("failed to store migrated credential", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}
	user.Password = hash
}

// CurrentUser re-reads the session user from storage.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	if userID == models.DebugUserID {
		if !s.config.DebugIdentity {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
		}
		s.logger.Warn("serving debug identity")
		return models.DebugUser(), nil
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session user no longer exists")
	}
	return user, nil
}

// DebugIdentityEnabled reports whether anonymous requests resolve to the debug identity.
func (s *AuthService) DebugIdentityEnabled() bool {
	return s.config.DebugIdentity
}

// ChangePassword replaces the password of userID after checking the old one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return invalid(err, "invalid change password payload")
	}
	if userID == models.DebugUserID {
		return appErrors.Clone(appErrors.ErrForbidden, "debug identity has no password")
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("user not found")
	}

	ok, _, err := s.verifier.Verify(user.Password, req.OldPassword)
	if err != nil || !ok {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "old password is incorrect")
	}

	hash, err := s.verifier.Hash(req.NewPassword)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if _, err := s.repo.UpdateUserPassword(ctx, userID, hash); err != nil {
		return err
	}
	return nil
}

// HashPassword produces a credential in the default scheme.
func (s *AuthService) HashPassword(plain string) (string, error) {
	return s.verifier.Hash(plain)
}

func (s *AuthService) record(result string) {
	if s.recorder != nil {
		s.recorder.RecordLogin(result)
	}
}
