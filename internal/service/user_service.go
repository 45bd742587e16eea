package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

type userRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error)

	CreateStudent(ctx context.Context, student models.Student) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
}

type passwordHasher interface {
	Hash(plain string) (string, error)
}

// CreatedUser pairs a new account with the student profile created alongside it.
type CreatedUser struct {
	User    *models.User    `json:"user"`
	Student *models.Student `json:"student,omitempty"`
}

// UserService handles user management workflows.
type UserService struct {
	repo      userRepository
	hasher    passwordHasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, hasher passwordHasher, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, hasher: hasher, validator: newValidator(validate), logger: logger}
}

// Create adds a new account. Student accounts also get a profile row; the two writes are not
// atomic and a profile failure leaves the account in place.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*CreatedUser, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid create user payload")
	}
	if req.Role != models.RoleStudent && req.Profile != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "only student accounts carry a profile")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user, err := s.repo.CreateUser(ctx, models.User{
		Username: strings.TrimSpace(req.Username),
		Password: hash,
		FullName: req.FullName,
		Email:    strings.ToLower(req.Email),
		Role:     req.Role,
		Grade:    req.Grade,
	})
	if err != nil {
		return nil, err
	}

	created := &CreatedUser{User: user}
	if user.Role != models.RoleStudent {
		return created, nil
	}

	profile := models.Student{UserID: user.ID}
	if req.Profile != nil {
		profile.ParentName = req.Profile.ParentName
		profile.Phone = req.Profile.Phone
		profile.Address = req.Profile.Address
		profile.DateOfBirth = req.Profile.DateOfBirth
	}
	student, err := s.repo.CreateStudent(ctx, profile)
	if err != nil {
		s.logger.Warn("student profile not created", zap.Int64("user_id", user.ID), zap.Error(err))
		return created, err
	}
	created.Student = student

	return created, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	return user, nil
}

// List returns every user, or only those with role when it is set.
func (s *UserService) List(ctx context.Context, role string) ([]models.User, error) {
	if role == "" {
		return s.repo.ListUsers(ctx)
	}
	r := models.UserRole(strings.ToLower(role))
	if !r.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role "+role)
	}
	return s.repo.ListUsersByRole(ctx, r)
}

// GetStudent returns a student profile by its own id.
func (s *UserService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, notFound("student not found")
	}
	return student, nil
}

// StudentProfile returns the profile attached to userID.
func (s *UserService) StudentProfile(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.repo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, notFound("student profile not found")
	}
	return student, nil
}

// ListStudents returns every student profile.
func (s *UserService) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.repo.ListStudents(ctx)
}
