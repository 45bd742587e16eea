package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

type classRepository interface {
	CreateClass(ctx context.Context, class models.Class) (*models.Class, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListClassesByTeacher(ctx context.Context, teacherID int64) ([]models.Class, error)
	ListClassesByGrade(ctx context.Context, grade string) ([]models.Class, error)
}

type teacherLookup interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// ClassService manages classes.
type ClassService struct {
	repo      classRepository
	users     teacherLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo classRepository, users teacherLookup, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, users: users, validator: newValidator(validate), logger: logger}
}

// Create adds a class owned by a teacher account.
func (s *ClassService) Create(ctx context.Context, req dto.CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid class payload")
	}

	teacher, err := s.users.GetUser(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil || teacher.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId must reference a teacher account")
	}

	return s.repo.CreateClass(ctx, models.Class{
		Name:      req.Name,
		Grade:     req.Grade,
		TeacherID: req.TeacherID,
		Schedule:  req.Schedule,
	})
}

// Get returns a class by ID.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.repo.GetClass(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, notFound("class not found")
	}
	return class, nil
}

// List returns classes matching filter.
func (s *ClassService) List(ctx context.Context, filter dto.ClassFilter) ([]models.Class, error) {
	switch {
	case filter.TeacherID > 0:
		return s.repo.ListClassesByTeacher(ctx, filter.TeacherID)
	case filter.Grade != "":
		return s.repo.ListClassesByGrade(ctx, filter.Grade)
	default:
		return s.repo.ListClasses(ctx)
	}
}

// ListVisible returns the classes user may see: all for admins, owned classes for teachers and
// classes of their grade for students.
func (s *ClassService) ListVisible(ctx context.Context, user *models.User) ([]models.Class, error) {
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
	}
	switch user.Role {
	case models.RoleAdmin:
		return s.repo.ListClasses(ctx)
	case models.RoleTeacher:
		return s.repo.ListClassesByTeacher(ctx, user.ID)
	default:
		if user.Grade == nil || *user.Grade == "" {
			return []models.Class{}, nil
		}
		return s.repo.ListClassesByGrade(ctx, *user.Grade)
	}
}

// CanManage reports whether user may record attendance and results for class.
func (s *ClassService) CanManage(user *models.User, class *models.Class) bool {
	if user == nil || class == nil {
		return false
	}
	return user.Role == models.RoleAdmin || (user.Role == models.RoleTeacher && class.TeacherID == user.ID)
}
