package service

import (
	"context"
	"reflect"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// newValidator returns validate, or a fresh instance when nil, with the domain rules registered.
// Dates validate as their wire string so `required` rejects the zero day.
func newValidator(validate *validator.Validate) *validator.Validate {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(models.Date); ok {
			return d.String()
		}
		return ""
	}, models.Date{})
	_ = validate.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.MonthLayout, fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	return validate
}

func invalid(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func notFound(message string) error {
	return appErrors.Clone(appErrors.ErrNotFound, message)
}

// studentLookup resolves a student profile by its own id.
type studentLookup interface {
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
}

// requireStudent rejects ids that do not name a student profile. Login ids are not accepted.
func requireStudent(ctx context.Context, repo studentLookup, id int64) error {
	student, err := repo.GetStudent(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return appErrors.Clone(appErrors.ErrValidation, "studentId must reference a student profile")
	}
	return nil
}
