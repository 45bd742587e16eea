package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bimbel-api/internal/middleware"
	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
	"github.com/noah-isme/bimbel-api/pkg/response"
)

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

// pathID parses the named route param. It writes the error response itself and reports false
// when the value is not a positive integer.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return id, true
}

// queryID parses an optional numeric query parameter; absent means zero.
func queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}

// isStaff reports whether user is an admin or teacher.
func isStaff(user *models.User) bool {
	return user != nil && (user.Role == models.RoleAdmin || user.Role == models.RoleTeacher)
}

// StudentProfiles resolves the student profile behind a login. *service.UserService satisfies it.
type StudentProfiles interface {
	StudentProfile(ctx context.Context, userID int64) (*models.Student, error)
}

// ownStudentID returns the profile id of a student-role user. A student without a profile owns
// nothing and gets 0. Other failures are written to the response and report false.
func ownStudentID(c *gin.Context, profiles StudentProfiles, user *models.User) (int64, bool) {
	profile, err := profiles.StudentProfile(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return 0, true
		}
		response.Error(c, err)
		return 0, false
	}
	return profile.ID, true
}

// ownsStudentRecord reports whether a non-staff user may read a row keyed by studentID.
func ownsStudentRecord(c *gin.Context, profiles StudentProfiles, user *models.User, studentID int64) bool {
	if isStaff(user) {
		return true
	}
	if user == nil || user.Role != models.RoleStudent {
		response.Error(c, appErrors.ErrForbidden)
		return false
	}
	own, ok := ownStudentID(c, profiles, user)
	if !ok {
		return false
	}
	if own == 0 || own != studentID {
		response.Error(c, appErrors.ErrForbidden)
		return false
	}
	return true
}
