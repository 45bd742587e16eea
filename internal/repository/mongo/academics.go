package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
)

// Students

func (s *Store) CreateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	row := mapper.StudentToRow(student)
	if err := s.insert(ctx, "create_student", collStudents, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.StudentFromRow(row)
	return &created, nil
}

func (s *Store) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	row, err := findOne[mapper.StudentRow](ctx, s, "get_student", collStudents, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.StudentFromRow), nil
}

func (s *Store) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	row, err := findOne[mapper.StudentRow](ctx, s, "get_student_by_user", collStudents, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.StudentFromRow), nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := findAll[mapper.StudentRow](ctx, s, "list_students", collStudents, nil, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.StudentFromRow), nil
}

// Classes

func (s *Store) CreateClass(ctx context.Context, class models.Class) (*models.Class, error) {
	row := mapper.ClassToRow(class)
	if err := s.insert(ctx, "create_class", collClasses, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.ClassFromRow(row)
	return &created, nil
}

func (s *Store) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	row, err := findOne[mapper.ClassRow](ctx, s, "get_class", collClasses, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.ClassFromRow), nil
}

func (s *Store) ListClasses(ctx context.Context) ([]models.Class, error) {
	return s.listClasses(ctx, "list_classes", nil)
}

func (s *Store) ListClassesByTeacher(ctx context.Context, teacherID int64) ([]models.Class, error) {
	return s.listClasses(ctx, "list_classes_by_teacher", bson.M{"teacher_id": teacherID})
}

func (s *Store) ListClassesByGrade(ctx context.Context, grade string) ([]models.Class, error) {
	return s.listClasses(ctx, "list_classes_by_grade", bson.M{"grade": grade})
}

func (s *Store) listClasses(ctx context.Context, op string, filter bson.M) ([]models.Class, error) {
	rows, err := findAll[mapper.ClassRow](ctx, s, op, collClasses, filter, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.ClassFromRow), nil
}

// Attendance

func (s *Store) CreateAttendance(ctx context.Context, attendance models.Attendance) (*models.Attendance, error) {
	row := mapper.AttendanceToRow(attendance)
	if err := s.insert(ctx, "create_attendance", collAttendance, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.AttendanceFromRow(row)
	return &created, nil
}

func (s *Store) GetAttendance(ctx context.Context, id int64) (*models.Attendance, error) {
	row, err := findOne[mapper.AttendanceRow](ctx, s, "get_attendance", collAttendance, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.AttendanceFromRow), nil
}

func (s *Store) ListAttendanceByClass(ctx context.Context, classID int64) ([]models.Attendance, error) {
	return s.listAttendance(ctx, "list_attendance_by_class", bson.M{"class_id": classID})
}

func (s *Store) ListAttendanceByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	return s.listAttendance(ctx, "list_attendance_by_student", bson.M{"student_id": studentID})
}

func (s *Store) listAttendance(ctx context.Context, op string, filter bson.M) ([]models.Attendance, error) {
	rows, err := findAll[mapper.AttendanceRow](ctx, s, op, collAttendance, filter, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.AttendanceFromRow), nil
}

func (s *Store) UpdateAttendance(ctx context.Context, id int64, status models.AttendanceStatus) (*models.Attendance, error) {
	row, err := updateOne[mapper.AttendanceRow](ctx, s, "update_attendance", collAttendance, mapper.AttendanceFields, id, map[string]interface{}{"status": string(status)})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.AttendanceFromRow), nil
}

// Test results

func (s *Store) CreateTestResult(ctx context.Context, result models.TestResult) (*models.TestResult, error) {
	row := mapper.TestResultToRow(repository.TestResultDefaults(result))
	if err := s.insert(ctx, "create_test_result", collTestResults, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.TestResultFromRow(row)
	return &created, nil
}

func (s *Store) GetTestResult(ctx context.Context, id int64) (*models.TestResult, error) {
	row, err := findOne[mapper.TestResultRow](ctx, s, "get_test_result", collTestResults, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.TestResultFromRow), nil
}

func (s *Store) ListTestResultsByClass(ctx context.Context, classID int64) ([]models.TestResult, error) {
	return s.listTestResults(ctx, "list_test_results_by_class", bson.M{"class_id": classID})
}

func (s *Store) ListTestResultsByStudent(ctx context.Context, studentID int64) ([]models.TestResult, error) {
	return s.listTestResults(ctx, "list_test_results_by_student", bson.M{"student_id": studentID})
}

func (s *Store) listTestResults(ctx context.Context, op string, filter bson.M) ([]models.TestResult, error) {
	rows, err := findAll[mapper.TestResultRow](ctx, s, op, collTestResults, filter, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.TestResultFromRow), nil
}

func (s *Store) UpdateTestResult(ctx context.Context, id int64, score float64, status models.TestResultStatus) (*models.TestResult, error) {
	partial := map[string]interface{}{"score": score, "status": string(status)}
	row, err := updateOne[mapper.TestResultRow](ctx, s, "update_test_result", collTestResults, mapper.TestResultFields, id, partial)
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.TestResultFromRow), nil
}
