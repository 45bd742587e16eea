package postgres

import (
	"context"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
)

// Students

func (s *Store) CreateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	var row mapper.StudentRow
	if err := s.insert(ctx, "create_student", tableStudents, mapper.StudentFields, mapper.StudentToRow(student), &row); err != nil {
		return nil, err
	}
	created := mapper.StudentFromRow(row)
	return &created, nil
}

func (s *Store) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	var row mapper.StudentRow
	ok, err := s.getOne(ctx, "get_student", &row, selectQuery(tableStudents, mapper.StudentFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.StudentFromRow), nil
}

func (s *Store) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	var row mapper.StudentRow
	ok, err := s.getOne(ctx, "get_student_by_user", &row, selectQuery(tableStudents, mapper.StudentFields, "user_id = $1"), userID)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.StudentFromRow), nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	var rows []mapper.StudentRow
	if err := s.selectAll(ctx, "list_students", &rows, selectQuery(tableStudents, mapper.StudentFields, "")+" ORDER BY id"); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.StudentFromRow), nil
}

// Classes

func (s *Store) CreateClass(ctx context.Context, class models.Class) (*models.Class, error) {
	var row mapper.ClassRow
	if err := s.insert(ctx, "create_class", tableClasses, mapper.ClassFields, mapper.ClassToRow(class), &row); err != nil {
		return nil, err
	}
	created := mapper.ClassFromRow(row)
	return &created, nil
}

func (s *Store) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	var row mapper.ClassRow
	ok, err := s.getOne(ctx, "get_class", &row, selectQuery(tableClasses, mapper.ClassFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.ClassFromRow), nil
}

func (s *Store) ListClasses(ctx context.Context) ([]models.Class, error) {
	return s.listClasses(ctx, "list_classes", "")
}

func (s *Store) ListClassesByTeacher(ctx context.Context, teacherID int64) ([]models.Class, error) {
	return s.listClasses(ctx, "list_classes_by_teacher", "teacher_id = $1", teacherID)
}

func (s *Store) ListClassesByGrade(ctx context.Context, grade string) ([]models.Class, error) {
	return s.listClasses(ctx, "list_classes_by_grade", "grade = $1", grade)
}

func (s *Store) listClasses(ctx context.Context, op, where string, args ...interface{}) ([]models.Class, error) {
	var rows []mapper.ClassRow
	if err := s.selectAll(ctx, op, &rows, selectQuery(tableClasses, mapper.ClassFields, where)+" ORDER BY id", args...); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.ClassFromRow), nil
}

// Attendance

func (s *Store) CreateAttendance(ctx context.Context, attendance models.Attendance) (*models.Attendance, error) {
	var row mapper.AttendanceRow
	if err := s.insert(ctx, "create_attendance", tableAttendance, mapper.AttendanceFields, mapper.AttendanceToRow(attendance), &row); err != nil {
		return nil, err
	}
	created := mapper.AttendanceFromRow(row)
	return &created, nil
}

func (s *Store) GetAttendance(ctx context.Context, id int64) (*models.Attendance, error) {
	var row mapper.AttendanceRow
	ok, err := s.getOne(ctx, "get_attendance", &row, selectQuery(tableAttendance, mapper.AttendanceFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.AttendanceFromRow), nil
}

func (s *Store) ListAttendanceByClass(ctx context.Context, classID int64) ([]models.Attendance, error) {
	return s.listAttendance(ctx, "list_attendance_by_class", "class_id = $1", classID)
}

func (s *Store) ListAttendanceByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	return s.listAttendance(ctx, "list_attendance_by_student", "student_id = $1", studentID)
}

func (s *Store) listAttendance(ctx context.Context, op, where string, args ...interface{}) ([]models.Attendance, error) {
	var rows []mapper.AttendanceRow
	if err := s.selectAll(ctx, op, &rows, selectQuery(tableAttendance, mapper.AttendanceFields, where)+" ORDER BY id", args...); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.AttendanceFromRow), nil
}

func (s *Store) UpdateAttendance(ctx context.Context, id int64, status models.AttendanceStatus) (*models.Attendance, error) {
	var row mapper.AttendanceRow
	ok, err := s.update(ctx, "update_attendance", tableAttendance, mapper.AttendanceFields, id, map[string]interface{}{"status": string(status)}, &row)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.AttendanceFromRow), nil
}

// Test results

func (s *Store) CreateTestResult(ctx context.Context, result models.TestResult) (*models.TestResult, error) {
	var row mapper.TestResultRow
	if err := s.insert(ctx, "create_test_result", tableTestResults, mapper.TestResultFields, mapper.TestResultToRow(repository.TestResultDefaults(result)), &row); err != nil {
		return nil, err
	}
	created := mapper.TestResultFromRow(row)
	return &created, nil
}

func (s *Store) GetTestResult(ctx context.Context, id int64) (*models.TestResult, error) {
	var row mapper.TestResultRow
	ok, err := s.getOne(ctx, "get_test_result", &row, selectQuery(tableTestResults, mapper.TestResultFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.TestResultFromRow), nil
}

func (s *Store) ListTestResultsByClass(ctx context.Context, classID int64) ([]models.TestResult, error) {
	return s.listTestResults(ctx, "list_test_results_by_class", "class_id = $1", classID)
}

func (s *Store) ListTestResultsByStudent(ctx context.Context, studentID int64) ([]models.TestResult, error) {
	return s.listTestResults(ctx, "list_test_results_by_student", "student_id = $1", studentID)
}

func (s *Store) listTestResults(ctx context.Context, op, where string, args ...interface{}) ([]models.TestResult, error) {
	var rows []mapper.TestResultRow
	if err := s.selectAll(ctx, op, &rows, selectQuery(tableTestResults, mapper.TestResultFields, where)+" ORDER BY id", args...); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.TestResultFromRow), nil
}

func (s *Store) UpdateTestResult(ctx context.Context, id int64, score float64, status models.TestResultStatus) (*models.TestResult, error) {
	var row mapper.TestResultRow
	partial := map[string]interface{}{"score": score, "status": string(status)}
	ok, err := s.update(ctx, "update_test_result", tableTestResults, mapper.TestResultFields, id, partial, &row)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.TestResultFromRow), nil
}
