// Package memory is the process-local storage adapter. State lives in maps guarded by a single
// lock and is lost on restart.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

// Store implements repository.Store in memory.
type Store struct {
	mu sync.RWMutex

	users           map[int64]models.User
	students        map[int64]models.Student
	classes         map[int64]models.Class
	attendance      map[int64]models.Attendance
	testResults     map[int64]models.TestResult
	installments    map[int64]models.Installment
	teacherPayments map[int64]models.TeacherPayment
	events          map[int64]models.Event
	notes           map[int64]models.PublicationNote
	studentNotes    map[int64]models.StudentNote

	seq map[string]int64
}

var _ repository.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		users:           make(map[int64]models.User),
		students:        make(map[int64]models.Student),
		classes:         make(map[int64]models.Class),
		attendance:      make(map[int64]models.Attendance),
		testResults:     make(map[int64]models.TestResult),
		installments:    make(map[int64]models.Installment),
		teacherPayments: make(map[int64]models.TeacherPayment),
		events:          make(map[int64]models.Event),
		notes:           make(map[int64]models.PublicationNote),
		studentNotes:    make(map[int64]models.StudentNote),
		seq:             make(map[string]int64),
	}
}

// nextID must be called with the write lock held.
func (s *Store) nextID(entity string) int64 {
	s.seq[entity]++
	return s.seq[entity]
}

// get and collect hand out deep copies so callers never share pointer fields with the maps.
func get[T any](m map[int64]T, id int64, clone func(T) T) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	v = clone(v)
	return &v
}

// collect returns the values accepted by keep, ordered by id.
func collect[T any](m map[int64]T, keep func(T) bool, clone func(T) T) []T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(m[id]))
	}
	return out
}

// Users

func (s *Store) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username already exists")
		}
	}
	user = repository.UserDefaults(user)
	user.ID = s.nextID("users")
	s.users[user.ID] = cloneUser(user)
	out := cloneUser(user)
	return &out, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.users, id, cloneUser), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.users, nil, cloneUser), nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.users, func(u models.User) bool { return u.Role == role }, cloneUser), nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id int64, hash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	u.Password = hash
	s.users[id] = cloneUser(u)
	out := cloneUser(u)
	return &out, nil
}

// Students

func (s *Store) CreateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.students {
		if existing.UserID == student.UserID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student profile already exists for user")
		}
	}
	student.ID = s.nextID("students")
	s.students[student.ID] = cloneStudent(student)
	out := cloneStudent(student)
	return &out, nil
}

func (s *Store) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.students, id, cloneStudent), nil
}

func (s *Store) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.UserID == userID {
			st = cloneStudent(st)
			return &st, nil
		}
	}
	return nil, nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.students, nil, cloneStudent), nil
}

// Classes

func (s *Store) CreateClass(ctx context.Context, class models.Class) (*models.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	class.ID = s.nextID("classes")
	s.classes[class.ID] = cloneClass(class)
	out := cloneClass(class)
	return &out, nil
}

func (s *Store) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.classes, id, cloneClass), nil
}

func (s *Store) ListClasses(ctx context.Context) ([]models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.classes, nil, cloneClass), nil
}

func (s *Store) ListClassesByTeacher(ctx context.Context, teacherID int64) ([]models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.classes, func(c models.Class) bool { return c.TeacherID == teacherID }, cloneClass), nil
}

func (s *Store) ListClassesByGrade(ctx context.Context, grade string) ([]models.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.classes, func(c models.Class) bool { return c.Grade == grade }, cloneClass), nil
}

// Attendance

func (s *Store) CreateAttendance(ctx context.Context, attendance models.Attendance) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attendance.ID = s.nextID("attendance")
	s.attendance[attendance.ID] = cloneAttendance(attendance)
	out := cloneAttendance(attendance)
	return &out, nil
}

func (s *Store) GetAttendance(ctx context.Context, id int64) (*models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.attendance, id, cloneAttendance), nil
}

func (s *Store) ListAttendanceByClass(ctx context.Context, classID int64) ([]models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.attendance, func(a models.Attendance) bool { return a.ClassID == classID }, cloneAttendance), nil
}

func (s *Store) ListAttendanceByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.attendance, func(a models.Attendance) bool { return a.StudentID == studentID }, cloneAttendance), nil
}

func (s *Store) UpdateAttendance(ctx context.Context, id int64, status models.AttendanceStatus) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attendance[id]
	if !ok {
		return nil, nil
	}
	a.Status = status
	s.attendance[id] = cloneAttendance(a)
	out := cloneAttendance(a)
	return &out, nil
}

// Test results

func (s *Store) CreateTestResult(ctx context.Context, result models.TestResult) (*models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result = repository.TestResultDefaults(result)
	result.ID = s.nextID("test_results")
	s.testResults[result.ID] = cloneTestResult(result)
	out := cloneTestResult(result)
	return &out, nil
}

func (s *Store) GetTestResult(ctx context.Context, id int64) (*models.TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.testResults, id, cloneTestResult), nil
}

func (s *Store) ListTestResultsByClass(ctx context.Context, classID int64) ([]models.TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.testResults, func(r models.TestResult) bool { return r.ClassID == classID }, cloneTestResult), nil
}

func (s *Store) ListTestResultsByStudent(ctx context.Context, studentID int64) ([]models.TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.testResults, func(r models.TestResult) bool { return r.StudentID == studentID }, cloneTestResult), nil
}

func (s *Store) UpdateTestResult(ctx context.Context, id int64, score float64, status models.TestResultStatus) (*models.TestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.testResults[id]
	if !ok {
		return nil, nil
	}
	r.Score = score
	r.Status = status
	s.testResults[id] = cloneTestResult(r)
	out := cloneTestResult(r)
	return &out, nil
}

// Installments

func (s *Store) CreateInstallment(ctx context.Context, installment models.Installment) (*models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	installment = repository.InstallmentDefaults(installment)
	installment.ID = s.nextID("installments")
	s.installments[installment.ID] = cloneInstallment(installment)
	out := cloneInstallment(installment)
	return &out, nil
}

func (s *Store) GetInstallment(ctx context.Context, id int64) (*models.Installment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.installments, id, cloneInstallment), nil
}

func (s *Store) ListInstallments(ctx context.Context) ([]models.Installment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.installments, nil, cloneInstallment), nil
}

func (s *Store) ListInstallmentsByStudent(ctx context.Context, studentID int64) ([]models.Installment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.installments, func(i models.Installment) bool { return i.StudentID == studentID }, cloneInstallment), nil
}

func (s *Store) ListInstallmentsByStatus(ctx context.Context, status models.InstallmentStatus) ([]models.Installment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.installments, func(i models.Installment) bool { return i.Status == status }, cloneInstallment), nil
}

func (s *Store) UpdateInstallment(ctx context.Context, id int64, status models.InstallmentStatus, paymentDate *models.Date) (*models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.installments[id]
	if !ok {
		return nil, nil
	}
	i.Status = status
	if paymentDate != nil {
		d := *paymentDate
		i.PaymentDate = &d
	}
	s.installments[id] = cloneInstallment(i)
	out := cloneInstallment(i)
	return &out, nil
}

// Teacher payments

func (s *Store) CreateTeacherPayment(ctx context.Context, payment models.TeacherPayment) (*models.TeacherPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment = repository.TeacherPaymentDefaults(payment)
	payment.ID = s.nextID("teacher_payments")
	s.teacherPayments[payment.ID] = cloneTeacherPayment(payment)
	out := cloneTeacherPayment(payment)
	return &out, nil
}

func (s *Store) GetTeacherPayment(ctx context.Context, id int64) (*models.TeacherPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.teacherPayments, id, cloneTeacherPayment), nil
}

func (s *Store) ListTeacherPayments(ctx context.Context) ([]models.TeacherPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.teacherPayments, nil, cloneTeacherPayment), nil
}

func (s *Store) ListTeacherPaymentsByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.teacherPayments, func(p models.TeacherPayment) bool { return p.TeacherID == teacherID }, cloneTeacherPayment), nil
}

func (s *Store) UpdateTeacherPayment(ctx context.Context, id int64, status models.TeacherPaymentStatus, paymentDate *models.Date) (*models.TeacherPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.teacherPayments[id]
	if !ok {
		return nil, nil
	}
	p.Status = status
	if paymentDate != nil {
		d := *paymentDate
		p.PaymentDate = &d
	}
	s.teacherPayments[id] = cloneTeacherPayment(p)
	out := cloneTeacherPayment(p)
	return &out, nil
}

// Events

func (s *Store) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = s.nextID("events")
	s.events[event.ID] = cloneEvent(event)
	out := cloneEvent(event)
	return &out, nil
}

func (s *Store) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.events, id, cloneEvent), nil
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortEvents(collect(s.events, nil, cloneEvent)), nil
}

func (s *Store) ListUpcomingEvents(ctx context.Context, from models.Date) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortEvents(collect(s.events, func(e models.Event) bool { return !e.Date.Before(from) }, cloneEvent)), nil
}

func sortEvents(events []models.Event) []models.Event {
	slices.SortStableFunc(events, func(a, b models.Event) int {
		return a.Date.Compare(b.Date.Time)
	})
	return events
}

// Publication notes

func (s *Store) CreatePublicationNote(ctx context.Context, note models.PublicationNote) (*models.PublicationNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note = repository.PublicationNoteDefaults(note)
	note.ID = s.nextID("publication_notes")
	s.notes[note.ID] = clonePublicationNote(note)
	out := clonePublicationNote(note)
	return &out, nil
}

func (s *Store) GetPublicationNote(ctx context.Context, id int64) (*models.PublicationNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.notes, id, clonePublicationNote), nil
}

func (s *Store) ListPublicationNotes(ctx context.Context) ([]models.PublicationNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.notes, nil, clonePublicationNote), nil
}

func (s *Store) ListPublicationNotesByGrade(ctx context.Context, grade string) ([]models.PublicationNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.notes, func(n models.PublicationNote) bool { return n.Grade == grade }, clonePublicationNote), nil
}

func (s *Store) ListLowStockPublicationNotes(ctx context.Context) ([]models.PublicationNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.notes, models.PublicationNote.IsLowStock, clonePublicationNote), nil
}

func (s *Store) UpdateStock(ctx context.Context, id int64, totalStock, availableStock int) (*models.PublicationNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	n.TotalStock = totalStock
	n.AvailableStock = availableStock
	n.LastRestocked = repository.Now()
	s.notes[id] = clonePublicationNote(n)
	out := clonePublicationNote(n)
	return &out, nil
}

// Student notes

// CreateStudentNote records the lending and takes a copy out of stock under one lock, so two
// concurrent issues can never both read the same available count.
func (s *Store) CreateStudentNote(ctx context.Context, note models.StudentNote) (*models.StudentNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note = repository.StudentNoteDefaults(note)
	note.ID = s.nextID("student_notes")
	s.studentNotes[note.ID] = cloneStudentNote(note)

	if !note.IsReturned {
		if pub, ok := s.notes[note.PublicationNoteID]; ok && pub.AvailableStock > 0 {
			pub.AvailableStock--
			s.notes[pub.ID] = pub
		}
	}
	out := cloneStudentNote(note)
	return &out, nil
}

func (s *Store) GetStudentNote(ctx context.Context, id int64) (*models.StudentNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.studentNotes, id, cloneStudentNote), nil
}

func (s *Store) ListStudentNotes(ctx context.Context) ([]models.StudentNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.studentNotes, nil, cloneStudentNote), nil
}

func (s *Store) ListStudentNotesByStudent(ctx context.Context, studentID int64) ([]models.StudentNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.studentNotes, func(n models.StudentNote) bool { return n.StudentID == studentID }, cloneStudentNote), nil
}

func (s *Store) ListStudentNotesByPublication(ctx context.Context, noteID int64) ([]models.StudentNote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collect(s.studentNotes, func(n models.StudentNote) bool { return n.PublicationNoteID == noteID }, cloneStudentNote), nil
}

func (s *Store) UpdateStudentNoteStatus(ctx context.Context, id int64, update models.StudentNoteStatusUpdate) (*models.StudentNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.studentNotes[id]
	if !ok {
		return nil, nil
	}
	n.IsReturned = update.IsReturned
	if update.ReturnDate != nil {
		d := *update.ReturnDate
		n.ReturnDate = &d
	}
	if update.Condition != nil {
		c := *update.Condition
		n.Condition = &c
	}
	if update.Notes != nil {
		notes := *update.Notes
		n.Notes = &notes
	}
	s.studentNotes[id] = cloneStudentNote(n)
	out := cloneStudentNote(n)
	return &out, nil
}
