package models

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// Attendance records one student's presence in one class on one day.
// Duplicate (student, class, date) rows are not rejected.
type Attendance struct {
	ID        int64            `json:"id"`
	StudentID int64            `json:"studentId"`
	ClassID   int64            `json:"classId"`
	Date      Date             `json:"date"`
	Status    AttendanceStatus `json:"status"`
}
