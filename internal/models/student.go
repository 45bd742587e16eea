package models

// Student is the profile attached to a user with the student role. Attendance, test results,
// installments and lendings reference its ID, never the UserID.
type Student struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	ParentName  *string `json:"parentName"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	DateOfBirth *Date   `json:"dateOfBirth"`
}
