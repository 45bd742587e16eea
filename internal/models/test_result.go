package models

// TestResultStatus tracks whether a score has been marked.
type TestResultStatus string

const (
	TestResultStatusPending TestResultStatus = "pending"
	TestResultStatusGraded  TestResultStatus = "graded"
)

// DefaultMaxScore applies when a result is created without an explicit maximum.
const DefaultMaxScore = 100

// Valid returns true when the status is a supported value.
func (s TestResultStatus) Valid() bool {
	return s == TestResultStatusPending || s == TestResultStatusGraded
}

// TestResult is one student's score on one named test in a class.
type TestResult struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	StudentID int64            `json:"studentId"`
	ClassID   int64            `json:"classId"`
	Date      Date             `json:"date"`
	Score     float64          `json:"score"`
	MaxScore  float64          `json:"maxScore"`
	Status    TestResultStatus `json:"status"`
}
