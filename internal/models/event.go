package models

// Event is a calendar entry. TargetGrades is free text such as "10, 11".
type Event struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Date         Date    `json:"date"`
	Time         *string `json:"time"`
	TargetGrades *string `json:"targetGrades"`
}
