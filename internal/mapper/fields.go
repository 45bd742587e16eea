package mapper

// Field sets for every entity. The id column is listed first so Columns can be used verbatim
// in SELECT and RETURNING clauses.
var (
	UserFields = FieldSet{
		{"id", "id"},
		{"username", "username"},
		{"password", "password"},
		{"fullName", "full_name"},
		{"email", "email"},
		{"role", "role"},
		{"grade", "grade"},
		{"joinDate", "join_date"},
	}

	StudentFields = FieldSet{
		{"id", "id"},
		{"userId", "user_id"},
		{"parentName", "parent_name"},
		{"phone", "phone"},
		{"address", "address"},
		{"dateOfBirth", "date_of_birth"},
	}

	ClassFields = FieldSet{
		{"id", "id"},
		{"name", "name"},
		{"grade", "grade"},
		{"teacherId", "teacher_id"},
		{"schedule", "schedule"},
	}

	AttendanceFields = FieldSet{
		{"id", "id"},
		{"studentId", "student_id"},
		{"classId", "class_id"},
		{"date", "date"},
		{"status", "status"},
	}

	TestResultFields = FieldSet{
		{"id", "id"},
		{"name", "name"},
		{"studentId", "student_id"},
		{"classId", "class_id"},
		{"date", "date"},
		{"score", "score"},
		{"maxScore", "max_score"},
		{"status", "status"},
	}

	InstallmentFields = FieldSet{
		{"id", "id"},
		{"studentId", "student_id"},
		{"amount", "amount"},
		{"dueDate", "due_date"},
		{"paymentDate", "payment_date"},
		{"status", "status"},
	}

	TeacherPaymentFields = FieldSet{
		{"id", "id"},
		{"teacherId", "teacher_id"},
		{"amount", "amount"},
		{"month", "month"},
		{"description", "description"},
		{"paymentDate", "payment_date"},
		{"status", "status"},
	}

	EventFields = FieldSet{
		{"id", "id"},
		{"title", "title"},
		{"description", "description"},
		{"date", "date"},
		{"time", "time"},
		{"targetGrades", "target_grades"},
	}

	PublicationNoteFields = FieldSet{
		{"id", "id"},
		{"title", "title"},
		{"subject", "subject"},
		{"grade", "grade"},
		{"totalStock", "total_stock"},
		{"availableStock", "available_stock"},
		{"lowStockThreshold", "low_stock_threshold"},
		{"lastRestocked", "last_restocked"},
		{"description", "description"},
	}

	StudentNoteFields = FieldSet{
		{"id", "id"},
		{"studentId", "student_id"},
		{"noteId", "note_id"},
		{"dateIssued", "date_issued"},
		{"isReturned", "is_returned"},
		{"returnDate", "return_date"},
		{"condition", "condition"},
		{"notes", "notes"},
	}
)
