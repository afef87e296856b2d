package dto

// ImportRowError describes one rejected CSV row. Row numbers are
// 1-based and count the header, matching what a spreadsheet shows.
type ImportRowError struct {
	Row    int    `json:"row"`
	Email  string `json:"email,omitempty"`
	MIS    string `json:"mis,omitempty"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk student import. The import never
// fails wholesale on bad rows: valid rows are created, the rest are
// reported here.
type ImportResult struct {
	Total    int              `json:"total"`
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

type FacultyDTO struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Approved   bool   `json:"approved"`
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	Students        int64 `json:"students"`
	Faculty         int64 `json:"faculty"`
	PendingFaculty  int64 `json:"pendingFaculty"`
	ApprovedFaculty int64 `json:"approvedFaculty"`
	Courses         int64 `json:"courses"`
}
