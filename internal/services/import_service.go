package services

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/Arbaj2004/Smart-Learn/internal/auth"
	"github.com/Arbaj2004/Smart-Learn/internal/logger"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
	"github.com/Arbaj2004/Smart-Learn/internal/services/dto"
	"github.com/Arbaj2004/Smart-Learn/pkg/apperrors"
)

// importColumns is the required CSV header, in order.
var importColumns = []string{"Name", "Email", "Password", "MIS", "Department"}

type ImportService interface {
	ImportStudents(reader io.Reader) (*dto.ImportResult, error)
}

type ImportServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewImportService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) ImportService {
	return &ImportServiceImpl{userRepo: userRepo, profileRepo: profileRepo}
}

type importRow struct {
	line       int
	name       string
	email      string
	password   string
	mis        string
	department string
}

// ImportStudents creates verified student accounts from a CSV file.
// Rows that collide with existing accounts, or with earlier rows in
// the same file, are skipped and reported; the rest are inserted in a
// single transaction. Re-running the same file is therefore harmless.
func (s *ImportServiceImpl) ImportStudents(reader io.Reader) (*dto.ImportResult, error) {
	rows, parseErrs, err := s.parse(reader)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{
		Total:  len(rows) + len(parseErrs),
		Errors: parseErrs,
	}

	// One lookup per identifier space, regardless of file size.
	emails := make([]string, 0, len(rows))
	misNumbers := make([]string, 0, len(rows))
	for _, row := range rows {
		emails = append(emails, row.email)
		misNumbers = append(misNumbers, row.mis)
	}
	takenEmails, err := s.userRepo.FindEmailsIn(emails)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	takenMIS, err := s.profileRepo.FindMISIn(misNumbers)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var users []*models.User
	var profiles []*models.StudentProfile
	for _, row := range rows {
		if _, taken := takenEmails[row.email]; taken {
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row: row.line, Email: row.email, Reason: "email already registered",
			})
			continue
		}
		if _, taken := takenMIS[row.mis]; taken {
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row: row.line, MIS: row.mis, Reason: "MIS already registered",
			})
			continue
		}
		// Also guards against duplicates inside the file itself.
		takenEmails[row.email] = struct{}{}
		takenMIS[row.mis] = struct{}{}

		hash, err := auth.HashPassword(row.password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		user := &models.User{
			Name:         row.name,
			Email:        row.email,
			PasswordHash: hash,
			Role:         models.UserRoleStudent,
			Status:       models.UserStatusActive,
			IsVerified:   true,
		}
		users = append(users, user)
		profiles = append(profiles, &models.StudentProfile{
			MIS:        row.mis,
			Department: row.department,
		})
	}

	if len(users) > 0 {
		// Users must exist first so each profile can carry its owner's
		// generated ID. The repository wraps both inserts in one
		// transaction.
		for i, user := range users {
			if user.ID == "" {
				user.ID = models.NewID()
			}
			profiles[i].UserID = user.ID
		}
		// The precheck maps make collisions here rare (an insert racing
		// the lookup), so the duplicate is surfaced as a whole-request
		// conflict rather than a row error.
		switch err := s.profileRepo.CreateStudentAccounts(users, profiles); err {
		case nil:
		case repositories.ErrDuplicateEmail:
			return nil, apperrors.ErrEmailAlreadyExists
		case repositories.ErrDuplicateMIS:
			return nil, apperrors.ErrMISAlreadyExists
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	result.Imported = len(users)
	result.Skipped = result.Total - result.Imported
	logger.Info("student import finished",
		"total", result.Total,
		"imported", result.Imported,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *ImportServiceImpl) parse(reader io.Reader) ([]importRow, []dto.ImportRowError, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, apperrors.ParseError(err)
	}
	if len(header) < len(importColumns) {
		return nil, nil, apperrors.NewBadRequestError("CSV header must be: " + strings.Join(importColumns, ","))
	}
	for i, want := range importColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, nil, apperrors.NewBadRequestError("CSV header must be: " + strings.Join(importColumns, ","))
		}
	}

	var rows []importRow
	var rowErrs []dto.ImportRowError
	line := 1 // header consumed
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: line, Reason: "malformed row"})
			continue
		}

		row := importRow{
			line:       line,
			name:       strings.TrimSpace(record[0]),
			email:      normalizeEmail(record[1]),
			password:   record[2],
			mis:        strings.TrimSpace(record[3]),
			department: strings.TrimSpace(record[4]),
		}
		if reason := validateImportRow(row); reason != "" {
			rowErrs = append(rowErrs, dto.ImportRowError{Row: line, Email: row.email, MIS: row.mis, Reason: reason})
			continue
		}
		rows = append(rows, row)
	}

	return rows, rowErrs, nil
}

func validateImportRow(row importRow) string {
	switch {
	case row.name == "":
		return "name is required"
	case row.email == "" || !strings.Contains(row.email, "@"):
		return "invalid email"
	case len(row.password) < 8:
		return "password must be at least 8 characters"
	case !validMIS(row.mis):
		return "MIS must be 6-12 digits"
	case row.department == "":
		return "department is required"
	}
	return ""
}

// validMIS mirrors the "mis" request validation tag, so the import
// cannot create MIS values signup-side validation would reject.
func validMIS(mis string) bool {
	if len(mis) < 6 || len(mis) > 12 {
		return false
	}
	for _, r := range mis {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
