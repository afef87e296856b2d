package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Arbaj2004/Smart-Learn/internal/email"
	"github.com/Arbaj2004/Smart-Learn/internal/models"
	"github.com/Arbaj2004/Smart-Learn/internal/repositories"
)

// In-memory repository fakes. They mirror the repository contracts
// closely enough for service-level tests: sentinel errors, unique
// email/MIS enforcement, profile preloading.

type fakeUserRepo struct {
	users    map[string]*models.User
	profiles *fakeProfileRepo
}

type fakeProfileRepo struct {
	students map[string]*models.StudentProfile
	faculty  map[string]*models.FacultyProfile
	admins   map[string]*models.AdminProfile
	users    *fakeUserRepo
}

type fakeEmailProvider struct {
	sent []*email.Message
	fail bool
}

func newFakes() (*fakeUserRepo, *fakeProfileRepo, *fakeEmailProvider) {
	userRepo := &fakeUserRepo{users: make(map[string]*models.User)}
	profileRepo := &fakeProfileRepo{
		students: make(map[string]*models.StudentProfile),
		faculty:  make(map[string]*models.FacultyProfile),
		admins:   make(map[string]*models.AdminProfile),
		users:    userRepo,
	}
	userRepo.profiles = profileRepo
	return userRepo, profileRepo, &fakeEmailProvider{}
}

func (p *fakeEmailProvider) Send(msg *email.Message) error {
	if p.fail {
		return errors.New("smtp unavailable")
	}
	p.sent = append(p.sent, msg)
	return nil
}

// --- fakeUserRepo ---

func (r *fakeUserRepo) attachProfiles(user *models.User) *models.User {
	u := *user
	for _, sp := range r.profiles.students {
		if sp.UserID == u.ID {
			cp := *sp
			u.StudentProfile = &cp
		}
	}
	for _, fp := range r.profiles.faculty {
		if fp.UserID == u.ID {
			cp := *fp
			u.FacultyProfile = &cp
		}
	}
	return &u
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.attachProfiles(user), nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return r.attachProfiles(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = models.NewID()
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Save(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) VerifyUser(id string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.IsVerified = true
	user.Status = models.UserStatusActive
	user.EmailOTPHash = ""
	user.EmailOTPExpires = nil
	return nil
}

func (r *fakeUserRepo) SetPassword(id, passwordHash string, changedAt time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.PasswordChangedAt = &changedAt
	user.ResetTokenHash = ""
	user.ResetTokenExp = nil
	user.IsVerified = true
	user.Status = models.UserStatusActive
	return nil
}

func (r *fakeUserRepo) SetResetToken(id, tokenHash string, expires time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.ResetTokenHash = tokenHash
	user.ResetTokenExp = &expires
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	// FK cascade.
	for pid, sp := range r.profiles.students {
		if sp.UserID == id {
			delete(r.profiles.students, pid)
		}
	}
	for pid, fp := range r.profiles.faculty {
		if fp.UserID == id {
			delete(r.profiles.faculty, pid)
		}
	}
	return nil
}

func (r *fakeUserRepo) FindByResetTokenHash(tokenHash string) (*models.User, error) {
	for _, user := range r.users {
		if user.ResetTokenHash == tokenHash && user.ResetTokenHash != "" &&
			user.ResetTokenExp != nil && user.ResetTokenExp.After(time.Now()) {
			return r.attachProfiles(user), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindEmailsIn(emails []string) (map[string]struct{}, error) {
	taken := make(map[string]struct{})
	for _, e := range emails {
		for _, user := range r.users {
			if user.Email == e {
				taken[e] = struct{}{}
			}
		}
	}
	return taken, nil
}

func (r *fakeUserRepo) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

// --- fakeProfileRepo ---

func (r *fakeProfileRepo) CreateStudent(profile *models.StudentProfile) error {
	for _, existing := range r.students {
		if existing.MIS == profile.MIS {
			return repositories.ErrDuplicateMIS
		}
	}
	if profile.ID == "" {
		profile.ID = models.NewID()
	}
	cp := *profile
	r.students[profile.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) CreateFaculty(profile *models.FacultyProfile) error {
	if profile.ID == "" {
		profile.ID = models.NewID()
	}
	cp := *profile
	r.faculty[profile.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) CreateAdmin(profile *models.AdminProfile) error {
	if profile.ID == "" {
		profile.ID = models.NewID()
	}
	cp := *profile
	r.admins[profile.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) FindStudentByUserID(userID string) (*models.StudentProfile, error) {
	for _, profile := range r.students {
		if profile.UserID == userID {
			return r.withStudentUser(profile), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProfileRepo) FindFacultyByUserID(userID string) (*models.FacultyProfile, error) {
	for _, profile := range r.faculty {
		if profile.UserID == userID {
			cp := *profile
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProfileRepo) FindFacultyByID(id string) (*models.FacultyProfile, error) {
	profile, ok := r.faculty[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *profile
	return &cp, nil
}

func (r *fakeProfileRepo) withStudentUser(profile *models.StudentProfile) *models.StudentProfile {
	cp := *profile
	if user, ok := r.users.users[profile.UserID]; ok {
		u := *user
		cp.User = &u
	}
	return &cp
}

func (r *fakeProfileRepo) FindStudentByMIS(mis string) (*models.StudentProfile, error) {
	for _, profile := range r.students {
		if profile.MIS == mis {
			return r.withStudentUser(profile), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeProfileRepo) FindMISIn(mis []string) (map[string]struct{}, error) {
	taken := make(map[string]struct{})
	for _, m := range mis {
		for _, profile := range r.students {
			if profile.MIS == m {
				taken[m] = struct{}{}
			}
		}
	}
	return taken, nil
}

func (r *fakeProfileRepo) CreateStudentAccounts(users []*models.User, profiles []*models.StudentProfile) error {
	for i, user := range users {
		if err := r.users.Create(user); err != nil {
			return err
		}
		if err := r.CreateStudent(profiles[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeProfileRepo) ListFaculty(approved *bool) ([]models.FacultyProfile, error) {
	var result []models.FacultyProfile
	for _, profile := range r.faculty {
		if approved != nil && profile.Approved != *approved {
			continue
		}
		cp := *profile
		if user, ok := r.users.users[profile.UserID]; ok {
			u := *user
			cp.User = &u
		}
		result = append(result, cp)
	}
	return result, nil
}

func (r *fakeProfileRepo) ApproveFaculty(id string) (*models.FacultyProfile, error) {
	profile, ok := r.faculty[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	profile.Approved = true
	cp := *profile
	return &cp, nil
}

func (r *fakeProfileRepo) CountFaculty(approved *bool) (int64, error) {
	var count int64
	for _, profile := range r.faculty {
		if approved == nil || profile.Approved == *approved {
			count++
		}
	}
	return count, nil
}

// --- fakeCourseRepo ---

type fakeCourseRepo struct {
	courses     map[string]*models.Course
	enrollments map[string]map[string]struct{} // courseID -> student profile IDs
	profiles    *fakeProfileRepo
}

func newCourseRepo(profiles *fakeProfileRepo) *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:     make(map[string]*models.Course),
		enrollments: make(map[string]map[string]struct{}),
		profiles:    profiles,
	}
}

func (r *fakeCourseRepo) Create(course *models.Course) error {
	for _, existing := range r.courses {
		if existing.CourseCode == course.CourseCode {
			return repositories.ErrDuplicateCourseCode
		}
	}
	if course.ID == "" {
		course.ID = models.NewID()
	}
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) FindByID(id string) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *course
	if faculty, ok := r.profiles.faculty[course.FacultyID]; ok {
		fcp := *faculty
		cp.Faculty = &fcp
	}
	return &cp, nil
}

func (r *fakeCourseRepo) Update(course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(id string) error {
	if _, ok := r.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.courses, id)
	delete(r.enrollments, id)
	return nil
}

func (r *fakeCourseRepo) List(filter repositories.CourseFilter) ([]models.Course, error) {
	var result []models.Course
	for _, course := range r.courses {
		if filter.Department != "" && course.Department != filter.Department {
			continue
		}
		if filter.Semester > 0 && course.Semester != filter.Semester {
			continue
		}
		if filter.VisibleOnly && !course.Visibility {
			continue
		}
		result = append(result, *course)
	}
	return result, nil
}

func (r *fakeCourseRepo) ListByFaculty(facultyID string) ([]models.Course, error) {
	var result []models.Course
	for _, course := range r.courses {
		if course.FacultyID == facultyID {
			result = append(result, *course)
		}
	}
	return result, nil
}

func (r *fakeCourseRepo) Enroll(courseID, studentID string) error {
	enrolled, err := r.IsEnrolled(courseID, studentID)
	if err != nil {
		return err
	}
	if enrolled {
		return repositories.ErrAlreadyEnrolled
	}
	if r.enrollments[courseID] == nil {
		r.enrollments[courseID] = make(map[string]struct{})
	}
	r.enrollments[courseID][studentID] = struct{}{}
	return nil
}

func (r *fakeCourseRepo) IsEnrolled(courseID, studentID string) (bool, error) {
	_, ok := r.enrollments[courseID][studentID]
	return ok, nil
}

func (r *fakeCourseRepo) ListEnrolled(studentID string) ([]models.Course, error) {
	var result []models.Course
	for courseID := range r.enrollments {
		if _, ok := r.enrollments[courseID][studentID]; ok {
			result = append(result, *r.courses[courseID])
		}
	}
	return result, nil
}

func (r *fakeCourseRepo) EnrolledStudents(courseID string) ([]models.StudentProfile, error) {
	var result []models.StudentProfile
	for studentID := range r.enrollments[courseID] {
		if profile, ok := r.profiles.students[studentID]; ok {
			result = append(result, *r.profiles.withStudentUser(profile))
		}
	}
	return result, nil
}

func (r *fakeCourseRepo) CountAll() (int64, error) {
	return int64(len(r.courses)), nil
}

// --- fakeAssignmentRepo ---

type fakeAssignmentRepo struct {
	assignments map[string]*models.Assignment
	submissions map[string]*models.Submission
	courses     *fakeCourseRepo
}

func newAssignmentRepo(courses *fakeCourseRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		assignments: make(map[string]*models.Assignment),
		submissions: make(map[string]*models.Submission),
		courses:     courses,
	}
}

func (r *fakeAssignmentRepo) Create(assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = models.NewID()
	}
	cp := *assignment
	r.assignments[assignment.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) FindByID(id string) (*models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *assignment
	if course, ok := r.courses.courses[assignment.CourseID]; ok {
		ccp := *course
		cp.Course = &ccp
	}
	return &cp, nil
}

func (r *fakeAssignmentRepo) Update(assignment *models.Assignment) error {
	if _, ok := r.assignments[assignment.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *assignment
	r.assignments[assignment.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) Delete(id string) error {
	if _, ok := r.assignments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.assignments, id)
	return nil
}

func (r *fakeAssignmentRepo) ListByCourse(courseID string) ([]models.Assignment, error) {
	var result []models.Assignment
	for _, assignment := range r.assignments {
		if assignment.CourseID == courseID {
			result = append(result, *assignment)
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) CreateSubmission(submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = models.NewID()
	}
	cp := *submission
	r.submissions[submission.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) FindSubmissionByID(id string) (*models.Submission, error) {
	submission, ok := r.submissions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.withRelations(submission), nil
}

func (r *fakeAssignmentRepo) FindSubmission(assignmentID, userID string) (*models.Submission, error) {
	for _, submission := range r.submissions {
		if submission.AssignmentID == assignmentID && submission.UserID == userID {
			cp := *submission
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAssignmentRepo) UpdateSubmission(submission *models.Submission) error {
	if _, ok := r.submissions[submission.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *submission
	cp.Assignment = nil
	cp.User = nil
	r.submissions[submission.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) ListSubmissions(assignmentID string) ([]models.Submission, error) {
	var result []models.Submission
	for _, submission := range r.submissions {
		if submission.AssignmentID == assignmentID {
			result = append(result, *r.withRelations(submission))
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) ListSubmissionsByUser(userID string) ([]models.Submission, error) {
	var result []models.Submission
	for _, submission := range r.submissions {
		if submission.UserID == userID {
			result = append(result, *r.withRelations(submission))
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) withRelations(submission *models.Submission) *models.Submission {
	cp := *submission
	if assignment, ok := r.assignments[submission.AssignmentID]; ok {
		acp := *assignment
		cp.Assignment = &acp
	}
	if user, ok := r.courses.profiles.users.users[submission.UserID]; ok {
		ucp := *user
		cp.User = &ucp
	}
	return &cp
}

// --- fakeStorage ---

type fakeStorage struct {
	saved map[string]int64
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string]int64)}
}

func (s *fakeStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	n, err := io.Copy(io.Discard, reader)
	if err != nil {
		return "", err
	}
	s.saved[key] = n
	return "/files/" + key, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(s.saved, key)
	return nil
}

func (s *fakeStorage) GetURL(ctx context.Context, key string) (string, error) {
	return "/files/" + key, nil
}

func (s *fakeStorage) GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "/files/" + key, nil
}

// --- seed helpers ---

func seedFaculty(t *testing.T, users *fakeUserRepo, profiles *fakeProfileRepo, emailAddr string, approved bool) *models.FacultyProfile {
	t.Helper()
	user := &models.User{
		Name:       "Prof " + emailAddr,
		Email:      emailAddr,
		Role:       models.UserRoleFaculty,
		Status:     models.UserStatusActive,
		IsVerified: true,
	}
	require.NoError(t, users.Create(user))
	profile := &models.FacultyProfile{
		UserID:     user.ID,
		Department: "Computer Science",
		Approved:   approved,
	}
	require.NoError(t, profiles.CreateFaculty(profile))
	return profile
}

func seedStudent(t *testing.T, users *fakeUserRepo, profiles *fakeProfileRepo, emailAddr, mis, department string) *models.StudentProfile {
	t.Helper()
	user := &models.User{
		Name:         "Student " + emailAddr,
		Email:        emailAddr,
		PasswordHash: "not-a-real-hash",
		Role:         models.UserRoleStudent,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	require.NoError(t, users.Create(user))
	profile := &models.StudentProfile{
		UserID:     user.ID,
		MIS:        mis,
		Department: department,
	}
	require.NoError(t, profiles.CreateStudent(profile))
	return profile
}
