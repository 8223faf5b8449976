// Package students owns the canonical student collection and its durable
// mirror. Every mutation persists the full collection before returning;
// callers observing success can rely on the mirror matching memory.
package students

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"github.com/studenthub-io/studenthub/constants"
	"github.com/studenthub-io/studenthub/internal/common"
	"github.com/studenthub-io/studenthub/internal/entity"
	"github.com/studenthub-io/studenthub/internal/storage"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// StudentPatch is a shallow field-replacement payload for Update. Nil
// fields are left untouched; Courses, when set, replaces the whole list.
type StudentPatch struct {
	ExternalStudentID *string
	FullName          *string
	Email             *string
	Phone             *string
	Address           *string
	EnrollmentDate    *string
	ProfilePictureURL *string
	Courses           *[]entity.CourseEntry
	AcademicNotes     *string
}

// Store is the authoritative student collection. All access is serialized
// behind one mutex; two processes sharing one durable store still race
// last-writer-wins, as in the source system.
type Store struct {
	mu       sync.Mutex
	kv       storage.KV
	students []entity.Student
	subs     []func()
	logger   *slog.Logger
}

// NewStore loads the collection from the durable mirror. A missing blob
// means first-ever initialization: the store seeds two illustrative
// records and persists them. Any present blob, including an empty array,
// loads as-is with no re-seeding.
func NewStore(ctx context.Context, kv storage.KV, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, logger: logger}

	blob, ok, err := kv.Get(ctx, constants.StudentsKey)
	if err != nil {
		return nil, common.WrapError(err, "load student collection")
	}
	if !ok {
		s.students = seedStudents()
		if err := s.persistLocked(ctx, s.students); err != nil {
			return nil, err
		}
		logger.Info("students.store.seeded", "count", len(s.students))
		return s, nil
	}
	if err := json.Unmarshal(blob, &s.students); err != nil {
		return nil, common.WrapError(err, "decode student collection")
	}
	logger.Info("students.store.loaded", "count", len(s.students))
	return s, nil
}

// Subscribe registers fn to run after every successful mutation. Callbacks
// run outside the store lock, so a subscriber may read the store back.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// List returns the full collection in insertion/update order.
func (s *Store) List(ctx context.Context) []entity.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Student, len(s.students))
	for i, st := range s.students {
		out[i] = st.Clone()
	}
	return out
}

// GetByID returns the student with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (entity.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.ID == id {
			return st.Clone(), nil
		}
	}
	return entity.Student{}, fmt.Errorf("%w: student %s", common.ErrNotFound, id)
}

// Create validates the draft, assigns a fresh id, appends it and mirrors
// the collection. The draft's own ID field is ignored. A missing profile
// picture gets a placeholder derived from the first letter of the name.
func (s *Store) Create(ctx context.Context, draft entity.Student) (entity.Student, error) {
	if err := validateStudent(draft.FullName, draft.EnrollmentDate, draft.Courses); err != nil {
		return entity.Student{}, err
	}

	st := draft.Clone()
	st.ID = uuid.New()
	if st.ProfilePictureURL == "" {
		st.ProfilePictureURL = placeholderAvatar(st.FullName)
	}
	for i := range st.Courses {
		if st.Courses[i].ID == uuid.Nil {
			st.Courses[i].ID = uuid.New()
		}
	}

	s.mu.Lock()
	next := append(s.cloneLocked(), st)
	if err := s.persistLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return entity.Student{}, err
	}
	s.students = next
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	s.logger.Info("students.store.created", "id", st.ID, "full_name", st.FullName)
	notify(subs)
	return st.Clone(), nil
}

// Update shallow-merges patch into the record, mirrors the collection and
// returns the updated student, or ErrNotFound for an absent id.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch StudentPatch) (entity.Student, error) {
	if patch.FullName != nil && *patch.FullName == "" {
		return entity.Student{}, common.WrapError(common.ErrInvalidInput, "full name must not be empty")
	}
	if patch.EnrollmentDate != nil && !isoDate.MatchString(*patch.EnrollmentDate) {
		return entity.Student{}, common.WrapError(common.ErrInvalidInput, "enrollment date must be YYYY-MM-DD")
	}
	if patch.Courses != nil {
		for _, c := range *patch.Courses {
			if c.Credits < 0 {
				return entity.Student{}, common.WrapError(common.ErrInvalidInput, "course credits must be non-negative")
			}
		}
	}

	s.mu.Lock()
	idx := -1
	for i, st := range s.students {
		if st.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return entity.Student{}, fmt.Errorf("%w: student %s", common.ErrNotFound, id)
	}

	next := s.cloneLocked()
	st := &next[idx]
	applyPatch(st, patch)

	if err := s.persistLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return entity.Student{}, err
	}
	s.students = next
	updated := next[idx].Clone()
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	s.logger.Info("students.store.updated", "id", id)
	notify(subs)
	return updated, nil
}

// Delete removes the record if present and mirrors the collection. The
// boolean reports whether a record was removed; deleting an absent id is
// failure, not an error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	idx := -1
	for i, st := range s.students {
		if st.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	next := s.cloneLocked()
	next = append(next[:idx], next[idx+1:]...)
	if err := s.persistLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.students = next
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()

	s.logger.Info("students.store.deleted", "id", id)
	notify(subs)
	return true, nil
}

func (s *Store) cloneLocked() []entity.Student {
	out := make([]entity.Student, len(s.students))
	for i, st := range s.students {
		out[i] = st.Clone()
	}
	return out
}

func (s *Store) persistLocked(ctx context.Context, collection []entity.Student) error {
	blob, err := json.Marshal(collection)
	if err != nil {
		return common.WrapError(err, "encode student collection")
	}
	if err := s.kv.Put(ctx, constants.StudentsKey, blob); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistenceFailure, err)
	}
	return nil
}

func (s *Store) snapshotSubsLocked() []func() {
	out := make([]func(), len(s.subs))
	copy(out, s.subs)
	return out
}

// notify runs subscriber callbacks with no lock held; a callback that
// reads the store back must not deadlock.
func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

func applyPatch(st *entity.Student, patch StudentPatch) {
	if patch.ExternalStudentID != nil {
		st.ExternalStudentID = *patch.ExternalStudentID
	}
	if patch.FullName != nil {
		st.FullName = *patch.FullName
	}
	if patch.Email != nil {
		st.Email = *patch.Email
	}
	if patch.Phone != nil {
		st.Phone = *patch.Phone
	}
	if patch.Address != nil {
		st.Address = *patch.Address
	}
	if patch.EnrollmentDate != nil {
		st.EnrollmentDate = *patch.EnrollmentDate
	}
	if patch.ProfilePictureURL != nil {
		st.ProfilePictureURL = *patch.ProfilePictureURL
	}
	if patch.Courses != nil {
		courses := make([]entity.CourseEntry, len(*patch.Courses))
		copy(courses, *patch.Courses)
		for i := range courses {
			if courses[i].ID == uuid.Nil {
				courses[i].ID = uuid.New()
			}
		}
		st.Courses = courses
	}
	if patch.AcademicNotes != nil {
		st.AcademicNotes = *patch.AcademicNotes
	}
}

func validateStudent(fullName, enrollmentDate string, courses []entity.CourseEntry) error {
	if fullName == "" {
		return common.WrapError(common.ErrInvalidInput, "full name is required")
	}
	if !isoDate.MatchString(enrollmentDate) {
		return common.WrapError(common.ErrInvalidInput, "enrollment date must be YYYY-MM-DD")
	}
	for _, c := range courses {
		if c.Credits < 0 {
			return common.WrapError(common.ErrInvalidInput, "course credits must be non-negative")
		}
	}
	return nil
}

func placeholderAvatar(fullName string) string {
	initial := ""
	for _, r := range fullName {
		initial = string(r)
		break
	}
	return "https://placehold.co/100x100.png?text=" + url.QueryEscape(initial)
}
