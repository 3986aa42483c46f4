package doctor

import (
	"context"
	"errors"

	"github.com/medconnect/doctor-service/internal/domain"
)

var (
	// ErrNotFound reports that the doctor, or the addressed sub-entity within
	// the doctor, matched nothing. It is an expected outcome, not a failure.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken reports a unique-index violation on the email field.
	ErrEmailTaken = errors.New("email already registered")
)

// ProfileUpdate carries the profile fields a doctor may change. Nil fields are
// left untouched. Credentials and the verification flag are deliberately not
// representable here.
type ProfileUpdate struct {
	FirstName          *string
	MiddleName         *string
	LastName           *string
	Gender             *string
	DOB                *string
	MobileNo           *string
	CountryCallingCode *string
	AboutDoctor        *string
	ProfileImageURL    *string
	Location           *string
	Experience         *int
	ConsultationFee    *int
}

// SessionPatch is the typed update for a session. The logical sessionId is not
// a field here, so it can never be rewritten through an update.
type SessionPatch struct {
	PatientID *string
	Type      *domain.SessionType
	Date      *string
	TimeSlot  *string
	Duration  *int
	Status    *domain.SessionStatus
	Notes     *string
}

// SearchQuery is a conjunction of optional criteria.
type SearchQuery struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Language       string `json:"language"`
	Location       string `json:"location"`
	MinExperience  *int   `json:"minExperience"`
	MaxFee         *int   `json:"maxFee"`
	Page           int    `json:"page"`
	Limit          int    `json:"limit"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// SearchResults pairs a page of doctors with a summary computed from a separate
// count query. The total can be stale relative to the page under concurrent
// writes; callers must not treat the pair as point-in-time consistent.
type SearchResults struct {
	Doctors    []domain.Doctor `json:"doctors"`
	Pagination Pagination      `json:"pagination"`
}

// DoctorSession is a session joined with just enough of its owning doctor for
// the reminder job to address mail.
type DoctorSession struct {
	DoctorID    string
	DoctorName  string
	DoctorEmail string
	Session     domain.Session
}

// Repository contains every store interaction the service needs. Implementations
// return ErrNotFound when the (doctor, sub-entity) filter matches nothing and
// wrap store-level failures; they never panic on missing documents.
type Repository interface {
	Create(ctx context.Context, d *domain.Doctor) error
	FindByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*domain.Doctor, error)
	UpdateProfile(ctx context.Context, doctorID string, upd ProfileUpdate) (*domain.Doctor, error)
	SetVerified(ctx context.Context, doctorID string) (*domain.Doctor, error)
	SetPassword(ctx context.Context, doctorID, hash, salt string) (*domain.Doctor, error)
	Delete(ctx context.Context, doctorID string) (bool, error)

	AddTimeSlots(ctx context.Context, doctorID string, slots []domain.TimeSlot) (*domain.Doctor, error)
	ReplaceTimeSlot(ctx context.Context, doctorID, slotID string, slot domain.TimeSlot) (*domain.Doctor, error)
	RemoveTimeSlot(ctx context.Context, doctorID, slotID string) (*domain.Doctor, error)

	AddSession(ctx context.Context, doctorID string, s domain.Session) (*domain.Session, error)
	UpdateSession(ctx context.Context, doctorID, sessionID string, patch SessionPatch) (*domain.Session, error)
	SetSessionStatus(ctx context.Context, doctorID, sessionID string, status domain.SessionStatus, notes *string) (*domain.Session, error)
	SessionsByDoctor(ctx context.Context, doctorID string, status domain.SessionStatus) ([]domain.Session, error)
	SessionByID(ctx context.Context, doctorID, sessionID string) (*domain.Session, error)
	SessionsByPatient(ctx context.Context, doctorID, patientID string) ([]domain.Session, error)
	SessionsOnDate(ctx context.Context, date string) ([]DoctorSession, error)

	AddDegree(ctx context.Context, doctorID string, d domain.Degree) (*domain.Doctor, error)
	ReplaceDegree(ctx context.Context, doctorID, degreeID string, d domain.Degree) (*domain.Doctor, error)
	RemoveDegree(ctx context.Context, doctorID, degreeID string) (*domain.Doctor, error)

	AddAffiliation(ctx context.Context, doctorID string, a domain.HospitalAffiliation) (*domain.Doctor, error)
	ReplaceAffiliation(ctx context.Context, doctorID, affiliationID string, a domain.HospitalAffiliation) (*domain.Doctor, error)
	RemoveAffiliation(ctx context.Context, doctorID, affiliationID string) (*domain.Doctor, error)

	SetSpecializations(ctx context.Context, doctorID string, specializations []string) (*domain.Doctor, error)
	SetLanguages(ctx context.Context, doctorID string, languages []string) (*domain.Doctor, error)

	Search(ctx context.Context, q SearchQuery) (*SearchResults, error)
	List(ctx context.Context, page, limit int) (*SearchResults, error)
}
