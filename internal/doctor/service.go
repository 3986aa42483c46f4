package doctor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medconnect/doctor-service/internal/domain"
	applog "github.com/medconnect/doctor-service/internal/log"
	"github.com/medconnect/doctor-service/internal/queue"
	"github.com/medconnect/doctor-service/internal/security"
)

// Config is the slice of runtime configuration the service needs.
type Config struct {
	JWTSecret   string
	TokenTTL    time.Duration
	VerifyTTL   time.Duration
	ResetTTL    time.Duration
	FrontendURL string
	Exchange    string
}

// Service holds the business rules. Every public method returns a Result
// envelope for expected outcomes; the error return is reserved for store or
// downstream failures the route layer turns into a 500.
type Service struct {
	repo Repository
	pub  queue.Publisher
	cfg  Config
}

func NewService(repo Repository, pub queue.Publisher, cfg Config) *Service {
	return &Service{repo: repo, pub: pub, cfg: cfg}
}

type RegisterRequest struct {
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	FirstName          string   `json:"firstName"`
	MiddleName         string   `json:"middleName"`
	LastName           string   `json:"lastName"`
	Gender             string   `json:"gender"`
	DOB                string   `json:"DOB"`
	MobileNo           string   `json:"mobileNo"`
	CountryCallingCode string   `json:"countryCallingCode"`
	AboutDoctor        string   `json:"aboutDoctor"`
	Languages          []string `json:"languages"`
	Specialization     []string `json:"specialization"`
	Experience         int      `json:"experience"`
	Location           string   `json:"location"`
	ConsultationFee    int      `json:"consultationFee"`
}

// Register creates an unverified doctor and requests the welcome and
// verification mails. The mails are best-effort: the record is already
// committed when they are published, so a broker failure is logged and the
// registration still succeeds.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Result, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return fail(http.StatusBadRequest, "Please provide all required information."), nil
	}
	if len(req.Specialization) == 0 {
		return fail(http.StatusBadRequest, "Please provide at least one specialization."), nil
	}
	if len(req.Languages) == 0 {
		return fail(http.StatusBadRequest, "Please provide at least one language."), nil
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("find doctor by email: %w", err)
	}
	if existing != nil {
		return fail(http.StatusBadRequest, "A doctor with this email already exists."), nil
	}

	salt, err := security.GenerateSalt()
	if err != nil {
		return Result{}, fmt.Errorf("generate salt: %w", err)
	}

	d := &domain.Doctor{
		DoctorID:           uuid.NewString(),
		FirstName:          strings.TrimSpace(req.FirstName),
		MiddleName:         strings.TrimSpace(req.MiddleName),
		LastName:           strings.TrimSpace(req.LastName),
		Gender:             req.Gender,
		DOB:                req.DOB,
		Email:              email,
		MobileNo:           req.MobileNo,
		CountryCallingCode: req.CountryCallingCode,
		Password:           security.HashPassword(req.Password, salt),
		Salt:               salt,
		AboutDoctor:        req.AboutDoctor,
		Languages:          req.Languages,
		Specialization:     req.Specialization,
		Experience:         req.Experience,
		Location:           req.Location,
		ConsultationFee:    req.ConsultationFee,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return fail(http.StatusBadRequest, "A doctor with this email already exists."), nil
		}
		return Result{}, fmt.Errorf("create doctor: %w", err)
	}

	token, err := security.MakeToken(s.cfg.JWTSecret, security.PurposeVerify,
		d.DoctorID, d.Email, d.FirstName, d.LastName, s.cfg.VerifyTTL)
	if err != nil {
		return Result{}, fmt.Errorf("verification token: %w", err)
	}

	link := s.cfg.FrontendURL + "/doctor/verify/" + token
	name := "Dr. " + d.FirstName + " " + d.LastName
	s.sendMail(ctx, email, "Welcome to MedConnect - Doctor Portal", "welcomeMail", name, link)
	s.sendMail(ctx, email, "Verify Your Doctor Account", "verificationLinkMail", name, link)
	s.notify(ctx, queue.KeyDoctorRegistered, queue.DoctorRegistered{
		DoctorID: d.DoctorID, Email: d.Email, Name: name,
	})

	return Result{
		Status:  http.StatusCreated,
		Message: "Doctor registered successfully! Please verify your email address.",
	}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fail(http.StatusBadRequest, "Please provide email and password"), nil
	}

	d, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("find doctor by email: %w", err)
	}
	if d == nil {
		return fail(http.StatusNotFound, "Doctor not found"), nil
	}
	if !d.IsVerified {
		return fail(http.StatusUnauthorized, "Your account is not verified. Please check your email."), nil
	}
	if !security.CheckPassword(d.Password, d.Salt, password) {
		return fail(http.StatusBadRequest, "Invalid password"), nil
	}

	token, err := security.MakeToken(s.cfg.JWTSecret, security.PurposeAccess,
		d.DoctorID, d.Email, d.FirstName, d.LastName, s.cfg.TokenTTL)
	if err != nil {
		return Result{}, fmt.Errorf("access token: %w", err)
	}

	return Result{Status: http.StatusOK, Message: "Login successful", Token: token}, nil
}

// VerifyEmail is idempotent in effect: re-verifying an already-verified doctor
// is another plain $set and still answers 200.
func (s *Service) VerifyEmail(ctx context.Context, token string) (Result, error) {
	if token == "" {
		return fail(http.StatusUnauthorized, "Verification token is missing"), nil
	}
	claims, err := security.ParseToken(s.cfg.JWTSecret, security.PurposeVerify, token)
	if err != nil {
		return fail(http.StatusUnauthorized, "Invalid or expired verification token"), nil
	}

	if _, err := s.repo.SetVerified(ctx, claims.DoctorID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("verify doctor: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Email verified successfully"}, nil
}

// ForgotPassword answers the same generic message whether or not the account
// exists, so the endpoint cannot be used to enumerate registered emails.
func (s *Service) ForgotPassword(ctx context.Context, email string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fail(http.StatusBadRequest, "Email address is required"), nil
	}

	d, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("find doctor by email: %w", err)
	}
	if d != nil && d.IsVerified {
		token, err := security.MakeToken(s.cfg.JWTSecret, security.PurposeReset,
			d.DoctorID, d.Email, d.FirstName, d.LastName, s.cfg.ResetTTL)
		if err != nil {
			return Result{}, fmt.Errorf("reset token: %w", err)
		}
		link := s.cfg.FrontendURL + "/doctor/reset-password/" + token
		s.sendMail(ctx, email, "Reset Your Password", "forgotPasswordMail",
			"Dr. "+d.FirstName+" "+d.LastName, link)
	}

	return Result{
		Status:  http.StatusOK,
		Message: "If your email is registered and verified, you will receive password reset instructions",
	}, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) (Result, error) {
	if newPassword == "" {
		return fail(http.StatusBadRequest, "New password is required"), nil
	}
	claims, err := security.ParseToken(s.cfg.JWTSecret, security.PurposeReset, token)
	if err != nil {
		return fail(http.StatusUnauthorized, "Invalid or expired token"), nil
	}

	salt, err := security.GenerateSalt()
	if err != nil {
		return Result{}, fmt.Errorf("generate salt: %w", err)
	}
	hash := security.HashPassword(newPassword, salt)

	if _, err := s.repo.SetPassword(ctx, claims.DoctorID, hash, salt); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("set password: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Password reset successful"}, nil
}

func (s *Service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) (Result, error) {
	if currentPassword == "" || newPassword == "" {
		return fail(http.StatusBadRequest, "Current password and new password are required"), nil
	}

	d, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("find doctor by email: %w", err)
	}
	if d == nil {
		return fail(http.StatusNotFound, "Doctor not found"), nil
	}
	if !security.CheckPassword(d.Password, d.Salt, currentPassword) {
		return fail(http.StatusBadRequest, "Current password is incorrect"), nil
	}

	salt, err := security.GenerateSalt()
	if err != nil {
		return Result{}, fmt.Errorf("generate salt: %w", err)
	}
	if _, err := s.repo.SetPassword(ctx, d.DoctorID, security.HashPassword(newPassword, salt), salt); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("set password: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Password changed successfully"}, nil
}

func (s *Service) Me(ctx context.Context, email string) (Result, error) {
	d, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("find doctor by email: %w", err)
	}
	if d == nil {
		return fail(http.StatusNotFound, "Doctor not found"), nil
	}
	return Result{
		Status:  http.StatusOK,
		Message: "Doctor is authenticated",
		Auth: &AuthInfo{
			DoctorID:        d.DoctorID,
			FirstName:       d.FirstName,
			MiddleName:      d.MiddleName,
			LastName:        d.LastName,
			Email:           d.Email,
			ProfileImageURL: d.ProfileImageURL,
			Specialization:  d.Specialization,
			Experience:      d.Experience,
			IsVerified:      d.IsVerified,
		},
	}, nil
}

func (s *Service) Profile(ctx context.Context, doctorID string) (Result, error) {
	d, err := s.repo.FindByID(ctx, doctorID)
	if err != nil {
		return Result{}, fmt.Errorf("fetch doctor: %w", err)
	}
	if d == nil {
		return fail(http.StatusNotFound, "Doctor not found"), nil
	}
	return Result{Status: http.StatusOK, Message: "Doctor profile retrieved successfully", Doctor: d}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, doctorID string, upd ProfileUpdate) (Result, error) {
	d, err := s.repo.UpdateProfile(ctx, doctorID, upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("update profile: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Profile updated successfully", Doctor: d}, nil
}

type TimeSlotInput struct {
	Day             string `json:"day"`
	TimeSlot        string `json:"timeSlot"`
	ConsultationFee int    `json:"consultationFee"`
}

func (in TimeSlotInput) valid() bool {
	return in.Day != "" && in.TimeSlot != "" && in.ConsultationFee > 0
}

// UpdateAvailability bulk-adds slots. Every slot must carry day, time range and
// fee; each gets a caller-visible slotId at creation.
func (s *Service) UpdateAvailability(ctx context.Context, doctorID string, inputs []TimeSlotInput) (Result, error) {
	if len(inputs) == 0 {
		return fail(http.StatusBadRequest, "Valid time slots are required"), nil
	}
	slots := make([]domain.TimeSlot, 0, len(inputs))
	for _, in := range inputs {
		if !in.valid() {
			return fail(http.StatusBadRequest, "Each time slot must include day, timeSlot, and consultationFee"), nil
		}
		slots = append(slots, domain.TimeSlot{
			SlotID:          uuid.NewString(),
			Day:             in.Day,
			TimeSlot:        in.TimeSlot,
			ConsultationFee: in.ConsultationFee,
		})
	}

	d, err := s.repo.AddTimeSlots(ctx, doctorID, slots)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("add time slots: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Availability updated successfully", AvailableTimeSlots: d.AvailableTimeSlots}, nil
}

func (s *Service) UpdateTimeSlot(ctx context.Context, doctorID, slotID string, in TimeSlotInput) (Result, error) {
	if !in.valid() {
		return fail(http.StatusBadRequest, "Time slot must include day, timeSlot, and consultationFee"), nil
	}
	slot := domain.TimeSlot{SlotID: slotID, Day: in.Day, TimeSlot: in.TimeSlot, ConsultationFee: in.ConsultationFee}

	d, err := s.repo.ReplaceTimeSlot(ctx, doctorID, slotID, slot)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor or time slot not found"), nil
		}
		return Result{}, fmt.Errorf("replace time slot: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Time slot updated successfully", AvailableTimeSlots: d.AvailableTimeSlots}, nil
}

func (s *Service) RemoveTimeSlot(ctx context.Context, doctorID, slotID string) (Result, error) {
	d, err := s.repo.RemoveTimeSlot(ctx, doctorID, slotID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor or time slot not found"), nil
		}
		return Result{}, fmt.Errorf("remove time slot: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Time slot removed successfully", AvailableTimeSlots: d.AvailableTimeSlots}, nil
}

type SessionRequest struct {
	PatientID string             `json:"patientId"`
	Type      domain.SessionType `json:"type"`
	Date      string             `json:"date"`
	TimeSlot  string             `json:"timeSlot"`
	Duration  int                `json:"duration"`
	Notes     string             `json:"notes"`
}

// BookSession creates a session with a generated sessionId and sessionLink.
// The booking confirmation is a fire-and-forget event: a notification failure
// never aborts the already-committed write.
func (s *Service) BookSession(ctx context.Context, doctorID string, req SessionRequest) (Result, error) {
	if req.PatientID == "" || req.Type == "" || req.Date == "" || req.TimeSlot == "" || req.Duration <= 0 {
		return fail(http.StatusBadRequest, "Missing required session information"), nil
	}
	if !domain.ValidSessionType(req.Type) {
		return fail(http.StatusBadRequest, "Session type must be In-person or Online"), nil
	}

	session := domain.Session{
		SessionID:   uuid.NewString(),
		PatientID:   req.PatientID,
		Type:        req.Type,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		SessionLink: uuid.NewString(),
		Duration:    req.Duration,
		Status:      domain.SessionScheduled,
		Notes:       req.Notes,
	}

	created, err := s.repo.AddSession(ctx, doctorID, session)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("create session: %w", err)
	}

	s.notify(ctx, queue.KeySessionBooked, queue.SessionEvent{
		DoctorID: doctorID, SessionID: created.SessionID,
		PatientID: created.PatientID, Date: created.Date, TimeSlot: created.TimeSlot,
	})
	s.sessionMail(ctx, doctorID, "Session Booked", "bookingConfirmationMail", created)

	return Result{Status: http.StatusCreated, Message: "Session booked successfully", Session: created}, nil
}

func (s *Service) UpdateSession(ctx context.Context, doctorID, sessionID string, patch SessionPatch) (Result, error) {
	if patch.Type != nil && !domain.ValidSessionType(*patch.Type) {
		return fail(http.StatusBadRequest, "Session type must be In-person or Online"), nil
	}
	updated, err := s.repo.UpdateSession(ctx, doctorID, sessionID, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Session not found"), nil
		}
		return Result{}, fmt.Errorf("update session: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Session updated successfully", Session: updated}, nil
}

// CancelSession sets the status without inspecting the prior state, so
// cancelling an already-cancelled session still answers 200.
func (s *Service) CancelSession(ctx context.Context, doctorID, sessionID string) (Result, error) {
	cancelled, err := s.repo.SetSessionStatus(ctx, doctorID, sessionID, domain.SessionCancelled, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Session not found"), nil
		}
		return Result{}, fmt.Errorf("cancel session: %w", err)
	}

	s.notify(ctx, queue.KeySessionCancelled, queue.SessionEvent{
		DoctorID: doctorID, SessionID: cancelled.SessionID,
		PatientID: cancelled.PatientID, Date: cancelled.Date, TimeSlot: cancelled.TimeSlot,
	})
	s.sessionMail(ctx, doctorID, "Session Cancelled", "cancellationMail", cancelled)

	return Result{Status: http.StatusOK, Message: "Session cancelled successfully", Session: cancelled}, nil
}

func (s *Service) CompleteSession(ctx context.Context, doctorID, sessionID, notes string) (Result, error) {
	completed, err := s.repo.SetSessionStatus(ctx, doctorID, sessionID, domain.SessionCompleted, &notes)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Session not found"), nil
		}
		return Result{}, fmt.Errorf("complete session: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Session completed successfully", Session: completed}, nil
}

func (s *Service) Sessions(ctx context.Context, doctorID string, status domain.SessionStatus) (Result, error) {
	sessions, err := s.repo.SessionsByDoctor(ctx, doctorID, status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("fetch sessions: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Sessions retrieved successfully", Sessions: sessions}, nil
}

func (s *Service) SessionByID(ctx context.Context, doctorID, sessionID string) (Result, error) {
	session, err := s.repo.SessionByID(ctx, doctorID, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Session not found"), nil
		}
		return Result{}, fmt.Errorf("fetch session: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Session retrieved successfully", Session: session}, nil
}

func (s *Service) PatientSessions(ctx context.Context, doctorID, patientID string) (Result, error) {
	sessions, err := s.repo.SessionsByPatient(ctx, doctorID, patientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("fetch patient sessions: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Patient sessions retrieved successfully", Sessions: sessions}, nil
}

type DegreeRequest struct {
	DegreeID         string `json:"degreeId"`
	DegreeName       string `json:"degreeName"`
	Institution      string `json:"institution"`
	YearOfCompletion int    `json:"yearOfCompletion"`
	VerifiedProof    string `json:"verifiedProof"`
}

// UpsertDegree dispatches on the presence of degreeId: absent means add, present
// means replace-in-place. Add and replace are distinct repository operations.
func (s *Service) UpsertDegree(ctx context.Context, doctorID string, req DegreeRequest) (Result, error) {
	if req.DegreeName == "" {
		return fail(http.StatusBadRequest, "Degree name is required"), nil
	}

	deg := domain.Degree{
		DegreeID:         req.DegreeID,
		DegreeName:       req.DegreeName,
		Institution:      req.Institution,
		YearOfCompletion: req.YearOfCompletion,
		VerifiedProof:    req.VerifiedProof,
	}

	var (
		d   *domain.Doctor
		err error
	)
	if req.DegreeID == "" {
		deg.DegreeID = uuid.NewString()
		d, err = s.repo.AddDegree(ctx, doctorID, deg)
	} else {
		d, err = s.repo.ReplaceDegree(ctx, doctorID, req.DegreeID, deg)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor or degree not found"), nil
		}
		return Result{}, fmt.Errorf("upsert degree: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Degree updated successfully", Degrees: d.Degrees}, nil
}

func (s *Service) RemoveDegree(ctx context.Context, doctorID, degreeID string) (Result, error) {
	d, err := s.repo.RemoveDegree(ctx, doctorID, degreeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor or degree not found"), nil
		}
		return Result{}, fmt.Errorf("remove degree: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Degree removed successfully", Degrees: d.Degrees}, nil
}

type AffiliationRequest struct {
	AffiliationID string `json:"affiliationId"`
	Name          string `json:"name"`
	Location      string `json:"location"`
}

func (s *Service) UpsertAffiliation(ctx context.Context, doctorID string, req AffiliationRequest) (Result, error) {
	if req.Name == "" {
		return fail(http.StatusBadRequest, "Hospital name is required"), nil
	}

	aff := domain.HospitalAffiliation{AffiliationID: req.AffiliationID, Name: req.Name, Location: req.Location}

	var (
		d   *domain.Doctor
		err error
	)
	if req.AffiliationID == "" {
		aff.AffiliationID = uuid.NewString()
		d, err = s.repo.AddAffiliation(ctx, doctorID, aff)
	} else {
		d, err = s.repo.ReplaceAffiliation(ctx, doctorID, req.AffiliationID, aff)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor or hospital affiliation not found"), nil
		}
		return Result{}, fmt.Errorf("upsert affiliation: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Hospital affiliation updated successfully", HospitalAffiliation: d.HospitalAffiliation}, nil
}

func (s *Service) RemoveAffiliation(ctx context.Context, doctorID, affiliationID string) (Result, error) {
	d, err := s.repo.RemoveAffiliation(ctx, doctorID, affiliationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor or hospital affiliation not found"), nil
		}
		return Result{}, fmt.Errorf("remove affiliation: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Hospital affiliation removed successfully", HospitalAffiliation: d.HospitalAffiliation}, nil
}

// UpdateSpecializations wholesale-replaces the set; it must stay non-empty.
func (s *Service) UpdateSpecializations(ctx context.Context, doctorID string, specializations []string) (Result, error) {
	if len(specializations) == 0 {
		return fail(http.StatusBadRequest, "At least one specialization is required"), nil
	}
	d, err := s.repo.SetSpecializations(ctx, doctorID, specializations)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("set specializations: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Specializations updated successfully", Specialization: d.Specialization}, nil
}

func (s *Service) UpdateLanguages(ctx context.Context, doctorID string, languages []string) (Result, error) {
	if len(languages) == 0 {
		return fail(http.StatusBadRequest, "At least one language is required"), nil
	}
	d, err := s.repo.SetLanguages(ctx, doctorID, languages)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(http.StatusNotFound, "Doctor not found"), nil
		}
		return Result{}, fmt.Errorf("set languages: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Languages updated successfully", Languages: d.Languages}, nil
}

func (s *Service) Search(ctx context.Context, q SearchQuery) (Result, error) {
	results, err := s.repo.Search(ctx, clampQuery(q))
	if err != nil {
		return Result{}, fmt.Errorf("search doctors: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Search results retrieved successfully", Results: results}, nil
}

func (s *Service) ListDoctors(ctx context.Context, page, limit int) (Result, error) {
	q := clampQuery(SearchQuery{Page: page, Limit: limit})
	results, err := s.repo.List(ctx, q.Page, q.Limit)
	if err != nil {
		return Result{}, fmt.Errorf("list doctors: %w", err)
	}
	return Result{Status: http.StatusOK, Message: "Doctors retrieved successfully", Doctors: results}, nil
}

func (s *Service) DeleteAccount(ctx context.Context, doctorID string) (Result, error) {
	deleted, err := s.repo.Delete(ctx, doctorID)
	if err != nil {
		return Result{}, fmt.Errorf("delete doctor: %w", err)
	}
	if !deleted {
		return fail(http.StatusNotFound, "Doctor not found"), nil
	}
	s.notify(ctx, queue.KeyDoctorDeleted, queue.DoctorDeleted{DoctorID: doctorID})
	return Result{Status: http.StatusOK, Message: "Doctor account deleted successfully"}, nil
}

func clampQuery(q SearchQuery) SearchQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return q
}

func (s *Service) sendMail(ctx context.Context, to, subject, template, name, link string) {
	s.sendMailData(ctx, to, subject, template, map[string]string{"Name": name, "Link": link})
}

func (s *Service) sendMailData(ctx context.Context, to, subject, template string, data map[string]string) {
	s.notify(ctx, queue.KeyMail, queue.MailRequested{
		To:       to,
		Subject:  subject,
		Template: template,
		Data:     data,
	})
}

// sessionMail looks up the owning doctor and requests a session-related mail.
// Best-effort like every mail: a failed lookup is logged, never surfaced.
func (s *Service) sessionMail(ctx context.Context, doctorID, subject, template string, session *domain.Session) {
	d, err := s.repo.FindByID(ctx, doctorID)
	if err != nil || d == nil {
		applog.Errorf("session mail lookup doctor=%s: %v", doctorID, err)
		return
	}
	s.sendMailData(ctx, d.Email, subject, template, map[string]string{
		"Name":     "Dr. " + d.FirstName + " " + d.LastName,
		"Date":     session.Date,
		"TimeSlot": session.TimeSlot,
	})
}

// notify publishes in the background. The primary operation has already
// committed by the time this runs; failures are logged and swallowed.
func (s *Service) notify(ctx context.Context, key string, event any) {
	reqID := queue.RequestIDFrom(ctx)
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.pub.Publish(pctx, s.cfg.Exchange, key, event, reqID); err != nil {
			applog.Errorf("publish %s: %v", key, err)
		}
	}()
}
