package doctor

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/doctor-service/internal/domain"
	"github.com/medconnect/doctor-service/internal/queue"
	"github.com/medconnect/doctor-service/internal/security"
)

// recordingPub captures published events; notify runs them on goroutines, so
// assertions must go through Eventually.
type recordingPub struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Key   string
	Event any
}

func (p *recordingPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Key: key, Event: event})
	return nil
}

func (p *recordingPub) Close() error { return nil }

func (p *recordingPub) count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Key == key {
			n++
		}
	}
	return n
}

func (p *recordingPub) mailed(template string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e.Key != queue.KeyMail {
			continue
		}
		if m, ok := e.Event.(queue.MailRequested); ok && m.Template == template {
			return true
		}
	}
	return false
}

const testSecret = "test-secret"

func newTestService() (*Service, *MemoryRepository, *recordingPub) {
	repo := NewMemoryRepository()
	pub := &recordingPub{}
	svc := NewService(repo, pub, Config{
		JWTSecret:   testSecret,
		TokenTTL:    time.Hour,
		VerifyTTL:   time.Hour,
		ResetTTL:    time.Hour,
		FrontendURL: "http://localhost:3000",
		Exchange:    "doctor.events",
	})
	return svc, repo, pub
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Email:          "jane.doe@example.com",
		Password:       "password123",
		FirstName:      "Jane",
		LastName:       "Doe",
		Languages:      []string{"English"},
		Specialization: []string{"Cardiology"},
		Experience:     7,
		Location:       "Bangalore",
	}
}

// register + verify, returning the doctorID.
func registerVerified(t *testing.T, svc *Service, repo *MemoryRepository, req RegisterRequest) string {
	t.Helper()
	ctx := context.Background()

	res, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.Status, res.Message)

	d, err := repo.FindByEmail(ctx, req.Email)
	require.NoError(t, err)
	require.NotNil(t, d)

	tok, err := security.MakeToken(testSecret, security.PurposeVerify, d.DoctorID, d.Email, d.FirstName, d.LastName, time.Hour)
	require.NoError(t, err)
	vres, err := svc.VerifyEmail(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, vres.Status)
	return d.DoctorID
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cases := map[string]func(*RegisterRequest){
		"missing email":         func(r *RegisterRequest) { r.Email = "" },
		"missing password":      func(r *RegisterRequest) { r.Password = "" },
		"missing first name":    func(r *RegisterRequest) { r.FirstName = "" },
		"missing last name":     func(r *RegisterRequest) { r.LastName = "" },
		"empty specializations": func(r *RegisterRequest) { r.Specialization = nil },
		"empty languages":       func(r *RegisterRequest) { r.Languages = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRegistration()
			mutate(&req)
			res, err := svc.Register(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, res.Status)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.Status)

	res, err = svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestRegisterPublishesMail(t *testing.T) {
	svc, _, pub := newTestService()

	res, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.Status)

	// welcome + verification link
	require.Eventually(t, func() bool { return pub.count(queue.KeyMail) == 2 },
		time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return pub.count(queue.KeyDoctorRegistered) == 1 },
		time.Second, 10*time.Millisecond)
}

func TestLoginFlow(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	req := validRegistration()

	res, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.Status)

	// unverified account cannot log in
	res, err = svc.Login(ctx, req.Email, req.Password)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	d, err := repo.FindByEmail(ctx, req.Email)
	require.NoError(t, err)
	tok, err := security.MakeToken(testSecret, security.PurposeVerify, d.DoctorID, d.Email, "", "", time.Hour)
	require.NoError(t, err)
	vres, err := svc.VerifyEmail(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, vres.Status)

	res, err = svc.Login(ctx, req.Email, req.Password)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.NotEmpty(t, res.Token)

	claims, err := security.ParseToken(testSecret, security.PurposeAccess, res.Token)
	require.NoError(t, err)
	assert.Equal(t, d.DoctorID, claims.DoctorID)

	res, err = svc.Login(ctx, req.Email, "wrong-password")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.Login(ctx, "nobody@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestVerifyEmailIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	tok, err := security.MakeToken(testSecret, security.PurposeVerify, id, "jane.doe@example.com", "", "", time.Hour)
	require.NoError(t, err)
	res, err := svc.VerifyEmail(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestVerifyEmailRejectsBadToken(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.VerifyEmail(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res, err = svc.VerifyEmail(ctx, "not-a-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	// an access token must not verify an account
	tok, err := security.MakeToken(testSecret, security.PurposeAccess, "doc-1", "a@b.c", "", "", time.Hour)
	require.NoError(t, err)
	res, err = svc.VerifyEmail(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestForgotPasswordIsGeneric(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	registerVerified(t, svc, repo, validRegistration())

	known, err := svc.ForgotPassword(ctx, "jane.doe@example.com")
	require.NoError(t, err)
	unknown, err := svc.ForgotPassword(ctx, "nobody@example.com")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, known.Status)
	assert.Equal(t, http.StatusOK, unknown.Status)
	assert.Equal(t, known.Message, unknown.Message)
}

func TestResetPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	tok, err := security.MakeToken(testSecret, security.PurposeReset, id, "jane.doe@example.com", "", "", time.Hour)
	require.NoError(t, err)

	res, err := svc.ResetPassword(ctx, tok, "brand-new-pass")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)

	res, err = svc.Login(ctx, "jane.doe@example.com", "brand-new-pass")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)

	res, err = svc.Login(ctx, "jane.doe@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestChangePassword(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	registerVerified(t, svc, repo, validRegistration())

	res, err := svc.ChangePassword(ctx, "jane.doe@example.com", "wrong", "next-pass")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.ChangePassword(ctx, "jane.doe@example.com", "password123", "next-pass")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)

	res, err = svc.Login(ctx, "jane.doe@example.com", "next-pass")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
}

func TestAvailabilityRoundTrip(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	res, err := svc.UpdateAvailability(ctx, id, []TimeSlotInput{
		{Day: "Monday", TimeSlot: "09:00-12:00", ConsultationFee: 50},
		{Day: "Wednesday", TimeSlot: "14:00-17:00", ConsultationFee: 60},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.AvailableTimeSlots, 2)
	require.NotEmpty(t, res.AvailableTimeSlots[0].SlotID)
	require.NotEqual(t, res.AvailableTimeSlots[0].SlotID, res.AvailableTimeSlots[1].SlotID)

	mondayID := res.AvailableTimeSlots[0].SlotID
	wednesdayID := res.AvailableTimeSlots[1].SlotID

	res, err = svc.UpdateTimeSlot(ctx, id, mondayID, TimeSlotInput{Day: "Tuesday", TimeSlot: "10:00-13:00", ConsultationFee: 70})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.AvailableTimeSlots, 2)
	assert.Equal(t, "Tuesday", res.AvailableTimeSlots[0].Day)
	assert.Equal(t, mondayID, res.AvailableTimeSlots[0].SlotID)
	assert.Equal(t, "Wednesday", res.AvailableTimeSlots[1].Day)

	res, err = svc.RemoveTimeSlot(ctx, id, mondayID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.AvailableTimeSlots, 1)
	assert.Equal(t, wednesdayID, res.AvailableTimeSlots[0].SlotID)

	// invalid input and unknown ids
	res, err = svc.UpdateAvailability(ctx, id, []TimeSlotInput{{Day: "Friday"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.RemoveTimeSlot(ctx, id, "no-such-slot")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestBookSession(t *testing.T) {
	svc, repo, pub := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	res, err := svc.BookSession(ctx, id, SessionRequest{PatientID: "pat-1", Type: "Hologram", Date: "2026-09-01", TimeSlot: "09:00-09:30", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.BookSession(ctx, id, SessionRequest{PatientID: "pat-1", Type: domain.SessionOnline, Date: "2026-09-01", TimeSlot: "09:00-09:30"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.BookSession(ctx, id, SessionRequest{
		PatientID: "pat-1", Type: domain.SessionOnline, Date: "2026-09-01", TimeSlot: "09:00-09:30", Duration: 30,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.Status)
	require.NotNil(t, res.Session)
	assert.Equal(t, domain.SessionScheduled, res.Session.Status)
	assert.NotEmpty(t, res.Session.SessionID)
	assert.NotEmpty(t, res.Session.SessionLink)

	require.Eventually(t, func() bool { return pub.count(queue.KeySessionBooked) == 1 },
		time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return pub.mailed("bookingConfirmationMail") },
		time.Second, 10*time.Millisecond)

	res, err = svc.BookSession(ctx, "no-such-doctor", SessionRequest{
		PatientID: "pat-1", Type: domain.SessionInPerson, Date: "2026-09-01", TimeSlot: "09:00-09:30", Duration: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestSessionLifecycle(t *testing.T) {
	svc, repo, pub := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	book := func(patient, date string) *domain.Session {
		res, err := svc.BookSession(ctx, id, SessionRequest{
			PatientID: patient, Type: domain.SessionInPerson, Date: date, TimeSlot: "10:00-10:30", Duration: 30,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, res.Status)
		return res.Session
	}
	s1 := book("pat-1", "2026-09-01")
	s2 := book("pat-2", "2026-09-02")
	require.NotEqual(t, s1.SessionID, s2.SessionID)

	// patch fields
	newDate := "2026-09-03"
	res, err := svc.UpdateSession(ctx, id, s1.SessionID, SessionPatch{Date: &newDate})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, newDate, res.Session.Date)
	assert.Equal(t, s1.SessionID, res.Session.SessionID)

	// cancel twice answers 200 both times
	res, err = svc.CancelSession(ctx, id, s1.SessionID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, domain.SessionCancelled, res.Session.Status)

	res, err = svc.CancelSession(ctx, id, s1.SessionID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)

	require.Eventually(t, func() bool { return pub.mailed("cancellationMail") },
		time.Second, 10*time.Millisecond)

	res, err = svc.CompleteSession(ctx, id, s2.SessionID, "follow-up in two weeks")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, domain.SessionCompleted, res.Session.Status)
	assert.Equal(t, "follow-up in two weeks", res.Session.Notes)

	res, err = svc.CompleteSession(ctx, id, "no-such-session", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)

	// status filter
	res, err = svc.Sessions(ctx, id, domain.SessionCancelled)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, s1.SessionID, res.Sessions[0].SessionID)

	res, err = svc.Sessions(ctx, id, "")
	require.NoError(t, err)
	assert.Len(t, res.Sessions, 2)

	// by id, by patient
	res, err = svc.SessionByID(ctx, id, s2.SessionID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "pat-2", res.Session.PatientID)

	res, err = svc.PatientSessions(ctx, id, "pat-1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, s1.SessionID, res.Sessions[0].SessionID)
}

func TestUpsertDegree(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	res, err := svc.UpsertDegree(ctx, id, DegreeRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.UpsertDegree(ctx, id, DegreeRequest{DegreeName: "MBBS", Institution: "AIIMS", YearOfCompletion: 2010})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.Degrees, 1)
	degreeID := res.Degrees[0].DegreeID
	require.NotEmpty(t, degreeID)

	// id present: replace in place, not append
	res, err = svc.UpsertDegree(ctx, id, DegreeRequest{DegreeID: degreeID, DegreeName: "MD", Institution: "AIIMS", YearOfCompletion: 2014})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.Degrees, 1)
	assert.Equal(t, "MD", res.Degrees[0].DegreeName)
	assert.Equal(t, degreeID, res.Degrees[0].DegreeID)

	res, err = svc.UpsertDegree(ctx, id, DegreeRequest{DegreeID: "no-such-degree", DegreeName: "PhD"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)

	res, err = svc.RemoveDegree(ctx, id, degreeID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Empty(t, res.Degrees)
}

func TestUpsertAffiliation(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	res, err := svc.UpsertAffiliation(ctx, id, AffiliationRequest{Name: "City Hospital", Location: "Bangalore"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.HospitalAffiliation, 1)
	affID := res.HospitalAffiliation[0].AffiliationID
	require.NotEmpty(t, affID)

	res, err = svc.UpsertAffiliation(ctx, id, AffiliationRequest{AffiliationID: affID, Name: "General Hospital"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.HospitalAffiliation, 1)
	assert.Equal(t, "General Hospital", res.HospitalAffiliation[0].Name)

	res, err = svc.RemoveAffiliation(ctx, id, affID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Empty(t, res.HospitalAffiliation)
}

func TestWholesaleListUpdates(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	res, err := svc.UpdateSpecializations(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.UpdateSpecializations(ctx, id, []string{"Neurology", "Pediatrics"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []string{"Neurology", "Pediatrics"}, res.Specialization)

	res, err = svc.UpdateLanguages(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res, err = svc.UpdateLanguages(ctx, id, []string{"French"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []string{"French"}, res.Languages)
}

func TestSearch(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	seed := func(email, first string, exp, fee int, spec string) {
		req := validRegistration()
		req.Email = email
		req.FirstName = first
		req.Experience = exp
		req.ConsultationFee = fee
		req.Specialization = []string{spec}
		registerVerified(t, svc, repo, req)
	}
	seed("a@example.com", "Alice", 5, 40, "Cardiology")
	seed("b@example.com", "Bob", 10, 80, "Neurology")
	seed("c@example.com", "Carol", 15, 120, "Cardiology")

	minExp := 10
	res, err := svc.Search(ctx, SearchQuery{MinExperience: &minExp})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.NotNil(t, res.Results)
	require.Len(t, res.Results.Doctors, 2)
	// experience descending, bound inclusive
	assert.Equal(t, "Carol", res.Results.Doctors[0].FirstName)
	assert.Equal(t, "Bob", res.Results.Doctors[1].FirstName)

	maxFee := 80
	res, err = svc.Search(ctx, SearchQuery{Specialization: "Cardiology", MaxFee: &maxFee})
	require.NoError(t, err)
	require.Len(t, res.Results.Doctors, 1)
	assert.Equal(t, "Alice", res.Results.Doctors[0].FirstName)

	res, err = svc.Search(ctx, SearchQuery{Name: "bo"})
	require.NoError(t, err)
	require.Len(t, res.Results.Doctors, 1)
	assert.Equal(t, "Bob", res.Results.Doctors[0].FirstName)

	// credentials never leak through search
	for _, d := range res.Results.Doctors {
		assert.Empty(t, d.Password)
		assert.Empty(t, d.Salt)
	}

	res, err = svc.ListDoctors(ctx, 0, 2)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.NotNil(t, res.Doctors)
	assert.Len(t, res.Doctors.Doctors, 2)
	assert.Equal(t, int64(3), res.Doctors.Pagination.Total)
	assert.Equal(t, 2, res.Doctors.Pagination.Pages)
}

func TestDeleteAccount(t *testing.T) {
	svc, repo, pub := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	res, err := svc.DeleteAccount(ctx, id)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)

	require.Eventually(t, func() bool { return pub.count(queue.KeyDoctorDeleted) == 1 },
		time.Second, 10*time.Millisecond)

	res, err = svc.DeleteAccount(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)

	res, err = svc.Login(ctx, "jane.doe@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestMeAndProfile(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := registerVerified(t, svc, repo, validRegistration())

	res, err := svc.Me(ctx, "jane.doe@example.com")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.NotNil(t, res.Auth)
	assert.Equal(t, id, res.Auth.DoctorID)
	assert.True(t, res.Auth.IsVerified)

	res, err = svc.Profile(ctx, id)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	require.NotNil(t, res.Doctor)
	assert.Empty(t, res.Doctor.Password)
	assert.Empty(t, res.Doctor.Salt)

	about := "Cardiologist with a focus on preventive care."
	fee := 90
	res, err = svc.UpdateProfile(ctx, id, ProfileUpdate{AboutDoctor: &about, ConsultationFee: &fee})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, about, res.Doctor.AboutDoctor)
	assert.Equal(t, fee, res.Doctor.ConsultationFee)
	// untouched fields survive a partial update
	assert.Equal(t, "Jane", res.Doctor.FirstName)
}
