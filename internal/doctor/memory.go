package doctor

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/medconnect/doctor-service/internal/domain"
)

// MemoryRepository is an in-process Repository used by the test suites and by
// `cmd/seed --memory` dry runs. It mirrors the store semantics: sub-entity
// filters must match both the doctor and the sub-id, and "not found" is
// ErrNotFound, never a panic.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Doctor
	byEmail map[string]string // email -> doctorID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*domain.Doctor),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryRepository) Create(ctx context.Context, d *domain.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[d.Email]; ok {
		return ErrEmailTaken
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	cp := *d
	m.byID[d.DoctorID] = &cp
	m.byEmail[d.Email] = d.DoctorID
	return nil
}

func (m *MemoryRepository) FindByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *m.byID[id]
	return &cp, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.Password, cp.Salt = "", ""
	return &cp, nil
}

func (m *MemoryRepository) UpdateProfile(ctx context.Context, doctorID string, upd ProfileUpdate) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&d.FirstName, upd.FirstName)
	setStr(&d.MiddleName, upd.MiddleName)
	setStr(&d.LastName, upd.LastName)
	setStr(&d.Gender, upd.Gender)
	setStr(&d.DOB, upd.DOB)
	setStr(&d.MobileNo, upd.MobileNo)
	setStr(&d.CountryCallingCode, upd.CountryCallingCode)
	setStr(&d.AboutDoctor, upd.AboutDoctor)
	setStr(&d.ProfileImageURL, upd.ProfileImageURL)
	setStr(&d.Location, upd.Location)
	if upd.Experience != nil {
		d.Experience = *upd.Experience
	}
	if upd.ConsultationFee != nil {
		d.ConsultationFee = *upd.ConsultationFee
	}
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryRepository) SetVerified(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	d.IsVerified = true
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryRepository) SetPassword(ctx context.Context, doctorID, hash, salt string) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	d.Password, d.Salt = hash, salt
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, doctorID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return false, nil
	}
	delete(m.byEmail, d.Email)
	delete(m.byID, doctorID)
	return true, nil
}

func (m *MemoryRepository) AddTimeSlots(ctx context.Context, doctorID string, slots []domain.TimeSlot) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	d.AvailableTimeSlots = append(d.AvailableTimeSlots, slots...)
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryRepository) ReplaceTimeSlot(ctx context.Context, doctorID, slotID string, slot domain.TimeSlot) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.AvailableTimeSlots {
		if d.AvailableTimeSlots[i].SlotID == slotID {
			d.AvailableTimeSlots[i] = slot
			d.UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) RemoveTimeSlot(ctx context.Context, doctorID, slotID string) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.AvailableTimeSlots {
		if d.AvailableTimeSlots[i].SlotID == slotID {
			d.AvailableTimeSlots = append(d.AvailableTimeSlots[:i], d.AvailableTimeSlots[i+1:]...)
			d.UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) AddSession(ctx context.Context, doctorID string, s domain.Session) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	d.Sessions = append(d.Sessions, s)
	d.UpdatedAt = now
	cp := s
	return &cp, nil
}

func (m *MemoryRepository) UpdateSession(ctx context.Context, doctorID, sessionID string, patch SessionPatch) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.Sessions {
		if d.Sessions[i].SessionID != sessionID {
			continue
		}
		s := &d.Sessions[i]
		if patch.PatientID != nil {
			s.PatientID = *patch.PatientID
		}
		if patch.Type != nil {
			s.Type = *patch.Type
		}
		if patch.Date != nil {
			s.Date = *patch.Date
		}
		if patch.TimeSlot != nil {
			s.TimeSlot = *patch.TimeSlot
		}
		if patch.Duration != nil {
			s.Duration = *patch.Duration
		}
		if patch.Status != nil {
			s.Status = *patch.Status
		}
		if patch.Notes != nil {
			s.Notes = *patch.Notes
		}
		s.UpdatedAt = time.Now().UTC()
		cp := *s
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) SetSessionStatus(ctx context.Context, doctorID, sessionID string, status domain.SessionStatus, notes *string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.Sessions {
		if d.Sessions[i].SessionID != sessionID {
			continue
		}
		d.Sessions[i].Status = status
		if notes != nil {
			d.Sessions[i].Notes = *notes
		}
		d.Sessions[i].UpdatedAt = time.Now().UTC()
		cp := d.Sessions[i]
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) SessionsByDoctor(ctx context.Context, doctorID string, status domain.SessionStatus) ([]domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]domain.Session, 0, len(d.Sessions))
	for _, s := range d.Sessions {
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *MemoryRepository) SessionByID(ctx context.Context, doctorID, sessionID string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, s := range d.Sessions {
		if s.SessionID == sessionID {
			cp := s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) SessionsByPatient(ctx context.Context, doctorID, patientID string) ([]domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	var out []domain.Session
	for _, s := range d.Sessions {
		if s.PatientID == patientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemoryRepository) SessionsOnDate(ctx context.Context, date string) ([]DoctorSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []DoctorSession
	for _, d := range m.byID {
		for _, s := range d.Sessions {
			if s.Date == date && s.Status == domain.SessionScheduled {
				out = append(out, DoctorSession{
					DoctorID:    d.DoctorID,
					DoctorName:  d.FirstName + " " + d.LastName,
					DoctorEmail: d.Email,
					Session:     s,
				})
			}
		}
	}
	return out, nil
}

func (m *MemoryRepository) AddDegree(ctx context.Context, doctorID string, deg domain.Degree) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	d.Degrees = append(d.Degrees, deg)
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryRepository) ReplaceDegree(ctx context.Context, doctorID, degreeID string, deg domain.Degree) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.Degrees {
		if d.Degrees[i].DegreeID == degreeID {
			d.Degrees[i] = deg
			d.UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) RemoveDegree(ctx context.Context, doctorID, degreeID string) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.Degrees {
		if d.Degrees[i].DegreeID == degreeID {
			d.Degrees = append(d.Degrees[:i], d.Degrees[i+1:]...)
			d.UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) AddAffiliation(ctx context.Context, doctorID string, a domain.HospitalAffiliation) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	d.HospitalAffiliation = append(d.HospitalAffiliation, a)
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryRepository) ReplaceAffiliation(ctx context.Context, doctorID, affiliationID string, a domain.HospitalAffiliation) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.HospitalAffiliation {
		if d.HospitalAffiliation[i].AffiliationID == affiliationID {
			d.HospitalAffiliation[i] = a
			d.UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) RemoveAffiliation(ctx context.Context, doctorID, affiliationID string) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range d.HospitalAffiliation {
		if d.HospitalAffiliation[i].AffiliationID == affiliationID {
			d.HospitalAffiliation = append(d.HospitalAffiliation[:i], d.HospitalAffiliation[i+1:]...)
			d.UpdatedAt = time.Now().UTC()
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) SetSpecializations(ctx context.Context, doctorID string, specializations []string) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	d.Specialization = specializations
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryRepository) SetLanguages(ctx context.Context, doctorID string, languages []string) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	d.Languages = languages
	d.UpdatedAt = time.Now().UTC()
	cp := *d
	return &cp, nil
}

func (m *MemoryRepository) Search(ctx context.Context, q SearchQuery) (*SearchResults, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []domain.Doctor
	for _, d := range m.byID {
		if !matches(d, q) {
			continue
		}
		cp := *d
		cp.Password, cp.Salt = "", ""
		matched = append(matched, cp)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Experience > matched[j].Experience
	})
	return paginate(matched, q.Page, q.Limit), nil
}

func (m *MemoryRepository) List(ctx context.Context, page, limit int) (*SearchResults, error) {
	return m.Search(ctx, SearchQuery{Page: page, Limit: limit})
}

func matches(d *domain.Doctor, q SearchQuery) bool {
	if q.Name != "" {
		n := strings.ToLower(q.Name)
		if !strings.Contains(strings.ToLower(d.FirstName), n) &&
			!strings.Contains(strings.ToLower(d.LastName), n) {
			return false
		}
	}
	if q.Specialization != "" && !containsString(d.Specialization, q.Specialization) {
		return false
	}
	if q.Language != "" && !containsString(d.Languages, q.Language) {
		return false
	}
	if q.Location != "" && !strings.Contains(strings.ToLower(d.Location), strings.ToLower(q.Location)) {
		return false
	}
	if q.MinExperience != nil && d.Experience < *q.MinExperience {
		return false
	}
	if q.MaxFee != nil && d.ConsultationFee > *q.MaxFee {
		return false
	}
	return true
}

func containsString(set []string, want string) bool {
	for _, s := range set {
		if s == want {
			return true
		}
	}
	return false
}

func paginate(all []domain.Doctor, page, limit int) *SearchResults {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return &SearchResults{
		Doctors: all[start:end],
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	}
}
