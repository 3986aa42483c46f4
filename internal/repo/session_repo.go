package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medconnect/doctor-service/internal/doctor"
	"github.com/medconnect/doctor-service/internal/domain"
)

func (r *DoctorRepo) AddSession(ctx context.Context, doctorID string, s domain.Session) (*domain.Session, error) {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	d, err := r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{
			"$push": bson.M{"sessions": s},
			"$set":  bson.M{"updatedAt": now},
		})
	if err != nil {
		return nil, err
	}
	return pickSession(d.Sessions, s.SessionID)
}

// UpdateSession sets only the fields present in the patch, addressed through
// the positional operator so the single matched sub-document changes.
func (r *DoctorRepo) UpdateSession(ctx context.Context, doctorID, sessionID string, patch doctor.SessionPatch) (*domain.Session, error) {
	now := time.Now().UTC()
	set := bson.M{"updatedAt": now, "sessions.$.updatedAt": now}
	if patch.PatientID != nil {
		set["sessions.$.patientId"] = *patch.PatientID
	}
	if patch.Type != nil {
		set["sessions.$.type"] = *patch.Type
	}
	if patch.Date != nil {
		set["sessions.$.date"] = *patch.Date
	}
	if patch.TimeSlot != nil {
		set["sessions.$.timeSlot"] = *patch.TimeSlot
	}
	if patch.Duration != nil {
		set["sessions.$.duration"] = *patch.Duration
	}
	if patch.Status != nil {
		set["sessions.$.status"] = *patch.Status
	}
	if patch.Notes != nil {
		set["sessions.$.notes"] = *patch.Notes
	}

	d, err := r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID, "sessions.sessionId": sessionID},
		bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return pickSession(d.Sessions, sessionID)
}

func (r *DoctorRepo) SetSessionStatus(ctx context.Context, doctorID, sessionID string, status domain.SessionStatus, notes *string) (*domain.Session, error) {
	patch := doctor.SessionPatch{Status: &status, Notes: notes}
	return r.UpdateSession(ctx, doctorID, sessionID, patch)
}

// SessionsByDoctor reads the doctor's embedded sessions and filters by status
// in memory; an empty status returns everything. The slice is one read of one
// document, so it is internally consistent.
func (r *DoctorRepo) SessionsByDoctor(ctx context.Context, doctorID string, status domain.SessionStatus) ([]domain.Session, error) {
	var d domain.Doctor
	err := r.col.FindOne(ctx, bson.M{"doctorId": doctorID},
		options.FindOne().SetProjection(bson.M{"sessions": 1}),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, doctor.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}

	if status == "" {
		return d.Sessions, nil
	}
	out := make([]domain.Session, 0, len(d.Sessions))
	for _, s := range d.Sessions {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *DoctorRepo) SessionByID(ctx context.Context, doctorID, sessionID string) (*domain.Session, error) {
	sessions, err := r.SessionsByDoctor(ctx, doctorID, "")
	if err != nil {
		return nil, err
	}
	return pickSession(sessions, sessionID)
}

func (r *DoctorRepo) SessionsByPatient(ctx context.Context, doctorID, patientID string) ([]domain.Session, error) {
	sessions, err := r.SessionsByDoctor(ctx, doctorID, "")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.PatientID == patientID {
			out = append(out, s)
		}
	}
	return out, nil
}

// SessionsOnDate returns every scheduled session across all doctors for the
// given date, joined with the owner's name and email. The reminder job is the
// only caller; it runs once a day, so a full-collection $elemMatch scan is
// acceptable here.
func (r *DoctorRepo) SessionsOnDate(ctx context.Context, date string) ([]doctor.DoctorSession, error) {
	filter := bson.M{"sessions": bson.M{"$elemMatch": bson.M{
		"date":   date,
		"status": domain.SessionScheduled,
	}}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetProjection(bson.M{
		"doctorId":  1,
		"firstName": 1,
		"lastName":  1,
		"email":     1,
		"sessions":  1,
	}))
	if err != nil {
		return nil, fmt.Errorf("find sessions on date: %w", err)
	}
	defer cur.Close(ctx)

	var out []doctor.DoctorSession
	for cur.Next(ctx) {
		var d domain.Doctor
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode doctor: %w", err)
		}
		for _, s := range d.Sessions {
			if s.Date != date || s.Status != domain.SessionScheduled {
				continue
			}
			out = append(out, doctor.DoctorSession{
				DoctorID:    d.DoctorID,
				DoctorName:  d.FirstName + " " + d.LastName,
				DoctorEmail: d.Email,
				Session:     s,
			})
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}

func pickSession(sessions []domain.Session, sessionID string) (*domain.Session, error) {
	for i := range sessions {
		if sessions[i].SessionID == sessionID {
			return &sessions[i], nil
		}
	}
	return nil, doctor.ErrNotFound
}
