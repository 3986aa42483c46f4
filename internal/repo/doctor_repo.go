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

const doctorsCollection = "doctors"

// DoctorRepo is the mongo-backed doctor.Repository. Each mutation is a single
// conditional update (filter + update in one command), so the store's
// per-document atomicity is the consistency guarantee; there are no
// multi-document transactions here.
type DoctorRepo struct {
	col *mongo.Collection
}

func NewDoctorRepo(s *Store) *DoctorRepo {
	return &DoctorRepo{col: s.DB.Collection(doctorsCollection)}
}

var noCredentials = options.FindOneAndUpdate().
	SetReturnDocument(options.After).
	SetProjection(bson.M{"password": 0, "salt": 0})

// ensureArrays replaces nil embedded collections with empty slices. Nil slices
// encode as BSON null, and $push against a null field fails; new documents must
// carry real arrays.
func ensureArrays(d *domain.Doctor) {
	if d.Sessions == nil {
		d.Sessions = []domain.Session{}
	}
	if d.AvailableTimeSlots == nil {
		d.AvailableTimeSlots = []domain.TimeSlot{}
	}
	if d.Degrees == nil {
		d.Degrees = []domain.Degree{}
	}
	if d.HospitalAffiliation == nil {
		d.HospitalAffiliation = []domain.HospitalAffiliation{}
	}
}

func (r *DoctorRepo) Create(ctx context.Context, d *domain.Doctor) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	ensureArrays(d)
	_, err := r.col.InsertOne(ctx, d)
	if err != nil {
		if IsDup(err) {
			return doctor.ErrEmailTaken
		}
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *DoctorRepo) FindByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	var d domain.Doctor
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find doctor by email: %w", err)
	}
	return &d, nil
}

func (r *DoctorRepo) FindByID(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	var d domain.Doctor
	err := r.col.FindOne(ctx, bson.M{"doctorId": doctorID},
		options.FindOne().SetProjection(bson.M{"password": 0, "salt": 0}),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return &d, nil
}

func (r *DoctorRepo) UpdateProfile(ctx context.Context, doctorID string, upd doctor.ProfileUpdate) (*domain.Doctor, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	addStr := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	addStr("firstName", upd.FirstName)
	addStr("middleName", upd.MiddleName)
	addStr("lastName", upd.LastName)
	addStr("gender", upd.Gender)
	addStr("DOB", upd.DOB)
	addStr("mobileNo", upd.MobileNo)
	addStr("countryCallingCode", upd.CountryCallingCode)
	addStr("aboutDoctor", upd.AboutDoctor)
	addStr("profileImageUrl", upd.ProfileImageURL)
	addStr("location", upd.Location)
	if upd.Experience != nil {
		set["experience"] = *upd.Experience
	}
	if upd.ConsultationFee != nil {
		set["consultationFee"] = *upd.ConsultationFee
	}

	return r.updateDoctor(ctx, bson.M{"doctorId": doctorID}, bson.M{"$set": set})
}

func (r *DoctorRepo) SetVerified(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{"$set": bson.M{"isVerified": true, "updatedAt": time.Now().UTC()}})
}

func (r *DoctorRepo) SetPassword(ctx context.Context, doctorID, hash, salt string) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{"$set": bson.M{"password": hash, "salt": salt, "updatedAt": time.Now().UTC()}})
}

func (r *DoctorRepo) Delete(ctx context.Context, doctorID string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"doctorId": doctorID})
	if err != nil {
		return false, fmt.Errorf("delete doctor: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (r *DoctorRepo) AddTimeSlots(ctx context.Context, doctorID string, slots []domain.TimeSlot) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{
			"$push": bson.M{"availableTimeSlots": bson.M{"$each": slots}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
}

// ReplaceTimeSlot matches the owning doctor and the slot id in one filter and
// replaces the whole matched sub-document.
func (r *DoctorRepo) ReplaceTimeSlot(ctx context.Context, doctorID, slotID string, slot domain.TimeSlot) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID, "availableTimeSlots.slotId": slotID},
		bson.M{"$set": bson.M{
			"availableTimeSlots.$": slot,
			"updatedAt":            time.Now().UTC(),
		}})
}

func (r *DoctorRepo) RemoveTimeSlot(ctx context.Context, doctorID, slotID string) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID, "availableTimeSlots.slotId": slotID},
		bson.M{
			"$pull": bson.M{"availableTimeSlots": bson.M{"slotId": slotID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
}

func (r *DoctorRepo) AddDegree(ctx context.Context, doctorID string, deg domain.Degree) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{
			"$push": bson.M{"degrees": deg},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
}

func (r *DoctorRepo) ReplaceDegree(ctx context.Context, doctorID, degreeID string, deg domain.Degree) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID, "degrees.degreeId": degreeID},
		bson.M{"$set": bson.M{
			"degrees.$": deg,
			"updatedAt": time.Now().UTC(),
		}})
}

func (r *DoctorRepo) RemoveDegree(ctx context.Context, doctorID, degreeID string) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID, "degrees.degreeId": degreeID},
		bson.M{
			"$pull": bson.M{"degrees": bson.M{"degreeId": degreeID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
}

func (r *DoctorRepo) AddAffiliation(ctx context.Context, doctorID string, a domain.HospitalAffiliation) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{
			"$push": bson.M{"hospitalAffiliations": a},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
}

func (r *DoctorRepo) ReplaceAffiliation(ctx context.Context, doctorID, affiliationID string, a domain.HospitalAffiliation) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID, "hospitalAffiliations.affiliationId": affiliationID},
		bson.M{"$set": bson.M{
			"hospitalAffiliations.$": a,
			"updatedAt":              time.Now().UTC(),
		}})
}

func (r *DoctorRepo) RemoveAffiliation(ctx context.Context, doctorID, affiliationID string) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID, "hospitalAffiliations.affiliationId": affiliationID},
		bson.M{
			"$pull": bson.M{"hospitalAffiliations": bson.M{"affiliationId": affiliationID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
}

func (r *DoctorRepo) SetSpecializations(ctx context.Context, doctorID string, specializations []string) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{"$set": bson.M{"specialization": specializations, "updatedAt": time.Now().UTC()}})
}

func (r *DoctorRepo) SetLanguages(ctx context.Context, doctorID string, languages []string) (*domain.Doctor, error) {
	return r.updateDoctor(ctx,
		bson.M{"doctorId": doctorID},
		bson.M{"$set": bson.M{"languages": languages, "updatedAt": time.Now().UTC()}})
}

func (r *DoctorRepo) updateDoctor(ctx context.Context, filter, update bson.M) (*domain.Doctor, error) {
	var d domain.Doctor
	err := r.col.FindOneAndUpdate(ctx, filter, update, noCredentials).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, doctor.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return &d, nil
}
