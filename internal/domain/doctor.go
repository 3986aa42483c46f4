package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionType matches the values the booking frontends send.
type SessionType string

const (
	SessionInPerson SessionType = "In-person"
	SessionOnline   SessionType = "Online"
)

func ValidSessionType(t SessionType) bool {
	return t == SessionInPerson || t == SessionOnline
}

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session is embedded in its owning Doctor. SessionID is a logical identifier
// issued before the session is persisted, so links can reference it; it is not
// the storage id.
type Session struct {
	SessionID   string        `bson:"sessionId"             json:"sessionId"`
	PatientID   string        `bson:"patientId"             json:"patientId"`
	Type        SessionType   `bson:"type"                  json:"type"`
	Date        string        `bson:"date"                  json:"date"`
	TimeSlot    string        `bson:"timeSlot"              json:"timeSlot"`
	SessionLink string        `bson:"sessionLink"           json:"sessionLink"`
	Duration    int           `bson:"duration"              json:"duration"`
	Status      SessionStatus `bson:"status"                json:"status"`
	Notes       string        `bson:"notes,omitempty"       json:"notes,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt"             json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"             json:"updatedAt"`
}

// TimeSlot is a recurring weekly availability window. SlotID is assigned at
// creation and is the id clients use for updates and removals.
type TimeSlot struct {
	SlotID          string `bson:"slotId"          json:"slotId"`
	Day             string `bson:"day"             json:"day"`
	TimeSlot        string `bson:"timeSlot"        json:"timeSlot"`
	ConsultationFee int    `bson:"consultationFee" json:"consultationFee"`
}

type Degree struct {
	DegreeID         string `bson:"degreeId"                   json:"degreeId"`
	DegreeName       string `bson:"degreeName"                 json:"degreeName"`
	Institution      string `bson:"institution,omitempty"      json:"institution,omitempty"`
	YearOfCompletion int    `bson:"yearOfCompletion,omitempty" json:"yearOfCompletion,omitempty"`
	VerifiedProof    string `bson:"verifiedProof,omitempty"    json:"verifiedProof,omitempty"`
}

type HospitalAffiliation struct {
	AffiliationID string `bson:"affiliationId"      json:"affiliationId"`
	Name          string `bson:"name"               json:"name"`
	Location      string `bson:"location,omitempty" json:"location,omitempty"`
}

// Doctor is the aggregate root: one document per practitioner, with sessions,
// availability, degrees and affiliations embedded.
type Doctor struct {
	ID                  primitive.ObjectID    `bson:"_id,omitempty"                 json:"-"`
	DoctorID            string                `bson:"doctorId"                      json:"doctorId"`
	FirstName           string                `bson:"firstName"                     json:"firstName"`
	MiddleName          string                `bson:"middleName,omitempty"          json:"middleName,omitempty"`
	LastName            string                `bson:"lastName"                      json:"lastName"`
	Gender              string                `bson:"gender,omitempty"              json:"gender,omitempty"`
	DOB                 string                `bson:"DOB,omitempty"                 json:"DOB,omitempty"`
	Email               string                `bson:"email"                         json:"email"`
	MobileNo            string                `bson:"mobileNo,omitempty"            json:"mobileNo,omitempty"`
	CountryCallingCode  string                `bson:"countryCallingCode,omitempty"  json:"countryCallingCode,omitempty"`
	Password            string                `bson:"password"                      json:"-"`
	Salt                string                `bson:"salt"                          json:"-"`
	AboutDoctor         string                `bson:"aboutDoctor,omitempty"         json:"aboutDoctor,omitempty"`
	ProfileImageURL     string                `bson:"profileImageUrl,omitempty"     json:"profileImageUrl,omitempty"`
	IsVerified          bool                  `bson:"isVerified"                    json:"isVerified"`
	Languages           []string              `bson:"languages"                     json:"languages"`
	Specialization      []string              `bson:"specialization"                json:"specialization"`
	Degrees             []Degree              `bson:"degrees"                       json:"degrees"`
	Experience          int                   `bson:"experience"                    json:"experience"`
	HospitalAffiliation []HospitalAffiliation `bson:"hospitalAffiliations"          json:"hospitalAffiliations"`
	Location            string                `bson:"location,omitempty"            json:"location,omitempty"`
	ConsultationFee     int                   `bson:"consultationFee,omitempty"     json:"consultationFee,omitempty"`
	AvailableTimeSlots  []TimeSlot            `bson:"availableTimeSlots"            json:"availableTimeSlots"`
	Sessions            []Session             `bson:"sessions"                      json:"sessions,omitempty"`
	CreatedAt           time.Time             `bson:"createdAt"                     json:"createdAt"`
	UpdatedAt           time.Time             `bson:"updatedAt"                     json:"updatedAt"`
}
