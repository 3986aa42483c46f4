package doctor

import "github.com/medconnect/doctor-service/internal/domain"

// Result is the envelope every service method returns. Status is the HTTP code
// the route layer answers with; it is not part of the JSON body.
type Result struct {
	Status  int    `json:"-"`
	Message string `json:"message"`

	Token               string                       `json:"token,omitempty"`
	Doctor              *domain.Doctor               `json:"doctor,omitempty"`
	Session             *domain.Session              `json:"session,omitempty"`
	Sessions            []domain.Session             `json:"sessions,omitempty"`
	AvailableTimeSlots  []domain.TimeSlot            `json:"availableTimeSlots,omitempty"`
	Degrees             []domain.Degree              `json:"degrees,omitempty"`
	HospitalAffiliation []domain.HospitalAffiliation `json:"hospitalAffiliations,omitempty"`
	Specialization      []string                     `json:"specialization,omitempty"`
	Languages           []string                     `json:"languages,omitempty"`
	Results             *SearchResults               `json:"results,omitempty"`
	Doctors             *SearchResults               `json:"doctors,omitempty"`
	Auth                *AuthInfo                    `json:"auth,omitempty"`
}

// AuthInfo is the trimmed identity payload for GET /doctor/me.
type AuthInfo struct {
	DoctorID        string   `json:"doctorId"`
	FirstName       string   `json:"firstName"`
	MiddleName      string   `json:"middleName,omitempty"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty"`
	Specialization  []string `json:"specialization"`
	Experience      int      `json:"experience"`
	IsVerified      bool     `json:"isVerified"`
}

func fail(status int, message string) Result {
	return Result{Status: status, Message: message}
}
