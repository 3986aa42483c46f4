package queue

// Routing keys on the doctor.events topic exchange. Every mail goes out under
// KeyMail so the notify worker's single queue binding catches it; the
// session.* keys carry integration events for other consumers.
const (
	KeyDoctorRegistered = "doctor.registered"
	KeyDoctorDeleted    = "doctor.deleted"
	KeyMail             = "doctor.mail"
	KeySessionBooked    = "session.booked"
	KeySessionCancelled = "session.cancelled"
)

// MailRequested asks the notify worker to render a named template and send it.
// Data carries the template substitutions (Name, Link, ...).
type MailRequested struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

type DoctorRegistered struct {
	DoctorID string `json:"doctorId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

type DoctorDeleted struct {
	DoctorID string `json:"doctorId"`
}

type SessionEvent struct {
	DoctorID  string `json:"doctorId"`
	SessionID string `json:"sessionId"`
	PatientID string `json:"patientId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
}
