package mail

import (
	"fmt"
	"strings"
	"text/template"
)

// Templates are addressed by name from mail events; the substitution contract
// is the Data map, with Name and Link being the common keys.
var templates = template.Must(template.New("mail").Parse(`
{{define "welcomeMail"}}Dear {{.Name}},

Welcome to MedConnect! Your doctor account has been created.
Complete your profile and set your availability to start accepting sessions.

The MedConnect Team{{end}}

{{define "verificationLinkMail"}}Dear {{.Name}},

Please verify your email address by opening the link below:

{{.Link}}

If you did not register, you can ignore this mail.{{end}}

{{define "forgotPasswordMail"}}Dear {{.Name}},

We received a request to reset your password. Open the link below to choose a
new one:

{{.Link}}

If you did not request this, no action is needed.{{end}}

{{define "bookingConfirmationMail"}}Dear {{.Name}},

A new session has been booked with you on {{.Date}} at {{.TimeSlot}}.
You can review it in your dashboard.{{end}}

{{define "cancellationMail"}}Dear {{.Name}},

The session on {{.Date}} at {{.TimeSlot}} has been cancelled.{{end}}

{{define "reminderMail"}}Dear {{.Name}},

This is a reminder for your scheduled session tomorrow, {{.Date}} at
{{.TimeSlot}}.{{end}}
`))

// Render produces the body for a named template with the given substitutions.
// Unknown template names are an error so bad events are visible, not silent.
func Render(name string, data map[string]string) (string, error) {
	if templates.Lookup(name) == nil {
		return "", fmt.Errorf("unknown mail template %q", name)
	}
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}
