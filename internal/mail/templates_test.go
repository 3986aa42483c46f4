package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderKnownTemplates(t *testing.T) {
	data := map[string]string{
		"Name":     "Dr. Jane Doe",
		"Link":     "http://localhost:3000/doctor/verify/tok",
		"Date":     "2026-09-01",
		"TimeSlot": "09:00-09:30",
	}
	for _, name := range []string{
		"welcomeMail", "verificationLinkMail", "forgotPasswordMail",
		"bookingConfirmationMail", "cancellationMail", "reminderMail",
	} {
		body, err := Render(name, data)
		require.NoError(t, err, name)
		assert.Contains(t, body, "Dr. Jane Doe", name)
	}
}

func TestRenderVerificationLink(t *testing.T) {
	body, err := Render("verificationLinkMail", map[string]string{
		"Name": "Dr. X", "Link": "http://example.com/verify/abc",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "http://example.com/verify/abc")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("noSuchMail", nil)
	assert.Error(t, err)
}
