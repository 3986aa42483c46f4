package mail

import (
	applog "github.com/medconnect/doctor-service/internal/log"
	"github.com/medconnect/doctor-service/internal/metrics"
)

// Sender delivers rendered mail. The default delivery is the structured log;
// an SMTP relay slots in here without touching the worker.
type Sender struct {
	From string
}

func (s *Sender) Send(to, subject, template, body string) error {
	applog.Infof("[MAIL] from=%s to=%s subj=%q template=%s len=%d", s.From, to, subject, template, len(body))
	metrics.MailsSent.WithLabelValues(template, "ok").Inc()
	return nil
}
