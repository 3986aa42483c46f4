package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/medconnect/doctor-service/internal/doctor"
	applog "github.com/medconnect/doctor-service/internal/log"
	"github.com/medconnect/doctor-service/internal/queue"
)

// Reminders publishes a reminder mail for every session scheduled on the next
// day. It runs daily; a failed run is logged and retried on the next tick.
type Reminders struct {
	repo     doctor.Repository
	pub      queue.Publisher
	exchange string
	cron     *cron.Cron
}

func NewReminders(repo doctor.Repository, pub queue.Publisher, exchange string) *Reminders {
	return &Reminders{repo: repo, pub: pub, exchange: exchange, cron: cron.New()}
}

// Start schedules the daily 07:00 run. Stop drains in-flight jobs.
func (r *Reminders) Start() error {
	if _, err := r.cron.AddFunc("0 7 * * *", r.run); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

func (r *Reminders) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reminders) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	if err := r.Remind(ctx, date); err != nil {
		applog.Errorf("session reminders for %s: %v", date, err)
	}
}

// Remind publishes one reminder per scheduled session on the given date.
func (r *Reminders) Remind(ctx context.Context, date string) error {
	sessions, err := r.repo.SessionsOnDate(ctx, date)
	if err != nil {
		return err
	}
	for _, ds := range sessions {
		ev := queue.MailRequested{
			To:       ds.DoctorEmail,
			Subject:  "Session Reminder",
			Template: "reminderMail",
			Data: map[string]string{
				"Name":     "Dr. " + ds.DoctorName,
				"Date":     ds.Session.Date,
				"TimeSlot": ds.Session.TimeSlot,
			},
		}
		if err := r.pub.Publish(ctx, r.exchange, queue.KeyMail, ev, ""); err != nil {
			applog.Errorf("publish reminder doctor=%s session=%s: %v", ds.DoctorID, ds.Session.SessionID, err)
		}
	}
	applog.Infof("session reminders published date=%s count=%d", date, len(sessions))
	return nil
}
