package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/medconnect/doctor-service/internal/config"
	"github.com/medconnect/doctor-service/internal/doctor"
	"github.com/medconnect/doctor-service/internal/domain"
	"github.com/medconnect/doctor-service/internal/repo"
	"github.com/medconnect/doctor-service/internal/security"
)

var specializations = []string{
	"Cardiology", "Dermatology", "Neurology", "Pediatrics",
	"Orthopedics", "Psychiatry", "General Medicine",
}

var languages = []string{"English", "Hindi", "Spanish", "French", "German"}

func main() {
	count := flag.Int("count", 25, "number of doctors to create")
	memory := flag.Bool("memory", false, "dry run against the in-memory repository")
	password := flag.String("password", "password123", "password for every seeded account")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store doctor.Repository
	if *memory {
		store = doctor.NewMemoryRepository()
	} else {
		s, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("mongo connect: %v", err)
		}
		defer s.Close(context.Background())
		if err := s.EnsureDoctorIndexes(ctx); err != nil {
			log.Fatalf("ensure indexes: %v", err)
		}
		store = repo.NewDoctorRepo(s)
	}

	for i := 0; i < *count; i++ {
		d := fakeDoctor(*password)
		if err := store.Create(ctx, d); err != nil {
			log.Printf("skip %s: %v", d.Email, err)
			continue
		}
		fmt.Printf("%s  %s %s  <%s>\n", d.DoctorID, d.FirstName, d.LastName, d.Email)
	}
}

func fakeDoctor(password string) *domain.Doctor {
	salt, err := security.GenerateSalt()
	if err != nil {
		log.Fatalf("generate salt: %v", err)
	}

	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	spec := gofakeit.Number(1, 2)
	lang := gofakeit.Number(1, 3)

	d := &domain.Doctor{
		DoctorID:           uuid.NewString(),
		FirstName:          first,
		LastName:           last,
		Gender:             gofakeit.Gender(),
		DOB:                gofakeit.DateRange(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1995, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
		Email:              gofakeit.Email(),
		MobileNo:           gofakeit.Phone(),
		CountryCallingCode: "+1",
		Password:           security.HashPassword(password, salt),
		Salt:               salt,
		AboutDoctor:        gofakeit.Sentence(12),
		IsVerified:         true,
		Languages:          pick(languages, lang),
		Specialization:     pick(specializations, spec),
		Experience:         gofakeit.Number(1, 30),
		Location:           gofakeit.City(),
		ConsultationFee:    gofakeit.Number(20, 200),
		AvailableTimeSlots: []domain.TimeSlot{
			{
				SlotID:          uuid.NewString(),
				Day:             gofakeit.WeekDay(),
				TimeSlot:        "09:00-12:00",
				ConsultationFee: gofakeit.Number(20, 200),
			},
		},
	}
	return d
}

func pick(from []string, n int) []string {
	out := make([]string, 0, n)
	seen := map[string]bool{}
	for len(out) < n {
		v := gofakeit.RandomString(from)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
