package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medconnect/doctor-service/internal/repo"
)

func NewRouter(h *Handler, jwtSecret string, limiter *repo.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/doctors", h.ListDoctors)
		api.GET("/medicines", h.Medicines)
		api.GET("/nearest-store", h.NearestStore)

		doc := api.Group("/doctor")
		{
			doc.POST("/register", h.Register)
			doc.POST("/login", RateLimit(limiter), h.Login)
			doc.GET("/verify/:token", h.VerifyEmail)
			doc.POST("/forgot-password", RateLimit(limiter), h.ForgotPassword)
			doc.POST("/reset-password/:token", h.ResetPassword)
			doc.POST("/search", h.Search)

			auth := doc.Group("", AuthDoctor(jwtSecret))
			{
				auth.GET("/me", h.Me)
				auth.GET("/profile", h.GetProfile)
				auth.POST("/profile", h.UpdateProfile)
				auth.POST("/change-password", h.ChangePassword)
				auth.DELETE("/account", h.DeleteAccount)

				auth.POST("/availability", h.UpdateAvailability)
				auth.PUT("/availability/:slotId", h.UpdateTimeSlot)
				auth.DELETE("/availability/:slotId", h.RemoveTimeSlot)

				auth.POST("/sessions", h.BookSession)
				auth.GET("/sessions", h.ListSessions)
				auth.GET("/sessions/:sessionId", h.GetSession)
				auth.PUT("/sessions/:sessionId", h.UpdateSession)
				auth.PUT("/sessions/:sessionId/cancel", h.CancelSession)
				auth.PUT("/sessions/:sessionId/complete", h.CompleteSession)
				auth.GET("/patient-sessions/:patientId", h.PatientSessions)

				auth.POST("/degrees", h.UpsertDegree)
				auth.DELETE("/degrees/:degreeId", h.RemoveDegree)
				auth.POST("/hospital-affiliations", h.UpsertAffiliation)
				auth.DELETE("/hospital-affiliations/:affiliationId", h.RemoveAffiliation)

				auth.PUT("/specializations", h.UpdateSpecializations)
				auth.PUT("/languages", h.UpdateLanguages)
			}
		}
	}
	return r
}
