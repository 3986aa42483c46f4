package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medconnect/doctor-service/internal/doctor"
	"github.com/medconnect/doctor-service/internal/domain"
	applog "github.com/medconnect/doctor-service/internal/log"
	"github.com/medconnect/doctor-service/internal/pharmacy"
)

// Pinger reports store liveness for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Svc    *doctor.Service
	Health Pinger
}

func NewHandler(svc *doctor.Service, health Pinger) *Handler {
	return &Handler{Svc: svc, Health: health}
}

// respond writes the service envelope with its embedded status, or a logged
// 500 when the service failed unexpectedly.
func respond(c *gin.Context, res doctor.Result, err error) {
	if err != nil {
		applog.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(res.Status, res)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return false
	}
	return true
}

// Register godoc
// @Summary Register doctor
// @Tags doctor
// @Accept json
// @Produce json
// @Router /api/v1/doctor/register [post]
func (h *Handler) Register(c *gin.Context) {
	var in doctor.RegisterRequest
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), in)
	respond(c, res, err)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), in.Email, in.Password)
	respond(c, res, err)
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	res, err := h.Svc.VerifyEmail(c.Request.Context(), c.Param("token"))
	respond(c, res, err)
}

type forgotPasswordReq struct {
	Email string `json:"email"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var in forgotPasswordReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.ForgotPassword(c.Request.Context(), in.Email)
	respond(c, res, err)
}

type resetPasswordReq struct {
	Password string `json:"password"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var in resetPasswordReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("token"), in.Password)
	respond(c, res, err)
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var in changePasswordReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.ChangePassword(c.Request.Context(), authUser(c).Email, in.CurrentPassword, in.NewPassword)
	respond(c, res, err)
}

func (h *Handler) Me(c *gin.Context) {
	res, err := h.Svc.Me(c.Request.Context(), authUser(c).Email)
	respond(c, res, err)
}

func (h *Handler) GetProfile(c *gin.Context) {
	res, err := h.Svc.Profile(c.Request.Context(), authUser(c).DoctorID)
	respond(c, res, err)
}

type profileUpdateReq struct {
	FirstName          *string `json:"firstName"`
	MiddleName         *string `json:"middleName"`
	LastName           *string `json:"lastName"`
	Gender             *string `json:"gender"`
	DOB                *string `json:"DOB"`
	MobileNo           *string `json:"mobileNo"`
	CountryCallingCode *string `json:"countryCallingCode"`
	AboutDoctor        *string `json:"aboutDoctor"`
	ProfileImageURL    *string `json:"profileImageUrl"`
	Location           *string `json:"location"`
	Experience         *int    `json:"experience"`
	ConsultationFee    *int    `json:"consultationFee"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var in profileUpdateReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.UpdateProfile(c.Request.Context(), authUser(c).DoctorID, doctor.ProfileUpdate{
		FirstName:          in.FirstName,
		MiddleName:         in.MiddleName,
		LastName:           in.LastName,
		Gender:             in.Gender,
		DOB:                in.DOB,
		MobileNo:           in.MobileNo,
		CountryCallingCode: in.CountryCallingCode,
		AboutDoctor:        in.AboutDoctor,
		ProfileImageURL:    in.ProfileImageURL,
		Location:           in.Location,
		Experience:         in.Experience,
		ConsultationFee:    in.ConsultationFee,
	})
	respond(c, res, err)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	res, err := h.Svc.DeleteAccount(c.Request.Context(), authUser(c).DoctorID)
	respond(c, res, err)
}

type availabilityReq struct {
	AvailableTimeSlots []doctor.TimeSlotInput `json:"availableTimeSlots"`
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	var in availabilityReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.UpdateAvailability(c.Request.Context(), authUser(c).DoctorID, in.AvailableTimeSlots)
	respond(c, res, err)
}

func (h *Handler) UpdateTimeSlot(c *gin.Context) {
	var in doctor.TimeSlotInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.UpdateTimeSlot(c.Request.Context(), authUser(c).DoctorID, c.Param("slotId"), in)
	respond(c, res, err)
}

func (h *Handler) RemoveTimeSlot(c *gin.Context) {
	res, err := h.Svc.RemoveTimeSlot(c.Request.Context(), authUser(c).DoctorID, c.Param("slotId"))
	respond(c, res, err)
}

func (h *Handler) BookSession(c *gin.Context) {
	var in doctor.SessionRequest
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.BookSession(c.Request.Context(), authUser(c).DoctorID, in)
	respond(c, res, err)
}

func (h *Handler) ListSessions(c *gin.Context) {
	status := domain.SessionStatus(c.Query("status"))
	res, err := h.Svc.Sessions(c.Request.Context(), authUser(c).DoctorID, status)
	respond(c, res, err)
}

func (h *Handler) GetSession(c *gin.Context) {
	res, err := h.Svc.SessionByID(c.Request.Context(), authUser(c).DoctorID, c.Param("sessionId"))
	respond(c, res, err)
}

func (h *Handler) PatientSessions(c *gin.Context) {
	res, err := h.Svc.PatientSessions(c.Request.Context(), authUser(c).DoctorID, c.Param("patientId"))
	respond(c, res, err)
}

type sessionPatchReq struct {
	PatientID *string             `json:"patientId"`
	Type      *domain.SessionType `json:"type"`
	Date      *string             `json:"date"`
	TimeSlot  *string             `json:"timeSlot"`
	Duration  *int                `json:"duration"`
	Notes     *string             `json:"notes"`
}

// UpdateSession cannot change sessionId or status: the patch has no field for
// either, status moves only through cancel/complete.
func (h *Handler) UpdateSession(c *gin.Context) {
	var in sessionPatchReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.UpdateSession(c.Request.Context(), authUser(c).DoctorID, c.Param("sessionId"),
		doctor.SessionPatch{
			PatientID: in.PatientID,
			Type:      in.Type,
			Date:      in.Date,
			TimeSlot:  in.TimeSlot,
			Duration:  in.Duration,
			Notes:     in.Notes,
		})
	respond(c, res, err)
}

func (h *Handler) CancelSession(c *gin.Context) {
	res, err := h.Svc.CancelSession(c.Request.Context(), authUser(c).DoctorID, c.Param("sessionId"))
	respond(c, res, err)
}

type completeSessionReq struct {
	Notes string `json:"notes"`
}

func (h *Handler) CompleteSession(c *gin.Context) {
	var in completeSessionReq
	if c.Request.ContentLength > 0 && !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.CompleteSession(c.Request.Context(), authUser(c).DoctorID, c.Param("sessionId"), in.Notes)
	respond(c, res, err)
}

func (h *Handler) UpsertDegree(c *gin.Context) {
	var in doctor.DegreeRequest
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.UpsertDegree(c.Request.Context(), authUser(c).DoctorID, in)
	respond(c, res, err)
}

func (h *Handler) RemoveDegree(c *gin.Context) {
	res, err := h.Svc.RemoveDegree(c.Request.Context(), authUser(c).DoctorID, c.Param("degreeId"))
	respond(c, res, err)
}

func (h *Handler) UpsertAffiliation(c *gin.Context) {
	var in doctor.AffiliationRequest
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.UpsertAffiliation(c.Request.Context(), authUser(c).DoctorID, in)
	respond(c, res, err)
}

func (h *Handler) RemoveAffiliation(c *gin.Context) {
	res, err := h.Svc.RemoveAffiliation(c.Request.Context(), authUser(c).DoctorID, c.Param("affiliationId"))
	respond(c, res, err)
}

type specializationsReq struct {
	Specialization []string `json:"specialization"`
}

func (h *Handler) UpdateSpecializations(c *gin.Context) {
	var in specializationsReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.UpdateSpecializations(c.Request.Context(), authUser(c).DoctorID, in.Specialization)
	respond(c, res, err)
}

type languagesReq struct {
	Languages []string `json:"languages"`
}

func (h *Handler) UpdateLanguages(c *gin.Context) {
	var in languagesReq
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.UpdateLanguages(c.Request.Context(), authUser(c).DoctorID, in.Languages)
	respond(c, res, err)
}

// Search godoc
// @Summary Search doctors
// @Tags doctor
// @Accept json
// @Produce json
// @Router /api/v1/doctor/search [post]
func (h *Handler) Search(c *gin.Context) {
	var in doctor.SearchQuery
	if !bindJSON(c, &in) {
		return
	}
	res, err := h.Svc.Search(c.Request.Context(), in)
	respond(c, res, err)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	res, err := h.Svc.ListDoctors(c.Request.Context(), page, limit)
	respond(c, res, err)
}

func (h *Handler) Medicines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Medicines retrieved successfully",
		"medicines": pharmacy.SearchMedicines(c.Query("search")),
	})
}

func (h *Handler) NearestStore(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid lat and lng are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Nearest stores retrieved successfully",
		"stores":  pharmacy.NearestStores(lat, lng, 3),
	})
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Health != nil {
		if err := h.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
