package patients

import (
	"net/http"
	"strconv"
	"time"

	"vet-clinic-api/internal/app/http/middleware"
	"vet-clinic-api/internal/domain/patients"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves patient records. Every operation is scoped to the
// authenticated veterinarian owning the record.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

type patientInput struct {
	Name       string    `json:"nombre" binding:"required"`
	Owner      string    `json:"propietario" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	CellPhone  string    `json:"celular" binding:"required"`
	Landline   string    `json:"convencional" binding:"required"`
	AdmittedAt time.Time `json:"ingreso" binding:"required"`
	Symptoms   string    `json:"sintomas" binding:"required"`
}

// List returns the caller's active patients with the owning vet preloaded.
func (h *Handler) List(c *gin.Context) {
	profile, ok := middleware.CurrentVet(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var list []patients.Patient
	err := h.DB.
		Where("veterinarian_id = ? AND status = ?", profile.ID, true).
		Preload("Veterinarian", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "surname")
		}).
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list patients"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) Detail(c *gin.Context) {
	profile, ok := middleware.CurrentVet(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	patient, found := h.ownedPatient(c, profile.ID)
	if !found {
		return
	}

	if err := h.DB.
		Preload("Veterinarian", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "surname")
		}).
		First(&patient, patient.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no patient with that id"})
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *Handler) Create(c *gin.Context) {
	profile, ok := middleware.CurrentVet(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input patientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}

	patient := patients.Patient{
		Name:           input.Name,
		Owner:          input.Owner,
		Email:          input.Email,
		CellPhone:      input.CellPhone,
		Landline:       input.Landline,
		AdmittedAt:     input.AdmittedAt,
		Symptoms:       input.Symptoms,
		Status:         true,
		VeterinarianID: profile.ID,
	}
	if err := h.DB.Omit("Veterinarian").Create(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successful patient registration"})
}

func (h *Handler) Update(c *gin.Context) {
	profile, ok := middleware.CurrentVet(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input patientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}

	patient, found := h.ownedPatient(c, profile.ID)
	if !found {
		return
	}

	patient.Name = input.Name
	patient.Owner = input.Owner
	patient.Email = input.Email
	patient.CellPhone = input.CellPhone
	patient.Landline = input.Landline
	patient.AdmittedAt = input.AdmittedAt
	patient.Symptoms = input.Symptoms
	if err := h.DB.Omit("Veterinarian").Save(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successful patient update"})
}

// Delete discharges a patient: the record stays, with the active flag cleared
// and the discharge date set.
func (h *Handler) Delete(c *gin.Context) {
	profile, ok := middleware.CurrentVet(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		DischargedAt time.Time `json:"salida" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}

	patient, found := h.ownedPatient(c, profile.ID)
	if !found {
		return
	}

	patient.Status = false
	patient.DischargedAt = &input.DischargedAt
	if err := h.DB.Omit("Veterinarian").Save(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to discharge patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Date of patient departure registered successfully"})
}

// ownedPatient resolves the :id parameter to a patient owned by vetID. It
// writes the 404 response itself when the id is malformed, unknown, or owned
// by someone else.
func (h *Handler) ownedPatient(c *gin.Context, vetID uint) (patients.Patient, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "It must be a valid id"})
		return patients.Patient{}, false
	}

	var patient patients.Patient
	if err := h.DB.First(&patient, uint(id)).Error; err != nil || patient.VeterinarianID != vetID {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no patient with that id"})
		return patients.Patient{}, false
	}
	return patient, true
}
