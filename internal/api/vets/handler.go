package vets

import (
	"net/http"
	"strconv"

	"vet-clinic-api/internal/app/http/middleware"
	"vet-clinic-api/internal/domain/vets"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves veterinarian profile reads and updates.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Profile returns the filtered record the auth middleware attached.
func (h *Handler) Profile(c *gin.Context) {
	profile, ok := middleware.CurrentVet(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// List is the public roster endpoint.
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "List of registered veterinarians"})
}

func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "It must be a valid id"})
		return
	}

	var vet vets.Veterinarian
	if err := h.DB.First(&vet, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no veterinarian with that id"})
		return
	}

	c.JSON(http.StatusOK, vet.AsProfile())
}

// Update overwrites the mutable profile fields. An email change is re-checked
// for uniqueness against other records; on conflict the original email is
// retained.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "It must be a valid id"})
		return
	}

	var input struct {
		Name    string `json:"nombre" binding:"required"`
		Surname string `json:"apellido" binding:"required"`
		Address string `json:"direccion" binding:"required"`
		Phone   string `json:"telefono" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}

	var vet vets.Veterinarian
	if err := h.DB.First(&vet, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "There is no veterinarian with that id"})
		return
	}

	email := vets.NormalizeEmail(input.Email)
	if email != vet.Email {
		var taken vets.Veterinarian
		if err := h.DB.Where("email = ?", email).First(&taken).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "The email is already registered"})
			return
		}
	}

	vet.Name = input.Name
	vet.Surname = input.Surname
	vet.Address = input.Address
	vet.Phone = input.Phone
	vet.Email = email
	if err := h.DB.Save(&vet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
