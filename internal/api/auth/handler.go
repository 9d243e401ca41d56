package auth

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"regexp"
	"time"

	"vet-clinic-api/config"
	"vet-clinic-api/internal/app/http/middleware"
	"vet-clinic-api/internal/domain/vets"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Handler owns the credential lifecycle: registration, confirmation, login,
// password recovery and password change.
type Handler struct {
	DB   *gorm.DB
	Cfg  *config.Config
	Mail Mailer
}

func NewHandler(db *gorm.DB, cfg *config.Config, mail Mailer) *Handler {
	return &Handler{DB: db, Cfg: cfg, Mail: mail}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// generateToken returns the single-use opaque value mailed for confirmation
// and recovery.
func generateToken() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Register creates an unconfirmed veterinarian and mails the confirmation
// token. The mail is attempted before the record is persisted; a failed send
// is logged and registration proceeds anyway.
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"nombre" binding:"required"`
		Surname  string `json:"apellido" binding:"required"`
		Address  string `json:"direccion" binding:"required"`
		Phone    string `json:"telefono" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}

	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}
	email := vets.NormalizeEmail(input.Email)
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	var existing vets.Veterinarian
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "The email is already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	token := generateToken()
	if err := h.Mail.SendConfirmation(email, token); err != nil {
		log.Println("confirmation mail failed:", err)
	}

	vet := vets.Veterinarian{
		Name:         input.Name,
		Surname:      input.Surname,
		Address:      input.Address,
		Phone:        input.Phone,
		Email:        email,
		Password:     string(hashedPassword),
		Token:        &token,
		ConfirmEmail: false,
		Status:       true,
	}
	if err := h.DB.Create(&vet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Check your email to confirm your account"})
}

// ConfirmEmail consumes a confirmation token. A token no record holds is
// indistinguishable from one already consumed.
func (h *Handler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var vet vets.Veterinarian
	if err := h.DB.Where("token = ?", token).First(&vet).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The account has already been confirmed or the token is invalid"})
		return
	}

	vet.Token = nil
	vet.ConfirmEmail = true
	if err := h.DB.Save(&vet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token confirmed, you can now log in"})
}

// Login verifies credentials and issues a session token. Existence is checked
// before the confirmation flag so an unknown email never reports unverified.
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}

	var vet vets.Veterinarian
	if err := h.DB.Where("email = ?", vets.NormalizeEmail(input.Email)).First(&vet).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The user is not registered"})
		return
	}

	if !vet.ConfirmEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "You need to verify your account before logging in"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vet.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := h.signSessionToken(vet.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     tokenString,
		"id":        vet.ID,
		"nombre":    vet.Name,
		"apellido":  vet.Surname,
		"direccion": vet.Address,
		"telefono":  vet.Phone,
		"email":     vet.Email,
	})
}

func (h *Handler) signSessionToken(vetID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"vet_id": vetID,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(h.Cfg.JWTSecret))
}

// RecoverPassword stores a fresh reset token on the record, replacing any
// prior value in the slot, and mails it.
func (h *Handler) RecoverPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}

	var vet vets.Veterinarian
	if err := h.DB.Where("email = ?", vets.NormalizeEmail(input.Email)).First(&vet).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The user is not registered"})
		return
	}

	token := generateToken()
	if err := h.Mail.SendRecovery(vet.Email, token); err != nil {
		log.Println("recovery mail failed:", err)
	}

	vet.Token = &token
	if err := h.DB.Save(&vet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store recovery token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Check your email to reset your password"})
}

// CheckRecoveryToken probes whether a reset token is still valid. It is a
// pure read; the token is only consumed by NewPassword.
func (h *Handler) CheckRecoveryToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var vet vets.Veterinarian
	if err := h.DB.Where("token = ?", token).First(&vet).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The account cannot be validated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token confirmed, you can now create your new password"})
}

// NewPassword consumes a reset token and replaces the password hash.
func (h *Handler) NewPassword(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var input struct {
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirmpassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}
	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords don't match"})
		return
	}
	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}

	var vet vets.Veterinarian
	if err := h.DB.Where("token = ?", token).First(&vet).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "The account cannot be validated"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	vet.Token = nil
	vet.Password = string(hashed)
	if err := h.DB.Save(&vet).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You can now log in with your new password"})
}

// ChangePassword replaces the password of the authenticated caller after
// verifying the current one.
func (h *Handler) ChangePassword(c *gin.Context) {
	profile, ok := middleware.CurrentVet(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		CurrentPassword string `json:"passwordactual" binding:"required"`
		NewPassword     string `json:"passwordnuevo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must fill in all fields"})
		return
	}
	if !isPasswordStrong(input.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters long and contain both letters and numbers"})
		return
	}

	var vet vets.Veterinarian
	if err := h.DB.First(&vet, profile.ID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vet.Password), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "The current password is not correct"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := h.DB.Model(&vet).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
