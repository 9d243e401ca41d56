package vets

import (
	"strings"
	"time"
)

// Veterinarian is the identity and credential record. The Token column is a
// single-purpose slot: it holds either a pending confirmation token or a
// pending reset token, never both, and is cleared when consumed.
type Veterinarian struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `json:"nombre"`
	Surname string `json:"apellido"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
	Email   string `gorm:"not null;uniqueIndex:idx_veterinarians_email" json:"email"`

	Password     string  `json:"-"`
	Token        *string `gorm:"uniqueIndex:idx_veterinarians_token" json:"-"`
	ConfirmEmail bool    `json:"-"`
	Status       bool    `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Profile is the outward view of a veterinarian. Password hash, token slot
// and internal flags are never part of it.
type Profile struct {
	ID      uint   `json:"id"`
	Name    string `json:"nombre"`
	Surname string `json:"apellido"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
}

func (v *Veterinarian) AsProfile() Profile {
	return Profile{
		ID:      v.ID,
		Name:    v.Name,
		Surname: v.Surname,
		Address: v.Address,
		Phone:   v.Phone,
		Email:   v.Email,
	}
}

// NormalizeEmail lowercases and trims an address so uniqueness checks and
// lookups agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
