package patients

import (
	"time"

	"vet-clinic-api/internal/domain/vets"
)

// Patient is a clinical record owned by exactly one veterinarian. Discharge
// is a soft delete: Status flips to false and DischargedAt records when, the
// row itself is never removed.
type Patient struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `json:"nombre"`
	Owner      string    `json:"propietario"`
	Email      string    `json:"email"`
	CellPhone  string    `json:"celular"`
	Landline   string    `json:"convencional"`
	AdmittedAt time.Time `json:"ingreso"`
	Symptoms   string    `json:"sintomas"`

	DischargedAt *time.Time `json:"salida,omitempty"`
	Status       bool       `gorm:"default:true" json:"-"`

	VeterinarianID uint              `json:"-"`
	Veterinarian   vets.Veterinarian `gorm:"constraint:OnDelete:CASCADE" json:"veterinario"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
