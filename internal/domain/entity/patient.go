package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a person treated by the practitioner.
// Patients are never hard-deleted; deactivation flips IsActive.
type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Email     string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone     string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`
	IsActive  *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Sessions []Session `gorm:"foreignKey:PatientID" json:"sessions,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Active reports whether the patient is active. A nil flag counts as active
// because the column defaults to true.
func (p *Patient) Active() bool {
	return p.IsActive == nil || *p.IsActive
}

// Deactivate soft-deletes the patient.
func (p *Patient) Deactivate() {
	inactive := false
	p.IsActive = &inactive
}
