package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents an admitted NICU patient
type Patient struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MRN              string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"mrn"`
	FirstName        string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName         string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Bed              string    `gorm:"type:varchar(16);index" json:"bed"`
	BirthDate        time.Time `json:"birth_date"`
	GestationalDays  int       `json:"gestational_days"`
	BirthWeightGrams int       `json:"birth_weight_grams"`
	IsAdmitted       bool      `gorm:"not null;default:true;index" json:"is_admitted"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// BeforeCreate hook
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Order kinds
const (
	OrderKindMedication  = "medication"
	OrderKindLab         = "lab"
	OrderKindFeeding     = "feeding"
	OrderKindRespiratory = "respiratory"
)

// Order represents a clinical order placed against a patient
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	OrderedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"ordered_by_id"`
	OrderedBy   string    `gorm:"type:varchar(255)" json:"ordered_by"`
	Kind        string    `gorm:"type:varchar(32);not null;index" json:"kind"`
	Detail      string    `gorm:"type:text;not null" json:"detail"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate hook
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderRequest is the payload for creating an order
type OrderRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail"`
}

// Validate checks required order fields
func (r *OrderRequest) Validate() bool {
	if r.PatientID == uuid.Nil || r.Detail == "" {
		return false
	}
	switch r.Kind {
	case OrderKindMedication, OrderKindLab, OrderKindFeeding, OrderKindRespiratory:
		return true
	}
	return false
}
