package models

import (
	"time"

	"github.com/lib/pq"
)

// Status catalog values. Seeded once at startup, read-only afterwards.
const (
	StatusPending   = "Pending"
	StatusValidated = "Validated"
	StatusRefused   = "Refused"
)

// StatusValues lists the full catalog in seeding order.
var StatusValues = []string{StatusPending, StatusValidated, StatusRefused}

type City struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	NbPopulation int     `json:"nb_population"`
	NbDoctors    int     `json:"nb_doctors"`
}

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Foreign key only; geo data lives on City and is never duplicated here.
	CityID uint  `gorm:"not null;index" json:"city_id"`
	City   *City `gorm:"foreignKey:CityID" json:"city,omitempty"`

	Influx *int `json:"influx,omitempty"`

	// Ordered user ids, no duplicates. The duplicate guard is the
	// conditional append in the store, not a read-then-write check.
	Applicants pq.Int64Array `gorm:"type:bigint[];not null;default:'{}'" json:"applicants"`
}

type Status struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Status string `gorm:"uniqueIndex;not null" json:"status"`
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Mail       string `gorm:"uniqueIndex;not null" json:"mail"`
	Password   string `gorm:"not null" json:"-"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	PostalCode string `json:"postal_code"`

	CityID *uint `json:"city_id,omitempty"`
}

// Application is one ledger row per successful apply call. JobID is nullable
// so the row survives as history when its job is deleted.
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `gorm:"not null;index" json:"user_id"`

	JobID *uint `gorm:"index" json:"job_id,omitempty"`
	Job   *Job  `gorm:"foreignKey:JobID;constraint:OnDelete:SET NULL" json:"job,omitempty"`

	StatusID uint    `gorm:"not null" json:"status_id"`
	Status   *Status `gorm:"foreignKey:StatusID" json:"status,omitempty"`

	Description string `gorm:"type:text;not null" json:"description"`
}
