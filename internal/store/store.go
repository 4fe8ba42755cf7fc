// Package store defines the persistence contract the use-case layer depends
// on, with a postgres implementation and an in-memory one. The core never
// touches a concrete database type directly.
package store

import (
	"context"
	"errors"

	"github.com/medville/medjobs/internal/models"
)

var (
	// ErrNotFound is returned when a record is absent.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
	// ErrAlreadyApplied is returned when the conditional applicant append
	// finds the user already present.
	ErrAlreadyApplied = errors.New("user has already applied")
	// ErrPendingStatusMissing means the status catalog was never seeded.
	ErrPendingStatusMissing = errors.New("pending status not found")
)

type CityStore interface {
	CreateCity(ctx context.Context, city *models.City) error
	FindAllCities(ctx context.Context) ([]models.City, error)
	FindCityByID(ctx context.Context, id uint) (*models.City, error)
	FindCityByName(ctx context.Context, name string) (*models.City, error)
	// UpdateCity applies a partial update keyed by column name and returns
	// the updated row.
	UpdateCity(ctx context.Context, id uint, fields map[string]any) (*models.City, error)
	DeleteCity(ctx context.Context, id uint) error
}

type JobStore interface {
	CreateJob(ctx context.Context, job *models.Job) error
	FindAllJobs(ctx context.Context) ([]models.Job, error)
	FindJobByID(ctx context.Context, id uint) (*models.Job, error)
	UpdateJob(ctx context.Context, id uint, fields map[string]any) (*models.Job, error)
	DeleteJob(ctx context.Context, id uint) error
	FindJobsByCity(ctx context.Context, cityID uint) ([]models.Job, error)
	CountJobsByCity(ctx context.Context, cityID uint) (int64, error)
}

type StatusStore interface {
	FindStatusByValue(ctx context.Context, value string) (*models.Status, error)
	// SeedStatuses inserts the catalog rows that are not present yet.
	SeedStatuses(ctx context.Context) error
}

// OrphanedApplicant is a job applicant with no matching ledger row, the
// detectable half of a partial apply failure.
type OrphanedApplicant struct {
	JobID  uint `json:"job_id"`
	UserID uint `json:"user_id"`
}

type ApplicationStore interface {
	// Apply performs the applicant append and the ledger insert as one
	// storage transaction. The append is conditional on the user not being
	// present, so two concurrent calls for the same pair cannot both
	// succeed. Returns the updated job and the new ledger row.
	Apply(ctx context.Context, jobID, userID uint, description string) (*models.Job, *models.Application, error)
	// FindApplicationsByUser returns the user's ledger rows with job (and
	// its city) and status resolved.
	FindApplicationsByUser(ctx context.Context, userID uint) ([]models.Application, error)
	FindOrphanedApplicants(ctx context.Context) ([]OrphanedApplicant, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByMail(ctx context.Context, mail string) (*models.User, error)
}

// Store aggregates every per-entity contract.
type Store interface {
	CityStore
	JobStore
	StatusStore
	ApplicationStore
	UserStore
}
