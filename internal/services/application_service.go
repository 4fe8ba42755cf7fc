package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medville/medjobs/internal/apperrors"
	"github.com/medville/medjobs/internal/models"
	"github.com/medville/medjobs/internal/store"
)

// ApplicationService runs the apply workflow and the application queries.
type ApplicationService struct {
	Applications store.ApplicationStore
	logger       zerolog.Logger
}

func NewApplicationService(applications store.ApplicationStore, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{Applications: applications, logger: logger}
}

// ApplyResult is what a successful apply returns: the job with the new
// applicant recorded, and the ledger row created for it.
type ApplyResult struct {
	Job         *models.Job         `json:"job"`
	Application *models.Application `json:"application"`
}

// UserApplication is one ledger row denormalized for the by-user query: the
// job (with its city) and the application summary inline.
type UserApplication struct {
	Job         *models.Job        `json:"job"`
	Application ApplicationSummary `json:"application"`
}

type ApplicationSummary struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

// Apply transitions (user, job) from not-applied to applied with status
// Pending. Preconditions are checked in order and the first failure wins;
// the store makes the applicant append and the ledger insert atomic.
func (s *ApplicationService) Apply(ctx context.Context, jobID, userID uint, description string) (*ApplyResult, error) {
	if userID == 0 {
		return nil, apperrors.Validation("Invalid user ID")
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.Validation("Invalid description")
	}

	job, app, err := s.Applications.Apply(ctx, jobID, userID, description)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NotFound("Job not found")
		case errors.Is(err, store.ErrAlreadyApplied):
			return nil, apperrors.Conflict("User has already applied to this job")
		case errors.Is(err, store.ErrPendingStatusMissing):
			s.logger.Error().Uint("job_id", jobID).Msg("status catalog has no Pending row")
			return nil, apperrors.Internal("Pending status not found", nil)
		default:
			s.logger.Error().Err(err).Uint("job_id", jobID).Uint("user_id", userID).Msg("apply failed")
			return nil, apperrors.Internal("Error applying to job", err)
		}
	}

	s.logger.Info().Uint("job_id", jobID).Uint("user_id", userID).Msg("application recorded")
	return &ApplyResult{Job: job, Application: app}, nil
}

// FindByUser returns every application of the user with job, city and status
// resolved inline. Zero rows is not-found, matching the API contract.
func (s *ApplicationService) FindByUser(ctx context.Context, userID uint) ([]UserApplication, error) {
	if userID == 0 {
		return nil, apperrors.Validation("Invalid user ID")
	}
	apps, err := s.Applications.FindApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Error finding jobs by user", err)
	}
	if len(apps) == 0 {
		return nil, apperrors.NotFound("No jobs found for this user")
	}

	results := make([]UserApplication, 0, len(apps))
	for _, app := range apps {
		statusValue := "Unknown"
		if app.Status != nil {
			statusValue = app.Status.Status
		}
		results = append(results, UserApplication{
			Job: app.Job,
			Application: ApplicationSummary{
				ID:          app.ID,
				Description: app.Description,
				Date:        app.CreatedAt,
				Status:      statusValue,
			},
		})
	}
	return results, nil
}

// AuditOrphans lists job applicants that have no ledger row, the state a
// partial apply from a non-transactional writer leaves behind.
func (s *ApplicationService) AuditOrphans(ctx context.Context) ([]store.OrphanedApplicant, error) {
	orphans, err := s.Applications.FindOrphanedApplicants(ctx)
	if err != nil {
		return nil, apperrors.Internal("Error auditing applications", err)
	}
	if len(orphans) > 0 {
		s.logger.Warn().Int("count", len(orphans)).Msg("orphaned applicants detected")
	}
	return orphans, nil
}
