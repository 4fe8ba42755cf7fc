package services

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/medville/medjobs/internal/apperrors"
	"github.com/medville/medjobs/internal/dtos"
	"github.com/medville/medjobs/internal/models"
	"github.com/medville/medjobs/internal/store"
)

type JobService struct {
	Jobs   store.JobStore
	Cities store.CityStore
}

func NewJobService(jobs store.JobStore, cities store.CityStore) *JobService {
	return &JobService{Jobs: jobs, Cities: cities}
}

func (s *JobService) Create(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("Invalid title")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.Validation("Invalid description")
	}
	cityName := strings.TrimSpace(req.City)
	if cityName == "" {
		return nil, apperrors.Validation("Invalid city")
	}

	city, err := s.Cities.FindCityByName(ctx, cityName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("City not found")
		}
		return nil, apperrors.Internal("Error creating job", err)
	}

	job := &models.Job{
		Title:       title,
		Description: description,
		CityID:      city.ID,
		Influx:      req.Influx,
		Applicants:  pq.Int64Array{},
	}
	if err := s.Jobs.CreateJob(ctx, job); err != nil {
		return nil, apperrors.Internal("Error creating job", err)
	}
	job.City = city
	return job, nil
}

func (s *JobService) GetAll(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.Jobs.FindAllJobs(ctx)
	if err != nil {
		return nil, apperrors.Internal("Error fetching jobs", err)
	}
	return jobs, nil
}

func (s *JobService) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.Jobs.FindJobByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Job not found")
		}
		return nil, apperrors.Internal("Error fetching job", err)
	}
	return job, nil
}

func (s *JobService) Update(ctx context.Context, id uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.Validation("Invalid title")
		}
		fields["title"] = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, apperrors.Validation("Invalid description")
		}
		fields["description"] = description
	}
	if req.City != nil {
		cityName := strings.TrimSpace(*req.City)
		if cityName == "" {
			return nil, apperrors.Validation("Invalid city")
		}
		city, err := s.Cities.FindCityByName(ctx, cityName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NotFound("City not found")
			}
			return nil, apperrors.Internal("Error updating job", err)
		}
		fields["city_id"] = city.ID
	}
	if req.Influx != nil {
		fields["influx"] = *req.Influx
	}

	job, err := s.Jobs.UpdateJob(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Job not found")
		}
		return nil, apperrors.Internal("Error updating job", err)
	}
	return job, nil
}

// Delete removes the job; its ledger rows are kept as history with the job
// reference cleared.
func (s *JobService) Delete(ctx context.Context, id uint) error {
	if err := s.Jobs.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Job not found")
		}
		return apperrors.Internal("Error deleting job", err)
	}
	return nil
}

// FindByCity surfaces an empty result as not-found on purpose, matching the
// API contract callers already rely on.
func (s *JobService) FindByCity(ctx context.Context, cityID uint) ([]models.Job, error) {
	if cityID == 0 {
		return nil, apperrors.Validation("Invalid city ID")
	}
	jobs, err := s.Jobs.FindJobsByCity(ctx, cityID)
	if err != nil {
		return nil, apperrors.Internal("Error finding jobs by city", err)
	}
	if len(jobs) == 0 {
		return nil, apperrors.NotFound("No jobs found for this city")
	}
	return jobs, nil
}
