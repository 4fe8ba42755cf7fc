package services

import (
	"context"
	"errors"
	"strings"

	"github.com/medville/medjobs/internal/apperrors"
	"github.com/medville/medjobs/internal/dtos"
	"github.com/medville/medjobs/internal/models"
	"github.com/medville/medjobs/internal/store"
)

type CityService struct {
	Cities store.CityStore
	Jobs   store.JobStore
}

func NewCityService(cities store.CityStore, jobs store.JobStore) *CityService {
	return &CityService{Cities: cities, Jobs: jobs}
}

func (s *CityService) Create(ctx context.Context, req *dtos.CityCreationRequest) (*models.City, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("Invalid name")
	}
	city := &models.City{
		Name:         name,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		NbPopulation: *req.NbPopulation,
		NbDoctors:    *req.NbDoctors,
	}
	if err := s.Cities.CreateCity(ctx, city); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict("A city with this name already exists")
		}
		return nil, apperrors.Internal("Error creating city", err)
	}
	return city, nil
}

func (s *CityService) GetAll(ctx context.Context) ([]models.City, error) {
	cities, err := s.Cities.FindAllCities(ctx)
	if err != nil {
		return nil, apperrors.Internal("Error fetching cities", err)
	}
	return cities, nil
}

func (s *CityService) GetAllNames(ctx context.Context) ([]string, error) {
	cities, err := s.Cities.FindAllCities(ctx)
	if err != nil {
		return nil, apperrors.Internal("Error fetching city names", err)
	}
	names := make([]string, 0, len(cities))
	for _, city := range cities {
		names = append(names, city.Name)
	}
	return names, nil
}

func (s *CityService) GetByID(ctx context.Context, id uint) (*models.City, error) {
	city, err := s.Cities.FindCityByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("City not found")
		}
		return nil, apperrors.Internal("Error fetching city", err)
	}
	return city, nil
}

func (s *CityService) Update(ctx context.Context, id uint, req *dtos.CityUpdateRequest) (*models.City, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation("Invalid name")
		}
		fields["name"] = name
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	if req.NbPopulation != nil {
		fields["nb_population"] = *req.NbPopulation
	}
	if req.NbDoctors != nil {
		fields["nb_doctors"] = *req.NbDoctors
	}
	city, err := s.Cities.UpdateCity(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NotFound("City not found")
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperrors.Conflict("A city with this name already exists")
		default:
			return nil, apperrors.Internal("Error updating city", err)
		}
	}
	return city, nil
}

// Delete rejects the call while any job still references the city, so a
// stored city reference can never dangle.
func (s *CityService) Delete(ctx context.Context, id uint) error {
	count, err := s.Jobs.CountJobsByCity(ctx, id)
	if err != nil {
		return apperrors.Internal("Error deleting city", err)
	}
	if count > 0 {
		return apperrors.Conflict("City is referenced by existing jobs")
	}
	if err := s.Cities.DeleteCity(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("City not found")
		}
		return apperrors.Internal("Error deleting city", err)
	}
	return nil
}
