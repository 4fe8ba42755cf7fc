package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medville/medjobs/internal/apperrors"
	"github.com/medville/medjobs/internal/dtos"
	"github.com/medville/medjobs/internal/models"
	"github.com/medville/medjobs/internal/store"
)

func jobFixture(t *testing.T) (*JobService, *store.Memory, *models.City) {
	t.Helper()
	ctx := context.Background()
	m := store.NewMemory()
	city := &models.City{Name: "Rennes", Latitude: 48.117266, Longitude: -1.6777926, NbPopulation: 215366, NbDoctors: 1250}
	require.NoError(t, m.CreateCity(ctx, city))
	return NewJobService(m, m), m, city
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	svc, _, city := jobFixture(t)

	job, err := svc.Create(ctx, &dtos.JobCreationRequest{
		Title:       "Médecin généraliste",
		Description: "Cabinet médical en centre-ville",
		City:        "Rennes",
		Influx:      intPtr(10),
	})
	require.NoError(t, err)
	assert.NotZero(t, job.ID)
	assert.Equal(t, city.ID, job.CityID)
	require.NotNil(t, job.City)
	assert.Equal(t, "Rennes", job.City.Name)
	require.NotNil(t, job.Influx)
	assert.Equal(t, 10, *job.Influx)
	assert.Empty(t, job.Applicants)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestCreateJobValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := jobFixture(t)

	_, err := svc.Create(ctx, &dtos.JobCreationRequest{Title: " ", Description: "d", City: "Rennes"})
	requireKind(t, err, apperrors.KindValidation)

	_, err = svc.Create(ctx, &dtos.JobCreationRequest{Title: "t", Description: " ", City: "Rennes"})
	requireKind(t, err, apperrors.KindValidation)

	_, err = svc.Create(ctx, &dtos.JobCreationRequest{Title: "t", Description: "d", City: "Nantes"})
	requireKind(t, err, apperrors.KindNotFound)
}

func TestGetAllJobsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := jobFixture(t)

	for _, title := range []string{"Médecin généraliste", "Infirmier"} {
		_, err := svc.Create(ctx, &dtos.JobCreationRequest{Title: title, Description: "poste", City: "Rennes"})
		require.NoError(t, err)
	}

	first, err := svc.GetAll(ctx)
	require.NoError(t, err)
	second, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestGetJobByID(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := jobFixture(t)

	created, err := svc.Create(ctx, &dtos.JobCreationRequest{Title: "Médecin", Description: "poste", City: "Rennes"})
	require.NoError(t, err)

	job, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, job.ID)

	_, err = svc.GetByID(ctx, 999)
	requireKind(t, err, apperrors.KindNotFound)
}

func TestUpdateJobPartial(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := jobFixture(t)

	created, err := svc.Create(ctx, &dtos.JobCreationRequest{Title: "Médecin", Description: "poste", City: "Rennes"})
	require.NoError(t, err)

	saintMalo := &models.City{Name: "Saint-Malo"}
	require.NoError(t, m.CreateCity(ctx, saintMalo))

	updated, err := svc.Update(ctx, created.ID, &dtos.JobUpdateRequest{
		Title: strPtr("Médecin urgentiste"),
		City:  strPtr("Saint-Malo"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Médecin urgentiste", updated.Title)
	assert.Equal(t, saintMalo.ID, updated.CityID)
	assert.Equal(t, "poste", updated.Description)

	_, err = svc.Update(ctx, created.ID, &dtos.JobUpdateRequest{Title: strPtr("  ")})
	requireKind(t, err, apperrors.KindValidation)

	_, err = svc.Update(ctx, created.ID, &dtos.JobUpdateRequest{City: strPtr("Brest")})
	requireKind(t, err, apperrors.KindNotFound)

	_, err = svc.Update(ctx, 999, &dtos.JobUpdateRequest{Title: strPtr("x")})
	requireKind(t, err, apperrors.KindNotFound)
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := jobFixture(t)

	created, err := svc.Create(ctx, &dtos.JobCreationRequest{Title: "Médecin", Description: "poste", City: "Rennes"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	err = svc.Delete(ctx, created.ID)
	requireKind(t, err, apperrors.KindNotFound)
}

func TestFindJobsByCity(t *testing.T) {
	ctx := context.Background()
	svc, _, city := jobFixture(t)

	_, err := svc.FindByCity(ctx, 0)
	requireKind(t, err, apperrors.KindValidation)

	// Empty result surfaces as not-found on purpose.
	_, err = svc.FindByCity(ctx, city.ID)
	requireKind(t, err, apperrors.KindNotFound)

	_, err = svc.Create(ctx, &dtos.JobCreationRequest{Title: "Médecin", Description: "poste", City: "Rennes"})
	require.NoError(t, err)

	jobs, err := svc.FindByCity(ctx, city.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
