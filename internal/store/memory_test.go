package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medville/medjobs/internal/models"
)

func newSeededMemory(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory()
	require.NoError(t, m.SeedStatuses(context.Background()))
	return m
}

func createJobFixture(t *testing.T, m *Memory) *models.Job {
	t.Helper()
	ctx := context.Background()
	city := &models.City{Name: "Rennes", Latitude: 48.117266, Longitude: -1.6777926, NbPopulation: 215366, NbDoctors: 1250}
	require.NoError(t, m.CreateCity(ctx, city))
	job := &models.Job{Title: "Médecin généraliste", Description: "Cabinet médical en centre-ville", CityID: city.ID}
	require.NoError(t, m.CreateJob(ctx, job))
	return job
}

func TestSeedStatusesIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SeedStatuses(ctx))
	require.NoError(t, m.SeedStatuses(ctx))

	for _, value := range models.StatusValues {
		status, err := m.FindStatusByValue(ctx, value)
		require.NoError(t, err)
		assert.Equal(t, value, status.Status)
	}
	assert.Len(t, m.statuses, 3)
}

func TestApplyAppendsOnceAndWritesLedger(t *testing.T) {
	ctx := context.Background()
	m := newSeededMemory(t)
	job := createJobFixture(t, m)

	updated, app, err := m.Apply(ctx, job.ID, 42, "motivated")
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, []int64(updated.Applicants))
	require.NotNil(t, app.JobID)
	assert.Equal(t, job.ID, *app.JobID)
	assert.Equal(t, uint(42), app.UserID)
	require.NotNil(t, app.Status)
	assert.Equal(t, models.StatusPending, app.Status.Status)
	assert.False(t, app.CreatedAt.IsZero())

	_, _, err = m.Apply(ctx, job.ID, 42, "motivated again")
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	apps, err := m.FindApplicationsByUser(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApplyUnknownJob(t *testing.T) {
	ctx := context.Background()
	m := newSeededMemory(t)

	_, _, err := m.Apply(ctx, 999, 42, "motivated")
	assert.ErrorIs(t, err, ErrNotFound)

	apps, err := m.FindApplicationsByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestApplyWithoutSeededCatalog(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	job := createJobFixture(t, m)

	_, _, err := m.Apply(ctx, job.ID, 42, "motivated")
	assert.ErrorIs(t, err, ErrPendingStatusMissing)

	// The append is rolled into the same critical section, so a failed
	// apply must not leave the applicant behind.
	stored, err := m.FindJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Applicants)
}

func TestApplyConcurrentSamePair(t *testing.T) {
	ctx := context.Background()
	m := newSeededMemory(t)
	job := createJobFixture(t, m)

	const callers = 50
	var wg sync.WaitGroup
	successes := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := m.Apply(ctx, job.ID, 42, "motivated"); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	assert.Len(t, successes, 1)
	stored, err := m.FindJobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, []int64(stored.Applicants))
	apps, err := m.FindApplicationsByUser(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestCityNameUnique(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.CreateCity(ctx, &models.City{Name: "Rennes"}))
	err := m.CreateCity(ctx, &models.City{Name: "Rennes"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateCityPartial(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	city := &models.City{Name: "Rennes", NbPopulation: 215366, NbDoctors: 1250}
	require.NoError(t, m.CreateCity(ctx, city))

	updated, err := m.UpdateCity(ctx, city.ID, map[string]any{"nb_doctors": 1300})
	require.NoError(t, err)
	assert.Equal(t, 1300, updated.NbDoctors)
	assert.Equal(t, 215366, updated.NbPopulation)
	assert.Equal(t, "Rennes", updated.Name)
}

func TestDeleteJobKeepsLedgerRows(t *testing.T) {
	ctx := context.Background()
	m := newSeededMemory(t)
	job := createJobFixture(t, m)

	_, _, err := m.Apply(ctx, job.ID, 42, "motivated")
	require.NoError(t, err)
	require.NoError(t, m.DeleteJob(ctx, job.ID))

	apps, err := m.FindApplicationsByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Nil(t, apps[0].JobID)
	assert.Nil(t, apps[0].Job)
}

func TestFindOrphanedApplicants(t *testing.T) {
	ctx := context.Background()
	m := newSeededMemory(t)
	job := createJobFixture(t, m)

	_, _, err := m.Apply(ctx, job.ID, 42, "motivated")
	require.NoError(t, err)

	// Simulate the partial state a non-transactional writer can leave:
	// applicant present, no ledger row.
	m.mu.Lock()
	stored := m.jobs[job.ID]
	stored.Applicants = append(stored.Applicants, 77)
	m.jobs[job.ID] = stored
	m.mu.Unlock()

	orphans, err := m.FindOrphanedApplicants(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, job.ID, orphans[0].JobID)
	assert.Equal(t, uint(77), orphans[0].UserID)
}
