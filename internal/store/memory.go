package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/medville/medjobs/internal/models"
)

// Memory implements Store in memory, mirroring the postgres semantics. It
// backs the test suite and runs without a database.
type Memory struct {
	mu sync.Mutex

	cities       map[uint]models.City
	jobs         map[uint]models.Job
	statuses     map[uint]models.Status
	users        map[uint]models.User
	applications map[uint]models.Application

	nextCityID   uint
	nextJobID    uint
	nextStatusID uint
	nextUserID   uint
	nextAppID    uint
}

func NewMemory() *Memory {
	return &Memory{
		cities:       map[uint]models.City{},
		jobs:         map[uint]models.Job{},
		statuses:     map[uint]models.Status{},
		users:        map[uint]models.User{},
		applications: map[uint]models.Application{},
	}
}

func copyJob(job models.Job) models.Job {
	out := job
	out.Applicants = append(pq.Int64Array{}, job.Applicants...)
	if job.City != nil {
		city := *job.City
		out.City = &city
	}
	if job.Influx != nil {
		influx := *job.Influx
		out.Influx = &influx
	}
	return out
}

func (m *Memory) resolveJobCity(job models.Job) models.Job {
	if city, ok := m.cities[job.CityID]; ok {
		job.City = &city
	}
	return job
}

// --- cities ---

func (m *Memory) CreateCity(_ context.Context, city *models.City) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.cities {
		if existing.Name == city.Name {
			return ErrDuplicate
		}
	}
	m.nextCityID++
	city.ID = m.nextCityID
	city.CreatedAt = time.Now()
	city.UpdatedAt = city.CreatedAt
	m.cities[city.ID] = *city
	return nil
}

func (m *Memory) FindAllCities(_ context.Context) ([]models.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cities := make([]models.City, 0, len(m.cities))
	for _, city := range m.cities {
		cities = append(cities, city)
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })
	return cities, nil
}

func (m *Memory) FindCityByID(_ context.Context, id uint) (*models.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	city, ok := m.cities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &city, nil
}

func (m *Memory) FindCityByName(_ context.Context, name string) (*models.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, city := range m.cities {
		if city.Name == name {
			found := city
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateCity(_ context.Context, id uint, fields map[string]any) (*models.City, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	city, ok := m.cities[id]
	if !ok {
		return nil, ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "name":
			name := value.(string)
			for otherID, other := range m.cities {
				if otherID != id && other.Name == name {
					return nil, ErrDuplicate
				}
			}
			city.Name = name
		case "latitude":
			city.Latitude = value.(float64)
		case "longitude":
			city.Longitude = value.(float64)
		case "nb_population":
			city.NbPopulation = value.(int)
		case "nb_doctors":
			city.NbDoctors = value.(int)
		}
	}
	if len(fields) > 0 {
		city.UpdatedAt = time.Now()
	}
	m.cities[id] = city
	return &city, nil
}

func (m *Memory) DeleteCity(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cities[id]; !ok {
		return ErrNotFound
	}
	delete(m.cities, id)
	return nil
}

// --- jobs ---

func (m *Memory) CreateJob(_ context.Context, job *models.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextJobID++
	job.ID = m.nextJobID
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	if job.Applicants == nil {
		job.Applicants = pq.Int64Array{}
	}
	stored := copyJob(*job)
	stored.City = nil
	m.jobs[job.ID] = stored
	return nil
}

func (m *Memory) FindAllJobs(_ context.Context) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	jobs := make([]models.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, copyJob(m.resolveJobCity(job)))
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func (m *Memory) FindJobByID(_ context.Context, id uint) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := copyJob(m.resolveJobCity(job))
	return &found, nil
}

func (m *Memory) UpdateJob(_ context.Context, id uint, fields map[string]any) (*models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "title":
			job.Title = value.(string)
		case "description":
			job.Description = value.(string)
		case "city_id":
			job.CityID = value.(uint)
		case "influx":
			influx := value.(int)
			job.Influx = &influx
		}
	}
	if len(fields) > 0 {
		job.UpdatedAt = time.Now()
	}
	m.jobs[id] = job
	found := copyJob(m.resolveJobCity(job))
	return &found, nil
}

func (m *Memory) DeleteJob(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.jobs, id)
	// Applications outlive their job; only the reference is cleared.
	for appID, app := range m.applications {
		if app.JobID != nil && *app.JobID == id {
			app.JobID = nil
			m.applications[appID] = app
		}
	}
	return nil
}

func (m *Memory) FindJobsByCity(_ context.Context, cityID uint) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var jobs []models.Job
	for _, job := range m.jobs {
		if job.CityID == cityID {
			jobs = append(jobs, copyJob(m.resolveJobCity(job)))
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func (m *Memory) CountJobsByCity(_ context.Context, cityID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, job := range m.jobs {
		if job.CityID == cityID {
			count++
		}
	}
	return count, nil
}

// --- statuses ---

func (m *Memory) FindStatusByValue(_ context.Context, value string) (*models.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findStatusLocked(value)
}

func (m *Memory) findStatusLocked(value string) (*models.Status, error) {
	for _, status := range m.statuses {
		if status.Status == value {
			found := status
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SeedStatuses(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, value := range models.StatusValues {
		if _, err := m.findStatusLocked(value); err == nil {
			continue
		}
		m.nextStatusID++
		m.statuses[m.nextStatusID] = models.Status{ID: m.nextStatusID, Status: value}
	}
	return nil
}

// --- applications ---

func (m *Memory) Apply(_ context.Context, jobID, userID uint, description string) (*models.Job, *models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, nil, ErrNotFound
	}
	for _, applicant := range job.Applicants {
		if applicant == int64(userID) {
			return nil, nil, ErrAlreadyApplied
		}
	}
	pending, err := m.findStatusLocked(models.StatusPending)
	if err != nil {
		return nil, nil, ErrPendingStatusMissing
	}

	job.Applicants = append(job.Applicants, int64(userID))
	job.UpdatedAt = time.Now()
	m.jobs[jobID] = job

	m.nextAppID++
	jobRef := jobID
	app := models.Application{
		ID:          m.nextAppID,
		CreatedAt:   time.Now(),
		UserID:      userID,
		JobID:       &jobRef,
		StatusID:    pending.ID,
		Description: description,
	}
	m.applications[app.ID] = app

	updated := copyJob(m.resolveJobCity(job))
	result := app
	result.Status = pending
	return &updated, &result, nil
}

func (m *Memory) FindApplicationsByUser(_ context.Context, userID uint) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var apps []models.Application
	for _, app := range m.applications {
		if app.UserID != userID {
			continue
		}
		resolved := app
		if app.JobID != nil {
			if job, ok := m.jobs[*app.JobID]; ok {
				withCity := copyJob(m.resolveJobCity(job))
				resolved.Job = &withCity
			}
		}
		if status, ok := m.statuses[app.StatusID]; ok {
			found := status
			resolved.Status = &found
		}
		apps = append(apps, resolved)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (m *Memory) FindOrphanedApplicants(_ context.Context) ([]OrphanedApplicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ledger := map[[2]uint]bool{}
	for _, app := range m.applications {
		if app.JobID != nil {
			ledger[[2]uint{*app.JobID, app.UserID}] = true
		}
	}
	var orphans []OrphanedApplicant
	for _, job := range m.jobs {
		for _, applicant := range job.Applicants {
			userID := uint(applicant)
			if !ledger[[2]uint{job.ID, userID}] {
				orphans = append(orphans, OrphanedApplicant{JobID: job.ID, UserID: userID})
			}
		}
	}
	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].JobID != orphans[j].JobID {
			return orphans[i].JobID < orphans[j].JobID
		}
		return orphans[i].UserID < orphans[j].UserID
	})
	return orphans, nil
}

// --- users ---

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Mail == user.Mail {
			return ErrDuplicate
		}
	}
	m.nextUserID++
	user.ID = m.nextUserID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) FindUserByMail(_ context.Context, mail string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Mail == mail {
			found := user
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
