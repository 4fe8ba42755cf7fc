package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/medville/medjobs/internal/models"
)

// Postgres implements Store on top of gorm. It expects the DB to be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// --- cities ---

func (s *Postgres) CreateCity(ctx context.Context, city *models.City) error {
	return translate(s.db.WithContext(ctx).Create(city).Error)
}

func (s *Postgres) FindAllCities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	err := s.db.WithContext(ctx).Order("id").Find(&cities).Error
	return cities, translate(err)
}

func (s *Postgres) FindCityByID(ctx context.Context, id uint) (*models.City, error) {
	var city models.City
	if err := s.db.WithContext(ctx).First(&city, id).Error; err != nil {
		return nil, translate(err)
	}
	return &city, nil
}

func (s *Postgres) FindCityByName(ctx context.Context, name string) (*models.City, error) {
	var city models.City
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&city).Error; err != nil {
		return nil, translate(err)
	}
	return &city, nil
}

func (s *Postgres) UpdateCity(ctx context.Context, id uint, fields map[string]any) (*models.City, error) {
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&models.City{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindCityByID(ctx, id)
}

func (s *Postgres) DeleteCity(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.City{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- jobs ---

func (s *Postgres) CreateJob(ctx context.Context, job *models.Job) error {
	return translate(s.db.WithContext(ctx).Create(job).Error)
}

func (s *Postgres) FindAllJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).Preload("City").Order("id").Find(&jobs).Error
	return jobs, translate(err)
}

func (s *Postgres) FindJobByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).Preload("City").First(&job, id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (s *Postgres) UpdateJob(ctx context.Context, id uint, fields map[string]any) (*models.Job, error) {
	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.FindJobByID(ctx, id)
}

func (s *Postgres) DeleteJob(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Job{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) FindJobsByCity(ctx context.Context, cityID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).Preload("City").Where("city_id = ?", cityID).Order("id").Find(&jobs).Error
	return jobs, translate(err)
}

func (s *Postgres) CountJobsByCity(ctx context.Context, cityID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Job{}).Where("city_id = ?", cityID).Count(&count).Error
	return count, translate(err)
}

// --- statuses ---

func (s *Postgres) FindStatusByValue(ctx context.Context, value string) (*models.Status, error) {
	var status models.Status
	if err := s.db.WithContext(ctx).Where("status = ?", value).First(&status).Error; err != nil {
		return nil, translate(err)
	}
	return &status, nil
}

func (s *Postgres) SeedStatuses(ctx context.Context) error {
	for _, value := range models.StatusValues {
		var status models.Status
		err := s.db.WithContext(ctx).Where(models.Status{Status: value}).FirstOrCreate(&status).Error
		if err != nil {
			return translate(err)
		}
	}
	return nil
}

// --- applications ---

func (s *Postgres) Apply(ctx context.Context, jobID, userID uint, description string) (*models.Job, *models.Application, error) {
	var (
		job models.Job
		app models.Application
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Compare-and-append: the duplicate check and the mutation are one
		// statement, so concurrent callers for the same pair cannot both
		// pass it.
		res := tx.Model(&models.Job{}).
			Where("id = ? AND NOT (? = ANY(applicants))", jobID, int64(userID)).
			Update("applicants", gorm.Expr("array_append(applicants, ?)", int64(userID)))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Job{}).Where("id = ?", jobID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrAlreadyApplied
		}

		var pending models.Status
		if err := tx.Where("status = ?", models.StatusPending).First(&pending).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPendingStatusMissing
			}
			return err
		}

		jobRef := jobID
		app = models.Application{
			UserID:      userID,
			JobID:       &jobRef,
			StatusID:    pending.ID,
			Description: description,
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		app.Status = &pending

		return tx.Preload("City").First(&job, jobID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &job, &app, nil
}

func (s *Postgres) FindApplicationsByUser(ctx context.Context, userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.WithContext(ctx).
		Preload("Job").Preload("Job.City").Preload("Status").
		Where("user_id = ?", userID).
		Order("id").
		Find(&apps).Error
	return apps, translate(err)
}

func (s *Postgres) FindOrphanedApplicants(ctx context.Context) ([]OrphanedApplicant, error) {
	var orphans []OrphanedApplicant
	err := s.db.WithContext(ctx).Raw(`
		SELECT j.id AS job_id, applicant.user_id AS user_id
		FROM jobs j
		CROSS JOIN LATERAL unnest(j.applicants) AS applicant(user_id)
		WHERE NOT EXISTS (
			SELECT 1 FROM applications a
			WHERE a.job_id = j.id AND a.user_id = applicant.user_id
		)
		ORDER BY j.id, applicant.user_id`).Scan(&orphans).Error
	return orphans, translate(err)
}

// --- users ---

func (s *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Postgres) FindUserByMail(ctx context.Context, mail string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("mail = ?", mail).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
