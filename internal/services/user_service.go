package services

import (
	"context"
	"errors"

	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/media"
	"github.com/justsurfingit/jobboard/internal/models"
	"gorm.io/gorm"
)

const alreadyAppliedMessage = "You have already applied for this job"

type UserService struct {
	DB    *gorm.DB
	Media media.Uploader
}

func NewUserService(db *gorm.DB, uploader media.Uploader) *UserService {
	return &UserService{DB: db, Media: uploader}
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Dependency("User data not found", err)
	}
	return &user, nil
}

// Apply records a pending application. A user can apply to a job once.
func (s *UserService) Apply(ctx context.Context, userID, jobID string) (*models.JobApplication, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Dependency("Job application failed", err)
	}
	if count > 0 {
		return nil, apperr.Conflict(alreadyAppliedMessage)
	}

	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Job not found")
		}
		return nil, apperr.Dependency("Job application failed", err)
	}

	app := &models.JobApplication{
		UserID:    userID,
		JobID:     job.ID,
		CompanyID: job.CompanyID,
		Status:    models.StatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		// the unique index catches a concurrent duplicate the count missed
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict(alreadyAppliedMessage)
		}
		return nil, apperr.Dependency("Job application failed", err)
	}
	return app, nil
}

// Applications lists a user's applications, newest first, with job and
// company details.
func (s *UserService) Applications(ctx context.Context, userID string) ([]models.JobApplication, error) {
	apps := make([]models.JobApplication, 0)
	err := s.DB.WithContext(ctx).
		Preload("Company").
		Preload("Job").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Dependency("User applications not found", err)
	}
	return apps, nil
}

// UpdateResume uploads a resume and stores its URL on the user.
func (s *UserService) UpdateResume(ctx context.Context, userID string, resume *Upload) (string, error) {
	if resume == nil {
		return "", apperr.Validation("Resume file is required")
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.Media.Upload(ctx, "resumes", resume.Filename, resume.Body)
	if err != nil {
		return "", apperr.Dependency("Resume update failed", err)
	}

	if err := s.DB.WithContext(ctx).Model(user).Update("resume", url).Error; err != nil {
		return "", apperr.Dependency("Resume update failed", err)
	}
	return url, nil
}
