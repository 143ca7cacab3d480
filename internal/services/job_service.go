package services

import (
	"context"
	"errors"
	"strings"

	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/cache"
	"github.com/justsurfingit/jobboard/internal/dtos"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type JobService struct {
	DB      *gorm.DB
	Cache   cache.JobList
	Catalog models.Catalog

	policy *bluemonday.Policy
}

func NewJobService(db *gorm.DB, jobCache cache.JobList, catalog models.Catalog) *JobService {
	if jobCache == nil {
		jobCache = cache.Nop{}
	}
	return &JobService{
		DB:      db,
		Cache:   jobCache,
		Catalog: catalog,
		policy:  bluemonday.UGCPolicy(),
	}
}

// ListVisible returns every visible posting, oldest first, with its company.
// The cache is consulted first; cache failures fall through to the database.
func (s *JobService) ListVisible(ctx context.Context) ([]models.Job, error) {
	jobs, ok, err := s.Cache.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("job list cache read failed")
	} else if ok {
		return jobs, nil
	}

	// read before loading so a concurrent invalidation refuses our Set
	gen, genErr := s.Cache.Generation(ctx)
	if genErr != nil {
		log.Warn().Err(genErr).Msg("job list cache generation read failed")
	}

	jobs, err = s.LoadVisible(ctx)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if err := s.Cache.Set(ctx, gen, jobs); err != nil && !errors.Is(err, cache.ErrStale) {
			log.Warn().Err(err).Msg("job list cache write failed")
		}
	}
	return jobs, nil
}

// LoadVisible reads the visible postings straight from the database.
func (s *JobService) LoadVisible(ctx context.Context) ([]models.Job, error) {
	jobs := make([]models.Job, 0)
	err := s.DB.WithContext(ctx).
		Preload("Company").
		Where("visible = ?", true).
		Order("posted_at ASC, created_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.Dependency("Job data fetch failed", err)
	}
	return jobs, nil
}

// PostJob creates a visible posting owned by companyID.
func (s *JobService) PostJob(ctx context.Context, companyID string, req *dtos.PostJobRequest) (*models.Job, error) {
	if !s.Catalog.ValidCategory(req.Category) {
		return nil, apperr.Validation("Invalid job category")
	}
	if !s.Catalog.ValidLocation(req.Location) {
		return nil, apperr.Validation("Invalid job location")
	}
	if !s.Catalog.ValidLevel(req.Level) {
		return nil, apperr.Validation("Invalid job level")
	}

	description := strings.TrimSpace(s.policy.Sanitize(req.Description))
	if description == "" {
		return nil, apperr.Validation("Job description is required")
	}

	job := &models.Job{
		CompanyID:   companyID,
		Title:       strings.TrimSpace(req.Title),
		Description: description,
		Category:    req.Category,
		Location:    req.Location,
		Level:       req.Level,
		Salary:      req.Salary,
		Visible:     true,
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, apperr.Dependency("Job posting failed", err)
	}
	s.invalidate(ctx)
	return job, nil
}

// ToggleVisibility flips a posting's visibility when companyID owns it.
// A posting owned by someone else is left alone and toggled is false; the
// caller still treats that as success.
func (s *JobService) ToggleVisibility(ctx context.Context, companyID, jobID string) (toggled bool, err error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.NotFound("Job not found")
		}
		return false, apperr.Dependency("Job visibility change failed", err)
	}

	if job.CompanyID != companyID {
		log.Info().Str("job_id", jobID).Str("company_id", companyID).Msg("visibility change ignored: not the owner")
		return false, nil
	}

	err = s.DB.WithContext(ctx).Model(&job).Update("visible", !job.Visible).Error
	if err != nil {
		return false, apperr.Dependency("Job visibility change failed", err)
	}
	s.invalidate(ctx)
	return true, nil
}

// PostedJobs lists every posting of a company, visible or not, with the
// number of applications each has received.
func (s *JobService) PostedJobs(ctx context.Context, companyID string) ([]dtos.PostedJob, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("posted_at ASC, created_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.Dependency("Failed to fetch job data", err)
	}

	var counts []applicantCount
	err = s.DB.WithContext(ctx).
		Model(&models.JobApplication{}).
		Select("job_id, count(*) as count").
		Where("company_id = ?", companyID).
		Group("job_id").
		Scan(&counts).Error
	if err != nil {
		return nil, apperr.Dependency("Failed to fetch job data", err)
	}

	byJob := make(map[string]int64, len(counts))
	for _, c := range counts {
		byJob[c.JobID] = c.Count
	}

	out := make([]dtos.PostedJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dtos.NewPostedJob(j, byJob[j.ID]))
	}
	return out, nil
}

type applicantCount struct {
	JobID string
	Count int64
}

func (s *JobService) invalidate(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("job list cache invalidation failed")
	}
}
