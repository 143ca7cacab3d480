package services

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/auth"
	"github.com/justsurfingit/jobboard/internal/dtos"
	"github.com/justsurfingit/jobboard/internal/media"
	"github.com/justsurfingit/jobboard/internal/models"
	"gorm.io/gorm"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Body     io.Reader
}

type CompanyService struct {
	DB     *gorm.DB
	Tokens *auth.CompanyTokens
	Media  media.Uploader
}

func NewCompanyService(db *gorm.DB, tokens *auth.CompanyTokens, uploader media.Uploader) *CompanyService {
	return &CompanyService{DB: db, Tokens: tokens, Media: uploader}
}

// Register creates a company account and returns it with a fresh token.
func (s *CompanyService) Register(ctx context.Context, req *dtos.RegisterCompanyRequest, image *Upload) (*models.Company, string, error) {
	if image == nil {
		return nil, "", apperr.Validation("Company logo is required")
	}
	email := normalizeEmail(req.Email)

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Company{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", apperr.Dependency("Company registration failed", err)
	}
	if count > 0 {
		return nil, "", apperr.Conflict("Company already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", apperr.Dependency("Company registration failed", err)
	}

	imageURL, err := s.Media.Upload(ctx, "company-logos", image.Filename, image.Body)
	if err != nil {
		return nil, "", apperr.Dependency("Company logo upload failed", err)
	}

	company := &models.Company{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Image:    imageURL,
	}
	if err := s.DB.WithContext(ctx).Create(company).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Conflict("Company already exists")
		}
		return nil, "", apperr.Dependency("Company registration failed", err)
	}

	token, err := s.Tokens.Issue(company.ID)
	if err != nil {
		return nil, "", apperr.Dependency("Company registration failed", err)
	}
	return company, token, nil
}

func (s *CompanyService) Login(ctx context.Context, req *dtos.LoginCompanyRequest) (*models.Company, string, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).First(&company, "email = ?", normalizeEmail(req.Email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.NotFound("Company not found")
		}
		return nil, "", apperr.Dependency("Company login failed", err)
	}

	if !auth.CheckPassword(company.Password, req.Password) {
		return nil, "", apperr.Auth("Wrong password")
	}

	token, err := s.Tokens.Issue(company.ID)
	if err != nil {
		return nil, "", apperr.Dependency("Company login failed", err)
	}
	return &company, token, nil
}

// GetCompany implements auth.CompanyFinder.
func (s *CompanyService) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Company not found")
		}
		return nil, apperr.Dependency("Company data not found", err)
	}
	return &company, nil
}

// Applicants lists the applications to a company's postings, newest first,
// with applicant and job details.
func (s *CompanyService) Applicants(ctx context.Context, companyID string) ([]models.JobApplication, error) {
	apps := make([]models.JobApplication, 0)
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Job").
		Where("company_id = ?", companyID).
		Order("date DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperr.Dependency("Failed to fetch job applicants", err)
	}
	return apps, nil
}

// ChangeApplicationStatus records the recruiter's decision. Only pending
// applications of the caller's company can change; repeating the current
// status is a no-op.
func (s *CompanyService) ChangeApplicationStatus(ctx context.Context, companyID, applicationID, rawStatus string) (*models.JobApplication, error) {
	to, err := models.ParseApplicationStatus(rawStatus)
	if err != nil {
		return nil, apperr.Validation("Invalid status")
	}

	var app models.JobApplication
	err = s.DB.WithContext(ctx).First(&app, "id = ? AND company_id = ?", applicationID, companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Application not found")
		}
		return nil, apperr.Dependency("Status change failed", err)
	}

	if app.Status == to {
		return &app, nil
	}
	if !models.CanTransition(app.Status, to) {
		return nil, apperr.Conflict("Cannot change status from " + string(app.Status) + " to " + string(to))
	}

	res := s.DB.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("id = ? AND status = ?", app.ID, app.Status).
		Update("status", to)
	if res.Error != nil {
		return nil, apperr.Dependency("Status change failed", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Conflict("Application status changed concurrently, reload and try again")
	}
	app.Status = to
	return &app, nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
