package dtos

import (
	"time"

	"github.com/justsurfingit/jobboard/internal/models"
)

type PostJobRequest struct {
	Title       string `json:"title" label:"Job Title" binding:"required"`
	Description string `json:"description" label:"Job description" binding:"required"`
	Category    string `json:"category" label:"Job category" binding:"required"`
	Location    string `json:"location" label:"Job location" binding:"required"`
	Level       string `json:"level" label:"Job level" binding:"required"`
	Salary      int64  `json:"salary" label:"Job salary" binding:"required,min=0"`
}

type JobIDRequest struct {
	ID string `json:"id" label:"Job ID" binding:"required"`
}

type ApplyJobRequest struct {
	JobID string `json:"jobId" label:"Job ID" binding:"required"`
}

type ChangeStatusRequest struct {
	ID     string `json:"id" label:"Application ID" binding:"required"`
	Status string `json:"status" label:"Status" binding:"required"`
}

// PostedJob is a company's own posting with its applicant count.
type PostedJob struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Level       string    `json:"level"`
	Salary      int64     `json:"salary"`
	PostedAt    time.Time `json:"postedAt"`
	Visible     bool      `json:"visible"`
	CompanyID   string    `json:"companyId"`
	Applicants  int64     `json:"applicants"`
}

func NewPostedJob(j models.Job, applicants int64) PostedJob {
	return PostedJob{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Category:    j.Category,
		Location:    j.Location,
		Level:       j.Level,
		Salary:      j.Salary,
		PostedAt:    j.PostedAt,
		Visible:     j.Visible,
		CompanyID:   j.CompanyID,
		Applicants:  applicants,
	}
}
