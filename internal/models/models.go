package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is a recruiter account. Jobs and applications reference it by ID.
type Company struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// bcrypt hash, never leaves the server
	Password string `gorm:"not null" json:"-"`
	Image    string `json:"image"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// User is a job seeker. The ID is the identity provider's user id, so it is
// never generated here.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name   string `json:"name"`
	Email  string `gorm:"index" json:"email"`
	Resume string `json:"resume"`
	Image  string `json:"image"`
}

type Job struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Foreign Key
	CompanyID string `gorm:"index;not null;size:36" json:"companyId"`
	// Association: GORM needs Preload() to fill this
	Company *Company `json:"company,omitempty"`

	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"index;not null" json:"category"`
	Location    string    `gorm:"index;not null" json:"location"`
	Level       string    `gorm:"not null" json:"level"`
	Salary      int64     `gorm:"not null" json:"salary"`
	PostedAt    time.Time `gorm:"index;not null" json:"postedAt"`
	Visible     bool      `gorm:"not null;default:true" json:"visible"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.PostedAt.IsZero() {
		j.PostedAt = time.Now().UTC()
	}
	return nil
}

// JobApplication links a user to a job. (UserID, JobID) is unique.
type JobApplication struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID    string   `gorm:"uniqueIndex:idx_application_user_job;not null" json:"userId"`
	User      *User    `json:"user,omitempty"`
	JobID     string   `gorm:"uniqueIndex:idx_application_user_job;index;not null;size:36" json:"jobId"`
	Job       *Job     `json:"job,omitempty"`
	CompanyID string   `gorm:"index;not null;size:36" json:"companyId"`
	Company   *Company `json:"company,omitempty"`

	Date   time.Time         `json:"date"`
	Status ApplicationStatus `gorm:"not null;default:'Pending'" json:"status"`
}

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}
