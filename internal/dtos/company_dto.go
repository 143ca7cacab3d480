package dtos

import "github.com/justsurfingit/jobboard/internal/models"

// RegisterCompanyRequest is the text part of the multipart register form;
// the logo arrives as the "image" file.
type RegisterCompanyRequest struct {
	Name     string `form:"name" label:"Name" binding:"required"`
	Email    string `form:"email" label:"Email" binding:"required,email"`
	Password string `form:"password" label:"Password" binding:"required"`
}

type LoginCompanyRequest struct {
	Email    string `json:"email" label:"Email" binding:"required"`
	Password string `json:"password" label:"Password" binding:"required"`
}

// CompanyData is what recruiters see about their own account.
type CompanyData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

func NewCompanyData(c *models.Company) CompanyData {
	return CompanyData{ID: c.ID, Name: c.Name, Email: c.Email, Image: c.Image}
}
