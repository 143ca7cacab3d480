package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/auth"
	"github.com/justsurfingit/jobboard/internal/dtos"
	"github.com/justsurfingit/jobboard/internal/services"
)

type CompanyHandler struct {
	CompanyService *services.CompanyService
	JobService     *services.JobService
}

func NewCompanyHandler(cs *services.CompanyService, js *services.JobService) *CompanyHandler {
	return &CompanyHandler{CompanyService: cs, JobService: js}
}

// Register is POST /api/company/register (multipart, logo in "image").
func (h *CompanyHandler) Register(c *gin.Context) {
	var req dtos.RegisterCompanyRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	image, closeFn, err := formUpload(c, "image")
	if err != nil {
		fail(c, err)
		return
	}
	defer closeFn()

	company, token, err := h.CompanyService.Register(c.Request.Context(), &req, image)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Company registered successfully", gin.H{
		"companyData": dtos.NewCompanyData(company),
		"token":       token,
	})
}

func (h *CompanyHandler) Login(c *gin.Context) {
	var req dtos.LoginCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	company, token, err := h.CompanyService.Login(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Company logged in successfully", gin.H{
		"companyData": dtos.NewCompanyData(company),
		"token":       token,
	})
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company := auth.CompanyFrom(c)
	ok(c, http.StatusOK, "Company data", gin.H{"companyData": dtos.NewCompanyData(company)})
}

func (h *CompanyHandler) PostJob(c *gin.Context) {
	var req dtos.PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.JobService.PostJob(c.Request.Context(), auth.CompanyFrom(c).ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Job posted successfully", gin.H{"jobData": job})
}

func (h *CompanyHandler) PostedJobs(c *gin.Context) {
	jobs, err := h.JobService.PostedJobs(c.Request.Context(), auth.CompanyFrom(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Company job data fetched successfully", gin.H{"jobData": jobs})
}

// ChangeVisibility succeeds even when the caller does not own the job; the
// job is then left untouched.
func (h *CompanyHandler) ChangeVisibility(c *gin.Context) {
	var req dtos.JobIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.JobService.ToggleVisibility(c.Request.Context(), auth.CompanyFrom(c).ID, req.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Job visibility changed successfully", nil)
}

func (h *CompanyHandler) Applicants(c *gin.Context) {
	apps, err := h.CompanyService.Applicants(c.Request.Context(), auth.CompanyFrom(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Company job applicants fetched successfully", gin.H{"jobApplicants": apps})
}

func (h *CompanyHandler) ChangeStatus(c *gin.Context) {
	var req dtos.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	app, err := h.CompanyService.ChangeApplicationStatus(c.Request.Context(), auth.CompanyFrom(c).ID, req.ID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Status changed successfully", gin.H{"status": app.Status})
}
