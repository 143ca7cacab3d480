package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/auth"
	"github.com/justsurfingit/jobboard/internal/dtos"
	"github.com/justsurfingit/jobboard/internal/services"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(us *services.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

func (h *UserHandler) UserData(c *gin.Context) {
	user, err := h.UserService.GetUser(c.Request.Context(), auth.UserIDFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "User data", gin.H{"userData": user})
}

func (h *UserHandler) ApplyJob(c *gin.Context) {
	var req dtos.ApplyJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.UserService.Apply(c.Request.Context(), auth.UserIDFrom(c), req.JobID); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Job applied successfully", nil)
}

func (h *UserHandler) Applications(c *gin.Context) {
	apps, err := h.UserService.Applications(c.Request.Context(), auth.UserIDFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "User applications", gin.H{"jobApplications": apps})
}

// UpdateResume is POST /api/user/update-resume (multipart, file in "resume").
func (h *UserHandler) UpdateResume(c *gin.Context) {
	resume, closeFn, err := formUpload(c, "resume")
	if err != nil {
		fail(c, err)
		return
	}
	defer closeFn()

	url, err := h.UserService.UpdateResume(c.Request.Context(), auth.UserIDFrom(c), resume)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Resume updated successfully", gin.H{"resume": url})
}
