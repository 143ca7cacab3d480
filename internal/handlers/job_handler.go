package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
}

func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{JobService: j}
}

// JobList is GET /api/job/job-list, the public browse source.
func (h *JobHandler) JobList(c *gin.Context) {
	jobs, err := h.JobService.ListVisible(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Job data fetched successfully", gin.H{"jobList": jobs})
}
