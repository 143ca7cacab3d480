package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/auth"
	"github.com/justsurfingit/jobboard/internal/dtos"
	"github.com/justsurfingit/jobboard/internal/logger"
	"github.com/justsurfingit/jobboard/internal/services"
	"github.com/rs/zerolog/log"
)

// Deps is everything the router needs. Users and Webhooks may be left nil
// when the identity provider is not configured; their routes are then not
// mounted.
type Deps struct {
	Companies *services.CompanyService
	Jobs      *services.JobService
	Users     *services.UserService
	Webhooks  *services.WebhookService

	Tokens       *auth.CompanyTokens
	UserVerifier auth.UserVerifier

	AllowedOrigins  []string
	LoginRatePerMin int
}

func NewRouter(d Deps) *gin.Engine {
	dtos.Setup()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(logger.GinMiddleware(), logger.Recovery())

	config := cors.DefaultConfig()
	if len(d.AllowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = d.AllowedOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization",
		auth.CompanyTokenHeader, logger.RequestIDHeader}
	r.Use(cors.New(config))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Method not allowed"})
	})

	jobHandler := NewJobHandler(d.Jobs)
	companyHandler := NewCompanyHandler(d.Companies, d.Jobs)

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)
		api.GET("/job/job-list", jobHandler.JobList)

		limited := RateLimit(d.LoginRatePerMin)
		company := api.Group("/company")
		company.POST("/register", limited, companyHandler.Register)
		company.POST("/login", limited, companyHandler.Login)

		protected := company.Group("", auth.ProtectCompany(d.Tokens, d.Companies))
		protected.GET("/get-company", companyHandler.GetCompany)
		protected.POST("/post-job", companyHandler.PostJob)
		protected.GET("/company-posted-jobs", companyHandler.PostedJobs)
		protected.POST("/change-visibility", companyHandler.ChangeVisibility)
		protected.GET("/applicants", companyHandler.Applicants)
		protected.POST("/change-status", companyHandler.ChangeStatus)

		if d.Users != nil && d.UserVerifier != nil {
			userHandler := NewUserHandler(d.Users)
			user := api.Group("/user", auth.RequireUser(d.UserVerifier))
			user.GET("/user-data", userHandler.UserData)
			user.POST("/apply-job", userHandler.ApplyJob)
			user.GET("/user-application", userHandler.Applications)
			user.POST("/update-resume", userHandler.UpdateResume)
		} else {
			log.Warn().Msg("identity provider not configured, user routes disabled")
		}
	}

	if d.Webhooks != nil {
		r.POST("/webhook", NewWebhookHandler(d.Webhooks).Receive)
	} else {
		log.Warn().Msg("webhook secret not configured, /webhook disabled")
	}

	return r
}
