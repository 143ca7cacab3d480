package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	CompanyTokenHeader = "token"

	companyKey = "auth.company"
	userKey    = "auth.user_id"
)

// CompanyFinder loads the company a token refers to.
type CompanyFinder interface {
	GetCompany(ctx context.Context, id string) (*models.Company, error)
}

// ProtectCompany admits requests carrying a valid recruiter token for an
// existing company.
func ProtectCompany(tokens *CompanyTokens, companies CompanyFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(CompanyTokenHeader)
		if token == "" {
			abort(c, http.StatusUnauthorized, "Unauthorized, please login again")
			return
		}

		companyID, err := tokens.Parse(token)
		if err != nil {
			log.Debug().Err(err).Msg("rejected company token")
			abort(c, http.StatusUnauthorized, "Unauthorized, please login again")
			return
		}

		company, err := companies.GetCompany(c.Request.Context(), companyID)
		if apperr.IsKind(err, apperr.KindNotFound) {
			// the token outlived its company
			abort(c, http.StatusUnauthorized, "Unauthorized, please login again")
			return
		}
		if err != nil {
			abort(c, apperr.HTTPStatus(err), apperr.Message(err))
			return
		}

		c.Set(companyKey, company)
		c.Next()
	}
}

// RequireUser admits requests with a valid identity-provider bearer token.
func RequireUser(verifier UserVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			abort(c, http.StatusUnauthorized, "Unauthorized, please login again")
			return
		}

		userID, err := verifier.VerifyUser(c.Request.Context(), token)
		if err != nil {
			log.Debug().Err(err).Msg("rejected user token")
			abort(c, http.StatusUnauthorized, "Unauthorized, please login again")
			return
		}

		c.Set(userKey, userID)
		c.Next()
	}
}

// CompanyFrom returns the company set by ProtectCompany.
func CompanyFrom(c *gin.Context) *models.Company {
	if v, ok := c.Get(companyKey); ok {
		if company, ok := v.(*models.Company); ok {
			return company
		}
	}
	return nil
}

// UserIDFrom returns the user id set by RequireUser.
func UserIDFrom(c *gin.Context) string {
	return c.GetString(userKey)
}

func bearer(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg})
}
