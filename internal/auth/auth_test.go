package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyTokens_RoundTrip(t *testing.T) {
	tokens := NewCompanyTokens("secret", time.Hour)

	tok, err := tokens.Issue("company-1")
	require.NoError(t, err)

	id, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "company-1", id)
}

func TestCompanyTokens_Rejects(t *testing.T) {
	tokens := NewCompanyTokens("secret", time.Hour)
	tok, err := tokens.Issue("company-1")
	require.NoError(t, err)

	other := NewCompanyTokens("other-secret", time.Hour)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")

	expired := NewCompanyTokens("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = tokens.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestBearer(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		tok, ok := bearer(c.header)
		assert.Equal(t, c.ok, ok, "header %q", c.header)
		assert.Equal(t, c.token, tok, "header %q", c.header)
	}
}

type finderFunc func(ctx context.Context, id string) (*models.Company, error)

func (f finderFunc) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	return f(ctx, id)
}

type verifierFunc func(ctx context.Context, token string) (string, error)

func (f verifierFunc) VerifyUser(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}

func TestProtectCompany(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewCompanyTokens("secret", time.Hour)
	finder := finderFunc(func(_ context.Context, id string) (*models.Company, error) {
		switch id {
		case "acme":
			return &models.Company{ID: "acme", Name: "Acme"}, nil
		case "broken":
			return nil, apperr.Dependency("Company data not found", errors.New("db down"))
		}
		return nil, apperr.NotFound("Company not found")
	})

	r := gin.New()
	r.GET("/me", ProtectCompany(tokens, finder), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": CompanyFrom(c).Name})
	})

	good, _ := tokens.Issue("acme")
	gone, _ := tokens.Issue("gone")
	broken, _ := tokens.Issue("broken")

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "xyz", http.StatusUnauthorized},
		{"deleted company", gone, http.StatusUnauthorized},
		{"lookup failure", broken, http.StatusInternalServerError},
		{"ok", good, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.token != "" {
				req.Header.Set(CompanyTokenHeader, tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := verifierFunc(func(_ context.Context, token string) (string, error) {
		if token == "good" {
			return "user_1", nil
		}
		return "", errors.New("bad")
	})

	r := gin.New()
	r.GET("/me", RequireUser(verifier), func(c *gin.Context) {
		c.String(http.StatusOK, UserIDFrom(c))
	})

	for header, want := range map[string]int{
		"":            http.StatusUnauthorized,
		"Bearer bad":  http.StatusUnauthorized,
		"Bearer good": http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "header %q", header)
		if want == http.StatusOK {
			assert.Equal(t, "user_1", w.Body.String())
		}
	}
}

func TestWebhookVerifier(t *testing.T) {
	_, err := NewWebhookVerifier("")
	assert.Error(t, err)

	secret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	wh, err := NewWebhookVerifier(secret)
	require.NoError(t, err)

	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	now := time.Now()
	sig, err := wh.Sign("msg_1", now, payload)
	require.NoError(t, err)

	headers := http.Header{}
	headers.Set("svix-id", "msg_1")
	headers.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
	headers.Set("svix-signature", sig)

	assert.NoError(t, wh.Verify(payload, headers))
	assert.Error(t, wh.Verify([]byte(`{"type":"user.deleted","data":{"id":"user_1"}}`), headers), "tampered body")
}
