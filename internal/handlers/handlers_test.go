package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/web3grant/Slushy/internal/auth"
	"github.com/web3grant/Slushy/internal/metadata"
	"github.com/web3grant/Slushy/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newTestRouter wires the handlers against a nil database connection; only
// request-validation paths are exercised here, which never reach the store.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	profileHandler := NewProfileHandler(services.NewProfileService(nil), tokens)
	metadataHandler := NewMetadataHandler(metadata.NewExtractor())
	linkHandler := NewLinkHandler(services.NewLinkService(nil, nil), services.NewReferralTracker(nil))

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/session", profileHandler.CreateSession)
		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.UpdateProfile)
		api.GET("/metadata", metadataHandler.GetSiteMetadata)
		api.POST("/profiles/:id/projects", linkHandler.AddProject)
		api.DELETE("/projects/:id", linkHandler.DeleteProject)
		api.POST("/referrals", linkHandler.RecordReferral)
	}
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProfileRequiresQueryKey(t *testing.T) {
	r := newTestRouter()
	w := doRequest(r, "GET", "/api/profile", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfileValidation(t *testing.T) {
	r := newTestRouter()

	t.Run("missing identity key", func(t *testing.T) {
		w := doRequest(r, "PUT", "/api/profile", `{"bio":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(r, "PUT", "/api/profile?identityKey=0xabc", `not-json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-editable field", func(t *testing.T) {
		w := doRequest(r, "PUT", "/api/profile?identityKey=0xabc", `{"dynamic_user_id":"0xevil"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateSessionRequiresIdentityKey(t *testing.T) {
	r := newTestRouter()
	w := doRequest(r, "POST", "/api/session", `{"emailHint":"a@b.c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddProjectValidation(t *testing.T) {
	r := newTestRouter()

	t.Run("bad profile id", func(t *testing.T) {
		w := doRequest(r, "POST", "/api/profiles/not-a-uuid/projects", `{"url":"https://foo.dev"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing url", func(t *testing.T) {
		w := doRequest(r, "POST", "/api/profiles/6f1b0f3e-1a67-4a8f-9d34-0b1a2c3d4e5f/projects", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteProjectRejectsBadID(t *testing.T) {
	r := newTestRouter()
	w := doRequest(r, "DELETE", "/api/projects/42", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordReferral(t *testing.T) {
	r := newTestRouter()

	t.Run("queues valid click", func(t *testing.T) {
		body := `{"profile_id":"6f1b0f3e-1a67-4a8f-9d34-0b1a2c3d4e5f","item_id":"7a2c1d4e-2b78-4b9f-8e45-1c2b3d4e5f60","item_type":"project"}`
		w := doRequest(r, "POST", "/api/referrals", body)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("rejects unknown item type", func(t *testing.T) {
		body := `{"profile_id":"6f1b0f3e-1a67-4a8f-9d34-0b1a2c3d4e5f","item_id":"7a2c1d4e-2b78-4b9f-8e45-1c2b3d4e5f60","item_type":"bookmark"}`
		w := doRequest(r, "POST", "/api/referrals", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects bad ids", func(t *testing.T) {
		body := `{"profile_id":"nope","item_id":"nope","item_type":"app"}`
		w := doRequest(r, "POST", "/api/referrals", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetSiteMetadata(t *testing.T) {
	r := newTestRouter()

	t.Run("missing url", func(t *testing.T) {
		w := doRequest(r, "GET", "/api/metadata", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("fetch failure is a 500", func(t *testing.T) {
		dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		target := dead.URL
		dead.Close()

		w := doRequest(r, "GET", "/api/metadata?url="+url.QueryEscape(target), "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("returns name and favicon", func(t *testing.T) {
		site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, `<html><head><title>Foo</title><link rel="icon" href="/favicon.ico" /></head></html>`)
		}))
		defer site.Close()

		w := doRequest(r, "GET", "/api/metadata?url="+url.QueryEscape(site.URL), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Foo"`)
		assert.Contains(t, w.Body.String(), site.URL+"/favicon.ico")
	})
}
