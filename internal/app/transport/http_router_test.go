//go:build unit

package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelapp/flight-booking-client/internal/app/config"
	"github.com/travelapp/flight-booking-client/internal/app/endpoints"
	"github.com/travelapp/flight-booking-client/internal/app/service"
	"github.com/travelapp/flight-booking-client/internal/app/session"
	"github.com/travelapp/flight-booking-client/internal/app/workflow"
	httptransport "github.com/travelapp/flight-booking-client/internal/pkg/transport/http"
)

func newTestRouter() http.Handler {
	sessions := session.NewRegistry(func() *workflow.Controller {
		return workflow.NewController(nil)
	}, time.Minute)

	workflowService := service.NewWorkflowService(sessions)

	return MakeHTTPRouter(&config.Config{}, endpoints.Endpoints{
		Workflow: endpoints.MakeWorkflowEndpoint(workflowService),
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_SessionSnapshot(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var state map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "search", state["stage"])
	assert.Equal(t, "idle", state["search_status"])

	// a new visitor gets a session cookie
	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == httptransport.SessionCookieName {
			sessionCookie = cookie
		}
	}

	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}
