package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitcrm/internal/database"
	"fitcrm/internal/domain"
	"fitcrm/internal/modules/auth"
	"fitcrm/internal/modules/dashboard"
	"fitcrm/internal/modules/members"
	"fitcrm/internal/modules/payments"
	"fitcrm/internal/modules/schedules"
	jwtsvc "fitcrm/internal/pkg/jwt"
	"fitcrm/internal/repository"
	"fitcrm/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Studio{},
		&domain.Profile{},
		&domain.MembershipType{},
		&domain.Member{},
		&domain.Payment{},
		&domain.ClassSchedule{},
	))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	studioRepo := repository.NewStudioRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	verifier := session.NewVerifier(j, profileRepo)
	guard := session.NewMiddleware(verifier, "fitcrm_session", "/login", "/dashboard")

	hub := dashboard.NewHub()
	t.Cleanup(hub.Close)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j), auth.CookieConfig{
		Name: "fitcrm_session",
		TTL:  time.Hour,
	})
	memberService := members.NewService(memberRepo, profileRepo, hub)
	memberHandler := members.NewHandler(memberService)
	paymentHandler := payments.NewHandler(payments.NewService(paymentRepo, memberRepo, hub))
	scheduleHandler := schedules.NewHandler(schedules.NewService(scheduleRepo, hub))
	dashboardHandler := dashboard.NewHandler(
		dashboard.NewService(memberService, paymentRepo, scheduleRepo, studioRepo), hub)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(guard.RequireAuth())
		{
			authHandler.RegisterProtectedRoutes(protected)
			memberHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			scheduleHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
		}
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, *TestResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed TestResponse
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, &parsed
}

func registerStudio(t *testing.T, r *gin.Engine, email, studioName string) string {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":       email,
		"password":    "Sup3r-Secret!",
		"first_name":  "Maria",
		"last_name":   "Schmidt",
		"studio_name": studioName,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createMember(t *testing.T, r *gin.Engine, token, first, last string) string {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/members", token, map[string]interface{}{
		"first_name": first,
		"last_name":  last,
		"status":     "active",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	id, _ := resp.Data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestUnauthenticatedRequestRedirectsToLogin(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestMemberLifecycle(t *testing.T) {
	r := setupRouter(t)
	token := registerStudio(t, r, "maria@studio.test", "Studio Flow")

	memberID := createMember(t, r, token, "Anna", "Weber")

	// List shows the member without an email field.
	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/members", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := resp.Data["members"].([]interface{})
	require.Len(t, list, 1)
	row := list[0].(map[string]interface{})
	assert.Equal(t, "Anna Weber", row["full_name"])
	_, hasEmail := row["email"]
	assert.False(t, hasEmail)

	// Detail carries the grouped projection.
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/members/"+memberID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := resp.Data["member"].(map[string]interface{})
	personal := detail["personal_info"].(map[string]interface{})
	assert.Equal(t, "Anna Weber", personal["full_name"])

	// Partial update touches one field and leaves the name alone.
	w, _ = doJSON(t, r, http.MethodPut, "/api/v1/members/"+memberID, token, map[string]interface{}{
		"credits_balance": 9,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/members/"+memberID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail = resp.Data["member"].(map[string]interface{})
	membership := detail["membership"].(map[string]interface{})
	assert.Equal(t, float64(9), membership["credits_balance"])
	personal = detail["personal_info"].(map[string]interface{})
	assert.Equal(t, "Anna Weber", personal["full_name"])

	// Delete redirects to the members list instead of returning a body.
	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/members/"+memberID, token, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/members", w.Header().Get("Location"))

	// The row survived the soft delete and restores cleanly.
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/members/"+memberID+"/restore", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/members/"+memberID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail = resp.Data["member"].(map[string]interface{})
	assert.Equal(t, "active", detail["status"])
}

func TestTenantIsolationAcrossStudios(t *testing.T) {
	r := setupRouter(t)

	tokenA := registerStudio(t, r, "a@studio.test", "Studio A")
	tokenB := registerStudio(t, r, "b@studio.test", "Studio B")

	createMember(t, r, tokenA, "Anna", "Weber")
	memberB := createMember(t, r, tokenB, "Anna", "Klein")

	// Each studio lists only its own members.
	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/members", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Data["members"].([]interface{}), 1)

	// A's search for a shared first name never sees B's member.
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/members/search?q=anna", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	hits := resp.Data["members"].([]interface{})
	require.Len(t, hits, 1)
	assert.Equal(t, "Anna Weber", hits[0].(map[string]interface{})["full_name"])

	// B's member id reads as not found for A.
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/members/"+memberB, tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)

	// And A cannot soft-delete it either.
	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/members/"+memberB, tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/members/"+memberB, tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := resp.Data["member"].(map[string]interface{})
	assert.Equal(t, "active", detail["status"])
}

func TestSearchFloorAndStats(t *testing.T) {
	r := setupRouter(t)
	token := registerStudio(t, r, "maria@studio.test", "Studio Flow")

	createMember(t, r, token, "Anna", "Weber")

	// A single character is below the search floor and returns nothing.
	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/members/search?q=a", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data["members"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/members/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := resp.Data["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(1), stats["active"])
}

func TestValidationErrorsSurfaceFieldNames(t *testing.T) {
	r := setupRouter(t)
	token := registerStudio(t, r, "maria@studio.test", "Studio Flow")

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/members", token, map[string]interface{}{
		"first_name": "Anna",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "last_name")

	bad := "javascript:alert(1)"
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/members", token, map[string]interface{}{
		"first_name": "Anna",
		"last_name":  bad,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "last_name")
}

func TestPaymentsAndDashboardStats(t *testing.T) {
	r := setupRouter(t)
	token := registerStudio(t, r, "maria@studio.test", "Studio Flow")
	memberID := createMember(t, r, token, "Anna", "Weber")

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"member_id":    memberID,
		"amount_cents": 3900,
		"method":       "sepa",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/classes", token, map[string]interface{}{
		"name":       "Morning Yoga",
		"start_time": "08:00",
		"end_time":   "09:00",
		"weekday":    1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := resp.Data["stats"].(map[string]interface{})
	assert.Equal(t, "Studio Flow", stats["studio_name"])
	assert.Equal(t, float64(3900), stats["revenue_month_cents"])
	assert.Equal(t, float64(1), stats["payments_month"])
	assert.Equal(t, float64(1), stats["active_class_count"])

	// A payment against another studio's member id is rejected.
	other := registerStudio(t, r, "b@studio.test", "Studio B")
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/payments", other, map[string]interface{}{
		"member_id":    memberID,
		"amount_cents": 3900,
		"method":       "card",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
