package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/config"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/middleware"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/repository"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:            testutil.JWTSecret,
			AccessTokenExpire: time.Hour,
			Issuer:            "uretim-takip-test",
		},
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, cfg)
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1")

	api.GET("/work-orders/:id", h.WorkOrder.Get)
	api.GET("/work-orders/:id/stages", h.WorkOrder.Stages)
	api.GET("/work-orders/:id/metrics", h.Metrics.WorkOrder)
	api.POST("/work-orders",
		middleware.RequireRoles(entity.RolePlanner, entity.RoleAdmin),
		h.WorkOrder.Create)

	api.POST("/stages/:id/start", h.Stage.Start)
	api.POST("/stages/:id/complete", h.Stage.Complete)

	api.POST("/issues", h.Issue.Report)
	api.GET("/notifications",
		middleware.RequireRoles(entity.RoleAdmin, entity.RolePlanner),
		h.Notification.List)

	return r, db
}

func plannerToken() string {
	return testutil.GenerateTestToken(3, "test-planner", entity.RolePlanner)
}

func TestWorkOrderLifecycleAPI(t *testing.T) {
	r, _ := setupAPI(t)

	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	body := map[string]interface{}{
		"product_code":  "API-001",
		"lot_no":        "LOT-API",
		"qty":           250,
		"planned_start": start.Format(time.RFC3339),
		"planned_end":   start.Add(4 * time.Hour).Format(time.RFC3339),
	}

	// Workers may not create work orders.
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/work-orders", body, testutil.WorkerToken())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.DoRequest(r, http.MethodPost, "/api/v1/work-orders", body, plannerToken())
	require.Equal(t, http.StatusCreated, w.Code)

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	woID := uint(data["id"].(float64))
	stages := data["stages"].([]interface{})
	require.Len(t, stages, 2)

	firstStage := stages[0].(map[string]interface{})
	assert.Equal(t, "Enjeksiyon", firstStage["stage_name"])
	assert.Equal(t, "planned", firstStage["status"])
	stageID := uint(firstStage["id"].(float64))

	// Workers run the stages.
	w = testutil.DoRequest(r, http.MethodPost,
		fmt.Sprintf("/api/v1/stages/%d/start", stageID), nil, testutil.WorkerToken())
	require.Equal(t, http.StatusOK, w.Code)
	resp = testutil.ParseResponse(w)
	assert.Equal(t, "in_progress", resp["data"].(map[string]interface{})["status"])

	w = testutil.DoRequest(r, http.MethodPost,
		fmt.Sprintf("/api/v1/stages/%d/complete", stageID), nil, testutil.WorkerToken())
	require.Equal(t, http.StatusOK, w.Code)

	// Completing twice is the idempotent no-op, not an error.
	w = testutil.DoRequest(r, http.MethodPost,
		fmt.Sprintf("/api/v1/stages/%d/complete", stageID), nil, testutil.WorkerToken())
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.DoRequest(r, http.MethodGet,
		fmt.Sprintf("/api/v1/work-orders/%d/metrics", woID), nil, plannerToken())
	require.Equal(t, http.StatusOK, w.Code)
	metrics := testutil.ParseResponse(w)["data"].(map[string]interface{})
	stageCounts := metrics["stages"].(map[string]interface{})
	assert.Equal(t, float64(2), stageCounts["total"])
	assert.Equal(t, float64(1), stageCounts["completed"])
}

func TestWorkOrderAPIRejectsBadWindow(t *testing.T) {
	r, _ := setupAPI(t)

	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	body := map[string]interface{}{
		"product_code":  "API-002",
		"lot_no":        "LOT-BAD",
		"qty":           10,
		"planned_start": start.Format(time.RFC3339),
		"planned_end":   start.Format(time.RFC3339),
	}

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/work-orders", body, plannerToken())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkOrderAPIUnauthorized(t *testing.T) {
	r, _ := setupAPI(t)

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/work-orders/1", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueReportAndNotificationInboxAPI(t *testing.T) {
	r, db := setupAPI(t)
	wo := testutil.SeedWorkOrder(t, db)

	body := map[string]interface{}{
		"stage_id":    wo.Stages[0].ID,
		"type":        "material_shortage",
		"description": "PP granule ran out",
	}
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/issues", body, testutil.WorkerToken())
	require.Equal(t, http.StatusCreated, w.Code)

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["notifications_sent"])

	// Workers are not allowed into the notification inbox.
	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/notifications", nil, testutil.WorkerToken())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/notifications", nil, testutil.AdminToken())
	require.Equal(t, http.StatusOK, w.Code)
	inbox := testutil.ParseResponse(w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), inbox["unread_count"])
	items := inbox["items"].([]interface{})
	require.Len(t, items, 1)
}

func TestStageNotFoundAPI(t *testing.T) {
	r, _ := setupAPI(t)

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/stages/99999/start", nil, testutil.WorkerToken())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = testutil.DoRequest(r, http.MethodPost, "/api/v1/stages/abc/start", nil, testutil.WorkerToken())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
