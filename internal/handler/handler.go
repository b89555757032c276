package handler

import (
	"net/http"
	"strconv"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/apperr"
	"github.com/Mervedgan/uretim-takip-sistemi/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth         *AuthHandler
	WorkOrder    *WorkOrderHandler
	Stage        *StageHandler
	Issue        *IssueHandler
	Notification *NotificationHandler
	Product      *ProductHandler
	Mold         *MoldHandler
	Machine      *MachineHandler
	Recipe       *RecipeHandler
	Model        *ModelHandler
	Metrics      *MetricsHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(svc.Auth),
		WorkOrder:    NewWorkOrderHandler(svc.WorkOrder),
		Stage:        NewStageHandler(svc.Stage),
		Issue:        NewIssueHandler(svc.Issue),
		Notification: NewNotificationHandler(svc.Issue),
		Product:      NewProductHandler(svc.Product),
		Mold:         NewMoldHandler(svc.Mold),
		Machine:      NewMachineHandler(svc.Machine),
		Recipe:       NewRecipeHandler(svc.Recipe),
		Model:        NewModelHandler(svc.Model),
		Metrics:      NewMetricsHandler(svc.Metrics),
	}
}

// Response is the common envelope. Code 0 means success; error responses
// carry the HTTP status as code.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Code: status, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// respondErr maps domain error kinds to HTTP statuses. Unclassified errors
// are internal.
func respondErr(c *gin.Context, err error) {
	var status int
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidTransition, apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindPreconditionFailed, apperr.KindInvalidArgument:
		status = http.StatusBadRequest
	case apperr.KindNoData, apperr.KindInsufficientData:
		status = http.StatusUnprocessableEntity
	case apperr.KindForbidden:
		status = http.StatusForbidden
	default:
		Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	Error(c, status, err.Error())
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func userIDFrom(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func usernameFrom(c *gin.Context) string {
	if v, ok := c.Get("username"); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}

func roleFrom(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
