package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apphiring "github.com/hirehub/backend/internal/application/hiring"
	"github.com/hirehub/backend/internal/domain/hiring"
	"github.com/hirehub/backend/internal/infrastructure/telemetry"
)

// HiringHandler handles hiring HTTP requests
type HiringHandler struct {
	BaseHandler
	hireService *apphiring.HireService
	metrics     *telemetry.HiringMetrics
}

// NewHiringHandler creates a new hiring handler.
// metrics may be nil when telemetry is disabled.
func NewHiringHandler(hireService *apphiring.HireService, metrics *telemetry.HiringMetrics) *HiringHandler {
	return &HiringHandler{
		hireService: hireService,
		metrics:     metrics,
	}
}

// Hire godoc
// @Summary      Hire an employee
// @Description  Record that the current user hires the employee. Repeat requests
// @Description  and lost races return status "already_hired" instead of an error.
// @Tags         hires
// @Accept       json
// @Produce      json
// @Param        request body apphiring.HireEmployeeRequest true "Employee to hire"
// @Success      201 {object} APIResponse[apphiring.HireResponse]
// @Success      200 {object} APIResponse[apphiring.HireResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hires [post]
func (h *HiringHandler) Hire(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apphiring.HireEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.hireService.Hire(c.Request.Context(), userID, req.EmployeeID)
	if err != nil {
		h.recordAttempt(c, "error")
		h.HandleError(c, err)
		return
	}

	h.recordAttempt(c, string(result.Status))

	// A fresh record is a creation; the idempotent/lost-race path is a plain success
	response := apphiring.ToHireResponse(userID, req.EmployeeID, result)
	if result.Status == hiring.StatusHired {
		h.Created(c, response)
		return
	}
	h.Success(c, response)
}

// ListHires godoc
// @Summary      List hired employees
// @Description  Return the current user's roster of active hires
// @Tags         hires
// @Produce      json
// @Success      200 {object} APIResponse[[]apphiring.HiredEmployeeResponse]
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hires [get]
func (h *HiringHandler) ListHires(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	roster, err := h.hireService.ListHires(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roster)
}

// CheckHolding godoc
// @Summary      Check a holding
// @Description  Report whether the current user holds the employee
// @Tags         hires
// @Produce      json
// @Param        employee_id path string true "Employee ID"
// @Success      200 {object} APIResponse[apphiring.HoldingsResponse]
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /hires/{employee_id} [get]
func (h *HiringHandler) CheckHolding(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	employeeID, err := uuid.Parse(c.Param("employee_id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	hired, err := h.hireService.HasHired(c.Request.Context(), userID, employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, apphiring.HoldingsResponse{
		EmployeeID: employeeID,
		Hired:      hired,
	})
}

// recordAttempt records a hire attempt outcome when metrics are enabled
func (h *HiringHandler) recordAttempt(c *gin.Context, status string) {
	if h.metrics != nil {
		h.metrics.RecordHireAttempt(c.Request.Context(), status)
	}
}

// RegisterRoutes registers all hiring routes
func (h *HiringHandler) RegisterRoutes(rg *gin.RouterGroup) {
	hires := rg.Group("/hires")
	{
		hires.POST("", h.Hire)
		hires.GET("", h.ListHires)
		hires.GET("/:employee_id", h.CheckHolding)
	}
}
