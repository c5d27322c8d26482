package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/hirehub/backend/internal/application/catalog"
	"github.com/hirehub/backend/internal/domain/catalog"
	"github.com/hirehub/backend/internal/interfaces/http/dto"
)

// EmployeeHandler handles catalog HTTP requests
type EmployeeHandler struct {
	BaseHandler
	employeeService *appcatalog.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *appcatalog.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// List godoc
// @Summary      Browse the employee catalog
// @Description  List active employees with optional search, category filter and ordering
// @Tags         employees
// @Produce      json
// @Param        term     query string false "Search term matched against name, role and skills"
// @Param        category query string false "Category filter (all, assistant, design, dev, marketing, ops)"
// @Param        sort     query string false "Sort key (popular, newest, priceAsc, priceDesc)"
// @Param        page     query int    false "Page number (1-based)"
// @Param        pageSize query int    false "Page size"
// @Success      200 {object} APIResponse[[]appcatalog.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	category, err := catalog.ParseCategory(c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	sort, err := catalog.ParseSortKey(c.Query("sort"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))

	employees, total, err := h.employeeService.List(c.Request.Context(), appcatalog.ListEmployeesRequest{
		Term:     c.Query("term"),
		Category: category,
		Sort:     sort,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, employees, total, page, pageSize)
}

// Get godoc
// @Summary      Get an employee
// @Description  Get a single catalog employee by ID
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} APIResponse[appcatalog.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employee)
}

// Create godoc
// @Summary      Add an employee to the catalog
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body CreateEmployeeRequest true "Employee data"
// @Success      201 {object} APIResponse[appcatalog.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	category, err := catalog.ParseCategory(req.Category)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if category == catalog.CategoryAll {
		h.BadRequest(c, "Category must name a concrete category")
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), appcatalog.CreateEmployeeRequest{
		Code:           req.Code,
		DisplayName:    req.DisplayName,
		Category:       category,
		Role:           req.Role,
		Specialty:      req.Specialty,
		Skills:         req.Skills,
		PriceMinor:     req.PriceMinor,
		PopularityRank: req.PopularityRank,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, employee)
}

// Retire godoc
// @Summary      Retire an employee
// @Description  Remove an employee from the offerable catalog
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Retire(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.employeeService.Retire(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GenerateAvatarUploadURL godoc
// @Summary      Get avatar upload URL
// @Description  Generate a presigned URL for uploading an employee avatar
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id path string true "Employee ID"
// @Param        request body AvatarUploadRequest true "Upload parameters"
// @Success      200 {object} APIResponse[appcatalog.AvatarUploadResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id}/avatar/upload-url [post]
func (h *EmployeeHandler) GenerateAvatarUploadURL(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.employeeService.GenerateAvatarUploadURL(c.Request.Context(), uuid.MustParse(uri.ID), req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetAvatarURL godoc
// @Summary      Get avatar download URL
// @Description  Generate a presigned URL for downloading an employee avatar
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} APIResponse[appcatalog.AvatarURLResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /employees/{id}/avatar [get]
func (h *EmployeeHandler) GetAvatarURL(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	result, err := h.employeeService.GetAvatarURL(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers all employee routes
func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	{
		employees.GET("", h.List)
		employees.GET("/:id", h.Get)
		employees.POST("", h.Create)
		employees.DELETE("/:id", h.Retire)
		employees.POST("/:id/avatar/upload-url", h.GenerateAvatarUploadURL)
		employees.GET("/:id/avatar", h.GetAvatarURL)
	}
}
