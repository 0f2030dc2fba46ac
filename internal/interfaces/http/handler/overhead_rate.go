package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	productionapp "github.com/mfg/backend/internal/application/production"
)

// OverheadRateHandler handles overhead rate API endpoints
type OverheadRateHandler struct {
	BaseHandler
	rateService *productionapp.OverheadRateService
}

// NewOverheadRateHandler creates a new OverheadRateHandler
func NewOverheadRateHandler(rateService *productionapp.OverheadRateService) *OverheadRateHandler {
	return &OverheadRateHandler{
		rateService: rateService,
	}
}

// Create godoc
// @Summary      Create an overhead rate
// @Description  Define an overhead allocation rate for a lifecycle stage
// @Tags         overhead-rates
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body productionapp.CreateOverheadRateRequest true "Overhead rate creation request"
// @Success      201 {object} dto.Response{data=productionapp.OverheadRateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /production/overhead-rates [post]
func (h *OverheadRateHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req productionapp.CreateOverheadRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rate, err := h.rateService.CreateOverheadRate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, rate)
}

// List godoc
// @Summary      List overhead rates
// @Description  Retrieve a paginated list of overhead rates with optional filtering
// @Tags         overhead-rates
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        stage query string false "Applicable stage filter"
// @Param        is_active query bool false "Active flag filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]productionapp.OverheadRateResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /production/overhead-rates [get]
func (h *OverheadRateHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter productionapp.OverheadRateListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	rates, total, err := h.rateService.ListOverheadRates(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, rates, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get overhead rate by ID
// @Description  Retrieve an overhead rate by its ID
// @Tags         overhead-rates
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Overhead rate ID" format(uuid)
// @Success      200 {object} dto.Response{data=productionapp.OverheadRateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /production/overhead-rates/{id} [get]
func (h *OverheadRateHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid overhead rate ID format")
		return
	}

	rate, err := h.rateService.GetOverheadRateByID(c.Request.Context(), tenantID, rateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rate)
}

// Deactivate godoc
// @Summary      Deactivate an overhead rate
// @Description  Exclude a rate from effective rate selection without deleting it
// @Tags         overhead-rates
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Overhead rate ID" format(uuid)
// @Success      200 {object} dto.Response{data=productionapp.OverheadRateResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /production/overhead-rates/{id}/deactivate [post]
func (h *OverheadRateHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	rateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid overhead rate ID format")
		return
	}

	rate, err := h.rateService.DeactivateOverheadRate(c.Request.Context(), tenantID, rateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rate)
}
