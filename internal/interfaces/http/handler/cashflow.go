package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/mfg/backend/internal/application/finance"
)

// CashflowHandler handles cashflow ledger API endpoints
type CashflowHandler struct {
	BaseHandler
	cashflowService *financeapp.CashflowService
}

// NewCashflowHandler creates a new CashflowHandler
func NewCashflowHandler(cashflowService *financeapp.CashflowService) *CashflowHandler {
	return &CashflowHandler{
		cashflowService: cashflowService,
	}
}

// Create godoc
// @Summary      Record a cashflow entry
// @Description  Record a revenue, expense or owner investment entry in the ledger
// @Tags         cashflows
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body financeapp.CreateCashflowRequest true "Cashflow creation request"
// @Success      201 {object} dto.Response{data=financeapp.CashflowResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/cashflows [post]
func (h *CashflowHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreateCashflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.cashflowService.CreateCashflow(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// List godoc
// @Summary      List cashflow entries
// @Description  Retrieve a paginated list of cashflow entries with optional filtering
// @Tags         cashflows
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        type query string false "Entry type filter"
// @Param        category query string false "Category filter"
// @Param        owner_id query string false "Owner ID filter" format(uuid)
// @Param        from_date query string false "From transaction date (RFC3339)"
// @Param        to_date query string false "Until transaction date (RFC3339)"
// @Param        is_paid query bool false "Settled flag filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.CashflowResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/cashflows [get]
func (h *CashflowHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter financeapp.CashflowListFilter
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

	entries, total, err := h.cashflowService.ListCashflows(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get cashflow entry by ID
// @Description  Retrieve a cashflow entry by its ID
// @Tags         cashflows
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Cashflow ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.CashflowResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/cashflows/{id} [get]
func (h *CashflowHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cashflow ID format")
		return
	}

	entry, err := h.cashflowService.GetCashflowByID(c.Request.Context(), tenantID, entryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// Update godoc
// @Summary      Update a cashflow entry
// @Description  Replace the business fields of a cashflow entry
// @Tags         cashflows
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Cashflow ID" format(uuid)
// @Param        request body financeapp.UpdateCashflowRequest true "Cashflow update request"
// @Success      200 {object} dto.Response{data=financeapp.CashflowResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/cashflows/{id} [put]
func (h *CashflowHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cashflow ID format")
		return
	}

	var req financeapp.UpdateCashflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.cashflowService.UpdateCashflow(c.Request.Context(), tenantID, entryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// Delete godoc
// @Summary      Delete a cashflow entry
// @Description  Remove a cashflow entry from the ledger
// @Tags         cashflows
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Cashflow ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/cashflows/{id} [delete]
func (h *CashflowHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cashflow ID format")
		return
	}

	if err := h.cashflowService.DeleteCashflow(c.Request.Context(), tenantID, entryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
