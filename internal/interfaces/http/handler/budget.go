package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/mfg/backend/internal/application/finance"
)

// BudgetHandler handles budget plan API endpoints
type BudgetHandler struct {
	BaseHandler
	budgetService *financeapp.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *financeapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// Create godoc
// @Summary      Create a budget plan
// @Description  Create a budget plan with budgeted figures for a period
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body financeapp.CreateBudgetPlanRequest true "Budget plan creation request"
// @Success      201 {object} dto.Response{data=financeapp.BudgetPlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreateBudgetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.budgetService.CreateBudgetPlan(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, plan)
}

// List godoc
// @Summary      List budget plans
// @Description  Retrieve a paginated list of budget plans with optional filtering
// @Tags         budgets
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        active_at query string false "Only plans whose period covers this instant (RFC3339)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.BudgetPlanResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter financeapp.BudgetPlanListFilter
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

	plans, total, err := h.budgetService.ListBudgetPlans(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, plans, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get budget plan by ID
// @Description  Retrieve a budget plan by its ID
// @Tags         budgets
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Budget plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.BudgetPlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/budgets/{id} [get]
func (h *BudgetHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget plan ID format")
		return
	}

	plan, err := h.budgetService.GetBudgetPlanByID(c.Request.Context(), tenantID, planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// Update godoc
// @Summary      Update a budget plan
// @Description  Replace the budgeted figures and notes of a plan
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Budget plan ID" format(uuid)
// @Param        request body financeapp.UpdateBudgetPlanRequest true "Budget plan update request"
// @Success      200 {object} dto.Response{data=financeapp.BudgetPlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget plan ID format")
		return
	}

	var req financeapp.UpdateBudgetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.budgetService.UpdateBudgetPlan(c.Request.Context(), tenantID, planID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// Delete godoc
// @Summary      Delete a budget plan
// @Description  Remove a budget plan
// @Tags         budgets
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Budget plan ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget plan ID format")
		return
	}

	if err := h.budgetService.DeleteBudgetPlan(c.Request.Context(), tenantID, planID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UpdateActuals godoc
// @Summary      Refresh actuals
// @Description  Recompute the plan's actual figures from sales, batches and the cashflow ledger, then report variances
// @Tags         budgets
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Budget plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=finance.VarianceReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/budgets/{id}/update-actuals [post]
func (h *BudgetHandler) UpdateActuals(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget plan ID format")
		return
	}

	report, err := h.budgetService.UpdateActuals(c.Request.Context(), tenantID, planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// GetVariances godoc
// @Summary      Variance report
// @Description  Compare budgeted against actual figures line by line
// @Tags         budgets
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Budget plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=finance.VarianceReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/budgets/{id}/variances [get]
func (h *BudgetHandler) GetVariances(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget plan ID format")
		return
	}

	report, err := h.budgetService.GetVariances(c.Request.Context(), tenantID, planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// GetBreakEven godoc
// @Summary      Break-even analysis
// @Description  Compute break-even units and revenue from the plan's budgeted figures. Business conditions such as a non-positive contribution margin are reported in the payload's error field.
// @Tags         budgets
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Budget plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=finance.BreakEvenResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/budgets/{id}/break-even [get]
func (h *BudgetHandler) GetBreakEven(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid budget plan ID format")
		return
	}

	result, err := h.budgetService.GetBreakEven(c.Request.Context(), tenantID, planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
