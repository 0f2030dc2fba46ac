package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/mfg/backend/internal/application/finance"
)

// OwnerHandler handles owner API endpoints
type OwnerHandler struct {
	BaseHandler
	ownerService *financeapp.OwnerService
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(ownerService *financeapp.OwnerService) *OwnerHandler {
	return &OwnerHandler{
		ownerService: ownerService,
	}
}

// Create godoc
// @Summary      Register an owner
// @Description  Register a business owner who can contribute capital
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body financeapp.CreateOwnerRequest true "Owner creation request"
// @Success      201 {object} dto.Response{data=financeapp.OwnerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/owners [post]
func (h *OwnerHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	owner, err := h.ownerService.CreateOwner(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, owner)
}

// List godoc
// @Summary      List owners
// @Description  Retrieve a paginated list of owners
// @Tags         owners
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.OwnerResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/owners [get]
func (h *OwnerHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter financeapp.OwnerListFilter
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

	owners, total, err := h.ownerService.ListOwners(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, owners, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get owner by ID
// @Description  Retrieve an owner by its ID
// @Tags         owners
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.OwnerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/owners/{id} [get]
func (h *OwnerHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	owner, err := h.ownerService.GetOwnerByID(c.Request.Context(), tenantID, ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, owner)
}

// Update godoc
// @Summary      Update owner details
// @Description  Replace the contact details of an owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Owner ID" format(uuid)
// @Param        request body financeapp.UpdateOwnerRequest true "Owner update request"
// @Success      200 {object} dto.Response{data=financeapp.OwnerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/owners/{id} [put]
func (h *OwnerHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	var req financeapp.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	owner, err := h.ownerService.UpdateOwner(c.Request.Context(), tenantID, ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, owner)
}

// Delete godoc
// @Summary      Delete an owner
// @Description  Remove an owner record
// @Tags         owners
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Owner ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/owners/{id} [delete]
func (h *OwnerHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	if err := h.ownerService.DeleteOwner(c.Request.Context(), tenantID, ownerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RecalculateInvestment godoc
// @Summary      Recalculate owner investment
// @Description  Recompute the owner's total investment from the cashflow ledger
// @Tags         owners
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Owner ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.OwnerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/owners/{id}/recalculate-investment [post]
func (h *OwnerHandler) RecalculateInvestment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	ownerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	owner, err := h.ownerService.RecalculateInvestment(c.Request.Context(), tenantID, ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, owner)
}
