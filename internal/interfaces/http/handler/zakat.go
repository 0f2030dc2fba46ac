package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/mfg/backend/internal/application/finance"
)

// ZakatHandler handles zakat calculation API endpoints
type ZakatHandler struct {
	BaseHandler
	zakatService *financeapp.ZakatService
}

// NewZakatHandler creates a new ZakatHandler
func NewZakatHandler(zakatService *financeapp.ZakatService) *ZakatHandler {
	return &ZakatHandler{
		zakatService: zakatService,
	}
}

// Calculate godoc
// @Summary      Calculate zakat
// @Description  Compute the zakat base from the business position as of the calculation date and persist a record
// @Tags         zakat
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body financeapp.CalculateZakatRequest true "Zakat calculation request"
// @Success      201 {object} dto.Response{data=financeapp.ZakatRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/zakat/calculate [post]
func (h *ZakatHandler) Calculate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req financeapp.CalculateZakatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.zakatService.Calculate(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, record)
}

// List godoc
// @Summary      List zakat records
// @Description  Retrieve a paginated list of zakat records with optional filtering
// @Tags         zakat
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        year query int false "Calculation year filter"
// @Param        status query string false "Payment status filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]financeapp.ZakatRecordResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/zakat [get]
func (h *ZakatHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter financeapp.ZakatListFilter
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

	records, total, err := h.zakatService.ListZakatRecords(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, records, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get zakat record by ID
// @Description  Retrieve a zakat record by its ID
// @Tags         zakat
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Zakat record ID" format(uuid)
// @Success      200 {object} dto.Response{data=financeapp.ZakatRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/zakat/{id} [get]
func (h *ZakatHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zakat record ID format")
		return
	}

	record, err := h.zakatService.GetZakatRecordByID(c.Request.Context(), tenantID, recordID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// RecordPayment godoc
// @Summary      Record a zakat payment
// @Description  Apply a payment against an outstanding zakat obligation
// @Tags         zakat
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        id path string true "Zakat record ID" format(uuid)
// @Param        request body financeapp.RecordZakatPaymentRequest true "Payment request"
// @Success      200 {object} dto.Response{data=financeapp.ZakatRecordResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /finance/zakat/{id}/payments [post]
func (h *ZakatHandler) RecordPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zakat record ID format")
		return
	}

	var req financeapp.RecordZakatPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.zakatService.RecordPayment(c.Request.Context(), tenantID, recordID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}
