package handler

import (
	"net/http"

	"itrfiling/internal/service"
	"itrfiling/pkg/response"

	"github.com/gin-gonic/gin"
)

type DeductionHandler struct {
	deductionService service.DeductionService
}

func NewDeductionHandler(deductionService service.DeductionService) *DeductionHandler {
	return &DeductionHandler{deductionService: deductionService}
}

func (h *DeductionHandler) RegisterRoutes(router *gin.RouterGroup) {
	deductions := router.Group("/api/filings/:id/deductions")
	{
		deductions.GET("", h.ListDeductions)
		deductions.POST("", h.AddDeduction)
		deductions.PUT("/:claimId", h.UpdateDeduction)
		deductions.DELETE("/:claimId", h.DeleteDeduction)
	}
}

// ListDeductions returns the claims of a filing with the validated summary
// @Summary      List deduction claims
// @Description  Lists claims together with the allowed amount per section and any cap warnings
// @Tags         deductions
// @Produce      json
// @Param        id   path      string  true  "Filing ID"
// @Success      200  {object}  response.Response{data=service.DeductionListResponse}
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/filings/{id}/deductions [get]
func (h *DeductionHandler) ListDeductions(c *gin.Context) {
	res, err := h.deductionService.ListDeductions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// AddDeduction
// @Summary      Add deduction claim
// @Tags         deductions
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Filing ID"
// @Param        payload  body      service.DeductionRequest  true  "Deduction Payload"
// @Success      201      {object}  response.Response{data=service.DeductionResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/filings/{id}/deductions [post]
func (h *DeductionHandler) AddDeduction(c *gin.Context) {
	var req service.DeductionRequest
	if !bindJSON(c, &req) {
		return
	}

	claim, err := h.deductionService.AddDeduction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, claim))
}

// UpdateDeduction
// @Summary      Update deduction claim
// @Tags         deductions
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Filing ID"
// @Param        claimId  path      string                    true  "Deduction claim ID"
// @Param        payload  body      service.DeductionRequest  true  "Deduction Payload"
// @Success      200      {object}  response.Response{data=service.DeductionResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/filings/{id}/deductions/{claimId} [put]
func (h *DeductionHandler) UpdateDeduction(c *gin.Context) {
	var req service.DeductionRequest
	if !bindJSON(c, &req) {
		return
	}

	claim, err := h.deductionService.UpdateDeduction(c.Request.Context(), c.Param("id"), c.Param("claimId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, claim))
}

// DeleteDeduction
// @Summary      Delete deduction claim
// @Tags         deductions
// @Produce      json
// @Param        id       path      string  true  "Filing ID"
// @Param        claimId  path      string  true  "Deduction claim ID"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/filings/{id}/deductions/{claimId} [delete]
func (h *DeductionHandler) DeleteDeduction(c *gin.Context) {
	if err := h.deductionService.DeleteDeduction(c.Request.Context(), c.Param("id"), c.Param("claimId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Deduction claim deleted successfully"}))
}
