package handler

import (
	"net/http"

	"itrfiling/internal/service"
	"itrfiling/pkg/response"

	"github.com/gin-gonic/gin"
)

type IncomeHandler struct {
	incomeService service.IncomeService
}

func NewIncomeHandler(incomeService service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

func (h *IncomeHandler) RegisterRoutes(router *gin.RouterGroup) {
	income := router.Group("/api/filings/:id/income")
	{
		income.GET("", h.ListIncome)
		income.POST("", h.AddIncome)
		income.PUT("/:recordId", h.ReplaceIncome)
		income.DELETE("/:recordId", h.DeleteIncome)
		income.GET("/:recordId/history", h.GetIncomeHistory)
	}
}

// ListIncome returns the current version of every income record
// @Summary      List income records
// @Tags         income
// @Produce      json
// @Param        id   path      string  true  "Filing ID"
// @Success      200  {object}  response.Response{data=[]service.IncomeResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/filings/{id}/income [get]
func (h *IncomeHandler) ListIncome(c *gin.Context) {
	records, err := h.incomeService.ListIncome(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}

// AddIncome
// @Summary      Add income record
// @Description  Adds an income record. Details must match the category.
// @Tags         income
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Filing ID"
// @Param        payload  body      service.IncomeRequest  true  "Income Payload"
// @Success      201      {object}  response.Response{data=service.IncomeResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/filings/{id}/income [post]
func (h *IncomeHandler) AddIncome(c *gin.Context) {
	var req service.IncomeRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.incomeService.AddIncome(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// ReplaceIncome stores a new version of an income record
// @Summary      Replace income record
// @Description  Supersedes the given version with a new one. Replacing an already superseded version is a conflict.
// @Tags         income
// @Accept       json
// @Produce      json
// @Param        id        path      string                 true  "Filing ID"
// @Param        recordId  path      string                 true  "Income record ID"
// @Param        payload   body      service.IncomeRequest  true  "Income Payload"
// @Success      200       {object}  response.Response{data=service.IncomeResponse}
// @Failure      404       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Failure      422       {object}  response.Response
// @Router       /api/filings/{id}/income/{recordId} [put]
func (h *IncomeHandler) ReplaceIncome(c *gin.Context) {
	var req service.IncomeRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.incomeService.ReplaceIncome(c.Request.Context(), c.Param("id"), c.Param("recordId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// DeleteIncome
// @Summary      Delete income record
// @Description  Deletes an income record together with its earlier versions
// @Tags         income
// @Produce      json
// @Param        id        path      string  true  "Filing ID"
// @Param        recordId  path      string  true  "Income record ID"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /api/filings/{id}/income/{recordId} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	if err := h.incomeService.DeleteIncome(c.Request.Context(), c.Param("id"), c.Param("recordId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Income record deleted successfully"}))
}

// GetIncomeHistory
// @Summary      Income record history
// @Description  Lists every version of an income record, oldest first
// @Tags         income
// @Produce      json
// @Param        id        path      string  true  "Filing ID"
// @Param        recordId  path      string  true  "Income record ID"
// @Success      200       {object}  response.Response{data=[]service.IncomeResponse}
// @Failure      404       {object}  response.Response
// @Router       /api/filings/{id}/income/{recordId}/history [get]
func (h *IncomeHandler) GetIncomeHistory(c *gin.Context) {
	history, err := h.incomeService.GetIncomeHistory(c.Request.Context(), c.Param("id"), c.Param("recordId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, history))
}
