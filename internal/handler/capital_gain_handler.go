package handler

import (
	"net/http"

	"itrfiling/internal/service"
	"itrfiling/pkg/response"

	"github.com/gin-gonic/gin"
)

type CapitalGainHandler struct {
	capitalGainService service.CapitalGainService
}

func NewCapitalGainHandler(capitalGainService service.CapitalGainService) *CapitalGainHandler {
	return &CapitalGainHandler{capitalGainService: capitalGainService}
}

func (h *CapitalGainHandler) RegisterRoutes(router *gin.RouterGroup) {
	gains := router.Group("/api/filings/:id/capital-gains")
	{
		gains.GET("", h.ListTransactions)
		gains.POST("", h.AddTransaction)
		gains.PUT("/:txId", h.UpdateTransaction)
		gains.DELETE("/:txId", h.DeleteTransaction)
	}
}

// ListTransactions
// @Summary      List capital gain transactions
// @Tags         capital-gains
// @Produce      json
// @Param        id   path      string  true  "Filing ID"
// @Success      200  {object}  response.Response{data=[]service.CapitalGainResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/filings/{id}/capital-gains [get]
func (h *CapitalGainHandler) ListTransactions(c *gin.Context) {
	txs, err := h.capitalGainService.ListTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, txs))
}

// AddTransaction records a disposal; holding period and gain type are derived
// @Summary      Add capital gain transaction
// @Tags         capital-gains
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Filing ID"
// @Param        payload  body      service.CapitalGainRequest  true  "Transaction Payload"
// @Success      201      {object}  response.Response{data=service.CapitalGainResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/filings/{id}/capital-gains [post]
func (h *CapitalGainHandler) AddTransaction(c *gin.Context) {
	var req service.CapitalGainRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.capitalGainService.AddTransaction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tx))
}

// UpdateTransaction
// @Summary      Update capital gain transaction
// @Tags         capital-gains
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Filing ID"
// @Param        txId     path      string                      true  "Transaction ID"
// @Param        payload  body      service.CapitalGainRequest  true  "Transaction Payload"
// @Success      200      {object}  response.Response{data=service.CapitalGainResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/filings/{id}/capital-gains/{txId} [put]
func (h *CapitalGainHandler) UpdateTransaction(c *gin.Context) {
	var req service.CapitalGainRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.capitalGainService.UpdateTransaction(c.Request.Context(), c.Param("id"), c.Param("txId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tx))
}

// DeleteTransaction
// @Summary      Delete capital gain transaction
// @Tags         capital-gains
// @Produce      json
// @Param        id    path      string  true  "Filing ID"
// @Param        txId  path      string  true  "Transaction ID"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/filings/{id}/capital-gains/{txId} [delete]
func (h *CapitalGainHandler) DeleteTransaction(c *gin.Context) {
	if err := h.capitalGainService.DeleteTransaction(c.Request.Context(), c.Param("id"), c.Param("txId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Transaction deleted successfully"}))
}
