package handler

import (
	"net/http"

	"itrfiling/internal/service"
	"itrfiling/pkg/pagination"
	"itrfiling/pkg/response"

	"github.com/gin-gonic/gin"
)

type FilingHandler struct {
	filingService service.FilingService
}

func NewFilingHandler(filingService service.FilingService) *FilingHandler {
	return &FilingHandler{filingService: filingService}
}

func (h *FilingHandler) RegisterRoutes(router *gin.RouterGroup) {
	filings := router.Group("/api/filings")
	{
		filings.GET("", h.ListFilings)
		filings.POST("", h.CreateFiling)
		filings.GET("/:id", h.GetFiling)
		filings.PUT("/:id", h.UpdateFiling)
		filings.DELETE("/:id", h.DeleteFiling)
		filings.GET("/:id/comparison", h.CompareRegimes)
	}
}

// ListFilings returns filings newest first
// @Summary      List filings
// @Description  Retrieves a paginated list of filings
// @Tags         filings
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Page{items=[]service.FilingResponse}}
// @Failure      500    {object}  response.Response
// @Router       /api/filings [get]
func (h *FilingHandler) ListFilings(c *gin.Context) {
	p := pagination.Parse(c)

	filings, total, err := h.filingService.ListFilings(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, filings, total, p.Page, p.Limit))
}

// CreateFiling opens a new filing for a taxpayer and financial year
// @Summary      Create filing
// @Tags         filings
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateFilingRequest  true  "Create Filing Payload"
// @Success      201      {object}  response.Response{data=service.FilingResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/filings [post]
func (h *FilingHandler) CreateFiling(c *gin.Context) {
	var req service.CreateFilingRequest
	if !bindJSON(c, &req) {
		return
	}

	filing, err := h.filingService.CreateFiling(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, filing))
}

// GetFiling
// @Summary      Get filing
// @Tags         filings
// @Produce      json
// @Param        id   path      string  true  "Filing ID"
// @Success      200  {object}  response.Response{data=service.FilingResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/filings/{id} [get]
func (h *FilingHandler) GetFiling(c *gin.Context) {
	filing, err := h.filingService.GetFiling(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, filing))
}

// UpdateFiling changes the age category or advance tax of a filing
// @Summary      Update filing
// @Description  Updates age category and advance tax paid. An omitted advance tax clears it.
// @Tags         filings
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Filing ID"
// @Param        payload  body      service.UpdateFilingRequest  true  "Update Filing Payload"
// @Success      200      {object}  response.Response{data=service.FilingResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/filings/{id} [put]
func (h *FilingHandler) UpdateFiling(c *gin.Context) {
	var req service.UpdateFilingRequest
	if !bindJSON(c, &req) {
		return
	}

	filing, err := h.filingService.UpdateFiling(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, filing))
}

// DeleteFiling removes a filing with all of its records
// @Summary      Delete filing
// @Tags         filings
// @Produce      json
// @Param        id   path      string  true  "Filing ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/filings/{id} [delete]
func (h *FilingHandler) DeleteFiling(c *gin.Context) {
	if err := h.filingService.DeleteFiling(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Filing deleted successfully"}))
}

// CompareRegimes computes the filing under both regimes
// @Summary      Compare tax regimes
// @Description  Computes tax under the old and new regimes from the stored records and recommends the cheaper one
// @Tags         filings
// @Produce      json
// @Param        id   path      string  true  "Filing ID"
// @Success      200  {object}  response.Response{data=service.ComparisonResponse}
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/filings/{id}/comparison [get]
func (h *FilingHandler) CompareRegimes(c *gin.Context) {
	res, err := h.filingService.CompareRegimes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
