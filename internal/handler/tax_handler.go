package handler

import (
	"net/http"

	"itrfiling/internal/service"
	"itrfiling/pkg/response"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct {
	taxService service.TaxService
}

func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	tax := router.Group("/api/tax")
	{
		tax.GET("/schedules", h.GetSchedules)
		tax.POST("/compare", h.Compare)
	}
}

// GetSchedules returns the slab schedules and the statutory options in effect
// @Summary      Get tax schedules
// @Tags         tax
// @Produce      json
// @Success      200  {object}  response.Response{data=service.SchedulesResponse}
// @Router       /api/tax/schedules [get]
func (h *TaxHandler) GetSchedules(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.taxService.Schedules(c.Request.Context())))
}

// Compare runs a what-if comparison without storing anything
// @Summary      Compare regimes for inline data
// @Description  Computes both regimes for income, deductions and transactions given in the request body
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CompareRequest  true  "Filing data"
// @Success      200      {object}  response.Response{data=service.ComparisonResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/tax/compare [post]
func (h *TaxHandler) Compare(c *gin.Context) {
	var req service.CompareRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.taxService.Compare(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
