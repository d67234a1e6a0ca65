package handler

import (
	"errors"
	"net/http"

	"chartview/internal/model"
	"chartview/internal/repository"
	"chartview/internal/service"
	"chartview/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChartHandler handles chart page HTTP requests
type ChartHandler struct {
	collections *service.CollectionService
	charts      *service.ChartService
	presenter   *service.Presenter
	perPage     int
	maxPerPage  int
	logger      *zap.Logger
}

// NewChartHandler creates a new chart handler
func NewChartHandler(
	collections *service.CollectionService,
	charts *service.ChartService,
	presenter *service.Presenter,
	perPage int,
	maxPerPage int,
	logger *zap.Logger,
) *ChartHandler {
	return &ChartHandler{
		collections: collections,
		charts:      charts,
		presenter:   presenter,
		perPage:     perPage,
		maxPerPage:  maxPerPage,
		logger:      logger,
	}
}

// ChartSlotResponse is one chart slot in a page response. Skipped slots
// carry no instructions; the front end leaves them empty.
type ChartSlotResponse struct {
	Symbol       model.Symbol            `json:"symbol"`
	Skipped      bool                    `json:"skipped"`
	Instructions []model.DrawInstruction `json:"instructions,omitempty"`
}

// GetChartPage handles assembling and rendering one page of charts
// GET /api/v1/collections/:name/charts
func (h *ChartHandler) GetChartPage(c *gin.Context) {
	name := c.Param("name")
	search := c.Query("search")
	params := utils.ParsePaginationParams(c, h.perPage, h.maxPerPage)

	symbols, err := h.collections.ListSymbols(c.Request.Context(), name, search)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionNotFound) {
			utils.SendErrorResponse(c, http.StatusNotFound, "Collection not found")
			return
		}
		h.logger.Error("Failed to list symbols for chart page",
			zap.Error(err),
			zap.String("collection", name))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve symbols")
		return
	}

	// Slice out the visible page before doing any fetching.
	offset := utils.CalculateOffset(params.Page, params.Limit)
	if offset > len(symbols) {
		offset = len(symbols)
	}
	end := offset + params.Limit
	if end > len(symbols) {
		end = len(symbols)
	}
	pageSymbols := symbols[offset:end]

	slots := h.charts.BuildPage(c.Request.Context(), pageSymbols)

	resp := make([]ChartSlotResponse, len(slots))
	for i, slot := range slots {
		resp[i] = ChartSlotResponse{
			Symbol:       slot.Symbol,
			Skipped:      slot.Bundle == nil,
			Instructions: h.presenter.Render(slot.Bundle, slot.Symbol),
		}
	}

	utils.SendPaginatedResponse(c, http.StatusOK, resp, len(symbols), params.Page, params.Limit)
}
