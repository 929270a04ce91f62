package handlers

import (
	"strconv"
	"strings"

	"taxihail/internal/utils"
	"taxihail/pkg/maps"

	"github.com/gin-gonic/gin"
)

const defaultPlaceLimit = 5

type PlaceHandler struct {
	provider maps.Provider
}

func NewPlaceHandler(provider maps.Provider) *PlaceHandler {
	return &PlaceHandler{provider: provider}
}

// Search resolves a free-text query into candidate pickup/drop locations
func (h *PlaceHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.BadRequestResponse(c, "Query parameter 'q' is required")
		return
	}

	limit := defaultPlaceLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 20 {
			utils.BadRequestResponse(c, "Limit must be between 1 and 20")
			return
		}
		limit = parsed
	}

	places, err := h.provider.SearchPlaces(c.Request.Context(), query, limit)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Places retrieved", places)
}
