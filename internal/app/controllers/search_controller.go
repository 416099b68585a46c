package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/app/services"
	"github.com/campuslink/clubnet/internal/middleware"
)

// SearchController serves cross-entity search.
type SearchController struct {
	searchService services.SearchService
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService services.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// Search handles GET /api/search?query=...&filter=all|user|club|post
func (sc *SearchController) Search(c *gin.Context) {
	result, err := sc.searchService.Search(c.Request.Context(), c.Query("query"), c.Query("filter"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Search results", result))
}
