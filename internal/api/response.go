// Package api contains the HTTP handlers for the user management API and
// the LiveKit grant endpoint. Every response uses the same JSON envelope:
// {success, data?, message?, error?, errors?, pagination?}.
package api

import (
	"context"
	"strconv"
	"time"

	"github.com/Tarakeshp07/livekit-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// Default page size for list and search
const DefaultPageLimit = 10

// Pagination is the envelope block describing one page of results
type Pagination struct {
	CurrentPage int   `json:"currentPage"` // Requested page, 1-based
	TotalPages  int   `json:"totalPages"`  // ceil(total/limit)
	TotalUsers  int64 `json:"totalUsers"`  // Total matching records
	HasNext     bool  `json:"hasNext"`     // page < totalPages
	HasPrev     bool  `json:"hasPrev"`     // page > 1
}

// newPagination computes the pagination block for one page
func newPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit)) // ceil(total/limit)
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalUsers:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// pageParams reads page and limit from the query string, falling back to
// page 1 / limit 10 on absent or unusable values
func pageParams(c *gin.Context) (page, limit int) {
	page = 1
	limit = DefaultPageLimit
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	return page, limit
}

// Stats cache settings (only active when a Redis client is configured)
const (
	statsCacheKey = "users:stats"
	statsCacheTTL = 60 * time.Second
)

// invalidateStatsCache drops the cached stats entry after a mutation
func invalidateStatsCache(ctx context.Context, cache *utils.Cache) {
	_ = cache.Delete(ctx, statsCacheKey) // Best effort
}
