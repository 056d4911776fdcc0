package api

import (
	"errors"
	"net/http"

	"github.com/Tarakeshp07/livekit-server/internal/domain"
	"github.com/Tarakeshp07/livekit-server/internal/store"
	"github.com/Tarakeshp07/livekit-server/internal/utils"
	"github.com/Tarakeshp07/livekit-server/internal/validation"

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// ListUsersHandler returns a page of users with optional role and
// institutionName filters
func ListUsersHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		filter := store.ListFilter{
			Role:            c.Query("role"),            // Exact match
			InstitutionName: c.Query("institutionName"), // Substring match
		}
		records, total, err := users.FindMany(c.Request.Context(), filter, (page-1)*limit, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error fetching users",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"data":       records,
			"pagination": newPagination(page, limit, total),
		})
	}
}

// GetUserHandler returns a single user by id
func GetUserHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.FindByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if err != nil {
			// Malformed ids land here as well
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error fetching user",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

// UpdateUserHandler applies a partial patch to a user. Only supplied fields
// change; a supplied password is re-hashed before persisting.
func UpdateUserHandler(users store.UserStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch domain.UserPatch // Bind JSON request to the patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}
		// Validate supplied fields before touching the store
		if violations := validation.ValidateUserPatch(&patch); len(violations) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Validation error",
				"errors":  violations,
			})
			return
		}
		// Hash a changed password, refresh updatedAt
		if err := patch.Prepare(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error updating user",
				"error":   err.Error(),
			})
			return
		}
		updated, err := users.UpdateByID(c.Request.Context(), c.Param("id"), &patch)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		var dup *store.DuplicateKeyError
		if errors.As(err, &dup) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": duplicateMessage(dup.Field)})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error updating user",
				"error":   err.Error(),
			})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": updated.ID.Hex(),
		}).Info("User updated")
		invalidateStatsCache(c.Request.Context(), cache)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User updated successfully",
			"data":    updated,
		})
	}
}

// DeleteUserHandler removes a user and echoes the deleted identity
func DeleteUserHandler(users store.UserStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := users.DeleteByID(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error deleting user",
				"error":   err.Error(),
			})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  deleted.ID.Hex(),
			"username": deleted.Username,
		}).Info("User deleted")
		invalidateStatsCache(c.Request.Context(), cache)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User deleted successfully",
			"data": gin.H{
				"id":       deleted.ID.Hex(),
				"username": deleted.Username,
				"email":    deleted.Email,
			},
		})
	}
}

// SearchUsersHandler runs a case-insensitive substring search across
// username, email and institutionName
func SearchUsersHandler(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Search query is required"})
			return
		}
		page, limit := pageParams(c)
		records, total, err := users.FindMany(c.Request.Context(), store.ListFilter{Query: q}, (page-1)*limit, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error searching users",
				"error":   err.Error(),
			})
			return
		}
		// No matches is an empty page, not an error
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"data":       records,
			"pagination": newPagination(page, limit, total),
		})
	}
}

// UserStatsHandler returns collection-wide counters. When Redis is
// configured the result is cached for 60 seconds and invalidated by
// signup/update/delete.
func UserStatsHandler(users store.UserStore, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached domain.UserStats
		if found, err := cache.Get(ctx, statsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cached})
			return
		}
		stats, err := users.Stats(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error fetching user statistics",
				"error":   err.Error(),
			})
			return
		}
		_ = cache.Set(ctx, statsCacheKey, stats, statsCacheTTL) // Best effort
		c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
	}
}

// duplicateMessage maps a colliding unique field to its response message
func duplicateMessage(field string) string {
	if field == "email" {
		return "Email already exists"
	}
	return "Username already exists"
}
