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

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email"`    // Login email
	Password string `json:"password"` // Plaintext password, compared against the stored hash
}

// SignupHandler validates a full payload, checks uniqueness, hashes the
// password and creates the user, returning it together with a bearer token
func SignupHandler(users store.UserStore, cache *utils.Cache, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.SignupInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}
		// Validate before any store access
		if violations := validation.ValidateSignup(in); len(violations) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Validation error",
				"errors":  violations,
			})
			return
		}
		ctx := c.Request.Context()
		email := domain.NormalizeEmail(in.Email)
		// Application-side existence check; email collisions win over
		// username collisions when both apply
		existing, err := users.FindByUsernameOrEmail(ctx, in.Username, email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error creating user",
				"error":   err.Error(),
			})
			return
		}
		if existing != nil {
			message := "Username already exists"
			if existing.Email == email {
				message = "Email already exists"
			}
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
			return
		}
		// Explicit mutation: hashing and timestamps happen here
		user, err := domain.NewUser(in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error creating user",
				"error":   err.Error(),
			})
			return
		}
		created, err := users.Insert(ctx, user)
		// Two concurrent signups can both pass the existence check and race
		// at insert time; the unique index decides, and the loser surfaces
		// as the same 400 as the pre-check
		var dup *store.DuplicateKeyError
		if errors.As(err, &dup) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": duplicateMessage(dup.Field)})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error creating user",
				"error":   err.Error(),
			})
			return
		}
		token, err := utils.GenerateJWT(created.ID.Hex(), jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error creating user",
				"error":   err.Error(),
			})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  created.ID.Hex(),
			"username": created.Username,
			"role":     created.Role,
		}).Info("User created")
		invalidateStatsCache(ctx, cache)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User created successfully",
			"data": gin.H{
				"user":  created, // Password is excluded by the model's JSON tags
				"token": "Bearer " + token,
			},
		})
	}
}

// LoginHandler authenticates by email and password and returns a bearer
// token with a minimal user projection. Unknown email and wrong password
// produce the identical message so callers cannot enumerate users.
func LoginHandler(users store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}
		user, err := users.FindByEmail(c.Request.Context(), domain.NormalizeEmail(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error during login",
				"error":   err.Error(),
			})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(req.Password, user.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.ID.Hex(), jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error during login",
				"error":   err.Error(),
			})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID.Hex(),
			"username": user.Username,
		}).Info("User logged in")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"user":  user.Profile(), // id, username, email, role only
				"token": "Bearer " + token,
			},
		})
	}
}
