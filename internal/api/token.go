package api

import (
	"net/http"

	"github.com/Tarakeshp07/livekit-server/internal/utils"

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/livekit/protocol/auth" // LiveKit access token signing
	"github.com/sirupsen/logrus"       // Structured logging
)

// Lengths of the generated room/identity suffixes
const (
	randomRoomLen     = 6
	randomIdentityLen = 4
)

// TokenHandler issues a LiveKit room-access token. Room and identity default
// to randomly generated names when omitted. Every grant carries the full
// capability set: join, publish, subscribe, publish-data.
func TokenHandler(apiKey, apiSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		room := c.Query("room")
		if room == "" {
			suffix, err := utils.RandomString(randomRoomLen)
			if err != nil {
				tokenError(c, err)
				return
			}
			room = "room-" + suffix
		}
		identity := c.Query("identity")
		if identity == "" {
			suffix, err := utils.RandomString(randomIdentityLen)
			if err != nil {
				tokenError(c, err)
				return
			}
			identity = "identity-" + suffix
		}
		grant := &auth.VideoGrant{RoomJoin: true, Room: room}
		grant.SetCanPublish(true)
		grant.SetCanSubscribe(true)
		grant.SetCanPublishData(true)
		token, err := auth.NewAccessToken(apiKey, apiSecret).
			SetVideoGrant(grant).
			SetIdentity(identity).
			ToJWT()
		if err != nil {
			tokenError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": gin.H{
				"token":    token,
				"roomName": room,
				"identity": identity,
			},
		})
	}
}

// tokenError logs and reports a grant issuance failure
func tokenError(c *gin.Context, err error) {
	logrus.WithField("error", err.Error()).Error("Failed to create token")
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Failed to create token",
		"error":   err.Error(),
	})
}

// IndexHandler describes the available endpoints
func IndexHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "LiveKit token server with User Management API",
			"data": gin.H{
				"livekit": "GET /token?room=<room>&identity=<id>",
				"users": gin.H{
					"getAll":  "GET /api/users",
					"getById": "GET /api/users/:id",
					"signup":  "POST /api/users/signup",
					"login":   "POST /api/users/login",
					"update":  "PUT /api/users/:id",
					"delete":  "DELETE /api/users/:id",
					"search":  "GET /api/users/search?q=<query>",
					"stats":   "GET /api/users/stats",
				},
			},
		})
	}
}
