package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dskvich/impulsyia-backend/pkg/api/middleware"
	"github.com/dskvich/impulsyia-backend/pkg/api/response"
)

func Health(c *gin.Context) {
	response.WriteSuccessResponse(c, http.StatusOK, gin.H{
		"status":  "ok",
		"message": "ImpulsyIA API is running",
	})
}

// Token is a placeholder until login is delegated to Supabase on the frontend.
func Token(c *gin.Context) {
	response.WriteSuccessResponse(c, http.StatusOK, gin.H{
		"access_token": "fake-jwt-token",
		"token_type":   "bearer",
	})
}

// ChatStream answers with a fixed message; there is no streaming transport yet.
func ChatStream(c *gin.Context) {
	body := gin.H{"message": "Streaming response from AI agent"}
	if user, ok := middleware.UserFromContext(c); ok {
		body["user_id"] = user.ID
	}
	response.WriteSuccessResponse(c, http.StatusOK, body)
}

// PaymentWebhook acknowledges MercadoPago notifications without processing them.
func PaymentWebhook(c *gin.Context) {
	response.WriteSuccessResponse(c, http.StatusOK, gin.H{"status": "received"})
}
