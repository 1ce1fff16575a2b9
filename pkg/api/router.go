// Package api exposes the agent catalog and chat over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dskvich/impulsyia-backend/pkg/api/handler"
	"github.com/dskvich/impulsyia-backend/pkg/api/middleware"
)

type Router struct {
	engine        *gin.Engine
	catalog       handler.AgentCatalog
	runner        handler.ChatRunner
	authenticator middleware.Authenticator
}

func NewRouter(
	catalog handler.AgentCatalog,
	runner handler.ChatRunner,
	authenticator middleware.Authenticator,
	allowedOrigins []string,
) *Router {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.CORS(allowedOrigins),
	)

	r := &Router{
		engine:        engine,
		catalog:       catalog,
		runner:        runner,
		authenticator: authenticator,
	}
	r.setupRoutes()

	return r
}

func (r *Router) setupRoutes() {
	r.engine.GET("/", handler.Health)

	requireUser := middleware.Auth(r.authenticator)
	agents := handler.NewAgents(r.catalog, r.runner)

	api := r.engine.Group("/api")
	{
		agentRoutes := api.Group("/agents")
		{
			agentRoutes.GET("/", agents.List)
			agentRoutes.POST("/:agent_id/chat", requireUser, agents.Chat)
		}

		api.POST("/auth/token", handler.Token)
		api.POST("/chat/stream", requireUser, handler.ChatStream)
		api.POST("/payments/webhook", handler.PaymentWebhook)
	}
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
