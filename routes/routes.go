package routes

import (
	"net/http"
	"time"

	"globaled/handlers"
	"globaled/middleware"
	"globaled/models"
	"globaled/services/session"
	"globaled/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSessionRoutes registers the demo session endpoints.
func RegisterSessionRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	s := api.Group("/session")
	{
		s.GET("", hb.Session.GetSessionHandler)
		s.POST("/switch-role", hb.Session.SwitchRoleHandler)
		s.PUT("/lang", hb.Session.SetLangHandler)
	}
}

// RegisterMentorRoutes registers the mentor directory.
func RegisterMentorRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	m := api.Group("/mentors")
	{
		m.GET("", hb.Mentor.ListMentorsHandler)
		m.GET("/facets", hb.Mentor.MentorFacetsHandler)
		m.GET("/:id", hb.Mentor.GetMentorHandler)
		m.GET("/:id/reviews", hb.Mentor.GetReviewsHandler)
	}
}

// RegisterPaymentRoutes registers payment plans and payment methods.
func RegisterPaymentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	p := api.Group("/payments")
	{
		p.GET("/plans", hb.Payment.ListPlansHandler)
		p.GET("/plans/:planID", hb.Payment.GetPlanHandler)
		p.GET("/plans/:planID/milestones/:milestoneID/qr", hb.Payment.MilestoneQRHandler)

		// Only students hold payment methods and release funds.
		student := p.Group("")
		student.Use(middleware.RequireRole(models.RoleStudent))
		student.POST("/plans/:planID/milestones/:milestoneID/release", hb.Payment.ReleaseMilestoneHandler)
		student.GET("/methods", hb.Payment.ListMethodsHandler)
		student.POST("/methods/alipay", hb.Payment.BindAlipayHandler)
		student.POST("/methods/card", hb.Payment.AddCardHandler)
	}
}

// RegisterAIRoutes registers AI assistant endpoints.
func RegisterAIRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	a := api.Group("/ai")
	{
		a.GET("/conversations", hb.AI.ListConversationsHandler)
		a.POST("/conversations", hb.AI.NewConversationHandler)
		a.GET("/conversations/:id", hb.AI.GetConversationHandler)
		a.POST("/conversations/:id/messages", hb.AI.SendMessageHandler)
		a.GET("/conversations/:id/stream", hb.AI.StreamMessageHandler)
		a.POST("/conversations/:id/analysis", hb.AI.RequestAnalysisHandler)
		a.POST("/writing/analyze", hb.AI.AnalyzeWritingHandler)
	}
}

// RegisterCommunityRoutes registers the community boards and direct chat.
func RegisterCommunityRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/community/posts", hb.Community.ListPostsHandler)
	api.POST("/community/posts", hb.Community.CreatePostHandler)

	api.GET("/chats/:peerID", hb.Chat.ChatHistoryHandler)
	api.POST("/chats/:peerID", hb.Chat.SendChatHandler)
}

// RegisterHealthRoute registers a health-check endpoint and the metrics endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm GlobalEd", "dependencies": utils.GetHealthStatus()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, manager *session.Manager) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.SessionMiddleware(manager))
	RegisterSessionRoutes(api, hb)
	RegisterMentorRoutes(api, hb)
	RegisterPaymentRoutes(api, hb)
	RegisterAIRoutes(api, hb)
	RegisterCommunityRoutes(api, hb)
}
