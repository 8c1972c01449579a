// File: globaled/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"globaled/config"
	"globaled/database"
	chatRepo "globaled/database/repository/chat"
	mentorRepo "globaled/database/repository/mentor"
	planRepo "globaled/database/repository/plan"
	postRepo "globaled/database/repository/post"
	userRepoPkg "globaled/database/repository/user"
	"globaled/handlers"
	"globaled/middleware"
	"globaled/routes"
	"globaled/services/chat"
	"globaled/services/community"
	ai "globaled/services/intelligence"
	"globaled/services/mentor"
	"globaled/services/payment"
	"globaled/services/session"
	"globaled/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories, seeded fresh on every start.
	fixtures := database.LoadFixtures()
	mentors := mentorRepo.NewMemoryMentorRepo(fixtures.Mentors, fixtures.Reviews)
	userRepo := userRepoPkg.NewMemoryUserRepo(fixtures.Students, fixtures.Mentors)
	plans := planRepo.NewMemoryPlanRepo(fixtures.Plans)
	posts := postRepo.NewMemoryPostRepo(fixtures.StudentPosts, fixtures.MentorPosts)
	chats := chatRepo.NewMemoryChatRepo(fixtures.Chats)

	// services.
	sessionManager := session.NewManager(userRepo, database.DemoStudentID, database.DemoMentorID, config.AppConfig.DefaultLang)
	mentorService := &mentor.DefaultMentorService{Repo: mentors}
	paymentService := payment.NewPaymentService(logger.Named("payment"), plans, userRepo)
	communityService := community.NewCommunityService(posts)
	chatService := chat.NewChatService(logger.Named("chat"), chats, userRepo)

	var generator ai.Generator
	if gemini, err := ai.NewGeminiClient(rootCtx, config.AppConfig.GeminiKey(), config.AppConfig.GeminiModel); err != nil {
		logger.Warn("main: AI assistant disabled", zap.Error(err))
	} else {
		defer gemini.Close()
		generator = gemini
	}

	var store ai.ConversationStore = ai.NewMemoryConversationStore()
	if config.AppConfig.ConversationStore == "redis" {
		if err := utils.InitAIContextCache(); err != nil {
			logger.Sugar().Fatalf("main: failed to initialize conversation store: %v", err)
		}
		store = ai.NewRedisConversationStore(utils.GetAIContextCacheClient(), config.AppConfig.ConversationTTL(), logger.Named("ai.store"))
	}

	aiService := ai.NewDefaultAIService(generator, store, mentorService, logger.Named("ai"), config.AppConfig.AIRequestTimeout())
	if err := aiService.Seed(rootCtx, database.DemoStudentID, fixtures.Conversations); err != nil {
		logger.Sugar().Fatalf("main: failed to seed conversations: %v", err)
	}

	utils.StartHealthMonitor(rootCtx, utils.GetAIContextCacheClient(), aiService.Configured(), time.Minute)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		Session:   handlers.NewSessionHandler(sessionManager),
		Mentor:    handlers.NewMentorHandler(mentorService),
		Payment:   handlers.NewPaymentHandler(paymentService),
		AI:        handlers.NewAIHandler(aiService),
		Community: handlers.NewCommunityHandler(communityService),
		Chat:      handlers.NewChatHandler(chatService),
	}
	routes.RegisterRoutes(router, handlerBundle, sessionManager)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if client := utils.GetAIContextCacheClient(); client != nil {
		_ = client.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
