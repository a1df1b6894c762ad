package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mshoaibkhan0786/Mess-Site/internal/accounts"
	"github.com/mshoaibkhan0786/Mess-Site/internal/audit"
	"github.com/mshoaibkhan0786/Mess-Site/internal/auth"
	"github.com/mshoaibkhan0786/Mess-Site/internal/db"
	"github.com/mshoaibkhan0786/Mess-Site/internal/feed"
	"github.com/mshoaibkhan0786/Mess-Site/internal/llm"
	"github.com/mshoaibkhan0786/Mess-Site/internal/mess"
	"github.com/mshoaibkhan0786/Mess-Site/internal/middleware"
	"github.com/mshoaibkhan0786/Mess-Site/internal/storage"
	"github.com/mshoaibkhan0786/Mess-Site/internal/uploads"
	"github.com/mshoaibkhan0786/Mess-Site/internal/ws"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"MONGO_URI",
		"OWNER_RECOVERY_CODE",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	authCfg := auth.Config{
		EmailDomain:       envOr("EMAIL_DOMAIN", "mitmess.com"),
		OwnerRecoveryCode: os.Getenv("OWNER_RECOVERY_CODE"),
		OwnerName:         envOr("OWNER_NAME", "M Shoaib Khan"),
	}

	// ───────────────────────── DB ─────────────────────────
	database := db.ConnectMongo()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewMongoUserRepository(database)
	identityProvider := auth.NewMongoIdentityProvider(database)
	messRepo := mess.NewMongoRepository(database)
	auditRepo := audit.NewMongoRepository(database)

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(userRepo, identityProvider, auditRepo, authCfg)
	messService := mess.NewService(messRepo)
	accountService := accounts.NewService(userRepo, identityProvider, messRepo, auditRepo, authCfg)
	uploadService := uploads.NewService(messService, r2Client, llm.NewGeminiClient(), auditRepo)
	feedService := feed.NewService(feed.NewClient(), messService, auditRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	authHandler := auth.NewHandler(authService)
	messHandler := mess.NewHandler(messService, auditRepo)
	accountHandler := accounts.NewHandler(accountService)
	uploadHandler := uploads.NewHandler(uploadService)
	feedHandler := feed.NewHandler(feedService)

	// ───────────────────────── AUTH ROUTES ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)

		session := authGroup.Group("/session")
		session.Use(middleware.AuthMiddleware())
		{
			session.GET("", authHandler.Session)
		}
	}

	// ───────────────────────── PUBLIC DIRECTORY ─────────────────────────
	r.GET("/messes", messHandler.List)
	r.GET("/messes/:id", messHandler.Get)

	// ───────────────────────── LIVE FEED ─────────────────────────
	hub := ws.NewHub()
	r.GET("/ws/messes", func(c *gin.Context) {
		hub.Serve(c.Writer, c.Request)
	})

	watchCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	go mess.RunWatcher(watchCtx, messRepo, messService, hub)

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	{
		// Menu updates: mess_admin for its own mess, super_admin for any.
		// Ownership is checked in the upload service.
		admin.POST("/messes/:id/menu", uploadHandler.Upload)

		super := admin.Group("")
		super.Use(middleware.RequireRole(auth.RoleSuperAdmin))
		{
			super.POST("/messes", messHandler.Create)
			super.POST("/feed/sync", feedHandler.Sync)

			super.GET("/accounts", accountHandler.List)
			super.POST("/accounts", accountHandler.Create)
			super.DELETE("/accounts/:id", accountHandler.Delete)

			super.GET("/audit", accountHandler.AuditLog)
			super.POST("/reset", accountHandler.Reset)
		}
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	if err := r.Run(":8000"); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
