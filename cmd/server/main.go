package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/auth"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/board"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/comment"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/config"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/follow"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/image"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/like"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/middleware"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/pin"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/save"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/storage"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("DATABASE_URL manquant")
	}

	database.Connect(cfg.DBUrl)

	if err := database.DB.AutoMigrate(
		&user.User{},
		&pin.Pin{},
		&pin.Tag{},
		&board.Board{},
		&save.Save{},
		&like.Like{},
		&follow.Follow{},
		&comment.Comment{},
	); err != nil {
		log.Fatalf("Erreur migration : %v", err)
	}

	if err := storage.InitS3(); err != nil {
		log.Fatalf("Erreur initialisation S3 : %v", err)
	}

	limiter := middleware.NewIPRateLimiter(rate.Limit(10), 30)

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(limiter))

	// Inscription & Connexion
	api.POST("/signup", auth.Signup)
	api.POST("/login", auth.Login)

	// Routes publiques, viewer optionnel
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware())
	public.GET("/pins", pin.GetPins)
	public.GET("/pins/:id", pin.GetPinByID)
	public.GET("/pins/:id/recommended", pin.GetRecommendedPins)
	public.GET("/pins/:id/comments", comment.GetComments)
	public.GET("/pins/:id/signed-url", pin.GetSignedURL)
	public.GET("/pins/:id/download", pin.DownloadPin)
	public.GET("/likes/:pinId", like.GetLikeStatus)
	public.GET("/users/:id/stats", user.GetUserStats)
	public.GET("/users/:id/follow-data", follow.GetFollowData)
	public.GET("/followers/:id", follow.GetFollowers)

	// Routes authentifiées
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.POST("/pins", pin.CreatePin)
	protected.DELETE("/pins/:id", pin.DeletePin)
	protected.POST("/pins/:id/comments", comment.CreateComment)
	protected.DELETE("/comments/:id", comment.DeleteComment)
	protected.POST("/saves", save.ToggleSave)
	protected.GET("/saves/:pinId", save.GetSaveStatus)
	protected.GET("/profile", user.GetMe)
	protected.PUT("/profile", user.UpdateMe)
	protected.GET("/profile/saved-pins", save.GetSavedPins)
	protected.POST("/likes/:pinId", like.ToggleLike)
	protected.POST("/boards", board.CreateBoard)
	protected.GET("/boards", board.GetBoards)
	protected.GET("/boards/:boardId", board.GetBoard)
	protected.PATCH("/boards/:boardId", board.UpdateBoard)
	protected.DELETE("/boards/:boardId", board.DeleteBoard)
	protected.POST("/boards/:boardId", board.AttachPin)
	protected.POST("/follow", follow.FollowUser)
	protected.DELETE("/follow", follow.UnfollowUser)
	protected.GET("/following", follow.GetFollowing)
	protected.POST("/images/upload", image.RequestUploadURL)

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Erreur serveur : %v", err)
	}
}
