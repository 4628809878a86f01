package main

import (
	"log"
	"net/http"

	_ "artfeeds/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"artfeeds/internal/auth"
	"artfeeds/internal/cache"
	"artfeeds/internal/config"
	"artfeeds/internal/db"
	"artfeeds/internal/handler"
	"artfeeds/internal/mail"
	"artfeeds/internal/model"
	"artfeeds/internal/repository"
	"artfeeds/internal/router"
	"artfeeds/internal/service"
	"artfeeds/internal/storage"
)

// @title Article Feeds API
// @version 1.0
// @description Article feed API with cookie-based JWT sessions, category preferences, and file attachments.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Article{},
		&model.ArticleReaction{},
		&model.ArticleBlock{},
		&model.Category{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploader, err := storage.NewDiskUploader(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	articleRepo := repository.NewArticleRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	otpStore := auth.NewOTPStore(cacheClient)
	mailer := mail.New(cfg)

	authService := service.NewAuthService(userRepo, jwtService, tokenStore, otpStore, mailer)
	userService := service.NewUserService(userRepo)
	articleService := service.NewArticleService(articleRepo, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	articleHandler := handler.NewArticleHandler(articleService, uploader)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, tokenStore, uploader.Dir(), authHandler, userHandler, articleHandler, categoryHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
