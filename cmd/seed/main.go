package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"artfeeds/internal/config"
	"artfeeds/internal/db"
	"artfeeds/internal/model"
	"artfeeds/internal/repository"
	"artfeeds/internal/service"
)

// defaultCategories is the fixed list offered at registration time.
var defaultCategories = []string{
	"Sports",
	"Politics",
	"Space",
	"Technology",
	"Health",
	"Travel",
	"Food",
	"Entertainment",
	"Science",
	"Business",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.Category{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	categoryService := service.NewCategoryService(repository.NewCategoryRepository(gormDB))

	count, err := categoryService.Seed(context.Background(), defaultCategories)
	if err != nil {
		log.Fatalf("seed categories: %v", err)
	}

	log.Printf("seed completed: %d categories ensured", count)
}
