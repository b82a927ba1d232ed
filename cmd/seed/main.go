package main

import (
	"context"
	"log"
	"os"

	"cmms-dashboard-be/internal/pkg/apperror"
	"cmms-dashboard-be/internal/repository/unitofwork"
	"cmms-dashboard-be/pkg/admin/feature"
	"cmms-dashboard-be/pkg/builder"
	"cmms-dashboard-be/pkg/database"

	"github.com/joho/godotenv"
)

// Stores the example features so a fresh postgres installation has something in the sidebar.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	manager := feature.NewManager()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	log.Println("Seeding example features...")

	if err := uow.Begin(ctx); err != nil {
		log.Fatal("Error: Failed to begin transaction:", err)
	}

	for _, t := range builder.DefaultTemplates() {
		_, err := manager.GetBySlug(ctx, uow, t.Feature.Slug)
		if err == nil {
			log.Printf("Feature '%s' already exists, skipping...", t.Feature.Slug)
			continue
		}
		if !apperror.HasCode(err, apperror.CodeFeatureNotFound) {
			uow.Rollback()
			log.Fatalf("Error: Failed to look up feature '%s': %v", t.Feature.Slug, err)
		}

		created, err := manager.Create(ctx, uow, t.Feature)
		if err != nil {
			uow.Rollback()
			log.Fatalf("Error creating feature '%s': %v", t.Feature.Slug, err)
		}
		log.Printf("Created feature: %s (%s)", created.Name, created.Href())
	}

	if err := uow.Commit(); err != nil {
		log.Fatal("Error: Failed to commit seed:", err)
	}
	log.Println("Feature seeding completed!")
}
