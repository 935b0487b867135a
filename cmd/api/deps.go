package main

import (
	"context"
	"log"
	"time"

	"tiis/internal/domain/fraud"
	"tiis/internal/infrastructure/model"
	"tiis/internal/infrastructure/postgres"
	httphandlers "tiis/internal/interfaces/http"
	"tiis/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	PredictHandler *httphandlers.PredictHandler
	FlaggedHandler *httphandlers.FlaggedHandler

	// Core service
	InspectionService *fraud.Service
}

// NewDependencies initializes all application dependencies. The two classifier
// clients and the database handle are created once here and injected; nothing
// reaches them through package globals.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repository and bootstrap schema
	flaggedRepo := postgres.NewFlaggedTransactionRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := flaggedRepo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize classifier clients
	svmClient := model.NewClient("svm", cfg.Models.SVMURL, cfg.Models.Timeout)
	rfClient := model.NewClient("random forest", cfg.Models.RandomForestURL, cfg.Models.Timeout)
	log.Printf("Classifier endpoints: svm=%s random-forest=%s", cfg.Models.SVMURL, cfg.Models.RandomForestURL)

	// Initialize scorer and service
	scorer := fraud.NewScorer(cfg.Scoring.OddHours)
	inspectionService := fraud.NewService(flaggedRepo, svmClient, rfClient, scorer)

	// Initialize handlers
	predictHandler := httphandlers.NewPredictHandler(inspectionService)
	flaggedHandler := httphandlers.NewFlaggedHandler(inspectionService)

	return &Dependencies{
		DB:                db,
		PredictHandler:    predictHandler,
		FlaggedHandler:    flaggedHandler,
		InspectionService: inspectionService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
