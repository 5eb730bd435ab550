package web

import (
	"phishdetect/features/model"
	"phishdetect/features/predict"
	"phishdetect/internal/config"

	"github.com/rs/zerolog/log"
)

type Services struct {
	PredictionService *predict.Service
}

// NewServices wires the prediction service. A missing or corrupt model
// artifact is not fatal at startup: the service comes up degraded and
// answers 503 until a valid artifact is in place.
func NewServices() (*Services, error) {
	cfg := config.GetConfig()

	booster, err := model.Load(cfg.Model.Path)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Model.Path).Msg("Model artifact unavailable; serving degraded")
		return &Services{PredictionService: predict.NewService(nil)}, nil
	}

	log.Info().
		Str("path", cfg.Model.Path).
		Int("features", len(booster.Schema())).
		Msg("Model artifact loaded")

	return &Services{PredictionService: predict.NewService(booster)}, nil
}
