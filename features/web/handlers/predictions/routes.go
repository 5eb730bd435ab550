package predictions

import (
	"phishdetect/features/predict"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func MapPredictionRoutes(e *echo.Echo, svc *predict.Service) error {
	handler := NewPredictionHandler(svc)

	g := e.Group("/predictions")
	g.POST("/url", handler.Predict)

	log.Info().Msg("Prediction routes mapped successfully. at /predictions/url")

	return nil
}
