package predictions

import (
	"errors"
	"net/http"

	"phishdetect/features/predict"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// internalErrorMessage is what callers see on unexpected scoring failures.
// The underlying error only goes to the log.
const internalErrorMessage = "An internal error occurred."

type PredictionHandler struct {
	Service *predict.Service
}

func NewPredictionHandler(service *predict.Service) *PredictionHandler {
	return &PredictionHandler{Service: service}
}

// Predict receives a JSON body with a URL, validates it, and returns the
// phishing verdict.
func (h *PredictionHandler) Predict(c echo.Context) error {
	req := &PredictionInput{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"validation_error": err.Error()})
	}

	prediction, err := h.Service.Predict(c.Request().Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, predict.ErrModelUnavailable):
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{"error": err.Error()})
		case errors.Is(err, predict.ErrEmptyURL):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		default:
			log.Error().Err(err).Str("url", req.URL).Msg("Prediction failed")
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": internalErrorMessage})
		}
	}

	return c.JSON(http.StatusOK, prediction)
}
