package predictions

type PredictionInput struct {
	URL string `json:"url" validate:"required"`
}
