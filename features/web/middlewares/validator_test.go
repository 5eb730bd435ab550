package middlewares

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	URL   string `json:"url" validate:"required"`
	Limit int    `json:"limit" validate:"min=0"`
}

func TestRequestValidator(t *testing.T) {
	e := echo.New()
	ConfigureValidator(e)

	assert.NoError(t, e.Validator.Validate(&sampleInput{URL: "http://example.com"}))

	err := e.Validator.Validate(&sampleInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL")

	err = e.Validator.Validate(&sampleInput{URL: "http://example.com", Limit: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Limit")
}
