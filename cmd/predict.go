package cmd

import (
	"encoding/json"
	"fmt"

	"phishdetect/features/model"
	"phishdetect/features/predict"
	"phishdetect/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// PredictCommand scores a single URL from the command line.
var PredictCommand = &cli.Command{
	Name:  "predict",
	Usage: "Score a URL for phishing likelihood",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "url",
			Aliases:  []string{"u"},
			Usage:    "URL to score.",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Output the verdict in JSON format.",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "full",
			Aliases: []string{"f"},
			Usage:   "Enable the page and reputation extractors regardless of config.",
			Value:   false,
		},
	},
	Action: predictURL,
}

func predictURL(c *cli.Context) error {
	cfg := config.GetConfig()

	if c.Bool("full") {
		cfg.Extractor.EnablePage = true
		cfg.Extractor.EnableReputation = true
	}

	booster, err := model.Load(cfg.Model.Path)
	if err != nil {
		return fmt.Errorf("failed to load model artifact: %w", err)
	}

	service := predict.NewService(booster)

	prediction, err := service.Predict(c.Context, c.String("url"))
	if err != nil {
		return fmt.Errorf("failed to score URL: %w", err)
	}

	return printPrediction(c.String("url"), prediction, c.Bool("json"))
}

func printPrediction(url string, prediction *predict.Prediction, asJSON bool) error {
	if asJSON {
		jsonData, err := json.MarshalIndent(prediction, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}

	log.Info().
		Str("URL", url).
		Str("Status", prediction.Status).
		Float64("Probability", prediction.Probability).
		Msg("Prediction")

	return nil
}
