package cmd

import (
	"fmt"

	"phishdetect/features/dataset"
	"phishdetect/features/dataset/repository"
	"phishdetect/internal/config"
	"phishdetect/internal/db"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

// CrawlCommand builds the page-feature training dataset from a labeled URL
// list.
var CrawlCommand = &cli.Command{
	Name:  "crawl",
	Usage: "Crawl labeled URLs and extract page features into the dataset",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "CSV file of url,label pairs. Defaults to the configured input file.",
		},
		&cli.BoolFlag{
			Name:    "export-only",
			Aliases: []string{"e"},
			Usage:   "Skip crawling and only export previously collected rows to CSV.",
			Value:   false,
		},
	},
	Action: crawlDataset,
}

func crawlDataset(c *cli.Context) error {
	dbConn, err := db.GetDB()
	if err != nil {
		return fmt.Errorf("failed to open crawl database: %w", err)
	}
	defer db.DeferClose()

	repo := repository.NewSQLiteRepository(dbConn)
	crawler := dataset.NewCrawler(repo)

	if !c.Bool("export-only") {
		input := c.String("input")
		if input == "" {
			input = config.GetConfig().Crawler.InputFile
		}

		log.Info().Str("input", input).Msg("Starting crawl batch")
		if err := crawler.Run(c.Context, input); err != nil {
			return fmt.Errorf("crawl batch failed: %w", err)
		}
	}

	if err := crawler.Export(c.Context); err != nil {
		return fmt.Errorf("failed to export dataset: %w", err)
	}

	fmt.Println("Dataset exported successfully.")
	return nil
}
