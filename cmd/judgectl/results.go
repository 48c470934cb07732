package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/judgeboard/internal/adapters/export"
	service "github.com/okian/judgeboard/internal/app"
	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/domain/types"
	"github.com/okian/judgeboard/pkg/logger"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print the ranking stored in a data file",
	Long: `Rank every athlete in a judgeboard data file and print the result.

Examples:
  # Overall ranking as a table
  judgectl results --data event.json

  # One category as CSV into a file
  judgectl results --data event.json --category slalom --format csv --output slalom.csv`,
	RunE: runResults,
}

func init() {
	f := resultsCmd.Flags()
	f.String("data", "", "data file (default: data_file from config)")
	f.String("format", string(export.FormatTable), "output format: table, csv or json")
	f.String("category", "", "rank a single category on that category alone")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	f := cmd.Flags()

	dataFile, _ := f.GetString("data")
	if dataFile == "" {
		dataFile = cfg.DataFile
	}
	formatName, _ := f.GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dataFile); err != nil {
		return fmt.Errorf("data file: %w", err)
	}

	svc := service.New(
		service.WithDataFile(dataFile),
		service.WithJudges(cfg.Judges),
		service.WithLogger(logger.Named("judgectl")),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	var (
		categories []model.Category
		entries    []types.RankedEntry
	)
	if id, _ := f.GetString("category"); id != "" {
		entries, err = svc.CategoryResults(ctx, id)
		if err != nil {
			return err
		}
		roster, err := svc.Roster(ctx)
		if err != nil {
			return err
		}
		for _, c := range roster {
			if c.ID == id {
				categories = []model.Category{c}
			}
		}
	} else {
		categories, entries, err = svc.Results(ctx)
		if err != nil {
			return err
		}
	}

	var out io.Writer = cmd.OutOrStdout()
	if path, _ := f.GetString("output"); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	return export.Write(out, format, categories, entries)
}
