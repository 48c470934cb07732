package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/judgeboard/internal/domain/model"
	"github.com/okian/judgeboard/internal/simulate"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Judge a generated event against a running server",
	Long: `Reset the server, upload a generated roster, judge every run through the
HTTP API (live athlete, concurrent judges, occasional re-runs) and check the
served ranking against a local computation.

The server's scores are cleared. Do not point this at a live event.`,
	RunE: runSimulate,
}

func init() {
	d := simulate.DefaultConfig()
	f := simulateCmd.Flags()
	f.String("url", d.BaseURL, "base URL of the server")
	f.Uint64("seed", d.Seed, "seed for the score generator")
	f.Int("categories", d.Categories, "number of categories")
	f.Int("athletes", d.Athletes, "athletes per category")
	f.Float64("rerun-rate", d.RerunRate, "probability that a run gets a re-run")
	f.Float64("missing-rate", d.MissingRate, "probability that a judge skips an attempt")
	f.Int("workers", d.Workers, "concurrent score submissions")
	f.Float64("rate", d.RateLimit, "maximum requests per second (0 for no limit)")
	f.Duration("timeout", d.Timeout, "HTTP request timeout")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f := cmd.Flags()
	sc := simulate.DefaultConfig()
	sc.BaseURL, _ = f.GetString("url")
	sc.Seed, _ = f.GetUint64("seed")
	sc.Categories, _ = f.GetInt("categories")
	sc.Athletes, _ = f.GetInt("athletes")
	sc.RerunRate, _ = f.GetFloat64("rerun-rate")
	sc.MissingRate, _ = f.GetFloat64("missing-rate")
	sc.Workers, _ = f.GetInt("workers")
	sc.RateLimit, _ = f.GetFloat64("rate")
	sc.Timeout, _ = f.GetDuration("timeout")
	sc.Judges = make([]model.JudgeRole, 0, len(cfg.Judges))
	for _, j := range cfg.Judges {
		sc.Judges = append(sc.Judges, model.JudgeRole(j))
	}

	report, err := simulate.Run(ctx, sc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "verified %d athletes (%d scored), %d submissions, %d re-runs in %s; leader bib %s\n",
		report.Athletes, report.Scored, report.Submissions, report.Reruns, report.Duration.Round(time.Millisecond), report.Leader)
	return nil
}
