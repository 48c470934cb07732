// Package simulate drives a running judgeboard server through a complete
// generated event and checks the served ranking against a local computation.
package simulate

import (
	"time"

	"github.com/okian/judgeboard/internal/domain/model"
)

// Config holds configuration for a simulated event.
type Config struct {
	BaseURL     string            // Base URL of the service
	Categories  int               // Number of categories
	Athletes    int               // Athletes per category
	Judges      []model.JudgeRole // Judge panel the server is configured with
	Seed        uint64            // Seed for the score generator
	RerunRate   float64           // Probability that a run gets a second attempt
	MissingRate float64           // Probability that a judge never scores an attempt
	Workers     int               // Concurrent score submissions
	RateLimit   float64           // Requests per second; 0 disables pacing
	Timeout     time.Duration     // HTTP request timeout
}

// DefaultConfig returns a small, fully deterministic event.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "http://localhost:9080",
		Categories:  2,
		Athletes:    8,
		Judges:      model.DefaultJudges,
		Seed:        1,
		RerunRate:   0.15,
		MissingRate: 0.05,
		Workers:     4,
		RateLimit:   0,
		Timeout:     10 * time.Second,
	}
}

// Report summarizes a simulation run.
type Report struct {
	Athletes    int
	Submissions int
	Reruns      int
	Scored      int // athletes with a total
	Leader      string
	StartTime   time.Time
	Duration    time.Duration
}
