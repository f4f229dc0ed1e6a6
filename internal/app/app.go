// Copyright (c) 2026 John Earle
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package app wires the CLI, configuration, and pipeline together and owns
// the process exit semantics.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/workshopdigital/briarbush/internal/config"
	"github.com/workshopdigital/briarbush/internal/graph"
	"github.com/workshopdigital/briarbush/internal/mailer"
	"github.com/workshopdigital/briarbush/internal/pipeline"
	"github.com/workshopdigital/briarbush/internal/schedule"
	"github.com/workshopdigital/briarbush/internal/settings"
)

var rootCmd = &cobra.Command{
	Use:          "briarbush",
	Short:        "Facebook lead email notifier",
	Long:         "Fetches lead-generation records from the Facebook Graph API and delivers ADF/HTML/text notifications by email, once or on a cron schedule",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringP("ads", "a", "", "Ad IDs separated by a comma")
	f.StringP("to", "e", "", "Comma-separated addresses to send the lead to")
	f.StringP("cc", "c", "", "Carbon copy email field")
	f.StringP("bcc", "b", "", "Blind carbon copy email field")
	f.StringP("reply-to", "r", "", "Reply-to email address")
	f.StringP("dealer", "d", "", "Dealer name for the ADF payload")
	f.IntP("interval", "i", 24, "How far back, in hours, to check for leads")
	f.StringP("schedule", "s", "0 * * * *", `Cron schedule, or "now" to run immediately`)
	f.String("vehicle-comment", "", "Vehicle comment used when the lead carries none")
	f.String("customer-comment", "", "Customer comment used when the lead carries none")
	f.BoolP("verbose", "v", false, "Enable debug logging")

	viper.BindPFlags(f)
	viper.SetEnvPrefix("BRIARBUSH")
	viper.AutomaticEnv()
}

func run(cmd *cobra.Command, args []string) error {
	// Structured JSON logging
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	slog.Debug("initializing")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	s, err := settings.Resolve(settings.Params{
		Ads:             viper.GetString("ads"),
		To:              viper.GetString("to"),
		Cc:              viper.GetString("cc"),
		Bcc:             viper.GetString("bcc"),
		ReplyTo:         viper.GetString("reply-to"),
		Dealer:          viper.GetString("dealer"),
		IntervalHours:   viper.GetInt("interval"),
		Schedule:        viper.GetString("schedule"),
		VehicleComment:  viper.GetString("vehicle-comment"),
		CustomerComment: viper.GetString("customer-comment"),
	})
	if errors.Is(err, settings.ErrNothingToDo) {
		// Clean early exit: nothing configured to do is not a failure.
		slog.Warn(err.Error())
		return nil
	}
	if err != nil {
		return err
	}

	// A malformed cron expression is fatal here, before any network call.
	lookback, err := schedule.Lookback(s)
	if err != nil {
		return err
	}

	slog.Debug("initialization complete",
		"ads", s.AdIDs,
		"to", s.To,
		"dealer", s.Dealer,
		"schedule", s.Schedule,
		"interval_hours", lookback.Hours(),
	)

	source := graph.NewClient(
		&http.Client{Timeout: 30 * time.Second},
		cfg.GraphBaseURL,
		cfg.AccessToken,
	)
	sender := mailer.NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey)

	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		Source:   source,
		Sender:   sender,
		Settings: s,
		Lookback: lookback,
		From:     cfg.From,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.Immediate() {
		return runner.Run(ctx)
	}

	// Recurring mode: the process stays resident and a failed run waits for
	// the next fire time.
	return schedule.NewRunner(s.Schedule, func() {
		if err := runner.Run(ctx); err != nil {
			slog.Error("scheduled run failed", "dealer", s.Dealer, "error", err)
		}
	}).Run(ctx)
}

// Execute runs the root command. Any error exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
