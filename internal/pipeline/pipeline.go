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

// Package pipeline drives one batch from schedule tick to delivered lead
// notifications: fetch fan-out, aggregate, normalize, render, assemble,
// send. Any error aborts the whole batch; the completion hook always runs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/workshopdigital/briarbush/internal/mailer"
	"github.com/workshopdigital/briarbush/internal/models"
	"github.com/workshopdigital/briarbush/internal/normalize"
	"github.com/workshopdigital/briarbush/internal/payload"
	"github.com/workshopdigital/briarbush/internal/settings"
)

// LeadSource retrieves the raw lead records for one ad ID created after
// the given point in time.
type LeadSource interface {
	FetchLeads(ctx context.Context, adID int64, since time.Time) ([]models.RawLeadEntry, error)
}

// Runner executes the full batch for one schedule tick. It holds no state
// between runs; every run is independent.
type Runner struct {
	source   LeadSource
	sender   mailer.Sender
	settings settings.Settings
	lookback time.Duration
	from     string
	now      func() time.Time
}

// RunnerConfig holds dependencies for the batch runner.
type RunnerConfig struct {
	Source   LeadSource
	Sender   mailer.Sender
	Settings settings.Settings
	Lookback time.Duration
	From     string
}

// NewRunner creates a batch runner.
func NewRunner(cfg RunnerConfig) *Runner {
	return &Runner{
		source:   cfg.Source,
		sender:   cfg.Sender,
		settings: cfg.Settings,
		lookback: cfg.Lookback,
		from:     cfg.From,
		now:      time.Now,
	}
}

// Run executes one batch. All configured ads are fetched concurrently;
// the batch proceeds only once every fetch has completed, and the result
// sequence preserves request order, not completion order. The first error
// anywhere in the chain aborts the batch with no partial retry.
func (r *Runner) Run(ctx context.Context) error {
	defer r.done()

	since := r.now().Add(-r.lookback)

	slog.Info("starting lead run",
		"dealer", r.settings.Dealer,
		"ads", len(r.settings.AdIDs),
		"since", since.Unix(),
	)

	raw, err := r.fetchAll(ctx, since)
	if err != nil {
		slog.Error("lead run failed", "dealer", r.settings.Dealer, "error", err)
		return err
	}

	slog.Info("found leads", "count", len(raw), "dealer", r.settings.Dealer)

	env := mailer.Envelope{
		From:    r.from,
		To:      r.settings.To,
		Cc:      r.settings.Cc,
		Bcc:     r.settings.Bcc,
		ReplyTo: r.settings.ReplyTo,
	}
	opts := normalize.Options{
		VehicleComment:  r.settings.VehicleComment,
		CustomerComment: r.settings.CustomerComment,
	}

	for _, entry := range raw {
		if err := r.deliver(ctx, entry, env, opts); err != nil {
			slog.Error("lead run failed", "dealer", r.settings.Dealer, "error", err)
			return err
		}
	}

	return nil
}

// fetchAll fans out one fetch per ad ID and aggregates the results by
// concatenation in request order. Any failed fetch fails the batch.
func (r *Runner) fetchAll(ctx context.Context, since time.Time) ([]models.RawLeadEntry, error) {
	results := make([][]models.RawLeadEntry, len(r.settings.AdIDs))
	errs := make([]error, len(r.settings.AdIDs))

	var wg sync.WaitGroup
	for i, adID := range r.settings.AdIDs {
		wg.Add(1)
		go func(i int, adID int64) {
			defer wg.Done()
			results[i], errs[i] = r.source.FetchLeads(ctx, adID, since)
		}(i, adID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("fetch leads: %w", err)
		}
	}

	var raw []models.RawLeadEntry
	for _, entries := range results {
		raw = append(raw, entries...)
	}
	return raw, nil
}

// deliver normalizes one raw entry, renders its payloads, assembles the
// message, and hands it to the sender.
func (r *Runner) deliver(ctx context.Context, entry models.RawLeadEntry, env mailer.Envelope, opts normalize.Options) error {
	lead, err := normalize.Flatten(entry, opts)
	if err != nil {
		return fmt.Errorf("normalize lead: %w", err)
	}

	rl := models.RenderedLead{
		Lead: lead,
		ADF:  payload.ADF(lead, r.settings.Dealer),
		HTML: payload.HTML(lead, r.settings.Dealer),
		Text: payload.Text(lead, r.settings.Dealer),
	}

	mime, err := mailer.Compose(rl, env)
	if err != nil {
		return fmt.Errorf("assemble message for lead %s: %w", lead.ID, err)
	}

	id, err := r.sender.Send(ctx, r.settings.To, mime)
	if err != nil {
		return fmt.Errorf("send lead %s: %w", lead.ID, err)
	}

	slog.Info("lead notification sent", "lead_id", lead.ID, "message_id", id)
	return nil
}

// done is the completion hook. It runs exactly once per batch, whether the
// run completed or failed.
func (r *Runner) done() {
	slog.Info("run complete",
		"timestamp", r.now().Unix(),
		"dealer", r.settings.Dealer,
	)
}
