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

// Package settings resolves the per-run invocation parameters into one
// immutable Settings value consumed by every pipeline stage.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RunNow is the schedule sentinel that makes the pipeline run once
// immediately instead of on a recurring cron schedule.
const RunNow = "now"

// DefaultLookback is the lookback window used when running immediately
// without an explicit interval.
const DefaultLookback = 24 * time.Hour

// ErrNothingToDo signals that a required run parameter (ads, recipients,
// dealer) is absent. The process treats this as a clean early exit, not a
// failure.
var ErrNothingToDo = errors.New("nothing configured to do")

// Params carries the raw invocation values before resolution. List-valued
// fields are comma-separated strings exactly as supplied on the command line.
type Params struct {
	Ads             string
	To              string
	Cc              string
	Bcc             string
	ReplyTo         string
	Dealer          string
	IntervalHours   int
	Schedule        string
	VehicleComment  string
	CustomerComment string
}

// Settings is the immutable per-run configuration. Constructed once by
// Resolve and passed by value to the pipeline; never mutated during a run.
type Settings struct {
	AdIDs    []int64  `validate:"required,min=1"`
	To       []string `validate:"required,min=1,dive,email"`
	Cc       []string `validate:"omitempty,dive,email"`
	Bcc      []string `validate:"omitempty,dive,email"`
	ReplyTo  string   `validate:"omitempty,email"`
	Dealer   string   `validate:"required"`
	Schedule string   `validate:"required"`

	// Interval is the explicit lookback window; only effective when
	// Schedule is the RunNow sentinel.
	Interval time.Duration

	VehicleComment  string
	CustomerComment string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Resolve merges the invocation parameters into a Settings value and
// validates it. A missing ad list, recipient list, or dealer label returns
// an error wrapping ErrNothingToDo; anything else invalid is a hard
// configuration error.
func Resolve(p Params) (Settings, error) {
	s := Settings{
		To:              splitList(p.To),
		Cc:              splitList(p.Cc),
		Bcc:             splitList(p.Bcc),
		ReplyTo:         strings.TrimSpace(p.ReplyTo),
		Dealer:          strings.TrimSpace(p.Dealer),
		Schedule:        strings.TrimSpace(p.Schedule),
		Interval:        time.Duration(p.IntervalHours) * time.Hour,
		VehicleComment:  strings.TrimSpace(p.VehicleComment),
		CustomerComment: strings.TrimSpace(p.CustomerComment),
	}

	adIDs, err := parseAdList(p.Ads)
	if err != nil {
		return Settings{}, err
	}
	s.AdIDs = adIDs

	if len(s.AdIDs) == 0 {
		return Settings{}, fmt.Errorf("no ads to process: %w", ErrNothingToDo)
	}
	if len(s.To) == 0 {
		return Settings{}, fmt.Errorf("no email address supplied: %w", ErrNothingToDo)
	}
	if s.Dealer == "" {
		return Settings{}, fmt.Errorf("no dealer info supplied: %w", ErrNothingToDo)
	}

	if s.Schedule == "" {
		s.Schedule = RunNow
	}
	if s.Interval <= 0 {
		s.Interval = DefaultLookback
	}

	if err := validate.Struct(s); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

// Immediate reports whether the run was configured for one-shot execution.
func (s Settings) Immediate() bool {
	return s.Schedule == RunNow
}

// parseAdList parses a comma-separated list of ad IDs.
func parseAdList(raw string) ([]int64, error) {
	parts := splitList(raw)
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ad id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
