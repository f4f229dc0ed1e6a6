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

// Package schedule derives the lookback window from a cron expression and
// runs the pipeline at each fire time when configured as recurring.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/workshopdigital/briarbush/internal/settings"
)

// Lookback computes the effective lookback window for a run.
//
// Immediate runs use the explicit interval (or the default). Recurring runs
// sample the schedule's next two fire times and use the gap between them,
// so the window covers exactly one schedule period. Irregular schedules
// under- or over-cover depending on which two ticks get sampled.
func Lookback(s settings.Settings) (time.Duration, error) {
	if s.Immediate() {
		if s.Interval > 0 {
			return s.Interval, nil
		}
		return settings.DefaultLookback, nil
	}
	return Window(s.Schedule, time.Now())
}

// Window returns the gap between the first two fire times of expr after now.
func Window(expr string, now time.Time) (time.Duration, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return 0, fmt.Errorf("parse schedule %q: %w", expr, err)
	}

	t0 := sched.Next(now)
	t1 := sched.Next(t0)
	return t1.Sub(t0), nil
}

// Runner invokes a job at each fire time of a cron expression. The job is
// not serialized against an in-flight invocation: a run that outlasts the
// schedule period overlaps the next tick.
type Runner struct {
	expr string
	job  func()
}

// NewRunner creates a recurring runner for the given cron expression.
func NewRunner(expr string, job func()) *Runner {
	return &Runner{expr: expr, job: job}
}

// Run starts the scheduler and blocks until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(r.expr, r.job); err != nil {
		return fmt.Errorf("parse schedule %q: %w", r.expr, err)
	}

	slog.Info("scheduler starting", "schedule", r.expr)
	c.Start()

	<-ctx.Done()
	slog.Info("scheduler stopping")
	<-c.Stop().Done()
	return nil
}
