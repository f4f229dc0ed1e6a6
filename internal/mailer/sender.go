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

package mailer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mailgun/mailgun-go/v4"
)

// Sender hands one assembled MIME message to the mail transport.
type Sender interface {
	Send(ctx context.Context, to []string, mime string) (string, error)
}

// MailgunSender delivers messages through Mailgun's MIME send endpoint.
// The client is a shared read-only handle reused across runs.
type MailgunSender struct {
	mg *mailgun.MailgunImpl
}

// NewMailgunSender creates a Mailgun sender for the given domain.
func NewMailgunSender(domain, apiKey string) *MailgunSender {
	return &MailgunSender{mg: mailgun.NewMailgun(domain, apiKey)}
}

// Send submits the raw MIME message and returns Mailgun's message ID.
func (s *MailgunSender) Send(ctx context.Context, to []string, mime string) (string, error) {
	m := s.mg.NewMIMEMessage(io.NopCloser(strings.NewReader(mime)), to...)

	resp, id, err := s.mg.Send(ctx, m)
	if err != nil {
		return "", fmt.Errorf("mailgun send: %w", err)
	}

	slog.Debug("mailgun accepted message", "id", id, "response", resp)

	return id, nil
}
