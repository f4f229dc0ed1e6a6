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

// Package mailer assembles the outbound lead notification and delivers it
// through the Mailgun MIME endpoint.
package mailer

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	mail "github.com/wneessen/go-mail"

	"github.com/workshopdigital/briarbush/internal/models"
)

// Subject is the fixed subject line for lead notifications.
const Subject = "FB Lead"

// Envelope carries the addressing for one outbound message, copied
// verbatim from the run settings.
type Envelope struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	ReplyTo string
}

// Compose builds the MIME message for one rendered lead: text body, HTML
// body, and the ADF document as an application/xml alternative part.
// Cc/bcc/reply-to headers are omitted entirely when absent, not sent as
// empty strings.
func Compose(rl models.RenderedLead, env Envelope) (string, error) {
	msg := mail.NewMsg()

	if err := msg.From(env.From); err != nil {
		return "", fmt.Errorf("set from %q: %w", env.From, err)
	}
	if err := msg.To(env.To...); err != nil {
		return "", fmt.Errorf("set to: %w", err)
	}
	if len(env.Cc) > 0 {
		if err := msg.Cc(env.Cc...); err != nil {
			return "", fmt.Errorf("set cc: %w", err)
		}
	}
	if len(env.Bcc) > 0 {
		if err := msg.Bcc(env.Bcc...); err != nil {
			return "", fmt.Errorf("set bcc: %w", err)
		}
	}
	if env.ReplyTo != "" {
		if err := msg.ReplyTo(env.ReplyTo); err != nil {
			return "", fmt.Errorf("set reply-to: %w", err)
		}
	}

	msg.Subject(Subject)
	msg.SetMessageIDWithValue(uuid.NewString())
	msg.SetBodyString(mail.TypeTextPlain, rl.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, rl.HTML)
	msg.AddAlternativeString(mail.ContentType("application/xml"), rl.ADF)

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("write MIME message: %w", err)
	}

	return buf.String(), nil
}
