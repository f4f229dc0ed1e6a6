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

package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/workshopdigital/briarbush/internal/models"
)

// APIError is an error payload reported by the Graph API itself, as opposed
// to a transport failure. It aborts the whole batch and is never retried.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
	TraceID string `json:"fbtrace_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph API error %d (%s): %s", e.Code, e.Type, e.Message)
}

// leadsResponse represents the relevant fields of a leads list response.
// The body carries either a data list or an error object, never both.
type leadsResponse struct {
	Data  []models.RawLeadEntry `json:"data"`
	Error *APIError             `json:"error"`
}

// parseLeadsResponse decodes a leads response body. An upstream-reported
// error is logged with its structured fields and surfaced as *APIError; a
// body that cannot be decoded at all is a distinct decode error.
func parseLeadsResponse(body io.Reader, statusCode int) ([]models.RawLeadEntry, error) {
	var envelope leadsResponse
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode leads response (HTTP %d): %w", statusCode, err)
	}

	if envelope.Error != nil {
		slog.Error(envelope.Error.Message,
			"type", envelope.Error.Type,
			"code", envelope.Error.Code,
			"fb_trace_id", envelope.Error.TraceID,
		)
		return nil, envelope.Error
	}

	if statusCode != 200 {
		return nil, fmt.Errorf("graph API returned HTTP %d with no error payload", statusCode)
	}

	return envelope.Data, nil
}
