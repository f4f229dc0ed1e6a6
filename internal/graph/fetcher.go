// Copyright (c) 2026 John Earle
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://github.com/yourusername/bcem/blob/main/LICENSE
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graph provides a lead fetcher that retrieves lead-generation
// records from the Facebook Graph API.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/workshopdigital/briarbush/internal/models"
)

// DefaultBaseURL is the root of the Graph API leads endpoint.
const DefaultBaseURL = "https://graph.facebook.com/v2.8"

// Client retrieves lead records from the Graph API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// NewClient creates a Graph API lead client. An empty baseURL selects the
// production endpoint.
func NewClient(httpClient *http.Client, baseURL, accessToken string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		accessToken: accessToken,
	}
}

// timeFilter is one entry of the `filtering` query parameter, which the
// Graph API expects as a JSON-encoded array.
type timeFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    int64  `json:"value"`
}

// FetchLeads retrieves the lead records for one ad ID created after the
// given point in time. Upstream order is preserved.
func (c *Client) FetchLeads(ctx context.Context, adID int64, since time.Time) ([]models.RawLeadEntry, error) {
	filter, err := json.Marshal([]timeFilter{{
		Field:    "time_created",
		Operator: "GREATER_THAN",
		Value:    since.Unix(),
	}})
	if err != nil {
		return nil, fmt.Errorf("marshal time filter: %w", err)
	}

	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("filtering", string(filter))

	leadsURL := fmt.Sprintf("%s/%d/leads?%s", c.baseURL, adID, params.Encode())

	slog.Debug("fetching leads", "ad_id", adID, "since", since.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, leadsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leads for ad %d: %w", adID, err)
	}
	defer resp.Body.Close()

	entries, err := parseLeadsResponse(resp.Body, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("ad %d: %w", adID, err)
	}

	return entries, nil
}
