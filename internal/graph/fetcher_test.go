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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// leadsBody builds a minimal leads list response.
func leadsBody(ids ...string) map[string]interface{} {
	entries := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, map[string]interface{}{
			"id":           id,
			"created_time": "2026-08-01T12:00:00+0000",
			"field_data": []map[string]interface{}{
				{"name": "email", "values": []string{id + "@example.com"}},
			},
		})
	}
	return map[string]interface{}{"data": entries}
}

// TestFetchLeads_QueryContract verifies the access token and time-window
// filter are sent the way the Graph API expects them.
func TestFetchLeads_QueryContract(t *testing.T) {
	since := time.Unix(1756400000, 0)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1001/leads" {
			t.Errorf("path = %q, want /1001/leads", r.URL.Path)
		}
		if got := r.URL.Query().Get("access_token"); got != "tok-123" {
			t.Errorf("access_token = %q, want tok-123", got)
		}

		var filters []map[string]interface{}
		if err := json.Unmarshal([]byte(r.URL.Query().Get("filtering")), &filters); err != nil {
			t.Errorf("filtering is not JSON: %v", err)
			w.Write([]byte(`{"data": []}`))
			return
		}
		if len(filters) != 1 {
			t.Errorf("expected 1 filter, got %d", len(filters))
			w.Write([]byte(`{"data": []}`))
			return
		}
		if filters[0]["field"] != "time_created" || filters[0]["operator"] != "GREATER_THAN" {
			t.Errorf("unexpected filter: %v", filters[0])
		}
		if int64(filters[0]["value"].(float64)) != since.Unix() {
			t.Errorf("filter value = %v, want %d", filters[0]["value"], since.Unix())
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(leadsBody("lead-1"))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, "tok-123")

	entries, err := c.FetchLeads(context.Background(), 1001, since)
	if err != nil {
		t.Fatalf("FetchLeads failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != "lead-1" {
		t.Errorf("entry ID = %q, want lead-1", entries[0].ID)
	}
	if len(entries[0].FieldData) != 1 {
		t.Errorf("expected 1 field, got %d", len(entries[0].FieldData))
	}
}

// TestFetchLeads_UpstreamError verifies that a well-formed error payload
// surfaces as *APIError with its structured fields intact.
func TestFetchLeads_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Invalid OAuth access token", "type": "OAuthException", "code": 190, "fbtrace_id": "AbCdEf123"}}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, "bad-token")

	_, err := c.FetchLeads(context.Background(), 1001, time.Now())
	if err == nil {
		t.Fatal("expected error for upstream error payload")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != 190 || apiErr.Type != "OAuthException" {
		t.Errorf("unexpected fields: code=%d type=%q", apiErr.Code, apiErr.Type)
	}
	if apiErr.TraceID != "AbCdEf123" {
		t.Errorf("trace ID = %q, want AbCdEf123", apiErr.TraceID)
	}
}

// TestFetchLeads_DecodeError verifies that an undecodable body is a
// distinct error, not an *APIError.
func TestFetchLeads_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, "tok")

	_, err := c.FetchLeads(context.Background(), 1001, time.Now())
	if err == nil {
		t.Fatal("expected decode error")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("decode failure must not be an APIError: %v", err)
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decoding, got: %v", err)
	}
}

// TestFetchLeads_HTTPErrorWithoutPayload verifies a non-2xx status with a
// decodable but error-free body still fails the fetch.
func TestFetchLeads_HTTPErrorWithoutPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, "tok")

	_, err := c.FetchLeads(context.Background(), 1001, time.Now())
	if err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}

// TestFetchLeads_EmptyWindow verifies a clean empty result.
func TestFetchLeads_EmptyWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL, "tok")

	entries, err := c.FetchLeads(context.Background(), 1001, time.Now())
	if err != nil {
		t.Fatalf("FetchLeads failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}
}
