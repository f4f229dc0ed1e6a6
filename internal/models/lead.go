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

// Package models defines the data structures shared across the lead pipeline.
package models

// FieldValue is one named attribute on an upstream lead record. The ad
// network reports every form field this way, values first-to-last.
type FieldValue struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// RawLeadEntry is a single lead record exactly as the ad network returns
// it. It is never used past normalization.
type RawLeadEntry struct {
	ID          string       `json:"id"`
	CreatedTime string       `json:"created_time"`
	FieldData   []FieldValue `json:"field_data"`
}

// Lead is the normalized, flattened form of one RawLeadEntry. The derived
// vehicle fields are always populated after normalization, degrading to
// "Unknown" when the raw vehicle_info string cannot be parsed.
type Lead struct {
	ID          string
	RequestDate string
	Attrs       map[string]string

	VehicleYear  string
	VehicleMake  string
	VehicleModel string
}

// Attr returns the flattened attribute value for name, or "" when absent.
func (l Lead) Attr(name string) string {
	return l.Attrs[name]
}

// FullName is the customer's full name as submitted on the lead form.
func (l Lead) FullName() string { return l.Attrs["full_name"] }

// Email is the customer's email address as submitted on the lead form.
func (l Lead) Email() string { return l.Attrs["email"] }

// RenderedLead is a Lead with its outbound payloads attached. Each payload
// is rendered once and consumed exactly once by the message assembler.
type RenderedLead struct {
	Lead

	ADF  string
	HTML string
	Text string
}
