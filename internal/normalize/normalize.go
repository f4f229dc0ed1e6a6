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

// Package normalize flattens raw lead records into the canonical Lead shape
// and derives the vehicle year/make/model fields.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/workshopdigital/briarbush/internal/models"
)

// Unknown is the value of a derived vehicle field that could not be parsed
// from the raw vehicle_info string.
const Unknown = "Unknown"

// ErrNoFieldData signals a lead record missing its attribute list entirely.
// This aborts the batch; there is no skip-and-continue.
var ErrNoFieldData = errors.New("lead record has no field data")

// Options carries invocation-supplied attribute defaults. A comment set
// here fills in when the upstream record does not carry one.
type Options struct {
	VehicleComment  string
	CustomerComment string
}

// Flatten converts one raw entry into a Lead. Each attribute's first value
// wins the slot; a repeated attribute name overwrites the earlier one. The
// derived vehicle fields are always populated.
func Flatten(entry models.RawLeadEntry, opts Options) (models.Lead, error) {
	if entry.FieldData == nil {
		return models.Lead{}, fmt.Errorf("lead %s: %w", entry.ID, ErrNoFieldData)
	}

	lead := models.Lead{
		ID:          entry.ID,
		RequestDate: entry.CreatedTime,
		Attrs:       make(map[string]string, len(entry.FieldData)),
	}

	for _, attr := range entry.FieldData {
		if len(attr.Values) > 0 {
			lead.Attrs[attr.Name] = attr.Values[0]
		} else {
			lead.Attrs[attr.Name] = ""
		}
	}

	if lead.Attrs["vehicle_comment"] == "" && opts.VehicleComment != "" {
		lead.Attrs["vehicle_comment"] = opts.VehicleComment
	}
	if lead.Attrs["customer_comment"] == "" && opts.CustomerComment != "" {
		lead.Attrs["customer_comment"] = opts.CustomerComment
	}

	lead.VehicleYear, lead.VehicleMake, lead.VehicleModel = parseVehicleInfo(lead.Attrs["vehicle_info"])

	return lead, nil
}

// parseVehicleInfo splits the free-text vehicle string into year, make and
// model. Split on comma when one is present, else on whitespace, at most
// three parts. This is a heuristic parse: malformed input degrades to
// Unknown fields rather than failing.
func parseVehicleInfo(info string) (year, make, model string) {
	var parts []string
	if strings.Contains(info, ",") {
		parts = strings.SplitN(info, ",", 3)
	} else {
		parts = strings.Fields(info)
	}

	return partOrUnknown(parts, 0), partOrUnknown(parts, 1), partOrUnknown(parts, 2)
}

// partOrUnknown returns part i with all whitespace stripped, or Unknown
// when the part is absent or blank.
func partOrUnknown(parts []string, i int) string {
	if i >= len(parts) {
		return Unknown
	}
	v := strings.Join(strings.Fields(parts[i]), "")
	if v == "" {
		return Unknown
	}
	return v
}
