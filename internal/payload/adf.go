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

// Package payload renders a normalized lead into its outbound payload
// formats: the ADF lead-exchange XML dialect, HTML, and plain text.
package payload

import (
	"log/slog"
	"strings"

	"github.com/workshopdigital/briarbush/internal/models"
)

// providerName identifies the lead provider in the ADF provider block.
const providerName = "Workshop Digital"

// ADF renders the fixed-schema ADF document for one lead. Field values are
// interpolated verbatim: the consuming CRM requires this exact byte layout,
// so no XML escaping is applied.
func ADF(lead models.Lead, dealer string) string {
	var b strings.Builder

	b.WriteString(`<?ADF version "1.0"?>`)
	b.WriteString(`<?XML version "1.0"?>`)
	b.WriteString(`<adf>`)
	b.WriteString(`<prospect status="new">`)
	b.WriteString(`<id source="facebook">` + lead.ID + `</id>`)
	b.WriteString(`<requestdate>` + lead.RequestDate + `</requestdate>`)
	b.WriteString(`<vehicle interest="buy" status="used">`)
	b.WriteString(`<year>` + lead.VehicleYear + `</year>`)
	b.WriteString(`<make>` + lead.VehicleMake + `</make>`)
	b.WriteString(`<model>` + lead.VehicleModel + `</model>`)

	if c := lead.Attr("vehicle_comment"); c != "" {
		b.WriteString(`<comments>` + c + `</comments>`)
	}

	b.WriteString(`</vehicle>`)
	b.WriteString(`<customer>`)
	b.WriteString(`<contact>`)
	b.WriteString(`<name part="full" type="individual">` + lead.FullName() + `</name>`)
	b.WriteString(`<phone>Not Provided</phone>`)
	b.WriteString(`<email>` + lead.Email() + `</email>`)
	b.WriteString(`</contact>`)

	if c := lead.Attr("customer_comment"); c != "" {
		b.WriteString(`<comments>` + c + `</comments>`)
	}

	b.WriteString(`</customer>`)
	b.WriteString(`<vendor>`)
	b.WriteString(`<contact>`)
	b.WriteString(`<name part="full">` + dealer + `</name>`)
	b.WriteString(`</contact>`)
	b.WriteString(`</vendor>`)
	b.WriteString(`<provider>`)
	b.WriteString(`<contact>`)
	b.WriteString(`<name part="full" type="business">` + providerName + `</name>`)
	b.WriteString(`</contact>`)
	b.WriteString(`</provider>`)
	b.WriteString(`</prospect>`)
	b.WriteString(`</adf>`)

	slog.Debug("ADF payload built", "lead_id", lead.ID)

	return b.String()
}
