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

package payload

import (
	"log/slog"
	"strings"

	"github.com/workshopdigital/briarbush/internal/models"
)

// HTML renders the human-readable HTML notification body for one lead.
func HTML(lead models.Lead, dealer string) string {
	var b strings.Builder

	b.WriteString(`<h1>Hello ` + dealer + `,</h1>`)
	b.WriteString(`<p>` + lead.FullName() + ` <` + lead.Email() + `> has submitted a request via Facebook and has been uploaded to your CRM.</p>`)
	b.WriteString(`<table><thead><tr><th>Make</th><th>Model</th><th>Year</th></tr></thead>`)
	b.WriteString(`<tbody><tr>`)
	b.WriteString(`<td>` + lead.VehicleMake + `</td>`)
	b.WriteString(`<td>` + lead.VehicleModel + `</td>`)
	b.WriteString(`<td>` + lead.VehicleYear + `</td>`)
	b.WriteString(`</tr></tbody></table>`)

	if c := lead.Attr("customer_comment"); c != "" {
		b.WriteString(`<h3>Customer Comments</h3>`)
		b.WriteString(`<p>` + c + `</p>`)
	}

	if c := lead.Attr("vehicle_comment"); c != "" {
		b.WriteString(`<h3>Vehicle Comments</h3>`)
		b.WriteString(`<p>` + c + `</p>`)
	}

	slog.Debug("HTML payload built", "lead_id", lead.ID)

	return b.String()
}
