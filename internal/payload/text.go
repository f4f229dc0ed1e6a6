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
	"strings"

	"github.com/workshopdigital/briarbush/internal/models"
)

const eol = "\n"

// Text renders the plain-text notification body for one lead. Same content
// as the HTML body, without markup.
func Text(lead models.Lead, dealer string) string {
	var b strings.Builder

	b.WriteString("Hello " + dealer + "," + eol)
	b.WriteString(lead.FullName() + " <" + lead.Email() + "> has submitted a request via Facebook and has been uploaded to your CRM." + eol)
	b.WriteString("Make: " + lead.VehicleMake + eol)
	b.WriteString("Model: " + lead.VehicleModel + eol)
	b.WriteString("Year: " + lead.VehicleYear + eol)
	b.WriteString(eol)

	if c := lead.Attr("customer_comment"); c != "" {
		b.WriteString("Customer Comments" + eol)
		b.WriteString(c + eol)
		b.WriteString(eol)
	}

	if c := lead.Attr("vehicle_comment"); c != "" {
		b.WriteString("Vehicle Comments" + eol)
		b.WriteString(c + eol)
		b.WriteString(eol)
	}

	return b.String()
}
