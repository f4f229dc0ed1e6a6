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

// Briarbush — Facebook lead email notifier
//
// Fetches lead-generation records from the Facebook Graph API, renders
// them as ADF/HTML/text, and delivers them by email via Mailgun. Runs once
// with --schedule now, or stays resident on a cron schedule.
//
// Usage:
//
//	briarbush --ads 123,456 --to sales@dealer.com --dealer "Whitten Brothers" --schedule now
package main

import "github.com/workshopdigital/briarbush/internal/app"

func main() {
	app.Execute()
}
