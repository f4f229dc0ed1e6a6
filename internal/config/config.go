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

// Package config loads static credentials from the briarbush config file
// with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFrom is the sender identity used when the config file does not
// override it.
const DefaultFrom = "Workshop Digital <mailgun@mg.workshopdigital.com>"

// Config holds the static credentials and account identifiers consumed by
// the pipeline. It is read once at startup and never mutated.
type Config struct {
	// Facebook Graph API
	AccessToken  string
	GraphBaseURL string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	From          string
}

// rawConfig mirrors the YAML structure for unmarshalling.
type rawConfig struct {
	Facebook struct {
		AccessToken string `yaml:"access_token"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"facebook"`
	Mailgun struct {
		Domain string `yaml:"domain"`
		APIKey string `yaml:"api_key"`
		From   string `yaml:"from"`
	} `yaml:"mailgun"`
}

// Load reads the config file (with env var expansion) from
// $BRIARBUSH_CONFIG, falling back to ~/.briarbush/config.yaml.
func Load() (*Config, error) {
	configPath := os.Getenv("BRIARBUSH_CONFIG")
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configPath = filepath.Join(home, ".briarbush", "config.yaml")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	// Expand ${VAR} references in the YAML
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	cfg := &Config{
		AccessToken:   strings.TrimSpace(raw.Facebook.AccessToken),
		GraphBaseURL:  strings.TrimSpace(raw.Facebook.BaseURL),
		MailgunDomain: strings.TrimSpace(raw.Mailgun.Domain),
		MailgunAPIKey: strings.TrimSpace(raw.Mailgun.APIKey),
		From:          strings.TrimSpace(raw.Mailgun.From),
	}

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("facebook.access_token missing in %s", configPath)
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		return nil, fmt.Errorf("mailgun credentials missing in %s", configPath)
	}

	if cfg.From == "" {
		cfg.From = DefaultFrom
	}

	return cfg, nil
}
