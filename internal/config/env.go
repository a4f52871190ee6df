// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/staranto/storectl/internal/validation"
)

// ErrAPIURLNotSet is returned when neither STORECTL_API_URL nor api.url is set.
var ErrAPIURLNotSet = errors.New("API URL not set, export STORECTL_API_URL or set api.url in " + FileName)

// API holds the settings for the storefront API client.
type API struct {
	URL   string
	Delay bool
}

// LoadAPI resolves the API settings. Environment wins over the config file.
func LoadAPI() (API, error) {
	var a API

	if v, ok := os.LookupEnv("STORECTL_API_URL"); ok && v != "" {
		a.URL = v
	} else {
		a.URL, _ = GetString("api.url", "")
	}
	if a.URL == "" {
		return API{}, ErrAPIURLNotSet
	}
	if err := validation.Var("STORECTL_API_URL", a.URL, "http_url"); err != nil {
		return API{}, err
	}

	if v, ok := os.LookupEnv("STORECTL_ENABLE_API_DELAY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return API{}, &validation.ValidationError{Problems: []validation.Problem{
				{Field: "STORECTL_ENABLE_API_DELAY", Rule: "boolean"},
			}}
		}
		a.Delay = b
	} else {
		a.Delay, _ = GetBool("api.delay", false)
	}

	return a, nil
}
