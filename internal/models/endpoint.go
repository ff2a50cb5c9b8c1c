package models

import (
	"strings"

	"tron/sweeper/internal/constants"
)

type Endpoint struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key,omitempty"`
}

// Headers returns the extra request headers for this endpoint. The api key is
// only attached to endpoints served by the keyed provider.
func (e Endpoint) Headers() map[string]string {
	if e.APIKey == "" || !strings.Contains(e.URL, constants.ApiKeyProvider) {
		return nil
	}
	return map[string]string{constants.ApiKeyHeader: e.APIKey}
}

func (e Endpoint) String() string { return e.URL }

func NewEndpoints(urls []string, apiKey string) []Endpoint {
	out := make([]Endpoint, 0, len(urls))
	for _, u := range urls {
		out = append(out, Endpoint{URL: strings.TrimRight(u, "/"), APIKey: apiKey})
	}
	return out
}
