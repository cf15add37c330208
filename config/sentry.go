package config

import "fmt"

// SentryConfig reports command failures and stalled runs to Sentry. Platform
// is attached to every capture as the "platform" tag.
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	Platform         string  `json:"platform"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	Release          string  `json:"release"`
	// MaxBreadcrumbs bounds the platform events kept for the next capture.
	MaxBreadcrumbs int `json:"max_breadcrumbs"`
}

func (c *SentryConfig) SetDefaults() {
	if c.Platform == "" {
		c.Platform = "offshore"
	}
	if c.MaxBreadcrumbs == 0 {
		c.MaxBreadcrumbs = 50
	}
}

func (c SentryConfig) Validate() error {
	if c.TracesSampleRate < 0 || c.TracesSampleRate > 1 {
		return fmt.Errorf("traces_sample_rate must be in [0,1], got %v", c.TracesSampleRate)
	}
	if c.MaxBreadcrumbs < 0 {
		return fmt.Errorf("max_breadcrumbs must not be negative")
	}
	return nil
}
