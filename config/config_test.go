package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/offshore/core/pumps"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `platform:
  pumps: 12
  cranes: 4
  start: "06:30"
  tick_seconds: 60
  cranes_timing:
    seek_ticks: 1
    load_ticks: 2
    windows:
      - {from: 0, to: 24}
  power:
    unit_cost: 0.2
metrics:
  prometheus_addr: ":9100"
  sinks:
    - type: "nop"
journal:
  enabled: true
  backend: "rotating"
  path: "/tmp/run.jsonl"
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "cli"
  qos:
    events: 1
sentry:
  dsn: "https://key@example.invalid/1"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"pumps", cfg.Platform.Pumps, 12},
		{"cranes", cfg.Platform.Cranes, 4},
		{"start", cfg.Platform.Start, "06:30"},
		{"tick_seconds", cfg.Platform.TickSeconds, 60},
		{"seek", cfg.Platform.CranesTiming.SeekTicks, 1},
		{"windows", len(cfg.Platform.CranesTiming.Windows), 1},
		{"unit_cost", cfg.Platform.Power.UnitCost, 0.2},
		{"aux default", cfg.Platform.Power.AuxiliaryKW, 3620.0},
		{"ship default", cfg.Platform.ShipCapacity, 1000},
		{"prom", cfg.Metrics.PrometheusAddr, ":9100"},
		{"sink", cfg.Metrics.Sinks[0].Type, "nop"},
		{"journal backend", cfg.Journal.Backend, "rotating"},
		{"journal sample", cfg.Journal.SampleEvery, 60},
		{"mqtt broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt qos", cfg.MQTT.QoS["events"], byte(1)},
		{"mqtt prefix", cfg.MQTT.TopicPrefix, "offshore"},
		{"sentry", cfg.Sentry.DSN, "https://key@example.invalid/1"},
		{"log level", cfg.Logging.Level, "info"},
		{"sentry platform", cfg.Sentry.Platform, "offshore"},
		{"sentry breadcrumbs", cfg.Sentry.MaxBreadcrumbs, 50},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadJSONWithoutMQTT(t *testing.T) {
	path := writeFile(t, "config.json", `{"platform": {"pumps": 3}, "journal": {"backend": "jsonl"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.MQTT != nil {
		t.Fatalf("mqtt should be disabled")
	}
	if cfg.Platform.Pumps != 3 || cfg.Platform.Cranes != 10 {
		t.Fatalf("unexpected platform %+v", cfg.Platform)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", "platform:\n  pumps: 12\n")
	t.Setenv("K_PLATFORM__PUMPS", "7")
	t.Setenv("K_LOGGING__LEVEL", "debug")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Platform.Pumps != 7 {
		t.Fatalf("env override not applied: %d", cfg.Platform.Pumps)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level: %s", cfg.Logging.Level)
	}
}

func TestLoadKeepsExplicitZeros(t *testing.T) {
	path := writeFile(t, "config.yaml", `platform:
  cranes_timing:
    seek_ticks: 0
  power:
    auxiliary_kw: 0
    unit_cost: 0
    turbines:
      count: 0
`)
	t.Setenv("K_PLATFORM__POWER__PUMP_KW", "0")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	p := cfg.Platform
	if p.CranesTiming.SeekTicks != 0 || p.CranesTiming.LoadTicks != 3 || len(p.CranesTiming.Windows) != 2 {
		t.Fatalf("crane timing: %+v", p.CranesTiming)
	}
	if p.Power.AuxiliaryKW != 0 || p.Power.UnitCost != 0 || p.Power.Turbines.Count != 0 || p.Power.PumpKW != 0 {
		t.Fatalf("explicit zeros replaced: %+v", p.Power)
	}
	if p.Power.CraneKW != 50 || p.Power.Turbines.DayKW != 80 {
		t.Fatalf("unset fields lost their defaults: %+v", p.Power)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Platform.Pumps != 25 || cfg.Journal.Path == "" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(writeFile(t, "config.toml", "")); err == nil {
		t.Fatalf("expected format error")
	}
	_, err := Load(writeFile(t, "bad.yaml", "platform:\n  pumps: -1\n"))
	if !errors.Is(err, pumps.ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
	if _, err := Load(writeFile(t, "bad.yaml", "platform:\n  tick_seconds: 7\n")); err == nil {
		t.Fatalf("expected tick_seconds error")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "journal:\n  backend: parquet\n")); err == nil {
		t.Fatalf("expected backend error")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "logging:\n  level: loud\n")); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "sentry:\n  traces_sample_rate: 2\n")); err == nil {
		t.Fatalf("expected sample rate error")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "mqtt:\n  client_id: x\n")); err == nil {
		t.Fatalf("expected broker error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Platform.Start != "12:00" {
		t.Fatalf("start: %s", cfg.Platform.Start)
	}
}
