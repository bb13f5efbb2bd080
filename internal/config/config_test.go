package config

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications off by default")
	}
	if cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected scheduler buffer default: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("MINDERD_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("MINDERD_SCHEDULER_BUFFER", "128")
	t.Setenv("MINDERD_TASKS_PATH", "tasks/day.json")
	t.Setenv("MINDERD_STATE_PATH", "state/custom.json")
	t.Setenv("MINDERD_RELAY_URL", "https://relay.example.com/")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
	if cfg.SchedulerBuffer != 128 {
		t.Fatalf("unexpected scheduler buffer: %+v", cfg)
	}
	if cfg.TasksPath != "tasks/day.json" || cfg.CompletionStatePath != "state/custom.json" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
	if cfg.RelayURL != "https://relay.example.com" {
		t.Fatalf("relay url not trimmed: %q", cfg.RelayURL)
	}
}

func TestRuntimeConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MINDERD_SCHEDULER_BUFFER", "-5")
	t.Setenv("MINDERD_DESKTOP_NOTIFICATIONS", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.SchedulerBuffer != 64 {
		t.Fatalf("negative buffer accepted: %+v", cfg)
	}
	if cfg.DesktopNotifications {
		t.Fatalf("unparseable bool accepted: %+v", cfg)
	}
}

func TestRelayConfigDefaults(t *testing.T) {
	cfg := DefaultRelayConfig()
	if cfg.ListenAddr != ":8787" {
		t.Fatalf("unexpected listen addr default: %+v", cfg)
	}
	if cfg.DatabasePath != "minderd-relay.db" {
		t.Fatalf("unexpected database path default: %+v", cfg)
	}
	if cfg.CronSecret != "" {
		t.Fatalf("unexpected cron secret default: %+v", cfg)
	}
}

func TestRelayConfigFromEnv(t *testing.T) {
	t.Setenv("MINDERD_RELAY_ADDR", ":9900")
	t.Setenv("MINDERD_RELAY_DB", "/var/lib/minderd/relay.db")
	t.Setenv("MINDERD_CRON_SECRET", "s3cret")
	t.Setenv("MINDERD_VAPID_SUBJECT", "mailto:ops@example.com")
	t.Setenv("MINDERD_VAPID_PUBLIC_KEY", "pub")
	t.Setenv("MINDERD_VAPID_PRIVATE_KEY", "priv")

	cfg := RelayConfigFromEnv(DefaultRelayConfig())
	if cfg.ListenAddr != ":9900" || cfg.DatabasePath != "/var/lib/minderd/relay.db" {
		t.Fatalf("unexpected relay overrides: %+v", cfg)
	}
	if cfg.CronSecret != "s3cret" {
		t.Fatalf("unexpected cron secret: %+v", cfg)
	}
	if cfg.VAPIDSubject != "mailto:ops@example.com" || cfg.VAPIDPublicKey != "pub" || cfg.VAPIDPrivateKey != "priv" {
		t.Fatalf("unexpected vapid config: %+v", cfg)
	}
}
