// Package config loads runtime configuration for both binaries from
// MINDERD_* environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
)

// RuntimeConfig configures the terminal client.
type RuntimeConfig struct {
	DesktopNotifications bool
	SchedulerBuffer      int
	TasksPath            string
	CompletionStatePath  string
	RelayURL             string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		SchedulerBuffer:      64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("MINDERD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("MINDERD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvString("MINDERD_TASKS_PATH"); ok {
		cfg.TasksPath = v
	}
	if v, ok := getEnvString("MINDERD_STATE_PATH"); ok {
		cfg.CompletionStatePath = v
	}
	if v, ok := getEnvString("MINDERD_RELAY_URL"); ok {
		cfg.RelayURL = strings.TrimRight(v, "/")
	}
	return cfg
}

// RelayConfig configures the push relay server. CronSecret gates the tick
// and debug endpoints; the VAPID key pair authorizes delivery to the push
// service.
type RelayConfig struct {
	ListenAddr      string
	DatabasePath    string
	CronSecret      string
	VAPIDSubject    string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		ListenAddr:   ":8787",
		DatabasePath: "minderd-relay.db",
	}
}

func RelayConfigFromEnv(base RelayConfig) RelayConfig {
	cfg := base
	if v, ok := getEnvString("MINDERD_RELAY_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := getEnvString("MINDERD_RELAY_DB"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvString("MINDERD_CRON_SECRET"); ok {
		cfg.CronSecret = v
	}
	if v, ok := getEnvString("MINDERD_VAPID_SUBJECT"); ok {
		cfg.VAPIDSubject = v
	}
	if v, ok := getEnvString("MINDERD_VAPID_PUBLIC_KEY"); ok {
		cfg.VAPIDPublicKey = v
	}
	if v, ok := getEnvString("MINDERD_VAPID_PRIVATE_KEY"); ok {
		cfg.VAPIDPrivateKey = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
