package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"alerting": map[string]any{
			"radiusMeters":   10000,
			"authorityEmail": "",
		},
		"notifyGateway": map[string]any{
			"baseUrl": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "ALERTING_RADIUSMETERS", want: "alerting.radiusMeters"},
		{envKey: "ALERTING_AUTHORITYEMAIL", want: "alerting.authorityEmail"},
		{envKey: "NOTIFYGATEWAY_BASEURL", want: "notifyGateway.baseUrl"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyAlertingDefaults(t *testing.T) {
	cfg := &Config{}
	applyAlertingDefaults(cfg)

	if cfg.Alerting == nil {
		t.Fatal("alerting section not initialized")
	}
	if cfg.Alerting.RadiusMeters != defaultAlertRadiusMeters {
		t.Fatalf("radius = %v, want %v", cfg.Alerting.RadiusMeters, defaultAlertRadiusMeters)
	}
	if cfg.Alerting.DefaultCountryCode != defaultCountryCallingCode {
		t.Fatalf("country code = %q, want %q", cfg.Alerting.DefaultCountryCode, defaultCountryCallingCode)
	}
	if cfg.Alerting.AvailabilityWindow != defaultAvailabilityWindow {
		t.Fatalf("availability window = %v, want %v", cfg.Alerting.AvailabilityWindow, defaultAvailabilityWindow)
	}
}

func TestApplyAlertingDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Alerting: &AlertingConfig{
			RadiusMeters:       2500,
			DefaultCountryCode: "44",
			AvailabilityWindow: time.Hour,
		},
	}
	applyAlertingDefaults(cfg)

	if cfg.Alerting.RadiusMeters != 2500 {
		t.Fatalf("radius overwritten: %v", cfg.Alerting.RadiusMeters)
	}
	if cfg.Alerting.DefaultCountryCode != "44" {
		t.Fatalf("country code overwritten: %q", cfg.Alerting.DefaultCountryCode)
	}
	if cfg.Alerting.AvailabilityWindow != time.Hour {
		t.Fatalf("availability window overwritten: %v", cfg.Alerting.AvailabilityWindow)
	}
}
