package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Company.Name == "" || cfg.Bank.Name == "" {
		t.Error("company/bank defaults missing")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_URL", "http://backend:5000")
	t.Setenv("BANK_ACCOUNT_NAME", "Custom Holder")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.BackendURL != "http://backend:5000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Bank.AccountName != "Custom Holder" {
		t.Errorf("AccountName = %q", cfg.Bank.AccountName)
	}
}
