package apilytics

import "testing"

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("APILYTICS_API_KEY", "")
	t.Setenv("APILYTICS_URL", "")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() error: %v", err)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
	if cfg.URL != DefaultEndpoint {
		t.Errorf("URL = %q, want default endpoint", cfg.URL)
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("APILYTICS_API_KEY", "test-key")
	t.Setenv("APILYTICS_URL", "http://localhost:9090/intake")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() error: %v", err)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.URL != "http://localhost:9090/intake" {
		t.Errorf("URL = %q", cfg.URL)
	}
}
