package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "AWS_REGION", "PROJECTS_TABLE", "CORS_ALLOWED_ORIGINS", "CORS_ALLOW_LOCALHOST", "PAYMENT_GATEWAY_MOCK", "DYNAMODB_ENDPOINT"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.AWSRegion != "us-east-1" || cfg.ProjectsTable != "projects" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || !cfg.CORSAllowLocalhost {
		t.Fatalf("unexpected cors defaults: %+v", cfg)
	}
	if cfg.PaymentGatewayMock {
		t.Fatalf("payment gateway mock must default to off")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PROJECTS_TABLE", "projects-test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example,https://c.example")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.ProjectsTable != "projects-test" || !cfg.PaymentGatewayMock {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 3 || cfg.CORSAllowedOrigins[2] != "https://c.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric PORT")
	}
}
