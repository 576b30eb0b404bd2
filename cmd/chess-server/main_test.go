package main

import "testing"

func TestBuildConfig(t *testing.T) {
	old := *listenAddr
	*listenAddr = "127.0.0.1:8080"
	defer func() { *listenAddr = old }()

	cfg := buildConfig()
	if cfg.Server.ListenAddr != "127.0.0.1:8080" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.AllowOrigins != "*" {
		t.Errorf("AllowOrigins = %q; want *", cfg.Server.AllowOrigins)
	}
	if cfg.Oracle.Enabled() {
		t.Error("oracle enabled without -oracle")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBuildConfig_BadAddr(t *testing.T) {
	old := *listenAddr
	*listenAddr = "nowhere"
	defer func() { *listenAddr = old }()

	if err := buildConfig().Validate(); err == nil {
		t.Error("Validate() = nil; want error for address without port")
	}
}
