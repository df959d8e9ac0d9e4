package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/raiden-network/scenario-services/internal/app/factory"
	"github.com/raiden-network/scenario-services/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestValidateConfig_RejectsDevSecretInProd(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "prod"}
	appCfg := AppConfig{SecretKey: factory.DefaultSecret}

	err := ValidateConfig(coreCfg, appCfg, testLogger())
	if !errors.Is(err, errDevSecretInProd) {
		t.Errorf("expected errDevSecretInProd, got %v", err)
	}
}

func TestValidateConfig_AllowsDevSecretInDev(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	appCfg := AppConfig{SecretKey: factory.DefaultSecret}

	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err != nil {
		t.Errorf("ValidateConfig failed: %v", err)
	}
}

func TestValidateConfig_AcceptsRealSecretInProd(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "prod"}
	appCfg := AppConfig{SecretKey: "a-long-production-secret"}

	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err != nil {
		t.Errorf("ValidateConfig failed: %v", err)
	}
}

func TestConnectDB_BlankURI(t *testing.T) {
	deps, err := ConnectDB(context.Background(), &config.CoreConfig{}, AppConfig{}, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB failed: %v", err)
	}
	if deps.MongoClient != nil {
		t.Error("expected no client for blank mongo_uri")
	}
	if err := Shutdown(context.Background(), &config.CoreConfig{}, AppConfig{}, deps, testLogger()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestRouteGroups_Order(t *testing.T) {
	groups := routeGroups(DBDeps{}, testLogger())

	want := []string{"status", "metrics"}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, g := range groups {
		if g.Name() != want[i] {
			t.Errorf("group %d: got %q, want %q", i, g.Name(), want[i])
		}
	}
}

func TestBuildHandler_ServesGroups(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "instance")
	appCfg := AppConfig{
		SecretKey:    "test-secret",
		Database:     "scenarios",
		InstancePath: dir,
	}

	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, appCfg, DBDeps{}, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	for _, path := range []string{"/status/", "/metrics"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected status %d, got %d", path, http.StatusOK, rec.Code)
		}
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("instance directory not created: %v", err)
	}

	a, ok := h.(*factory.App)
	if !ok {
		t.Fatalf("expected *factory.App, got %T", h)
	}
	if a.Secret() != "test-secret" || a.Database() != "scenarios" {
		t.Errorf("settings not applied: secret=%q database=%q", a.Secret(), a.Database())
	}
}

func TestBuildHandler_MalformedInstanceConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, factory.DefaultConfigFile), []byte("SECRET_KEY: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := BuildHandler(&config.CoreConfig{}, AppConfig{InstancePath: dir}, DBDeps{}, testLogger()); err == nil {
		t.Fatal("expected error for malformed instance config")
	}
}

func TestValidateConfig_MongoURI(t *testing.T) {
	cases := []struct {
		name    string
		uri     string
		wantErr bool
	}{
		{"blank disables the client", "", false},
		{"mongodb scheme", "mongodb://localhost:27017", false},
		{"srv scheme", "mongodb+srv://cluster.example.net", false},
		{"wrong scheme", "http://x", true},
		{"missing host", "mongodb://", true},
		{"header injection", "mongodb://localhost\r\nX: y", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appCfg := AppConfig{SecretKey: "a-long-production-secret", MongoURI: tc.uri}
			err := ValidateConfig(&config.CoreConfig{Env: "prod"}, appCfg, testLogger())
			if tc.wantErr {
				if err == nil || !strings.Contains(err.Error(), "invalid MongoDB URI") {
					t.Errorf("expected invalid MongoDB URI error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateConfig failed: %v", err)
			}
		})
	}
}

func TestConnectDB_AppliesTimeoutsBeforeConnect(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	t.Setenv("TIMEOUT_CONNECT", "3s")

	if _, err := ConnectDB(context.Background(), &config.CoreConfig{}, AppConfig{}, testLogger()); err != nil {
		t.Fatalf("ConnectDB failed: %v", err)
	}
	if got := timeouts.Connect(); got != 3*time.Second {
		t.Errorf("Connect timeout = %v, want %v", got, 3*time.Second)
	}
}

func TestBuildHandler_RecordsRequestMetrics(t *testing.T) {
	appCfg := AppConfig{SecretKey: "test-secret", InstancePath: t.TempDir()}

	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, appCfg, DBDeps{}, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/status/", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics: expected status %d, got %d", http.StatusOK, rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "http_request_duration_seconds") {
		t.Error("expected http_request_duration_seconds in /metrics output")
	}
	if !strings.Contains(body, "http_request_duration_seconds_count{") {
		t.Error("expected a recorded request sample")
	}
}

func TestBuildHandler_RejectsDevSecretFromInstanceConfigInProd(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, factory.DefaultConfigFile), []byte("SECRET_KEY: dev\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	coreCfg := &config.CoreConfig{Env: "prod"}
	appCfg := AppConfig{SecretKey: "a-long-production-secret", InstancePath: dir}

	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
	if _, err := BuildHandler(coreCfg, appCfg, DBDeps{}, testLogger()); !errors.Is(err, errDevSecretInProd) {
		t.Errorf("expected errDevSecretInProd, got %v", err)
	}
}

func TestBuildHandler_AllowsDevSecretFromInstanceConfigInDev(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, factory.DefaultConfigFile), []byte("SECRET_KEY: dev\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	appCfg := AppConfig{SecretKey: "a-long-production-secret", InstancePath: dir}
	if _, err := BuildHandler(&config.CoreConfig{Env: "dev"}, appCfg, DBDeps{}, testLogger()); err != nil {
		t.Errorf("BuildHandler failed: %v", err)
	}
}
