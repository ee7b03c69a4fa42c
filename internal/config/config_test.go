package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func fromMap(m map[string]string) Lookup {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(fromMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("port=%q addr=%q", cfg.Port, cfg.Addr())
	}
	if cfg.GinMode != "release" || cfg.LogLevel != "info" || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBPath != "studium.db" || cfg.BcryptCost != 10 || cfg.MaxBodyBytes != 1<<20 || !cfg.GzipEnabled {
		t.Fatalf("unexpected app defaults: %+v", cfg)
	}
	if cfg.RateRPS != 5 || cfg.RateBurst != 10 {
		t.Fatalf("rate defaults: %v %d", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.CORS.AllowedOrigins != nil {
		t.Fatalf("want no CORS allowlist, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.IdempotencyTTL != 24*time.Hour || cfg.IdempotencyPurgeInterval != time.Hour {
		t.Fatalf("idempotency defaults: %v %v", cfg.IdempotencyTTL, cfg.IdempotencyPurgeInterval)
	}
	if cfg.OTEL.Enabled || cfg.OTEL.ServiceName != "studium-api" || cfg.OTEL.SampleRatio != 1 {
		t.Fatalf("otel defaults: %+v", cfg.OTEL)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(fromMap(map[string]string{
		"PORT":                        "9090",
		"READ_TIMEOUT":                "2s",
		"WRITE_TIMEOUT":               "3s",
		"GIN_MODE":                    "DEBUG",
		"LOG_LEVEL":                   "Warning",
		"LOG_PRETTY":                  "yes",
		"SWAGGER_ENABLED":             "on",
		"API_BASE_PATH":               "study/",
		"DB_PATH":                     " /tmp/s.db ",
		"BCRYPT_COST":                 "12",
		"MAX_BODY_BYTES":              "4096",
		"GZIP_ENABLED":                "off",
		"RATE_RPS":                    "0.5",
		"RATE_BURST":                  "3",
		"CORS_ALLOWED_ORIGINS":        " https://a.test , , http://b.test ",
		"ENABLE_HSTS":                 "TRUE",
		"HSTS_MAX_AGE":                "24h",
		"IDEMPOTENCY_TTL":             "48h",
		"IDEMPOTENCY_PURGE_INTERVAL":  "10m",
		"OTEL_ENABLED":                "1",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "otel:4317",
		"OTEL_EXPORTER_OTLP_INSECURE": "0",
		"OTEL_SERVICE_NAME":           "svc",
		"OTEL_TRACES_SAMPLER_ARG":     "0.25",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "9090" || cfg.ReadTimeout != 2*time.Second || cfg.WriteTimeout != 3*time.Second {
		t.Fatalf("server: %+v", cfg)
	}
	if cfg.GinMode != "debug" || cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled {
		t.Fatalf("logging/docs: %+v", cfg)
	}
	if cfg.APIBasePath != "/study" || cfg.DBPath != "/tmp/s.db" {
		t.Fatalf("paths: %q %q", cfg.APIBasePath, cfg.DBPath)
	}
	if cfg.BcryptCost != 12 || cfg.MaxBodyBytes != 4096 || cfg.GzipEnabled {
		t.Fatalf("app: %+v", cfg)
	}
	if cfg.RateRPS != 0.5 || cfg.RateBurst != 3 {
		t.Fatalf("rate: %v %d", cfg.RateRPS, cfg.RateBurst)
	}
	if want := []string{"https://a.test", "http://b.test"}; !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Fatalf("cors=%v want %v", cfg.CORS.AllowedOrigins, want)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour || cfg.IdempotencyPurgeInterval != 10*time.Minute {
		t.Fatalf("idempotency: %v %v", cfg.IdempotencyTTL, cfg.IdempotencyPurgeInterval)
	}
	want := OTELConfig{Enabled: true, Endpoint: "otel:4317", Insecure: false, ServiceName: "svc", SampleRatio: 0.25}
	if cfg.OTEL != want {
		t.Fatalf("otel=%+v want %+v", cfg.OTEL, want)
	}
}

func TestLoadFrom_MalformedValuesAreReported(t *testing.T) {
	_, err := LoadFrom(fromMap(map[string]string{
		"RATE_RPS":     "fast",
		"RATE_BURST":   "lots",
		"LOG_PRETTY":   "maybe",
		"IDLE_TIMEOUT": "soon",
	}))
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, key := range []string{"RATE_RPS", "RATE_BURST", "LOG_PRETTY", "IDLE_TIMEOUT"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error does not mention %s: %v", key, err)
		}
	}
}

func TestLoadFrom_ValidationErrors(t *testing.T) {
	cases := map[string]struct {
		env  map[string]string
		want string
	}{
		"log level":      {map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		"timeouts":       {map[string]string{"READ_TIMEOUT": "0s"}, "timeouts"},
		"header bytes":   {map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		"bcrypt low":     {map[string]string{"BCRYPT_COST": "3"}, "BCRYPT_COST"},
		"bcrypt high":    {map[string]string{"BCRYPT_COST": "32"}, "BCRYPT_COST"},
		"body bytes":     {map[string]string{"MAX_BODY_BYTES": "-1"}, "MAX_BODY_BYTES"},
		"rps":            {map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		"burst":          {map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		"hsts":           {map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		"idem ttl":       {map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		"purge interval": {map[string]string{"IDEMPOTENCY_PURGE_INTERVAL": "-1m"}, "IDEMPOTENCY_PURGE_INTERVAL"},
		"sampler":        {map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(fromMap(tc.env))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err=%v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestValidate_JoinsEveryProblem(t *testing.T) {
	cfg, err := LoadFrom(fromMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Port = " "
	cfg.DBPath = ""
	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "PORT") || !strings.Contains(err.Error(), "DB_PATH") {
		t.Fatalf("want both PORT and DB_PATH, got %v", err)
	}
}

func TestLoad_ReadsProcessEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("OTEL_SERVICE_NAME", "from-env")
	cfg := MustLoad()
	if cfg.Port != "7070" || cfg.OTEL.ServiceName != "from-env" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	defer func() {
		if recover() == nil {
			t.Fatal("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestNormalizers(t *testing.T) {
	for in, want := range map[string]string{"": "/", "/": "/", "api": "/api", "/api/v1/": "/api/v1", " //x// ": "/x"} {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q)=%q want %q", in, got, want)
		}
	}
	for in, want := range map[string]string{"TEST": "test", "prod": "release", "": "release"} {
		if got := normalizeGinMode(in); got != want {
			t.Errorf("normalizeGinMode(%q)=%q want %q", in, got, want)
		}
	}
	if got := splitCSV(" , "); got != nil {
		t.Errorf("splitCSV of blanks = %v", got)
	}
}
