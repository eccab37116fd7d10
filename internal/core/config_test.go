package core

import (
	"path/filepath"
	"testing"
)

func TestResolveBaseURL(t *testing.T) {
	cases := []struct {
		name   string
		config GlobalConfig
		want   string
		err    bool
	}{
		{"override wins", GlobalConfig{Environment: EnvProduction, BaseURL: "http://stub:9"}, "http://stub:9", false},
		{"local env", GlobalConfig{Environment: EnvLocal}, "http://localhost:3000", false},
		{"unknown env", GlobalConfig{Environment: "staging"}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.config.ResolveBaseURL()
			if tc.err {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGlobalConfigRoundtrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := ReadGlobalConfig()
	if err != nil {
		t.Fatalf("read defaults: %v", err)
	}
	if config.Environment != EnvProduction {
		t.Fatalf("expected production default, got %q", config.Environment)
	}

	config.Environment = EnvLocal
	config.BaseURL = "http://localhost:4000"
	if err := WriteGlobalConfig(config); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadGlobalConfig()
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if got.Environment != EnvLocal || got.BaseURL != "http://localhost:4000" {
		t.Fatalf("unexpected config after roundtrip: %+v", got)
	}
}

func TestDataDirHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DataDir()
	if err != nil {
		t.Fatalf("data dir: %v", err)
	}
	if got != filepath.Join(dir, "mq") {
		t.Fatalf("expected XDG data dir, got %q", got)
	}
}
