package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("KAFKA_BROKER", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Errorf("expected port %d, got %d", defaultPort, cfg.Port)
	}
	if cfg.DBPath != defaultDBPath {
		t.Errorf("expected db path %s, got %s", defaultDBPath, cfg.DBPath)
	}
	if cfg.KafkaTopic != defaultKafkaTopic {
		t.Errorf("expected topic %s, got %s", defaultKafkaTopic, cfg.KafkaTopic)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/tmp/env.db")

	cfg, err := Load([]string{"--port", "9100"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("expected flag port 9100, got %d", cfg.Port)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Errorf("expected env db path, got %s", cfg.DBPath)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("non-numeric PORT", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		if _, err := Load(nil); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("PORT", "")
		if _, err := Load([]string{"--port", "70000"}); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Setenv("PORT", "")
		if _, err := Load([]string{"--nope"}); err == nil {
			t.Error("expected error")
		}
	})
}
