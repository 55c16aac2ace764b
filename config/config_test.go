package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Arena.Size != 600 {
		t.Errorf("arena.size = %v, want 600", cfg.Arena.Size)
	}
	if cfg.Physics.MovSpeed != 1.0 || cfg.Physics.RotSpeed != 0.1 {
		t.Errorf("physics = %+v, want mov 1.0 rot 0.1", cfg.Physics)
	}
	if cfg.Collision.SizeRatio != 1.1 {
		t.Errorf("collision.size_ratio = %v, want 1.1", cfg.Collision.SizeRatio)
	}
	if cfg.Derived.MaxProximity != 259_200_000_000 {
		t.Errorf("MaxProximity = %v, want 259200000000", cfg.Derived.MaxProximity)
	}
	if cfg.Derived.ArenaSize32 != 600 {
		t.Errorf("ArenaSize32 = %v, want 600", cfg.Derived.ArenaSize32)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("arena:\n  size: 300\nenergy:\n  decay_base: 0.99\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Arena.Size != 300 {
		t.Errorf("arena.size = %v, want 300", cfg.Arena.Size)
	}
	if cfg.Energy.DecayBase != 0.99 {
		t.Errorf("decay_base = %v, want 0.99", cfg.Energy.DecayBase)
	}
	// Untouched sections keep their defaults
	if cfg.Physics.MovSpeed != 1.0 {
		t.Errorf("mov_speed = %v, want default 1.0", cfg.Physics.MovSpeed)
	}
	want := 2 * math.Pow(300, 4)
	if cfg.Derived.MaxProximity != want {
		t.Errorf("MaxProximity = %v, want %v", cfg.Derived.MaxProximity, want)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero spawn rate", "population:\n  inverse_spawn_rate: 0\n"},
		{"child not smaller than split", "reproduction:\n  child_size: 80\n  split_size: 60\n"},
		{"decay above one", "energy:\n  decay_base: 1.5\n"},
		{"zero arena", "arena:\n  size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Reproduction.SplitSize = 75

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if back.Reproduction.SplitSize != 75 {
		t.Errorf("split_size = %v, want 75", back.Reproduction.SplitSize)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg() before Init()")
		}
	}()
	Cfg()
}
