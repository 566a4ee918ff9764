package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0644); err != nil {
		t.Fatalf("error writing test config: %v", err)
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "log_level: debug\n"))
	if err != nil {
		t.Fatalf("LoadConfig() returned an unexpected error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel want = debug, got = %s", cfg.LogLevel)
	}
	want := CharacterConfig{
		Name:          "Slash",
		ZoomRate:      4,
		MaxFOV:        90,
		MinFOV:        60,
		HandSocket:    "RightHandSocket",
		SheathSocket:  "WeaponSocket",
		RotationRate:  360,
		WalkSpeed:     600,
		JumpVelocity:  420,
		EquipMontage:  "EquipMontage",
		AttackMontage: "AttackMontage",
	}
	if diff := cmp.Diff(want, cfg.Character); diff != "" {
		t.Errorf("character config did not match expected; diff:\n%s", diff)
	}
	if diff := cmp.Diff(DefaultBindings(), cfg.Input.Bindings); diff != "" {
		t.Errorf("bindings did not match expected; diff:\n%s", diff)
	}
	if diff := cmp.Diff(DefaultMontages(), cfg.Montages); diff != "" {
		t.Errorf("montages did not match expected; diff:\n%s", diff)
	}
	if cfg.Database.Engine != "sqlite" {
		t.Errorf("Database.Engine want = sqlite, got = %s", cfg.Database.Engine)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := writeConfig(t, `
character:
  zoom_rate: 2
  hand_socket: LeftHandSocket
montages:
  - name: EquipMontage
    sections:
      - name: Equip
        length: 0.5
        notifies:
          - name: Arm
            at: 0.25
`)
	t.Setenv("SLASH_DATABASE_ENGINE", "postgres")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() returned an unexpected error: %v", err)
	}

	if cfg.Character.ZoomRate != 2 {
		t.Errorf("ZoomRate want = 2, got = %v", cfg.Character.ZoomRate)
	}
	if cfg.Character.HandSocket != "LeftHandSocket" {
		t.Errorf("HandSocket want = LeftHandSocket, got = %s", cfg.Character.HandSocket)
	}
	if cfg.Database.Engine != "postgres" {
		t.Errorf("Database.Engine want = postgres, got = %s", cfg.Database.Engine)
	}
	wantMontages := []MontageConfig{{
		Name: "EquipMontage",
		Sections: []SectionConfig{{
			Name: "Equip", Length: 0.5, Notifies: []NotifyConfig{{Name: "Arm", At: 0.25}},
		}},
	}}
	if diff := cmp.Diff(wantMontages, cfg.Montages); diff != "" {
		t.Errorf("montages did not match expected; diff:\n%s", diff)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Fatal("LoadConfig() expected an error for a directory without config.yaml")
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Engine:   "postgres",
			Host:     "localhost",
			Port:     5432,
			Name:     "testdb",
			Username: "testuser",
			Password: "testpassword",
		},
	}

	url := cfg.DatabaseURL()
	expected := "host=localhost port=5432 dbname=testdb user=testuser password=testpassword sslmode="
	if url != expected {
		t.Errorf("DatabaseURL() want = %s, got = %s", expected, url)
	}
}

func TestConfig_TickInterval(t *testing.T) {
	cfg := &Config{Simulation: SimulationConfig{TickRate: 50}}
	if got := cfg.TickInterval(); got != 20*time.Millisecond {
		t.Errorf("TickInterval() want = 20ms, got = %v", got)
	}
}

func TestConfig_DataSource(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Engine: "sqlite", Filename: "slash.db", Host: "db"}}
	if got := cfg.DataSource(); got != "slash.db" {
		t.Errorf("DataSource() want = slash.db, got = %s", got)
	}
	cfg.Database.Engine = "postgres"
	if got := cfg.DataSource(); got != cfg.DatabaseURL() {
		t.Errorf("DataSource() want = %s, got = %s", cfg.DatabaseURL(), got)
	}
}
