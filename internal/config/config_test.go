package config

import "testing"

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		tz      string
		wantErr bool
	}{
		{"", false},
		{"Europe/Berlin", false},
		{"UTC", false},
		{"Mars/Olympus", true},
	}

	for _, tt := range tests {
		c := &Config{Timezone: tt.tz}
		err := c.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(tz=%q) error = %v, wantErr %v", tt.tz, err, tt.wantErr)
		}
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("UNDO_DB", "/tmp/undo-test.db")
	t.Setenv("APP_TZ", "Europe/Berlin")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/undo-test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Errorf("Location = %q", cfg.Location())
	}
}
