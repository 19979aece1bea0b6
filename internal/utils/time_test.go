package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "valid timezone Asia/Kolkata", timezone: "Asia/Kolkata"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
			if !tt.wantErr && ValidateTimezone(tt.timezone) == tt.wantErr {
				t.Errorf("ValidateTimezone(%q) disagrees with LoadLocation", tt.timezone)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2025-03-09")
	if err != nil {
		t.Fatalf("ParseDay() error = %v", err)
	}
	if !got.Equal(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDay() = %v, want midnight UTC", got)
	}
	if FormatDay(got) != "2025-03-09" {
		t.Errorf("FormatDay() = %q", FormatDay(got))
	}

	for _, bad := range []string{"", "2025-3-9", "09/03/2025", "2025-02-30"} {
		if _, err := ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q) should fail", bad)
		}
		if ValidateDateFormat(bad) {
			t.Errorf("ValidateDateFormat(%q) = true", bad)
		}
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"20:00", 1200, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"8pm", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("DIARY_TEST_STRING", "value")
	t.Setenv("DIARY_TEST_DURATION", "90s")
	t.Setenv("DIARY_TEST_BAD_DURATION", "soon")

	if got := GetEnvAsString("DIARY_TEST_STRING", "x"); got != "value" {
		t.Errorf("GetEnvAsString() = %q", got)
	}
	if got := GetEnvAsString("DIARY_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnvAsString(unset) = %q", got)
	}
	if got := GetEnvAsDuration("DIARY_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("GetEnvAsDuration() = %v", got)
	}
	if got := GetEnvAsDuration("DIARY_TEST_BAD_DURATION", time.Second); got != time.Second {
		t.Errorf("GetEnvAsDuration(bad) = %v, want default", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.config/diary/diary.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".config", "diary", "diary.db"); got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}
	if got, _ := ExpandHome("/tmp/diary.db"); got != "/tmp/diary.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}
