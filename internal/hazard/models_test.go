package hazard

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
		wantErr  bool
	}{
		{"waterlogging", CategoryWaterlogging, false},
		{"Waterlogging", CategoryWaterlogging, false},
		{"accident", CategoryAccident, false},
		{"ROADBLOCK", CategoryRoadBlock, false},
		{"", "", true},
		{"pothole", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCategory_WeatherLinked(t *testing.T) {
	if !CategoryWaterlogging.WeatherLinked() {
		t.Error("waterlogging should be weather linked")
	}
	if CategoryAccident.WeatherLinked() {
		t.Error("accident should not be weather linked")
	}
	if CategoryRoadBlock.WeatherLinked() {
		t.Error("roadblock should not be weather linked")
	}
}

func TestReport_Expired(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	r := &Report{ExpiresAt: now}

	if !r.Expired(now) {
		t.Error("report at its exact expiry time should be expired")
	}
	if r.Expired(now.Add(-time.Second)) {
		t.Error("report before expiry should not be expired")
	}
	if !r.Expired(now.Add(time.Second)) {
		t.Error("report after expiry should be expired")
	}
}
