package main

import (
	"math"
	"testing"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		min     float64
		max     float64
		wantErr bool
	}{
		{name: "canonical", input: "-1,1", min: -1, max: 1},
		{name: "spaces", input: " -2.5 , 3.5 ", min: -2.5, max: 3.5},
		{name: "scientific", input: "1e-3,1e3", min: 1e-3, max: 1e3},
		{name: "missing half", input: "-1", wantErr: true},
		{name: "too many parts", input: "-1,0,1", wantErr: true},
		{name: "bad min", input: "x,1", wantErr: true},
		{name: "bad max", input: "-1,y", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInterval(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseInterval(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseInterval(%q) unexpected error: %v", tt.input, err)
			}
			if got.Min != tt.min || got.Max != tt.max {
				t.Errorf("parseInterval(%q) = [%g, %g], want [%g, %g]",
					tt.input, got.Min, got.Max, tt.min, tt.max)
			}
		})
	}
}

func TestParseVector(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{name: "single entry", input: "3", want: []float64{3}},
		{name: "coefficients", input: "-1,0,1", want: []float64{-1, 0, 1}},
		{name: "spaces", input: " 0.5, -0.5 ", want: []float64{0.5, -0.5}},
		{name: "bad entry", input: "1,foo,3", wantErr: true},
		{name: "trailing comma", input: "1,2,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVector(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseVector(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVector(%q) unexpected error: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseVector(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 0 {
					t.Errorf("parseVector(%q)[%d] = %g, want %g", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID(short) = %q", got)
	}
	if got := shortID("0123456789abcdef"); got != "0123456789ab..." {
		t.Errorf("shortID(long) = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.bytes); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
