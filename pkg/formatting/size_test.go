package formatting_test

import (
	"testing"

	"github.com/JaimeStill/elib/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"4096", 4096, false},
		{"512B", 512, false},
		{"1KB", 1 << 10, false},
		{"10MB", 10 << 20, false},
		{"100MB", 100 << 20, false},
		{"100 mb", 100 << 20, false},
		{"1.5GiB", 3 << 29, false},
		{"2tib", 2 << 40, false},
		{"  25MB  ", 25 << 20, false},
		{"0", 0, false},
		{"", 0, true},
		{"MB", 0, true},
		{"-5MB", 0, true},
		{"10XB", 0, true},
		{"1.2.3MB", 0, true},
		{"9000000PB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 1, "0 B"},
		{1023, 2, "1023 B"},
		{1024, 0, "1 KB"},
		{1536, 1, "1.5 KB"},
		{10 << 20, 1, "10.0 MB"},
		{3 << 29, 2, "1.50 GB"},
		{5 << 40, -1, "5 TB"},
		{-2048, 0, "-2 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}
