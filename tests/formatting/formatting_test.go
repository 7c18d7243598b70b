package formatting_test

import (
	"errors"
	"testing"

	"github.com/slatehq/slate/pkg/formatting"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 2, "0 B"},
		{"bytes", 512, 0, "512 B"},
		{"kilobytes", 2048, 0, "2 KB"},
		{"megabytes with precision", 1572864, 1, "1.5 MB"},
		{"gigabytes", 1073741824, 0, "1 GB"},
		{"negative precision clamps", 1024, -3, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare number", "1024", 1024, false},
		{"bytes", "512B", 512, false},
		{"megabytes", "50MB", 50 * 1024 * 1024, false},
		{"with space", "10 GB", 10 * 1024 * 1024 * 1024, false},
		{"lowercase unit", "2kb", 2048, false},
		{"fractional", "1.5KB", 1536, false},
		{"empty", "", 0, true},
		{"unknown unit", "5XB", 0, true},
		{"garbage", "not-a-size", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseBytes(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBytes(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParse(t *testing.T) {
	t.Run("direct json", func(t *testing.T) {
		got, err := formatting.Parse[payload](`{"name": "slate", "count": 3}`)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got.Name != "slate" || got.Count != 3 {
			t.Errorf("parsed = %+v", got)
		}
	})

	t.Run("fenced json block", func(t *testing.T) {
		content := "Here is the result:\n```json\n{\"name\": \"slate\", \"count\": 3}\n```"
		got, err := formatting.Parse[payload](content)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got.Name != "slate" {
			t.Errorf("name = %q, want slate", got.Name)
		}
	})

	t.Run("fence without language tag", func(t *testing.T) {
		content := "```\n{\"name\": \"slate\"}\n```"
		got, err := formatting.Parse[payload](content)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got.Name != "slate" {
			t.Errorf("name = %q, want slate", got.Name)
		}
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		got, err := formatting.Parse[payload]("  \n{\"name\": \"slate\"}\n  ")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got.Name != "slate" {
			t.Errorf("name = %q, want slate", got.Name)
		}
	})

	t.Run("unparseable content fails", func(t *testing.T) {
		_, err := formatting.Parse[payload]("no json here")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})
}
