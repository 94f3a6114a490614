package srt

import (
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	text := "1\n" +
		"00:00:00,000 --> 00:00:01,830\n" +
		"good evening and\n" +
		"welcome to the news.\n" +
		"\n" +
		"2\n" +
		"00:00:01,910 --> 00:00:03,610\n" +
		"our top story tonight.\n"

	lines := Parse(text)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	if lines[0].Text != "good evening and welcome to the news." {
		t.Fatalf("unexpected first text: %q", lines[0].Text)
	}
	if lines[0].Start != 0 || lines[0].End != 1.83 {
		t.Fatalf("unexpected first timing: [%v, %v]", lines[0].Start, lines[0].End)
	}
	if lines[1].Start != 1.91 {
		t.Fatalf("unexpected second start: %v", lines[1].Start)
	}
}

func TestParseSkipsMalformedCues(t *testing.T) {
	t.Parallel()

	text := "1\n" +
		"not a timestamp --> still not\n" +
		"dropped line\n" +
		"\n" +
		"2\n" +
		"01:02:03,500 --> 01:02:04,000\n" +
		"kept line\n"

	lines := Parse(text)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "kept line" {
		t.Fatalf("unexpected text: %q", lines[0].Text)
	}
	want := 1*3600 + 2*60 + 3.5
	if lines[0].Start != want {
		t.Fatalf("expected start %v, got %v", want, lines[0].Start)
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	if lines := Parse(""); len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "00:00:00,000", want: 0},
		{in: "00:01:30,250", want: 90.25},
		{in: "02:00:00.000", want: 7200},
		{in: "90,000", wantErr: true},
		{in: "aa:bb:cc,ddd", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseTimestamp(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
