package truncate

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	tr := New()

	if tr.Marker() != DefaultMarker {
		t.Errorf("Marker() = %q, expected %q", tr.Marker(), DefaultMarker)
	}
	if tr.MinRemaining() != DefaultMinRemaining {
		t.Errorf("MinRemaining() = %d, expected %d", tr.MinRemaining(), DefaultMinRemaining)
	}
}

func TestTruncator_Cut(t *testing.T) {
	block := strings.Repeat("a", 300)

	tests := []struct {
		name      string
		remaining int
		want      string
		wantOK    bool
	}{
		{
			name:      "cuts to remaining and appends marker",
			remaining: 200,
			want:      strings.Repeat("a", 200) + DefaultMarker,
			wantOK:    true,
		},
		{
			name:      "just above threshold",
			remaining: 101,
			want:      strings.Repeat("a", 101) + DefaultMarker,
			wantOK:    true,
		},
		{
			name:      "at threshold drops block",
			remaining: 100,
			wantOK:    false,
		},
		{
			name:      "zero remaining drops block",
			remaining: 0,
			wantOK:    false,
		},
		{
			name:      "negative remaining drops block",
			remaining: -10,
			wantOK:    false,
		},
		{
			name:      "remaining larger than block keeps whole block",
			remaining: 500,
			want:      block + DefaultMarker,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := New().Cut(block, tt.remaining)
			if ok != tt.wantOK {
				t.Fatalf("Cut() ok = %v, expected %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Cut() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestTruncator_CutCountsRunes(t *testing.T) {
	block := strings.Repeat("日", 150)

	got, ok := New().WithMarker("").Cut(block, 120)
	if !ok {
		t.Fatal("expected cut to succeed")
	}
	if n := utf8.RuneCountInString(got); n != 120 {
		t.Errorf("got %d runes, expected 120", n)
	}
	if !utf8.ValidString(got) {
		t.Error("cut split a multi-byte character")
	}
}

func TestTruncator_Options(t *testing.T) {
	tr := New().WithMarker(" [cut]").WithMinRemaining(0)

	got, ok := tr.Cut("hello world", 5)
	if !ok || got != "hello [cut]" {
		t.Errorf("Cut() = %q, %v", got, ok)
	}

	if New().WithMinRemaining(-3).MinRemaining() != 0 {
		t.Error("negative threshold should clamp to zero")
	}
}

func TestToLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxLines int
		want     string
	}{
		{name: "fits", text: "a\nb", maxLines: 2, want: "a\nb"},
		{name: "cut", text: "a\nb\nc", maxLines: 2, want: "a\nb\n..."},
		{name: "zero", text: "a", maxLines: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToLines(tt.text, tt.maxLines); got != tt.want {
				t.Errorf("ToLines() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestToLength(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{name: "fits", text: "hello", maxLen: 5, want: "hello"},
		{name: "cut with ellipsis", text: "hello world", maxLen: 8, want: "hello..."},
		{name: "tiny limit", text: "hello", maxLen: 2, want: "he"},
		{name: "utf8", text: "日本語テキスト", maxLen: 5, want: "日本..."},
		{name: "zero", text: "hello", maxLen: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToLength(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("ToLength() = %q, expected %q", got, tt.want)
			}
		})
	}
}
