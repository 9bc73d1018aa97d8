package sanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unix path",
			input: "failed to open /Users/a/Documents/f.txt for writing",
			want:  "failed to open [PATH] for writing",
		},
		{
			name:  "single component path is kept",
			input: "mounted at /tmp",
			want:  "mounted at /tmp",
		},
		{
			name:  "email",
			input: "sync for alice.smith+test@example.co.uk failed",
			want:  "sync for [EMAIL] failed",
		},
		{
			name:  "user identifier",
			input: "session owner user_9f8a7b-23 expired",
			want:  "session owner [USER_ID] expired",
		},
		{
			name:  "long number",
			input: "device serial 123456789012345 rejected",
			want:  "device serial [LARGE_NUMBER] rejected",
		},
		{
			name:  "short number is kept",
			input: "retry 3 of 5 after 2000 ms",
			want:  "retry 3 of 5 after 2000 ms",
		},
		{
			name:  "mixed",
			input: "user_abc wrote /var/mobile/Containers/data.bin for bob@mail.com id 99999999999",
			want:  "[USER_ID] wrote [PATH] for [EMAIL] id [LARGE_NUMBER]",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"failed to open /Users/a/Documents/f.txt",
		"alice@example.com reported user_12ab34 with id 1234567890123",
		"[PATH] already redacted with [EMAIL] and [LARGE_NUMBER]",
		"plain message with nothing sensitive",
		"/a/b /c/d /e/f all redacted",
		"edge@case.io at /opt/models/llama/weights.gguf serial 00001111222233334444",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent:\n in:    %q\n once:  %q\n twice: %q", in, once, twice)
		}
	}
}

func TestSanitize_PathNotLeaked(t *testing.T) {
	got := Sanitize("error at /Users/a/Documents/f.txt")
	if strings.Contains(got, "/Users/a") {
		t.Errorf("original path leaked: %q", got)
	}
	if !strings.Contains(got, "[PATH]") {
		t.Errorf("missing [PATH] placeholder: %q", got)
	}
}
