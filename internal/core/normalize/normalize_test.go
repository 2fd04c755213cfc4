package normalize

import "testing"

func TestNormalizeTable(t *testing.T) {
	n := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Python TUTORIAL", "python tutorial"},
		{"collapses whitespace", "how \t to   learn\n\ngo", "how to learn go"},
		{"trims edges", "  debug  ", "debug"},
		{"fullwidth folds", "ｆｕｎｎｙ", "funny"},
		{"combining marks stripped", "tutoriél", "tutoriel"},
		{"precomposed accents stripped", "café résumé", "cafe resume"},
		{"decomposed accents stripped", "café", "cafe"},
		{"zero width removed", "me​me", "meme"},
		{"invalid utf8 dropped", "code\xff review", "code review"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeConcurrent(t *testing.T) {
	n := New()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				if got := n.Normalize("Funny FAIL Compilation"); got != "funny fail compilation" {
					t.Errorf("got %q", got)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
