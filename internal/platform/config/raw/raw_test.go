package raw

import "testing"

func TestGetWithDefault(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  info  ")
	rc := New().Prefix("LOG_")
	if got := rc.Get("LEVEL", "debug"); got != "info" {
		t.Fatalf("Get = %q, want info", got)
	}
	if got := rc.Get("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("Get missing = %q, want fallback", got)
	}
}

func TestGetBoolForms(t *testing.T) {
	for _, v := range []string{"1", "true", "yes"} {
		t.Setenv("LOG_CALLER", v)
		if !New().Prefix("LOG_").GetBool("CALLER", false) {
			t.Fatalf("GetBool(%q) = false, want true", v)
		}
	}
	t.Setenv("LOG_CALLER", "off")
	if New().Prefix("LOG_").GetBool("CALLER", true) {
		t.Fatalf("GetBool(off) = true, want false")
	}
}

func TestGetIntRejectsNonDigits(t *testing.T) {
	t.Setenv("LOG_SAMPLE_EVERY", "12x")
	if got := New().Prefix("LOG_").GetInt("SAMPLE_EVERY", 5); got != 5 {
		t.Fatalf("GetInt = %d, want default 5", got)
	}
	t.Setenv("LOG_SAMPLE_EVERY", "12")
	if got := New().Prefix("LOG_").GetInt("SAMPLE_EVERY", 5); got != 12 {
		t.Fatalf("GetInt = %d, want 12", got)
	}
}
