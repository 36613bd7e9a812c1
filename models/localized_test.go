package models

import "testing"

func TestResolve(t *testing.T) {
	full := L("salam", "hello", "привет")
	if got := full.Resolve("en"); got != "hello" {
		t.Fatalf("en: got %q", got)
	}
	if got := full.Resolve("ru"); got != "привет" {
		t.Fatalf("ru: got %q", got)
	}
	if got := full.Resolve("az"); got != "salam" {
		t.Fatalf("az: got %q", got)
	}
}

func TestResolveFallsBackToAzerbaijani(t *testing.T) {
	partial := L("salam", "", "")
	if got := partial.Resolve("en"); got != "salam" {
		t.Fatalf("missing en must fall back, got %q", got)
	}
	if got := partial.Resolve("ru"); got != "salam" {
		t.Fatalf("missing ru must fall back, got %q", got)
	}
	if got := partial.Resolve("de"); got != "salam" {
		t.Fatalf("unknown lang must fall back, got %q", got)
	}
}

func TestNormalizeLang(t *testing.T) {
	cases := map[string]string{
		"en":    "en",
		"en-US": "en",
		"ru-RU": "ru",
		"az":    "az",
		"":      "az",
		"fr":    "az",
	}
	for in, want := range cases {
		if got := NormalizeLang(in); got != want {
			t.Errorf("NormalizeLang(%q) = %q, want %q", in, got, want)
		}
	}
}
