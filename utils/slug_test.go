package utils

import "testing"

func TestSlugify(t *testing.T) {
	slug := Slugify("Bakı-Gəncə yük daşınması")
	if len(slug) < 9 {
		t.Fatalf("slug too short: %q", slug)
	}
	base := slug[:len(slug)-9]
	if base != "baki-gence-yuk-dasinmasi" {
		t.Fatalf("transliteration: got %q", base)
	}
	if Slugify("yük") == Slugify("yük") {
		t.Fatal("slugs for the same title must differ")
	}
}

func TestSlugifyEmpty(t *testing.T) {
	slug := Slugify("!!!")
	if slug[:7] != "advert-" {
		t.Fatalf("empty title must fall back, got %q", slug)
	}
}
