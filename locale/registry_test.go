package locale

import "testing"

func TestGet_UnknownLocaleReturnsDefaults(t *testing.T) {
	s := Get("fr")
	if s.Pattern != defaultPattern {
		t.Errorf("pattern = %q, want default %q", s.Pattern, defaultPattern)
	}
	if s.Stoplist != nil {
		t.Errorf("expected nil stoplist for unknown locale, got %v", s.Stoplist)
	}
}

func TestGet_English(t *testing.T) {
	s := Get("en")
	if s.Stoplist == nil {
		t.Fatal("expected en locale to carry a stoplist")
	}
	if _, ok := s.Stoplist["the"]; !ok {
		t.Error(`expected "the" to be in the en stoplist`)
	}
}

func TestGet_RegionFallback(t *testing.T) {
	registry["BE"] = Settings{Locale: "BE", Stoplist: stoplistSet([]string{"de"})}
	defer delete(registry, "BE")

	s := Get("nl-BE")
	if s.Stoplist == nil {
		t.Fatal("expected nl-BE to fall back to the BE entry's stoplist")
	}
	if _, ok := s.Stoplist["de"]; !ok {
		t.Error(`expected "de" from the BE stoplist`)
	}
	if s.Locale != "nl-BE" {
		t.Errorf("Locale = %q, want original requested locale nl-BE", s.Locale)
	}
}

func TestSettings_CompilePattern(t *testing.T) {
	s := Settings{Pattern: `[a-z]+`, Flags: Flags{CaseInsensitive: true}}
	re, err := s.CompilePattern()
	if err != nil {
		t.Fatal(err)
	}
	if !re.MatchString("ABC") {
		t.Error("expected case-insensitive match")
	}
}
