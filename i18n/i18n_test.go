package i18n

import "testing"

func TestTranslationTablesHaveSameKeys(t *testing.T) {
	for key := range koreanTranslations {
		if _, ok := englishTranslations[key]; !ok {
			t.Errorf("English translation missing for %q", key)
		}
	}
	for key := range englishTranslations {
		if _, ok := koreanTranslations[key]; !ok {
			t.Errorf("Korean translation missing for %q", key)
		}
	}
}

func TestT(t *testing.T) {
	tr := GetTranslator()
	defer tr.SetLanguage(tr.GetLanguage())

	tr.SetLanguage(Korean)
	if got := tr.T("save.path_not_found", "/tmp/x"); got != "저장 경로가 존재하지 않습니다: /tmp/x" {
		t.Errorf("T() = %q", got)
	}

	tr.SetLanguage(English)
	if got := tr.T("app.month_detected", 3); got != "Month 3" {
		t.Errorf("T() = %q", got)
	}

	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key should be returned as is, got %q", got)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"English": English,
		"en":      English,
		"한국어":     Korean,
		"":        Korean,
		"简体中文":    Korean,
		"en_US.UTF-8": English,
		"en-GB":       English,
		" english ":   English,
		"ko_KR.UTF-8": Korean,
		"enterprise":  Korean,
	}
	for in, want := range tests {
		if got := ParseLanguage(in); got != want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSetLanguage_Unsupported(t *testing.T) {
	tr := GetTranslator()
	defer tr.SetLanguage(tr.GetLanguage())

	tr.SetLanguage(Language("Deutsch"))
	if got := tr.GetLanguage(); got != Korean {
		t.Errorf("GetLanguage() = %q, want Korean", got)
	}
}

func TestHasAndLanguages(t *testing.T) {
	tr := GetTranslator()
	defer tr.SetLanguage(tr.GetLanguage())

	langs := Languages()
	if len(langs) != 2 || langs[0] != Korean {
		t.Fatalf("Languages() = %v", langs)
	}
	for _, lang := range langs {
		tr.SetLanguage(lang)
		if !tr.Has("app.title") {
			t.Errorf("%s lacks app.title", lang)
		}
		if tr.Has("no.such.key") {
			t.Errorf("%s reports an unknown key", lang)
		}
	}
}
