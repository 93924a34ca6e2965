package language_test

import (
	"testing"

	"scribe/internal/language"
)

func TestClassifySamples(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"portuguese", "Olá, bom dia. Muito obrigado pela atenção. Isto é um teste de gravação.", "pt"},
		{"spanish", "Hola, buenos días. Muchas gracias por su atención. Esto es una prueba de grabación.", "es"},
		{"english", "Hello, good morning. Thank you very much for your attention. This is a test recording.", "en"},
		{"french", "Bonjour, merci beaucoup. S'il vous plaît, au revoir.", "fr"},
		{"german", "Hallo, guten Tag. Danke schön, bitte sehr.", "de"},
		{"italian", "Ciao, buongiorno. Grazie mille, per favore.", "it"},
		{"dutch", "Hallo, goedemorgen. Dank je wel, alstublieft.", "nl"},
		{"portuguese short", "Olá, muito obrigado pela atenção", "pt"},
		{"english short", "Hello, thank you for your time", "en"},
		{"single keyword", "obrigado", "pt"},
		{"uppercase", "OBRIGADO PELA ATENÇÃO. MUITO OBRIGADO!", "pt"},
		{"numbers and symbols", "123 !@# obrigado $%^ 456 muito obrigado &*() 789", "pt"},
		{"substring in sentence", "I really want to thank you for your help", "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := language.Classify(tc.text)
			if !ok {
				t.Fatalf("expected a classification for %q", tc.text)
			}
			if got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassifyNoMatch(t *testing.T) {
	for _, text := range []string{"", "   ", "Lorem ipsum dolor sit amet consectetur adipiscing elit"} {
		if got, ok := language.Classify(text); ok {
			t.Fatalf("expected no classification for %q, got %s", text, got)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	text := "Hello, this is English. Hola, esto es español. Olá, isto é português."
	first, ok := language.Classify(text)
	if !ok {
		t.Fatal("expected a classification")
	}
	for i := 0; i < 100; i++ {
		got, ok := language.Classify(text)
		if !ok || got != first {
			t.Fatalf("iteration %d: Classify returned %s/%v, want %s", i, got, ok, first)
		}
	}
}

func TestClassifyTieBreakUsesRegistrationOrder(t *testing.T) {
	// "por favor" is registered for both Portuguese and Spanish; Portuguese
	// is registered first, so it must win the tie every time.
	got, ok := language.Classify("por favor")
	if !ok || got != "pt" {
		t.Fatalf("expected pt for tied cognate, got %s/%v", got, ok)
	}
}

func TestClassifyLongInput(t *testing.T) {
	long := ""
	for i := 0; i < 1000; i++ {
		long += "obrigado "
	}
	if got, ok := language.Classify(long); !ok || got != "pt" {
		t.Fatalf("expected pt for long input, got %s/%v", got, ok)
	}
}

func TestSupported(t *testing.T) {
	codes := language.Supported()
	want := []string{"pt", "es", "en", "fr", "de", "it", "nl", "ru", "zh", "ja"}
	if len(codes) != len(want) {
		t.Fatalf("expected %d languages, got %d", len(want), len(codes))
	}
	for i, code := range want {
		if codes[i] != code {
			t.Fatalf("expected %s at position %d, got %s", code, i, codes[i])
		}
	}
	for _, code := range codes {
		if len(language.Keywords(code)) == 0 {
			t.Fatalf("language %s has no keywords", code)
		}
	}
}

func TestKeywordsUnknown(t *testing.T) {
	if kws := language.Keywords("xyz"); kws != nil {
		t.Fatalf("expected nil for unknown language, got %v", kws)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"pt":         "pt",
		" PT ":       "pt",
		"pt-BR":      "pt",
		"por":        "pt",
		"portuguese": "pt",
		"english":    "en",
		"xx":         "xx",
		"":           "",
		"nonsense":   "",
	}
	for input, want := range cases {
		if got := language.Normalize(input); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := language.DisplayName("pt"); got != "Portuguese" {
		t.Fatalf("unexpected display name: %s", got)
	}
	if got := language.DisplayName(""); got != "Unknown" {
		t.Fatalf("unexpected display name for empty code: %s", got)
	}
	if got := language.DisplayName("xx"); got != "XX" {
		t.Fatalf("unexpected display name for unknown code: %s", got)
	}
}
