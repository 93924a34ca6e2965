package language

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type entry struct {
	code     string   // ISO 639-1 (2-letter)
	name     string   // lowercase English name
	keywords []string // common greetings/courtesy phrases, lowercase
}

// languages is ordered: when two languages score the same keyword count, the
// earlier entry wins. The order is fixed and part of the classifier contract;
// several languages share cognates ("por favor" appears in both Portuguese
// and Spanish), so ties are expected.
var languages = []entry{
	{"pt", "portuguese", []string{"olá", "obrigado", "obrigada", "bom dia", "boa tarde", "boa noite", "tudo bem", "por favor", "muito obrigado"}},
	{"es", "spanish", []string{"hola", "gracias", "buenos días", "buenas tardes", "buenas noches", "por favor", "muchas gracias", "de nada"}},
	{"en", "english", []string{"hello", "thank you", "good morning", "good afternoon", "good evening", "please", "thanks", "you're welcome"}},
	{"fr", "french", []string{"bonjour", "bonsoir", "merci", "merci beaucoup", "s'il vous plaît", "au revoir", "de rien"}},
	{"de", "german", []string{"hallo", "guten tag", "guten morgen", "guten abend", "danke", "bitte", "auf wiedersehen"}},
	{"it", "italian", []string{"ciao", "buongiorno", "buonasera", "grazie", "grazie mille", "per favore", "arrivederci", "prego"}},
	{"nl", "dutch", []string{"goedemorgen", "goedemiddag", "goedenavond", "dank je", "dank u", "alstublieft", "tot ziens"}},
	{"ru", "russian", []string{"привет", "здравствуйте", "спасибо", "пожалуйста", "до свидания", "добрый день"}},
	{"zh", "chinese", []string{"你好", "谢谢", "请", "再见", "早上好", "不客气"}},
	{"ja", "japanese", []string{"こんにちは", "ありがとう", "おはよう", "こんばんは", "さようなら", "お願いします"}},
}

var byCode map[string]*entry

func init() {
	byCode = make(map[string]*entry, len(languages))
	for i := range languages {
		byCode[languages[i].code] = &languages[i]
	}
}

// Classify returns the ISO 639-1 code of the language whose keyword set has
// the strictly highest case-insensitive substring count in text. Ties resolve
// to the earliest registered language. The second return is false when every
// language scores zero, including for empty input.
func Classify(text string) (string, bool) {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return "", false
	}

	best := ""
	bestScore := 0
	for _, lang := range languages {
		score := 0
		for _, keyword := range lang.keywords {
			score += strings.Count(lowered, keyword)
		}
		if score > bestScore {
			best = lang.code
			bestScore = score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}

// Supported lists the classifiable language codes in registration order.
func Supported() []string {
	codes := make([]string, 0, len(languages))
	for _, lang := range languages {
		codes = append(codes, lang.code)
	}
	return codes
}

// Keywords returns a copy of the keyword set registered for code, or nil for
// unrecognized codes.
func Keywords(code string) []string {
	e, ok := byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	return append([]string(nil), e.keywords...)
}

// Normalize converts a caller-supplied language identifier (ISO code, BCP 47
// tag, or an English language name such as "portuguese") to ISO 639-1.
// Unrecognized two-letter codes pass through lowercased so callers can still
// force languages the classifier does not know; anything else returns "".
func Normalize(code string) string {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if _, ok := byCode[trimmed]; ok {
		return trimmed
	}
	for _, lang := range languages {
		if lang.name == trimmed {
			return lang.code
		}
	}
	if tag, err := language.Parse(trimmed); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}
	if len(trimmed) == 2 {
		return trimmed
	}
	return ""
}

// DisplayName returns a human-readable name for a recognized code, or the
// uppercased code itself when unrecognized.
func DisplayName(code string) string {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return "Unknown"
	}
	if e, ok := byCode[trimmed]; ok {
		return cases.Title(language.English).String(e.name)
	}
	return strings.ToUpper(trimmed)
}
