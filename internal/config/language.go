package config

import (
	"fmt"
	"strings"
)

// Language is the output target of the header generator.
type Language int

const (
	LanguageC Language = iota
	LanguageCxx
	LanguageCython
)

var languageNames = map[string]Language{
	"c":      LanguageC,
	"c++":    LanguageCxx,
	"cxx":    LanguageCxx,
	"cpp":    LanguageCxx,
	"cython": LanguageCython,
}

// ParseLanguage maps a command line or config value to a Language.
func ParseLanguage(s string) (Language, error) {
	l, ok := languageNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unsupported language '%s' (supported: c, c++, cython)", s)
	}
	return l, nil
}

func (l Language) String() string {
	switch l {
	case LanguageC:
		return "c"
	case LanguageCxx:
		return "c++"
	case LanguageCython:
		return "cython"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// Bridging reports whether the language has no way to express must_use or
// deprecation. Those annotations are suppressed when generating for it.
func (l Language) Bridging() bool {
	return l == LanguageCython
}

// UnmarshalText lets Language be used directly as a flag or config value.
func (l *Language) UnmarshalText(text []byte) error {
	v, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
