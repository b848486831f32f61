package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a subtitle language tag. It wraps a BCP 47 tag and carries the
// forced-subtitle variant flag the provider exposes alongside plain tags.
type Language struct {
	tag    language.Tag
	Forced bool
}

// FromIETF parses an IETF/BCP 47 language code (e.g. "en", "pt-BR") into a
// Language. An optional ":forced" suffix marks the forced variant.
func FromIETF(code string) (Language, error) {
	forced := false
	if rest, ok := strings.CutSuffix(code, ":forced"); ok {
		forced = true
		code = rest
	}

	tag, err := language.Parse(code)
	if err != nil {
		return Language{}, fmt.Errorf("parse language %q: %w", code, err)
	}
	return Language{tag: tag, Forced: forced}, nil
}

// MustFromIETF is FromIETF but panics on invalid input. Intended for
// package-level declarations and tests.
func MustFromIETF(code string) Language {
	l, err := FromIETF(code)
	if err != nil {
		panic(err)
	}
	return l
}

// Code returns the tag in the form the provider API expects ("en", "pt-BR").
func (l Language) Code() string {
	return l.tag.String()
}

// String returns the code, with a ":forced" suffix for forced variants.
func (l Language) String() string {
	if l.Forced {
		return l.Code() + ":forced"
	}
	return l.Code()
}

// Join renders languages as the comma-separated list used in query strings.
// Forced flags are not part of the wire format and are dropped here.
func Join(languages []Language) string {
	codes := make([]string, 0, len(languages))
	for _, l := range languages {
		codes = append(codes, l.Code())
	}
	return strings.Join(codes, ",")
}

// ParseList parses a comma-separated list of codes, as accepted on the
// command line ("en,pt-BR,es:forced").
func ParseList(list string) ([]Language, error) {
	parts := strings.Split(list, ",")
	languages := make([]Language, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		l, err := FromIETF(part)
		if err != nil {
			return nil, err
		}
		languages = append(languages, l)
	}
	return languages, nil
}
