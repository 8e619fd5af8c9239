package phrase

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidFormat is returned for an unrecognized case token.
var ErrInvalidFormat = errors.New("invalid format")

// Case selects how a phrase is rendered. The zero value is Lower.
type Case int

const (
	Lower Case = iota
	Upper
	Snake
	Kebab
	Camel
	Pascal
	Title
	Sentence
)

var caseTokens = map[Case]string{
	Lower:    "lower",
	Upper:    "upper",
	Snake:    "snake",
	Kebab:    "kebab",
	Camel:    "camel",
	Pascal:   "pascal",
	Title:    "title",
	Sentence: "sentence",
}

// Cases lists the accepted tokens in the order they are documented.
func Cases() []string {
	return []string{"snake", "kebab", "camel", "pascal", "title", "sentence", "upper", "lower"}
}

// ParseCase maps a token to its Case. Tokens are matched exactly.
func ParseCase(token string) (Case, error) {
	for c, t := range caseTokens {
		if t == token {
			return c, nil
		}
	}
	return Lower, fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidFormat, token, strings.Join(Cases(), ", "))
}

func (c Case) String() string {
	if t, ok := caseTokens[c]; ok {
		return t
	}
	return fmt.Sprintf("Case(%d)", int(c))
}

func (c Case) MarshalText() ([]byte, error) {
	if _, ok := caseTokens[c]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Case) UnmarshalText(b []byte) error {
	v, err := ParseCase(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// apply renders words under c. Each word is transformed on its own and
// never split further, so digits, hyphens and apostrophes inside a word
// survive every format.
func (c Case) apply(words []string) string {
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)
	switch c {
	case Upper:
		return cases.Upper(language.Und).String(strings.Join(words, " "))
	case Snake:
		return joinEach(words, "_", lower.String)
	case Kebab:
		return joinEach(words, "-", lower.String)
	case Camel:
		if len(words) == 0 {
			return ""
		}
		return lower.String(words[0]) + joinEach(words[1:], "", title.String)
	case Pascal:
		return joinEach(words, "", title.String)
	case Title:
		return joinEach(words, " ", title.String)
	case Sentence:
		return capitalize(lower.String(strings.Join(words, " ")))
	}
	return strings.Join(words, " ")
}

func joinEach(words []string, sep string, f func(string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = f(w)
	}
	return strings.Join(out, sep)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
