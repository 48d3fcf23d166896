package kernel

import (
	"strings"

	"commerce/internal/pkg/errs"

	"golang.org/x/text/language"
)

// Locale is a BCP 47 language tag. Underscore-separated forms such as "en_US" are accepted.
type Locale struct {
	tag   language.Tag
	valid bool
}

func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Locale{}, errs.NewValueIsRequiredError("locale")
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return Locale{}, errs.NewValueIsInvalidErrorWithCause("locale", err)
	}
	return Locale{tag: tag, valid: true}, nil
}

func MustParseLocale(s string) Locale {
	l, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Locale) Tag() language.Tag {
	return l.tag
}

func (l Locale) String() string {
	if !l.valid {
		return ""
	}
	return l.tag.String()
}

func (l Locale) Validate() error {
	if !l.valid {
		return errs.NewValueIsRequiredError("locale")
	}
	return nil
}
