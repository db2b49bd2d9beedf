package utils

import (
	"strings"

	"golang.org/x/text/language"
)

// LanguageCode turns a BCP 47 locale ("en-US", "pl") into the
// LanguageCode enum form used by the API ("EN_US", "PL").
func LanguageCode(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", err
	}

	base, _, region := tag.Raw()
	code := strings.ToUpper(base.String())
	if region != (language.Region{}) {
		code += "_" + region.String()
	}
	return code, nil
}

// PreferredLocale picks the first locale of an Accept-Language header,
// or fallback when the header is empty or unparsable.
func PreferredLocale(acceptLanguage, fallback string) string {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	return tags[0].String()
}
