// Package norm implements the text and number normalization shared by all
// field extractors. The invoice template prints values with inline labels
// ("Qtde.:", "Vl. Unit.:") and Brazilian number formatting (comma radix,
// dot group separator); everything here strips that down to bare values.
//
// None of these functions fail: malformed input degrades to an empty string
// or the caller's default.
package norm

import (
	"regexp"
	"strconv"
	"strings"
)

// boilerplate matches the label fragments the template prints next to
// values, plus parentheses and whitespace control characters.
var boilerplate = regexp.MustCompile(`UN: *|Vl\. Unit\.:|Qtde\.:|Código:|CNPJ:|\(|\)|\n|\r|\t`)

// identifierJunk matches the punctuation carried by formatted identifiers
// such as tax ids (12.345.678/0001-90) and spaced access keys.
var identifierJunk = regexp.MustCompile(`[\s.\-/]`)

// accessKey matches a run of exactly 44 consecutive digits.
var accessKey = regexp.MustCompile(`\d{44}`)

var spaces = regexp.MustCompile(`\s+`)

// Sanitize strips the template's boilerplate label fragments and trims the
// result.
func Sanitize(text string) string {
	return strings.TrimSpace(boilerplate.ReplaceAllString(text, ""))
}

// Clean sanitizes and additionally removes whitespace, dots, dashes and
// slashes. Use it for identifiers where only the meaningful characters
// matter.
func Clean(text string) string {
	return strings.TrimSpace(identifierJunk.ReplaceAllString(Sanitize(text), ""))
}

// CollapseSpaces folds any whitespace run into a single space and trims.
func CollapseSpaces(text string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
}

// ToFloat parses a monetary value in the invoice locale: dot as group
// separator, comma as radix. Returns 0 on empty or unparseable input.
func ToFloat(text string) float64 {
	return ToFloatIn(text, ",", ".", 0)
}

// ToFloatIn parses text as a floating point number using the given radix
// and group separator, returning def when the input is empty or does not
// parse. It never fails.
func ToFloatIn(text, radix, group string, def float64) float64 {
	text = Sanitize(text)
	if text == "" {
		return def
	}
	text = strings.ReplaceAll(text, group, "")
	text = strings.ReplaceAll(text, radix, ".")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return def
	}
	return f
}

// HasAccessKey reports whether s contains a 44-digit access key anywhere.
// Invoice query URLs embed the key, so this doubles as URL validation.
func HasAccessKey(s string) bool {
	return accessKey.MatchString(s)
}

// IsAccessKey reports whether s is exactly one 44-digit access key.
func IsAccessKey(s string) bool {
	return len(s) == 44 && accessKey.MatchString(s)
}
