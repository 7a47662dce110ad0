// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// terms turns free text into the normalized tokens facets are matched on:
// split on anything that is not a letter or digit, lowercase, drop English
// stop words, and stem. "Drought-tolerant" and "drought tolerance" both
// yield [drought toler].
func terms(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.ToLower(f)
		if snowballeng.IsStopWord(token) {
			continue
		}
		out = append(out, snowballeng.Stem(token, false))
	}
	return out
}

// facetColumn joins the terms of every value into the space-padded form
// stored in a facet column, so a term t matches with LIKE '% t %'.
func facetColumn(values []string) string {
	var all []string
	for _, v := range values {
		all = append(all, terms(v)...)
	}
	if len(all) == 0 {
		return ""
	}
	return " " + strings.Join(all, " ") + " "
}
