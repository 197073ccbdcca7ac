package utils

import (
	"strings"
	"unicode"
)

const (
	singleWordAbbrevLen = 3
	maxAbbrevLen        = 5
)

// 撇號屬於單字的一部分 (Mama's)，不作為分隔
var dropApostrophes = strings.NewReplacer("'", "", "\u2019", "")

func isApostrophe(r rune) bool {
	return r == '\'' || r == '\u2019'
}

// Abbreviate 由名稱產生短代碼：多個字取字首，單一字取前三碼，全部轉大寫。
// 相同名稱永遠得到相同結果。
func Abbreviate(name string) string {
	var words []string
	for _, w := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !isApostrophe(r)
	}) {
		if w = dropApostrophes.Replace(w); w != "" {
			words = append(words, w)
		}
	}
	switch len(words) {
	case 0:
		return ""
	case 1:
		runes := []rune(words[0])
		if len(runes) > singleWordAbbrevLen {
			runes = runes[:singleWordAbbrevLen]
		}
		return strings.ToUpper(string(runes))
	}

	var b strings.Builder
	for i, w := range words {
		if i == maxAbbrevLen {
			break
		}
		r := []rune(w)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
