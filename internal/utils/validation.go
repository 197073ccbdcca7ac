package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsEmpty 判斷字串去除空白後是否為空
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MinLength counts runes, not bytes.
func MinLength(s string, n int) bool {
	return utf8.RuneCountInString(s) >= n
}

// IsNumeric 只接受數字 (可含前導 +/- 號)
func IsNumeric(s string) bool {
	return validate.Var(s, "required,numeric") == nil
}

func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
