package domain

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Категории личных документов (enum со значением по умолчанию Other)
const DocCategoryOther = "Other"

var DocCategories = []string{"Resume", "ID Proof", "Certificate", "Financial", "Medical", DocCategoryOther}

func ValidDocCategory(s string) bool {
	for _, c := range DocCategories {
		if s == c {
			return true
		}
	}
	return false
}

// NormalizeEmail — trim + нижний регистр; уникальность email
// проверяется по нормализованной форме.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ValidEmail(s string) bool {
	return emailRe.MatchString(NormalizeEmail(s))
}

// Основной пароль: минимум 6 символов
func ValidPassword(s string) bool {
	return len(s) >= 6
}

// Docs-пароль: минимум 4 символа
func ValidDocsPassword(s string) bool {
	return len(s) >= 4
}

func ValidName(s string) bool {
	return strings.TrimSpace(s) != ""
}
