// Package credentials derives the login email and initial password of a
// student from the roster name and NISN.
package credentials

import (
	"strings"
	"unicode/utf8"
)

// DefaultEmailDomain is the mailbox domain student accounts are created under.
const DefaultEmailDomain = "students.pppl.id"

// suffixLen is how many trailing NISN characters end up in credentials.
const suffixLen = 4

// FirstToken returns the lowercased first whitespace-delimited token of name.
func FirstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// NISNSuffix returns the last four characters of nisn, or all of it when it
// is shorter than that.
func NISNSuffix(nisn string) string {
	if utf8.RuneCountInString(nisn) <= suffixLen {
		return nisn
	}
	runes := []rune(nisn)
	return string(runes[len(runes)-suffixLen:])
}

// Password derives the initial password, e.g. "Budi Santoso"/"1234567890"
// gives "budi7890".
func Password(name, nisn string) string {
	return FirstToken(name) + NISNSuffix(nisn)
}

// Email derives the login email. Dots are stripped from the first token so
// names like "M. Akbar" still produce a valid local part.
func Email(name, nisn, domain string) string {
	if domain == "" {
		domain = DefaultEmailDomain
	}
	local := strings.ReplaceAll(FirstToken(name), ".", "")
	return local + "." + NISNSuffix(nisn) + "@" + domain
}
