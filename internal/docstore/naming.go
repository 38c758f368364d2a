package docstore

import (
	"slices"
	"strconv"
	"strings"

	"doccms/internal/model"
)

// NormalizeName maps a raw name onto one carrying an allowed extension.
// A name without an extension gets ".txt"; a disallowed extension is replaced
// by ".txt"; an allowed one is left alone. The extension is the trailing "."
// plus at least one non-dot character, and the dot must not be the first
// character, so ".bashrc" counts as having no extension.
func NormalizeName(name string) string {
	ext := extension(name)
	switch {
	case ext == "":
		return name + model.ExtText
	case !slices.Contains(model.AllowedExtensions, ext):
		return strings.TrimSuffix(name, ext) + model.ExtText
	default:
		return name
	}
}

func extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// ValidName reports whether name can be used as a key in a flat store.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

// DuplicateName derives the next free member of name's duplicate family.
//
// The name is split on its first dot into stem and rest. When the stem ends in
// a digit that digit is dropped to form the family base, otherwise the base is
// the stem. Every existing name containing the base contributes its numeric
// token (see numericToken); the new stem is the stem, minus its trailing digit
// if it had one, followed by the largest token plus one. The result is passed
// through NormalizeName, so a duplicate always carries an allowed extension.
//
//	changes.txt  with {changes.txt}               -> changes1.txt
//	changes.txt  with {changes.txt, changes1.txt} -> changes2.txt
//	changes1.txt with {changes.txt, changes1.txt} -> changes2.txt
//	notes.rtf    with {notes.rtf}                 -> notes1.txt
//
// Every call scans all of existing.
func DuplicateName(name string, existing []string) string {
	stem, rest, hasRest := strings.Cut(name, ".")

	base := stem
	endsInDigit := stem != "" && isDigit(stem[len(stem)-1])
	if endsInDigit {
		base = stem[:len(stem)-1]
	}

	maxN := 0
	for _, other := range existing {
		if !strings.Contains(other, base) {
			continue
		}
		if n := numericToken(other); n > maxN {
			maxN = n
		}
	}

	next := strconv.Itoa(maxN + 1)
	newStem := stem + next
	if endsInDigit {
		newStem = base + next
	}

	if hasRest && rest != "" {
		return NormalizeName(newStem + "." + rest)
	}
	return NormalizeName(newStem)
}

// numericToken returns the value of the first run of digits in name that is
// followed by at least one more character. A single digit at the very end of
// the name has nothing after it and does not count; in a longer trailing run
// the final digit plays the role of the following character but still belongs
// to the number. Names without such a run, or whose run overflows, yield 0.
func numericToken(name string) int {
	for i := 0; i < len(name); i++ {
		if !isDigit(name[i]) {
			continue
		}
		j := i
		for j < len(name) && isDigit(name[j]) {
			j++
		}
		if j == len(name) && j-i == 1 {
			return 0
		}
		n, err := strconv.Atoi(name[i:j])
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
