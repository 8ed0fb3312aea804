package storage

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// maxFilenameBase ограничение длины имени файла без расширения.
	maxFilenameBase = 50
	defaultFilename = "sem_titulo"
	templateExt     = ".json"
)

var repeatedUnderscores = regexp.MustCompile(`_+`)

// foldAccents убирает диакритику: "Ótima" -> "Otima", "ação" -> "acao".
func foldAccents(s string) string {
	// transform.Chain хранит состояние, поэтому создаём его на каждый вызов.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// SanitizeFilename превращает заголовок шаблона в безопасное имя файла.
// В результате остаются только ASCII буквы, цифры и подчёркивания, плюс расширение .json.
func SanitizeFilename(title string) string {
	folded := foldAccents(strings.TrimSpace(title))

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '_' || unicode.IsSpace(r):
			b.WriteByte('_')
		}
	}

	name := repeatedUnderscores.ReplaceAllString(b.String(), "_")
	name = strings.Trim(name, "_")
	if len(name) > maxFilenameBase {
		name = strings.TrimRight(name[:maxFilenameBase], "_")
	}
	if name == "" {
		name = defaultFilename
	}
	return name + templateExt
}

// validFilename отсекает попытки выйти за пределы каталога.
func validFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
