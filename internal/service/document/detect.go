package document

import (
	"path"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
)

// allowedMIMEs maps accepted sniffed types to the extension used when the
// client sends no filename.
var allowedMIMEs = map[string]string{
	"application/pdf":          ".pdf",
	"image/png":                ".png",
	"image/jpeg":               ".jpg",
	"image/tiff":               ".tiff",
	"image/heic":               ".heic",
	"text/csv":                 ".csv",
	"text/plain":               ".txt",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       ".xlsx",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

const maxFilenameRunes = 255

// detectType sniffs data and reports the full content type, the extension to
// use for it and whether it is accepted.
func detectType(data []byte) (contentType, ext string, ok bool) {
	mtype := mimetype.Detect(data)
	contentType = mtype.String()
	base, _, _ := strings.Cut(contentType, ";")
	ext, ok = allowedMIMEs[strings.TrimSpace(base)]
	return contentType, ext, ok
}

// cleanFilename strips directories and control characters from a client
// supplied name. An unusable name falls back to id+ext.
func cleanFilename(name, id, ext string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return id + ext
	}
	if r := []rune(name); len(r) > maxFilenameRunes {
		name = string(r[:maxFilenameRunes])
	}
	return name
}
