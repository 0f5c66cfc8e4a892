package util

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

const fallbackStorageName = "file"

var ErrStorageNameExhausted = errors.New("слишком много файлов с таким именем")

// StorageBaseName : ASCII-slug исходного имени файла
func StorageBaseName(originalName string) string {
	base := slug.Make(originalName)
	if base == "" {
		return fallbackStorageName
	}
	return base
}

// ResolveStorageName : подбирает свободное имя в пространстве хранилища.
// Первый кандидат "slug.ext", далее "slug (1).ext", "slug (2).ext" и т.д.,
// не более maxAttempts проверок.
func ResolveStorageName(originalName, extension string, maxAttempts int, exists func(name string) (bool, error)) (string, error) {
	base := StorageBaseName(originalName)

	for i := 0; i < maxAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)", base, i)
		}
		if extension != "" {
			candidate += "." + extension
		}

		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrStorageNameExhausted, base)
}

// SplitFilename : "report.final.pdf" -> ("report.final", "pdf")
func SplitFilename(filename string) (string, string) {
	filename = filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := filepath.Ext(filename)
	if ext == filename {
		return filename, ""
	}
	return strings.TrimSuffix(filename, ext), strings.TrimPrefix(ext, ".")
}
