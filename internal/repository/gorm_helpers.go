package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// translateGormError maps driver errors onto the repository sentinels.
func translateGormError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolationMessage(err) {
		return ErrDuplicateKey
	}
	return err
}

// isUniqueViolationMessage covers connections opened without TranslateError.
func isUniqueViolationMessage(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s safe to use as a literal LIKE prefix with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
