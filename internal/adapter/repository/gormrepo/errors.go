package gormrepo

import (
	"errors"
	"strings"

	"bank-ledger/internal/domain/ledger"

	"gorm.io/gorm"
)

// storageErr tags driver failures as StorageUnavailable and passes ledger
// errors through untouched.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var le *ledger.Error
	if errors.As(err, &le) {
		return err
	}
	return ledger.Unavailable(op, err)
}

// findErr maps gorm's not-found to a ledger NotFound carrying msg.
func findErr(op, msg string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.NotFound("%s", msg)
	}
	return storageErr(op, err)
}

// isDuplicateKey recognises unique-index violations across mysql, postgres
// and sqlite without TranslateError, which would drop the index name.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || // sqlite
		strings.Contains(msg, "duplicate entry") || // mysql 1062
		strings.Contains(msg, "duplicate key value") // postgres 23505
}

// violates reports whether a duplicate-key error names column (or an index
// that embeds it).
func violates(err error, column string) bool {
	return strings.Contains(strings.ToLower(err.Error()), column)
}
