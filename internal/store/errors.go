package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/foodwaste/internal/model"
)

// classify maps a database error onto the module's error codes.
//
// SQLite failures that mean the file cannot be used at all become
// STORE_UNAVAILABLE; "no such table" becomes MISSING_RELATION. Everything
// else is wrapped with the operation name and returned as is.
func classify(op, target string, err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrCantOpen, sqlite3.ErrPerm, sqlite3.ErrFull, sqlite3.ErrIoErr,
			sqlite3.ErrCorrupt, sqlite3.ErrNotADB, sqlite3.ErrBusy, sqlite3.ErrLocked,
			sqlite3.ErrReadonly:
			return model.NewStoreUnavailableError(op, target, err)
		}
	}

	msg := err.Error()
	if table, ok := missingTable(msg); ok {
		return model.NewMissingRelationError(op, table)
	}
	if strings.Contains(msg, "database is closed") {
		return model.NewStoreUnavailableError(op, target, err)
	}

	if target != "" {
		return fmt.Errorf("%s %s: %w", op, target, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// missingTable extracts the table name from a "no such table" message.
func missingTable(msg string) (string, bool) {
	const marker = "no such table: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	name := msg[i+len(marker):]
	if j := strings.IndexAny(name, " \t\n"); j >= 0 {
		name = name[:j]
	}
	name = strings.TrimPrefix(name, "main.")
	return name, name != ""
}
