// Package store holds the gorm-backed persistence for users, budgets,
// goals, linked accounts and transactions. Every read and mutation of an
// owned record checks the caller's user id.
package store

import (
	"errors"
	"fmt"

	"github.com/Lewin99/BuddyGet/internal/util"

	"gorm.io/gorm"
)

// notFound converts gorm's missing-record error into the shared taxonomy.
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, util.ErrNotFound)
	}
	return fmt.Errorf("query %s %d: %w", what, id, err)
}

func checkOwner(what string, id, owner, caller uint) error {
	if owner != caller {
		return fmt.Errorf("%s %d: %w", what, id, util.ErrForbidden)
	}
	return nil
}
