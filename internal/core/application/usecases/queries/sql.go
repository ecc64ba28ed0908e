package queries

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound)
}
