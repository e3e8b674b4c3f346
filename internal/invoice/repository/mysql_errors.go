package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"dashboard/internal/domain"
)

const errNoReferencedRow = 1452

// classify tags driver errors the usecase reacts to and passes the rest through.
func classify(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errNoReferencedRow {
		return fmt.Errorf("%w: %w", domain.ErrUnknownCustomer, err)
	}
	return err
}
