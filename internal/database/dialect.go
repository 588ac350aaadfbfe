package database

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// Dialect captures the few places where PostgreSQL and MySQL differ for
// the queries this service runs.
type Dialect struct {
	Name         string // "postgres" or "mysql"
	DriverName   string // database/sql driver name
	GooseDialect string
	// Returning reports whether INSERT ... RETURNING is available. When
	// false the generated id is read with LastInsertId.
	Returning   bool
	placeholder sq.PlaceholderFormat
}

var (
	Postgres = Dialect{
		Name:         "postgres",
		DriverName:   "pgx",
		GooseDialect: "postgres",
		Returning:    true,
		placeholder:  sq.Dollar,
	}
	MySQL = Dialect{
		Name:         "mysql",
		DriverName:   "mysql",
		GooseDialect: "mysql",
		Returning:    false,
		placeholder:  sq.Question,
	}
)

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case Postgres.Name:
		return Postgres, nil
	case MySQL.Name:
		return MySQL, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
}

// Builder returns a squirrel statement builder using the dialect's
// placeholder format.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// IsUniqueViolation reports whether err is a unique constraint violation
// raised by either driver.
func (d Dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}
