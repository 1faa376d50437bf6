package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDriver is returned for driver names with no known dialect.
var ErrUnsupportedDriver = errors.New("unsupported driver")

// Dialect captures the SQL differences between the supported backends.
// Queries are written with `?` placeholders and rebound per dialect.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// DialectFor maps a configured driver name to its dialect.
// "pgx" is accepted as an alternative postgres driver.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite3", "sqlite":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
}

// Rebind rewrites `?` placeholders into `$n` for postgres.
// Query text must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Quote quotes an identifier. MySQL needs it for reserved words like `usage`.
func (d Dialect) Quote(ident string) string {
	if d == MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// Insert builds a plain single-row INSERT for table.
func (d Dialect) Insert(table string, cols ...string) string {
	return d.Rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, d.columnList(cols), placeholders(len(cols))))
}

// InsertIgnore builds a single-row INSERT that silently drops the row on a
// uniqueness conflict instead of failing.
func (d Dialect) InsertIgnore(table string, cols ...string) string {
	cl, ph := d.columnList(cols), placeholders(len(cols))
	switch d {
	case MySQL:
		return fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES (%s)", table, cl, ph)
	case Postgres:
		return d.Rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING", table, cl, ph))
	default:
		return fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)", table, cl, ph)
	}
}

// Concat joins SQL expressions into one string expression.
func (d Dialect) Concat(exprs ...string) string {
	if d == MySQL {
		return "CONCAT(" + strings.Join(exprs, ", ") + ")"
	}
	return strings.Join(exprs, " || ")
}

func (d Dialect) columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.Quote(c)
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
