package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"
)

// Engine runs the fixed catalog of read queries against the IMDb schema
// (names, titles, roles). Every read is parameter-bound and runs in its own
// transaction checked out of the pool.
type Engine struct {
	db      *sql.DB
	verbose io.Writer
	logger  *log.Logger
}

// NewEngine creates an Engine. verbose may be nil; when set, Run writes a
// human-readable summary of each query to it.
func NewEngine(db *sql.DB, verbose io.Writer, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{db: db, verbose: verbose, logger: logger}
}

// read runs fn inside a transaction and commits it. The commit is a no-op for
// these reads but keeps every statement on one checked-out connection.
func (e *Engine) read(ctx context.Context, op string, fn func(exec sqlExecutor) error) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return classify(op, err)
	}
	if err := tx.Commit(); err != nil {
		return classify(op, err)
	}
	return nil
}

// scanStrings collects one string column per row.
func scanStrings(ctx context.Context, exec sqlExecutor, q string, args ...any) ([]string, error) {
	rows, err := exec.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// likeEscaper escapes LIKE wildcards with '!'. A backslash escape would need
// different quoting in MySQL and SQLite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern returns a LIKE pattern matching s literally anywhere in the
// column. Use it with ESCAPE '!'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// MoviesByActor returns the titles the named person is credited on.
func (e *Engine) MoviesByActor(ctx context.Context, name string) ([]string, error) {
	const q = `
SELECT title FROM titles WHERE title_id IN
  (SELECT title_id FROM roles WHERE name_id IN
    (SELECT name_id FROM names WHERE name = ?))`

	var out []string
	err := e.read(ctx, "movies by actor", func(exec sqlExecutor) error {
		var err error
		out, err = scanStrings(ctx, exec, q, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CharactersByActor returns each title the named person appears in together
// with the characters parsed from roles.characters.
func (e *Engine) CharactersByActor(ctx context.Context, name string) ([]CharacterCredit, error) {
	const q = `
SELECT r.characters, t.title
FROM roles r
JOIN names n ON r.name_id = n.name_id
JOIN titles t ON r.title_id = t.title_id
WHERE n.name = ?`

	out := make([]CharacterCredit, 0)
	err := e.read(ctx, "characters by actor", func(exec sqlExecutor) error {
		rows, err := exec.QueryContext(ctx, q, name)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				raw   sql.NullString
				title string
			)
			if err := rows.Scan(&raw, &title); err != nil {
				return err
			}
			out = append(out, CharacterCredit{
				Title:      title,
				Characters: ParseCharacters(raw.String),
			})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Collaborators returns the distinct people sharing at least one title with
// the named person, excluding that person.
func (e *Engine) Collaborators(ctx context.Context, name string) ([]string, error) {
	const q = `
SELECT DISTINCT n.name
FROM names n
JOIN roles r ON n.name_id = r.name_id
WHERE r.title_id IN (
  SELECT r2.title_id
  FROM roles r2
  JOIN names n2 ON r2.name_id = n2.name_id
  WHERE n2.name = ?
) AND n.name <> ?`

	var out []string
	err := e.read(ctx, "collaborators", func(exec sqlExecutor) error {
		var err error
		out, err = scanStrings(ctx, exec, q, name, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BornBetween returns "name (yearBorn)" for people born in [from, to].
func (e *Engine) BornBetween(ctx context.Context, from, to int) ([]string, error) {
	const q = `
SELECT name, yearBorn
FROM names
WHERE yearBorn BETWEEN ? AND ?`

	out := make([]string, 0)
	err := e.read(ctx, "born between", func(exec sqlExecutor) error {
		rows, err := exec.QueryContext(ctx, q, from, to)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				name string
				born int64
			)
			if err := rows.Scan(&name, &born); err != nil {
				return err
			}
			out = append(out, fmt.Sprintf("%s (%d)", name, born))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BornInYearWorkedWith returns the distinct people born in year who share a
// title with partner, where partner was born in partnerBorn.
func (e *Engine) BornInYearWorkedWith(ctx context.Context, year int, partner string, partnerBorn int) ([]string, error) {
	const q = `
SELECT DISTINCT n.name
FROM names n
INNER JOIN roles r ON n.name_id = r.name_id
INNER JOIN titles t ON r.title_id = t.title_id
WHERE n.yearBorn = ?
AND t.title_id IN (
  SELECT t2.title_id
  FROM titles t2
  INNER JOIN roles r2 ON t2.title_id = r2.title_id
  INNER JOIN names n2 ON r2.name_id = n2.name_id
  WHERE n2.name = ? AND n2.yearBorn = ?
)`

	var out []string
	err := e.read(ctx, "born in year worked with", func(exec sqlExecutor) error {
		var err error
		out, err = scanStrings(ctx, exec, q, year, partner, partnerBorn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryInGenre returns the distinct people credited with category on
// titles whose genre contains the given substring. '%' and '_' in genre match
// literally.
func (e *Engine) CategoryInGenre(ctx context.Context, category, genre string) ([]string, error) {
	const q = `
SELECT DISTINCT n.name_id, n.name
FROM titles t
JOIN roles r ON t.title_id = r.title_id
JOIN names n ON r.name_id = n.name_id
WHERE t.genre LIKE ? ESCAPE '!'
AND r.category = ?`

	out := make([]string, 0)
	err := e.read(ctx, "category in genre", func(exec sqlExecutor) error {
		rows, err := exec.QueryContext(ctx, q, containsPattern(genre), category)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				id   any
				name string
			)
			if err := rows.Scan(&id, &name); err != nil {
				return err
			}
			out = append(out, name)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SharedTitles returns "title(year)" for every title both people are
// credited on, in any role category.
func (e *Engine) SharedTitles(ctx context.Context, a, b string) ([]string, error) {
	const q = `
SELECT DISTINCT t.title, t.year
FROM titles t
INNER JOIN roles r1 ON t.title_id = r1.title_id
INNER JOIN names n1 ON r1.name_id = n1.name_id AND n1.name = ?
INNER JOIN roles r2 ON t.title_id = r2.title_id
INNER JOIN names n2 ON r2.name_id = n2.name_id AND n2.name = ?`

	out := make([]string, 0)
	err := e.read(ctx, "shared titles", func(exec sqlExecutor) error {
		rows, err := exec.QueryContext(ctx, q, a, b)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				title string
				year  sql.NullInt64
			)
			if err := rows.Scan(&title, &year); err != nil {
				return err
			}
			if year.Valid {
				out = append(out, fmt.Sprintf("%s(%d)", title, year.Int64))
			} else {
				out = append(out, fmt.Sprintf("%s(%s)", title, NotAvailable))
			}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
