// Package sqlstore is a SQL-backed substrate.Tree: postings live in a real
// table (`word`, `record_pointer`, `path`, `occurs`), driven over
// database/sql with the dialect chosen by a driver type-switch -- the same
// pattern the teacher's dbops.go uses to support both SQL Server and
// Postgres behind one DB interface.
package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/stdlib"
	mssql "github.com/microsoft/go-mssqldb"

	"github.com/vippsas/fulltextindex/substrate"
)

// DB is the subset of *sql.DB a Tree needs, mirroring the teacher's DB
// interface (dbintf.go) so either a *sql.DB or a *sql.Tx-wrapping type can
// be passed in tests.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	Driver() driver.Driver
}

var _ DB = &sql.DB{}

// Tree is a substrate.Tree backed by a SQL table, via either
// github.com/jackc/pgx/v5 (Postgres) or github.com/microsoft/go-mssqldb
// (SQL Server), dispatched by db.Driver()'s concrete type.
type Tree struct {
	db    DB
	table string
}

var _ substrate.Tree = (*Tree)(nil)

// New returns a Tree storing postings in table (created ahead of time by
// EnsureSchema).
func New(db DB, table string) *Tree {
	if table == "" {
		table = "fulltext_postings"
	}
	return &Tree{db: db, table: table}
}

func (t *Tree) isMSSQL() bool {
	_, ok := t.db.Driver().(*mssql.Driver)
	return ok
}

func (t *Tree) isPostgres() bool {
	_, ok := t.db.Driver().(*stdlib.Driver)
	return ok
}

// EnsureSchema creates the postings table if it does not already exist.
func (t *Tree) EnsureSchema(ctx context.Context) error {
	var ddl string
	switch {
	case t.isMSSQL():
		ddl = fmt.Sprintf(`if not exists (select 1 from sys.tables where name = '%s')
create table %s (
	word nvarchar(255) not null,
	record_pointer uniqueidentifier not null,
	path nvarchar(900) not null,
	occurs nvarchar(255) not null,
	primary key (word, record_pointer)
)`, t.table, t.table)
	case t.isPostgres():
		ddl = fmt.Sprintf(`create table if not exists %s (
	word text not null,
	record_pointer uuid not null,
	path text not null,
	occurs text not null,
	primary key (word, record_pointer)
)`, t.table)
	default:
		return fmt.Errorf("sqlstore: unsupported driver %T", t.db.Driver())
	}
	_, err := t.db.ExecContext(ctx, ddl)
	return err
}

func (t *Tree) bind(n int) string {
	if t.isPostgres() {
		return fmt.Sprintf("$%d", n)
	}
	return fmt.Sprintf("@p%d", n)
}

func (t *Tree) HandleRecordUpdate(ctx context.Context, word string, pointer substrate.RecordPointer, path string, newMetadata map[string]string) error {
	if newMetadata == nil {
		qs := fmt.Sprintf(`delete from %s where word = %s and record_pointer = %s`, t.table, t.bind(1), t.bind(2))
		_, err := t.db.ExecContext(ctx, qs, word, pointer)
		return err
	}

	occurs := newMetadata["_occurs_"]
	if t.isPostgres() {
		qs := fmt.Sprintf(`insert into %s (word, record_pointer, path, occurs) values ($1, $2, $3, $4)
			on conflict (word, record_pointer) do update set path = excluded.path, occurs = excluded.occurs`, t.table)
		_, err := t.db.ExecContext(ctx, qs, word, pointer, path, occurs)
		return err
	}

	qs := fmt.Sprintf(`merge %s as target
		using (select @p1 as word, @p2 as record_pointer, @p3 as path, @p4 as occurs) as source
		on target.word = source.word and target.record_pointer = source.record_pointer
		when matched then update set path = source.path, occurs = source.occurs
		when not matched then insert (word, record_pointer, path, occurs) values (source.word, source.record_pointer, source.path, source.occurs);`, t.table)
	_, err := t.db.ExecContext(ctx, qs, word, pointer, path, occurs)
	return err
}

func (t *Tree) Count(ctx context.Context, op substrate.Op, value string) (int, error) {
	qs, args := t.matchQuery(`select count(distinct path) from `+t.table+` where `, op, value)
	var n int
	if err := t.db.QueryRowContext(ctx, qs, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *Tree) Query(ctx context.Context, op substrate.Op, value string, filter *substrate.ResultSet) (substrate.ResultSet, error) {
	qs, args := t.matchQuery(`select word, record_pointer, path, occurs from `+t.table+` where `, op, value)

	if filter != nil {
		paths := filter.Paths()
		if len(paths) == 0 {
			return substrate.ResultSet{FilterKey: string(op) + ":" + value}, nil
		}
		placeholders := make([]string, len(paths))
		for i, p := range paths {
			args = append(args, p)
			placeholders[i] = t.bind(len(args))
		}
		qs += fmt.Sprintf(" and path in (%s)", strings.Join(placeholders, ", "))
	}
	qs += " order by path"

	rows, err := t.db.QueryContext(ctx, qs, args...)
	if err != nil {
		return substrate.ResultSet{}, err
	}
	defer rows.Close()

	result := substrate.ResultSet{FilterKey: string(op) + ":" + value}
	seen := make(map[string]struct{})
	for rows.Next() {
		var word, path, occurs string
		var pointer substrate.RecordPointer
		if err := rows.Scan(&word, &pointer, &path, &occurs); err != nil {
			return substrate.ResultSet{}, err
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		result.Entries = append(result.Entries, substrate.Entry{
			Path:     path,
			Pointer:  pointer,
			Metadata: map[string]string{"_occurs_": occurs},
		})
	}
	result.Stats.CandidateCount = len(result.Entries)
	return result, rows.Err()
}

// QueryBlacklist loads the distinct posted words (cheap compared to
// scanning every posting row) and runs scan.Checks in Go, then queries for
// the universe of records minus anything carrying a matching word --
// arbitrary Go predicates can't be pushed into SQL directly.
func (t *Tree) QueryBlacklist(ctx context.Context, scan substrate.BlacklistScan) (substrate.ResultSet, error) {
	rows, err := t.db.QueryContext(ctx, `select distinct word from `+t.table)
	if err != nil {
		return substrate.ResultSet{}, err
	}
	var excludedWords []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			rows.Close()
			return substrate.ResultSet{}, err
		}
		for _, check := range scan.Checks {
			if check(word) {
				excludedWords = append(excludedWords, word)
				break
			}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return substrate.ResultSet{}, err
	}

	excludedPaths := make(map[string]struct{})
	for _, word := range excludedWords {
		paths, err := t.pathsForWord(ctx, word)
		if err != nil {
			return substrate.ResultSet{}, err
		}
		for _, p := range paths {
			excludedPaths[p] = struct{}{}
		}
	}

	universeRows, err := t.db.QueryContext(ctx, `select distinct record_pointer, path from `+t.table+` order by path`)
	if err != nil {
		return substrate.ResultSet{}, err
	}
	defer universeRows.Close()

	result := substrate.ResultSet{FilterKey: "blacklist"}
	for universeRows.Next() {
		var pointer substrate.RecordPointer
		var path string
		if err := universeRows.Scan(&pointer, &path); err != nil {
			return substrate.ResultSet{}, err
		}
		if _, ok := excludedPaths[path]; ok {
			continue
		}
		result.Entries = append(result.Entries, substrate.Entry{Path: path, Pointer: pointer})
	}
	result.Stats.CandidateCount = len(result.Entries)
	return result, universeRows.Err()
}

func (t *Tree) pathsForWord(ctx context.Context, word string) ([]string, error) {
	rows, err := t.db.QueryContext(ctx, `select distinct path from `+t.table+` where word = `+t.bind(1), word)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Build deletes every row of the table and replays cb over records, each
// posting written as its own statement. It does not run inside a
// transaction, so a concurrent query can observe a partly rebuilt index.
func (t *Tree) Build(ctx context.Context, records []substrate.RawRecord, cb substrate.BuildCallback) ([]string, error) {
	if _, err := t.db.ExecContext(ctx, `delete from `+t.table); err != nil {
		return nil, err
	}

	posted := make(map[string]struct{})
	var order []string

	add := func(word string, pointer substrate.RecordPointer, path string, metadata map[string]string) error {
		if err := t.HandleRecordUpdate(ctx, word, pointer, path, metadata); err != nil {
			return err
		}
		if _, ok := posted[word]; !ok {
			posted[word] = struct{}{}
			order = append(order, word)
		}
		return nil
	}

	for _, rec := range records {
		if err := cb(add, rec); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Cache is a no-op for sqlstore: result caching for this backend is the
// caller's responsibility (e.g. fronted by substrate/memtree in a
// read-through layer), since a SQL round trip is already the expensive
// part this index exists to amortize.
func (t *Tree) Cache(op substrate.Op, value string, store *substrate.ResultSet) (substrate.ResultSet, bool) {
	return substrate.ResultSet{}, false
}

// matchQuery builds the WHERE-clause tail and bind args for op/value:
// exact equality for OpEqual, a dialect-native pattern match for OpLike
// (SQL Server LIKE, Postgres case-insensitive regexp).
func (t *Tree) matchQuery(prefix string, op substrate.Op, value string) (string, []interface{}) {
	if op == substrate.OpEqual {
		return prefix + "word = " + t.bind(1), []interface{}{value}
	}

	if t.isPostgres() {
		return prefix + "word ~* " + t.bind(1), []interface{}{wildcardToPostgresRegexp(value)}
	}
	return prefix + "word like " + t.bind(1), []interface{}{wildcardToMSSQLLike(value)}
}

func wildcardToPostgresRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexpQuoteMeta(r))
		}
	}
	b.WriteString("$")
	return b.String()
}

func wildcardToMSSQLLike(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '%', '_', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func regexpQuoteMeta(r rune) string {
	switch r {
	case '.', '+', '*', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
		return "\\" + string(r)
	default:
		return string(r)
	}
}
