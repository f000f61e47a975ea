// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package statdb provides a relational archive for collated stats
// tables, so successive collation runs can be accumulated and queried
// later. It's safe for concurrent use by multiple goroutines.
package statdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"simstat/statfmt"
	"simstat/stattab"
)

// DB is a high-level interface to the archive database.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to enable foreign keys.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
CREATE TABLE IF NOT EXISTS Cells (
	RunID BIGINT UNSIGNED,
	RowID BIGINT UNSIGNED,
	Name VARCHAR(255),
	Value VARCHAR(8192),
{{if not .sqlite3}}
	Index (Name(100), Value(100)),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS CellsNameValue ON Cells(Name, Value);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	q := "INSERT INTO Runs() VALUES ()"
	if driverName == "sqlite3" {
		q = "INSERT INTO Runs DEFAULT VALUES"
	}
	db.insertRun, err = db.sql.Prepare(q)
	return err
}

// A Run is one collation run; every row archived through it shares a
// run ID.
type Run struct {
	// ID identifies the run in the archive. It is the string form
	// of the numeric primary key.
	ID string

	// id is the numeric value used as the primary key, cached to
	// avoid repeated conversions.
	id int64
	// rowid is the index of the next row to insert.
	rowid int64
	// db is the underlying database this run is going to.
	db *DB
}

// NewRun starts a run for archiving newly collated rows.
func (db *DB) NewRun(ctx context.Context) (*Run, error) {
	res, err := db.insertRun.ExecContext(ctx)
	if err != nil {
		return nil, err
	}
	i, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Run{
		ID: fmt.Sprint(i),
		id: i,
		db: db,
	}, nil
}

// InsertTable archives every row of t under this run, in row order.
// Cells that are empty in the table are not stored; absence in the
// archive and absence in the table mean the same thing.
func (r *Run) InsertTable(t *stattab.Table) error {
	for _, row := range t.Rows {
		if err := r.insertRow(t, row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Run) insertRow(t *stattab.Table, row *statfmt.Result) (err error) {
	tx, err := r.db.sql.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var args []interface{}
	for _, col := range t.Cols {
		cell := t.Cell(row, col)
		if cell == "" {
			continue
		}
		args = append(args, r.id, r.rowid, col, cell)
	}
	if len(args) > 0 {
		query := "INSERT INTO Cells VALUES " + strings.Repeat("(?, ?, ?, ?), ", len(args)/4)
		query = strings.TrimSuffix(query, ", ")
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
	}
	r.rowid++
	return nil
}

// CountRuns returns the number of runs in the archive.
func (db *DB) CountRuns() (int, error) {
	var count int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&count)
	return count, err
}

// RunRows reads back the archived cells of run id, reassembled into
// one name/value map per row, in row order.
func (db *DB) RunRows(id string) ([]map[string]string, error) {
	rows, err := db.sql.Query("SELECT RowID, Name, Value FROM Cells WHERE RunID = ? ORDER BY RowID", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]string
	last := int64(-1)
	for rows.Next() {
		var rowid int64
		var name, value string
		if err := rows.Scan(&rowid, &name, &value); err != nil {
			return nil, err
		}
		if rowid != last {
			out = append(out, make(map[string]string))
			last = rowid
		}
		out[len(out)-1][name] = value
	}
	return out, rows.Err()
}

// Close closes the database connections, releasing any open
// resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
