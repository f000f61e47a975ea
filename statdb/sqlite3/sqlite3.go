// Copyright 2025 The simstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for statdb. It must be
// imported for its side effects by any caller that opens a statdb
// with driver "sqlite3".
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"simstat/statdb"
)

func init() {
	statdb.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// The schema relies on cascading deletes.
		_, err := db.Exec("PRAGMA foreign_keys = ON;")
		return err
	})
}
