// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sqlstore is a MySQL-backed smt.Store, for embedders that need the
// tree's content to outlive the process. It keeps two tables: branches,
// keyed by (height, node_hash), and leaves, keyed by key. There is no
// migration tooling -- EnsureSchema creates both tables if they don't
// already exist, and that's the entire setup story.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/google/smt/merkle/smt"
)

// schema is run one statement per Exec: the MySQL driver rejects several
// statements in one query unless the DSN sets multiStatements.
var schema = []string{`
CREATE TABLE IF NOT EXISTS branches (
	height    TINYINT UNSIGNED NOT NULL,
	node_hash BINARY(32) NOT NULL,
	lhs       BINARY(32) NOT NULL,
	rhs       BINARY(32) NOT NULL,
	PRIMARY KEY (height, node_hash)
)`, `
CREATE TABLE IF NOT EXISTS leaves (
	key_hash BINARY(32) NOT NULL PRIMARY KEY,
	value    BINARY(32) NOT NULL
)`}

// Store is a database/sql-backed smt.Store. The zero value is not usable;
// construct with Open.
type Store struct {
	db *sql.DB

	getBranch    *sql.Stmt
	insertBranch *sql.Stmt
	removeBranch *sql.Stmt
	getLeaf      *sql.Stmt
	insertLeaf   *sql.Stmt
	removeLeaf   *sql.Stmt
}

// Open connects to a MySQL instance using dsn (see
// github.com/go-sql-driver/mysql's DSN format) and prepares the statements
// Store needs. It does not create the schema; call EnsureSchema for that.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}
	return newStore(db)
}

func newStore(db *sql.DB) (s *Store, err error) {
	s = &Store{db: db}
	stmts := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.getBranch, `SELECT lhs, rhs FROM branches WHERE height = ? AND node_hash = ?`},
		{&s.insertBranch, `REPLACE INTO branches (height, node_hash, lhs, rhs) VALUES (?, ?, ?, ?)`},
		{&s.removeBranch, `DELETE FROM branches WHERE height = ? AND node_hash = ?`},
		{&s.getLeaf, `SELECT value FROM leaves WHERE key_hash = ?`},
		{&s.insertLeaf, `REPLACE INTO leaves (key_hash, value) VALUES (?, ?)`},
		{&s.removeLeaf, `DELETE FROM leaves WHERE key_hash = ?`},
	}
	for _, st := range stmts {
		*st.dst, err = db.Prepare(st.query)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("sqlstore: prepare %q: %w", st.query, err)
		}
	}
	return s, nil
}

// EnsureSchema creates the branches and leaves tables if they do not
// already exist. It is safe to call on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: EnsureSchema: %w", err)
		}
	}
	return nil
}

// Close releases the underlying *sql.DB and its prepared statements.
func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{s.getBranch, s.insertBranch, s.removeBranch, s.getLeaf, s.insertLeaf, s.removeLeaf} {
		if stmt != nil {
			stmt.Close()
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetBranch(height uint8, node smt.H256) (smt.Branch, bool, error) {
	var lhs, rhs []byte
	err := s.getBranch.QueryRow(height, node[:]).Scan(&lhs, &rhs)
	if errors.Is(err, sql.ErrNoRows) {
		return smt.Branch{}, false, nil
	}
	if err != nil {
		return smt.Branch{}, false, fmt.Errorf("sqlstore: GetBranch: %w", err)
	}
	var b smt.Branch
	copy(b.Lhs[:], lhs)
	copy(b.Rhs[:], rhs)
	return b, true, nil
}

func (s *Store) InsertBranch(height uint8, node smt.H256, children smt.Branch) error {
	if _, err := s.insertBranch.Exec(height, node[:], children.Lhs[:], children.Rhs[:]); err != nil {
		return fmt.Errorf("sqlstore: InsertBranch: %w", err)
	}
	return nil
}

func (s *Store) RemoveBranch(height uint8, node smt.H256) error {
	if _, err := s.removeBranch.Exec(height, node[:]); err != nil {
		return fmt.Errorf("sqlstore: RemoveBranch: %w", err)
	}
	return nil
}

func (s *Store) GetLeaf(key smt.H256) (smt.H256, bool, error) {
	var value []byte
	err := s.getLeaf.QueryRow(key[:]).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return smt.Zero, false, nil
	}
	if err != nil {
		return smt.Zero, false, fmt.Errorf("sqlstore: GetLeaf: %w", err)
	}
	var v smt.H256
	copy(v[:], value)
	return v, true, nil
}

func (s *Store) InsertLeaf(key, value smt.H256) error {
	if _, err := s.insertLeaf.Exec(key[:], value[:]); err != nil {
		return fmt.Errorf("sqlstore: InsertLeaf: %w", err)
	}
	return nil
}

func (s *Store) RemoveLeaf(key smt.H256) error {
	if _, err := s.removeLeaf.Exec(key[:]); err != nil {
		return fmt.Errorf("sqlstore: RemoveLeaf: %w", err)
	}
	return nil
}

var _ smt.Store = (*Store)(nil)
