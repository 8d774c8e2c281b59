// Package cache stores rewritten trees keyed by the input tree's
// fingerprint and the active configuration. A front end that feeds the
// same module twice gets the second rewrite for free.
package cache

import (
	"database/sql"
	"fmt"

	"github.com/cnf/structhash"
	_ "modernc.org/sqlite"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/irjson"
)

// Cache is a sqlite-backed store of rewrite results. Safe for use from a
// single process; the schema carries a version so stale files self-heal.
type Cache struct {
	db *sql.DB
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS rewrites (
	tree_hash TEXT NOT NULL,
	config_hash TEXT NOT NULL,
	result BLOB NOT NULL,
	PRIMARY KEY (tree_hash, config_hash)
);
`

// Open opens (or creates) the cache file at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	c := &Cache{db: db}
	if err := c.checkVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) checkVersion() error {
	var stored string
	err := c.db.QueryRow(`SELECT value FROM meta WHERE key = 'version'`).Scan(&stored)
	switch {
	case err == sql.ErrNoRows:
		_, err = c.db.Exec(`INSERT INTO meta (key, value) VALUES ('version', ?)`,
			fmt.Sprintf("%d", schemaVersion))
		return err
	case err != nil:
		return fmt.Errorf("cache: read version: %w", err)
	}
	if stored != fmt.Sprintf("%d", schemaVersion) {
		if _, err := c.db.Exec(`DELETE FROM rewrites`); err != nil {
			return fmt.Errorf("cache: reset stale cache: %w", err)
		}
		_, err := c.db.Exec(`UPDATE meta SET value = ? WHERE key = 'version'`,
			fmt.Sprintf("%d", schemaVersion))
		return err
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key computes the lookup key for a tree under cfg. The tree part is the
// fingerprint of its canonical encoding; the config part hashes the whole
// struct, so any knob change misses cleanly.
func Key(root ir.Node, cfg *config.Config) (treeHash, configHash string, err error) {
	treeHash, err = irjson.Fingerprint(root)
	if err != nil {
		return "", "", err
	}
	configHash, err = structhash.Hash(cfg, 1)
	if err != nil {
		return "", "", fmt.Errorf("cache: hash config: %w", err)
	}
	return treeHash, configHash, nil
}

// Get returns the cached rewrite for the key, or (nil, false, nil) on a miss.
func (c *Cache) Get(treeHash, configHash string) (ir.Node, bool, error) {
	var blob []byte
	err := c.db.QueryRow(
		`SELECT result FROM rewrites WHERE tree_hash = ? AND config_hash = ?`,
		treeHash, configHash,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get: %w", err)
	}
	root, err := irjson.Decode(blob)
	if err != nil {
		// A corrupt entry is treated as a miss; the caller will overwrite it.
		return nil, false, nil
	}
	return root, true, nil
}

// Put stores a rewrite result, replacing any previous entry for the key.
func (c *Cache) Put(treeHash, configHash string, root ir.Node) error {
	blob, err := irjson.Encode(root)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO rewrites (tree_hash, config_hash, result) VALUES (?, ?, ?)`,
		treeHash, configHash, blob,
	)
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}
