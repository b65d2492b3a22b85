// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package journal keeps a local history of orchestrator runs in a bbolt file.
// Records are informational only; no release decision reads them.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// FileName is the journal database file inside the state directory.
const FileName = "journal.db"

var bucketRuns = []byte("runs")

// StepResult is the outcome of one pipeline step.
type StepResult struct {
	Step   string `json:"step"`
	Status string `json:"status"` // done, skipped, failed
	Detail string `json:"detail,omitempty"`
}

// Record describes one run.
type Record struct {
	ID            uint64       `json:"id"`
	Project       string       `json:"project"`
	VersionBefore string       `json:"version_before"`
	VersionAfter  string       `json:"version_after"`
	Tag           string       `json:"tag,omitempty"`
	Steps         []StepResult `json:"steps"`
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
}

// Journal is an open journal database.
type Journal struct {
	db *bolt.DB
}

// Open opens (or creates) the journal at path.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// OpenIn opens the journal file inside dir.
func OpenIn(dir string) (*Journal, error) {
	return Open(filepath.Join(dir, FileName))
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Append stores rec under the next sequence number and returns that ID.
func (j *Journal) Append(rec Record) (uint64, error) {
	var id uint64
	err := j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		id = seq
		rec.ID = seq
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		return b.Put(itob(seq), data)
	})
	if err != nil {
		return 0, fmt.Errorf("append run record: %w", err)
	}
	return id, nil
}

// List returns up to limit records, newest first. limit <= 0 means all.
func (j *Journal) List(limit int) ([]Record, error) {
	var records []Record
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode record %d: %w", binary.BigEndian.Uint64(k), err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// itob encodes a sequence number so keys sort numerically.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
