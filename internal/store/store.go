// Package store archives completed run reports in a local bbolt database so
// past runs can be listed and inspected after the fact.
package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"ifcore/internal/engine"
)

const runsBucket = "runs"

// ArchivedRun wraps a run report with the metadata needed to find it again.
type ArchivedRun struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Model     string           `json:"model"`
	Report    engine.RunReport `json:"report"`
}

// RunInfo is the listing view of an archived run.
type RunInfo struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Model          string    `json:"model"`
	TotalCheckers  int       `json:"total_checkers"`
	FailedCheckers int       `json:"failed_checkers"`
	TotalResults   int       `json:"total_results"`
}

// Store is a bbolt-backed run archive.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the archive at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open run archive: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init run archive: %w", err)
	}
	return &Store{db: db}, nil
}

// Save archives a report and returns the generated run ID. IDs sort by
// creation time, so bucket iteration yields runs chronologically.
func (s *Store) Save(modelPath string, report *engine.RunReport) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report must not be nil")
	}
	now := time.Now().UTC()
	run := ArchivedRun{
		ID:        now.Format("20060102T150405.000000000Z"),
		CreatedAt: now,
		Model:     modelPath,
		Report:    *report,
	}
	data, err := json.Marshal(run)
	if err != nil {
		return "", fmt.Errorf("encode run: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).Put([]byte(run.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("archive run: %w", err)
	}
	return run.ID, nil
}

// List returns metadata for every archived run, oldest first.
func (s *Store) List() ([]RunInfo, error) {
	var out []RunInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(runsBucket)).ForEach(func(k, v []byte) error {
			var run ArchivedRun
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("decode run %s: %w", k, err)
			}
			out = append(out, RunInfo{
				ID:             run.ID,
				CreatedAt:      run.CreatedAt,
				Model:          run.Model,
				TotalCheckers:  run.Report.Summary.TotalCheckers,
				FailedCheckers: run.Report.Summary.FailedCheckers,
				TotalResults:   run.Report.Summary.TotalResults,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get loads one archived run by ID.
func (s *Store) Get(id string) (*ArchivedRun, error) {
	var run ArchivedRun
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(runsBucket)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("run not found: %s", id)
		}
		return json.Unmarshal(data, &run)
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
