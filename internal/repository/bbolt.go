package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	jobsBucket     = "jobs"
	metadataBucket = "metadata"
	schemaVersion  = 1
)

var (
	// ErrJobNotFound is returned when a job record cannot be found
	ErrJobNotFound = errors.New("job not found")
)

// BboltRepository implements Repository on top of a bbolt file.
type BboltRepository struct {
	db *bbolt.DB
}

// NewBboltRepository opens or creates the history database at dbPath.
func NewBboltRepository(dbPath string) (*BboltRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := &bbolt.Options{
		Timeout: 1 * time.Second,
	}

	db, err := bbolt.Open(dbPath, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &BboltRepository{
		db: db,
	}

	if err := repo.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// initialize sets up buckets and schema
func (r *BboltRepository) initialize() error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(jobsBucket))
		if err != nil {
			return fmt.Errorf("failed to create jobs bucket: %w", err)
		}

		metadataBucket, err := tx.CreateBucketIfNotExists([]byte(metadataBucket))
		if err != nil {
			return fmt.Errorf("failed to create metadata bucket: %w", err)
		}

		versionBytes := []byte(fmt.Sprintf("%d", schemaVersion))
		err = metadataBucket.Put([]byte("schema_version"), versionBytes)
		if err != nil {
			return fmt.Errorf("failed to store schema version: %w", err)
		}

		return nil
	})
}

// Save persists a job record
func (r *BboltRepository) Save(record *JobRecord) error {
	if record == nil {
		return errors.New("cannot save nil job record")
	}
	if record.ID == uuid.Nil {
		return errors.New("job ID cannot be empty")
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", jobsBucket)
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal job record: %w", err)
		}

		err = bucket.Put([]byte(record.ID.String()), data)
		if err != nil {
			return fmt.Errorf("failed to save job record: %w", err)
		}

		return nil
	})
}

// Find retrieves a job record by ID
func (r *BboltRepository) Find(id uuid.UUID) (*JobRecord, error) {
	if id == uuid.Nil {
		return nil, errors.New("job ID cannot be empty")
	}

	var data []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", jobsBucket)
		}

		// bbolt memory is only valid inside the transaction
		v := bucket.Get([]byte(id.String()))
		if v == nil {
			return ErrJobNotFound
		}
		data = slices.Clone(v)

		return nil
	})

	if err != nil {
		return nil, err
	}

	record := &JobRecord{}

	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job record: %w", err)
	}

	return record, nil
}

// FindAll retrieves all job records, oldest first
func (r *BboltRepository) FindAll() ([]*JobRecord, error) {
	var records []*JobRecord

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", jobsBucket)
		}

		return bucket.ForEach(func(k, v []byte) error {
			record := &JobRecord{}

			if err := json.Unmarshal(v, record); err != nil {
				return fmt.Errorf("failed to unmarshal job record: %w", err)
			}

			records = append(records, record)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(records, func(a, b *JobRecord) int {
		return a.Started.Compare(b.Started)
	})

	return records, nil
}

// Delete removes a job record
func (r *BboltRepository) Delete(id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("job ID cannot be empty")
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobsBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", jobsBucket)
		}

		if bucket.Get([]byte(id.String())) == nil {
			return ErrJobNotFound
		}

		return bucket.Delete([]byte(id.String()))
	})
}

// Clear removes every job record
func (r *BboltRepository) Clear() error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(jobsBucket)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to drop jobs bucket: %w", err)
		}
		if _, err := tx.CreateBucket([]byte(jobsBucket)); err != nil {
			return fmt.Errorf("failed to create jobs bucket: %w", err)
		}
		return nil
	})
}

// Close closes the database
func (r *BboltRepository) Close() error {
	return r.db.Close()
}
