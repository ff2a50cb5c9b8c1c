package stores

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"strconv"

	"tron/sweeper/internal/models"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketRuns = []byte("runs")

	ErrRunNotFound = errors.New("run not found")
)

// Journal records the outcome of each run. It is never read back to make
// transfer decisions.
type Journal interface {
	Append(ctx context.Context, rec *models.RunRecord) error
	Get(ctx context.Context, id string) (*models.RunRecord, error)
	Scan(ctx context.Context, visit func(*models.RunRecord) error) error
	Close() error
}

type LocalJournal struct {
	db *bolt.DB
}

func NewLocalJournal(path string) (*LocalJournal, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, e := tx.CreateBucketIfNotExists(bucketRuns); e != nil {
			return e
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &LocalJournal{db: db}, nil
}

// Append stores rec under the next sequence number and sets rec.ID to it
func (j *LocalJournal) Append(ctx context.Context, rec *models.RunRecord) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		rec.ID = strconv.FormatUint(seq, 10)
		blob, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), blob)
	})
}

func (j *LocalJournal) Get(ctx context.Context, id string) (*models.RunRecord, error) {
	seq, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, ErrRunNotFound
	}
	var out models.RunRecord
	err = j.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketRuns).Get(itob(seq))
		if v == nil {
			return ErrRunNotFound
		}
		return json.Unmarshal(v, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Scans all runs, oldest first
func (j *LocalJournal) Scan(ctx context.Context, visit func(*models.RunRecord) error) error {
	return j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			var rec models.RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if err := visit(&rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (j *LocalJournal) Close() error {
	return j.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
