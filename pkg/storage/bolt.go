package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yasi-python/cistats/pkg/stats"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketMeans       = []byte("means")
	bucketProportions = []byte("proportions")
	bucketIngested    = []byte("ingested")
)

var ErrNotFound = errors.New("not_found")

type DB struct {
	db *bolt.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, e := tx.CreateBucketIfNotExists(bucketMeans); e != nil {
			return e
		}
		if _, e := tx.CreateBucketIfNotExists(bucketProportions); e != nil {
			return e
		}
		if _, e := tx.CreateBucketIfNotExists(bucketIngested); e != nil {
			return e
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

// MeanRecord is a named mean accumulator at rest.
type MeanRecord struct {
	Name        string             `json:"name"`
	State       stats.MeanSnapshot `json:"state"`
	UpdatedUnix int64              `json:"updated_unix"`
}

// ProportionRecord is a named success counter at rest.
type ProportionRecord struct {
	Name        string `json:"name"`
	Population  int    `json:"population"`
	Successes   int    `json:"successes"`
	UpdatedUnix int64  `json:"updated_unix"`
}

func (d *DB) PutMean(r MeanRecord) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMeans)
		j, _ := json.Marshal(r)
		return b.Put([]byte(r.Name), j)
	})
}

func (d *DB) GetMean(name string) (*MeanRecord, error) {
	var r MeanRecord
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMeans).Get([]byte(name))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DB) ListMeans() ([]MeanRecord, error) {
	out := []MeanRecord{}
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMeans).ForEach(func(k, v []byte) error {
			var r MeanRecord
			if err := json.Unmarshal(v, &r); err == nil {
				out = append(out, r)
			}
			return nil
		})
	})
	return out, err
}

func (d *DB) DeleteMean(name string) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketMeans).Delete([]byte(name))
	})
}

// AppendSamples folds samples into the named accumulator inside one
// transaction, creating it with the given kind when absent. A sample
// outside the accumulator's domain aborts the whole append.
func (d *DB) AppendSamples(name string, kind stats.MeanKind, samples []float64) (*MeanRecord, error) {
	var r MeanRecord
	err := d.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMeans)
		v := b.Get([]byte(name))
		var acc stats.MeanStats
		var err error
		if v != nil {
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			acc, err = stats.RestoreMean(r.State)
		} else {
			r = MeanRecord{Name: name}
			acc, err = stats.NewMean(kind)
		}
		if err != nil {
			return err
		}
		if err := acc.Append(samples...); err != nil {
			return err
		}
		r.State = acc.Snapshot()
		r.UpdatedUnix = time.Now().Unix()
		j, _ := json.Marshal(r)
		return b.Put([]byte(name), j)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// WasIngested reports whether path was already ingested with this
// modification time. A changed mtime reads as not ingested, so a
// rewritten file is folded in again.
func (d *DB) WasIngested(path string, mtime time.Time) (bool, error) {
	var done bool
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketIngested).Get([]byte(path))
		if v == nil {
			return nil
		}
		stamp, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return nil
		}
		done = stamp == mtime.UnixNano()
		return nil
	})
	return done, err
}

// MarkIngested records that path was ingested at this modification time.
// The mark survives restarts, so a fresh process does not double-count
// files still sitting in the drop directory.
func (d *DB) MarkIngested(path string, mtime time.Time) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		stamp := strconv.FormatInt(mtime.UnixNano(), 10)
		return tx.Bucket(bucketIngested).Put([]byte(path), []byte(stamp))
	})
}

func (d *DB) GetProportion(name string) (*ProportionRecord, error) {
	var r ProportionRecord
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketProportions).Get([]byte(name))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DB) ListProportions() ([]ProportionRecord, error) {
	out := []ProportionRecord{}
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketProportions).ForEach(func(k, v []byte) error {
			var r ProportionRecord
			if err := json.Unmarshal(v, &r); err == nil {
				out = append(out, r)
			}
			return nil
		})
	})
	return out, err
}

// UpdateProportion adds successes and failures to the named counter
// inside one transaction.
func (d *DB) UpdateProportion(name string, successes, failures int) (*ProportionRecord, error) {
	var r ProportionRecord
	err := d.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProportions)
		v := b.Get([]byte(name))
		if v != nil {
			_ = json.Unmarshal(v, &r)
		} else {
			r = ProportionRecord{Name: name}
		}
		r.Population += successes + failures
		r.Successes += successes
		r.UpdatedUnix = time.Now().Unix()
		j, _ := json.Marshal(r)
		return b.Put([]byte(name), j)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
