package queue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"spotter/internal/models"
	"spotter/internal/providers"
	"time"

	json "github.com/goccy/go-json"
	"go.etcd.io/bbolt"
)

const boltBucketQueue = "offline_sightings" // key: big-endian sequence -> Sighting JSON

// BoltQueue keeps one record per key. Values that fail to decode are
// logged and skipped on read, and dropped by the next Remove.
type BoltQueue struct {
	db     *bbolt.DB
	logger providers.Logger
}

func NewBoltQueue(path string, logger providers.Logger) (*BoltQueue, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt queue: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketQueue))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &BoltQueue{db: db, logger: logger}, nil
}

func (b *BoltQueue) Append(s models.Sighting) error {
	data, err := json.Marshal(&s)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketQueue))

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		return bucket.Put(key, data)
	})
}

func (b *BoltQueue) All() ([]models.Sighting, error) {
	out := []models.Sighting{}

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketQueue))

		return bucket.ForEach(func(k, v []byte) error {
			var s models.Sighting

			if err := json.Unmarshal(v, &s); err != nil {
				b.logger.Warnf(providers.TypeSync, "Skipping unreadable queue record %x: %s", k, err)
				return nil
			}

			out = append(out, s)

			return nil
		})
	})

	return out, err
}

func (b *BoltQueue) Remove(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := idSet(ids)

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketQueue))

		var keys [][]byte
		if err := bucket.ForEach(func(k, v []byte) error {
			var s models.Sighting

			if err := json.Unmarshal(v, &s); err != nil {
				b.logger.Warnf(providers.TypeSync, "Dropping unreadable queue record %x: %s", k, err)
				keys = append(keys, append([]byte(nil), k...))
				return nil
			}

			if _, ok := drop[s.ID]; ok {
				keys = append(keys, append([]byte(nil), k...))
			}

			return nil
		}); err != nil {
			return err
		}

		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}

		return nil
	})
}

func (b *BoltQueue) Len() (int, error) {
	var n int

	err := b.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket([]byte(boltBucketQueue)).Stats().KeyN

		return nil
	})

	return n, err
}

func (b *BoltQueue) Close() error {
	if b.db == nil {
		return errors.New("bolt queue already closed")
	}
	err := b.db.Close()
	b.db = nil
	return err
}
