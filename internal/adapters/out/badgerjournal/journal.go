// Package badgerjournal keeps an append-only journal of domain events in an
// embedded Badger store. Events are keyed by order so the history of one
// order is a single prefix scan in occurrence order.
package badgerjournal

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "event/"

var _ ports.EventPublisher = (*Journal)(nil)

// Journal implements ports.EventPublisher over a Badger database.
type Journal struct {
	db *badger.DB
}

// Open opens or creates the journal at path. An empty path keeps it in memory.
func Open(path string) (*Journal, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger journal: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

type record struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	AggregateID string            `json:"aggregateId"`
	OccurredAt  time.Time         `json:"occurredAt"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Publish appends the events in one Badger transaction.
func (j *Journal) Publish(ctx context.Context, events []kernel.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return j.db.Update(func(txn *badger.Txn) error {
		for _, e := range events {
			val, err := json.Marshal(record{
				ID:          e.ID.String(),
				Name:        e.Name,
				AggregateID: e.AggregateID.String(),
				OccurredAt:  e.OccurredAt.UTC(),
				Attributes:  e.Attributes,
			})
			if err != nil {
				return err
			}
			if err = txn.Set(eventKey(e), val); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByAggregate returns the journal of one aggregate, oldest first.
func (j *Journal) ListByAggregate(ctx context.Context, aggregateID kernel.UUID) ([]kernel.Event, error) {
	prefix := []byte(keyPrefix + aggregateID.String() + "/")
	var out []kernel.Event

	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				e, decodeErr := decode(val)
				if decodeErr != nil {
					return decodeErr
				}
				out = append(out, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// eventKey is event/<aggregate>/<big-endian unix nanos>/<event id>.
func eventKey(e kernel.Event) []byte {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(e.OccurredAt.UnixNano())) //nolint:gosec // timestamps after 1970
	key := make([]byte, 0, len(keyPrefix)+36+1+8+1+36)
	key = append(key, keyPrefix...)
	key = append(key, e.AggregateID.String()...)
	key = append(key, '/')
	key = append(key, ts[:]...)
	key = append(key, '/')
	key = append(key, e.ID.String()...)
	return key
}

func decode(val []byte) (kernel.Event, error) {
	var r record
	if err := json.Unmarshal(val, &r); err != nil {
		return kernel.Event{}, err
	}
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return kernel.Event{}, err
	}
	aggregateID, err := kernel.UUIDFromString(r.AggregateID)
	if err != nil {
		return kernel.Event{}, err
	}
	return kernel.Event{
		ID:          id,
		Name:        r.Name,
		AggregateID: aggregateID,
		OccurredAt:  r.OccurredAt,
		Attributes:  r.Attributes,
	}, nil
}
