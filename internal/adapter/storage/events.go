package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/colinmarc/hdfs/v2"
	"github.com/niksmo/eshop/internal/core/domain"
	"github.com/niksmo/eshop/internal/core/port"
	"github.com/niksmo/eshop/pkg/retry"
)

var _ port.EventsStorage = (*EventsRepository)(nil)

type clientEvent struct {
	Username    string  `json:"username"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Event       string  `json:"event"`
	Quantity    int     `json:"quantity"`
}

type hdfsClient interface {
	Append(name string) (*hdfs.FileWriter, error)
	Create(name string) (*hdfs.FileWriter, error)
}

// An EventsRepository archives client events as JSON lines,
// one file per username.
type EventsRepository struct {
	hdfs hdfsClient
}

func NewEventsRepository(hdfs hdfsClient) EventsRepository {
	return EventsRepository{hdfs}
}

func NewHDFSClient(addr string) (*hdfs.Client, error) {
	const op = "NewHDFSClient"
	cl, err := hdfs.New(addr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cl, nil
}

func (r EventsRepository) StoreEvents(
	ctx context.Context, username string, evts []domain.ClientEvent,
) error {
	const op = "EventsRepository.StoreEvents"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w, err := r.createWriter(r.getFileName(username))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.saveEvents(w, evts); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.closeWriter(ctx, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r EventsRepository) getFileName(username string) string {
	return "/" + username
}

func (r EventsRepository) createWriter(filepath string) (io.WriteCloser, error) {
	w, err := r.hdfs.Append(filepath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		w, err = r.hdfs.Create(filepath)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (r EventsRepository) saveEvents(
	w io.WriteCloser, evts []domain.ClientEvent,
) error {
	enc := json.NewEncoder(w)
	for _, evt := range evts {
		if err := enc.Encode(r.toClientEvent(evt)); err != nil {
			return err
		}
	}
	return nil
}

func (r EventsRepository) closeWriter(
	ctx context.Context, w io.WriteCloser,
) error {
	retryCfg := retry.Config{
		MaxAttempts: 5,
		Backoff:     retry.LinearBackoff(50 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, hdfs.ErrReplicating)
		},
	}
	return retry.Do(ctx, retryCfg, w.Close)
}

func (r EventsRepository) toClientEvent(evt domain.ClientEvent) (v clientEvent) {
	v.Username = evt.Username
	v.ProductID = evt.ProductID
	v.ProductName = evt.ProductName
	v.Category = evt.Category
	v.Price = evt.Price
	v.Event = evt.Event
	v.Quantity = evt.Quantity
	return
}
