package syncer

import (
	"context"
	"log"
	"sync"
	"time"

	"checkmate-bot/internal/models"
)

// Status is the persistence state surfaced to the chat.
type Status int

const (
	StatusSaved Status = iota
	StatusUnsaved
	StatusSaving
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusUnsaved:
		return "unsaved"
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshotter folds the current view into history and hands back the
// full document. Implemented by state.Tracker.
type Snapshotter interface {
	Snapshot() *models.Document
}

// RemoteStore is the external document store write side.
type RemoteStore interface {
	Save(ctx context.Context, doc *models.Document) error
}

// LocalCache is the fallback cache write side.
type LocalCache interface {
	Write(doc *models.Document) error
}

// Syncer owns the debounced write-through of tracker state. Every
// tracked change calls MarkDirty; the flush snapshots, writes the local
// cache, then attempts the remote store. Failures only flip the status
// flag; the next dirty cycle retries.
type Syncer struct {
	source   Snapshotter
	remote   RemoteStore
	cache    LocalCache
	delay    time.Duration
	debounce Debouncer

	mu     sync.Mutex
	status Status
}

// New builds a Syncer. remote and cache may each be nil (degraded mode).
func New(source Snapshotter, remote RemoteStore, cache LocalCache, delay time.Duration) *Syncer {
	return &Syncer{source: source, remote: remote, cache: cache, delay: delay, status: StatusSaved}
}

// Status returns the current persistence status.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Syncer) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// MarkDirty records a tracked change and (re-)arms the debounced flush.
func (s *Syncer) MarkDirty() {
	s.setStatus(StatusUnsaved)
	s.debounce.Arm(s.delay, s.flush)
}

// Flush writes immediately, bypassing the debounce. Used on shutdown.
func (s *Syncer) Flush() {
	s.debounce.Stop()
	s.flush()
}

func (s *Syncer) flush() {
	s.setStatus(StatusSaving)
	doc := s.source.Snapshot()

	if s.cache != nil {
		if err := s.cache.Write(doc); err != nil {
			log.Println("Local cache write failed:", err)
		}
	}

	if s.remote == nil {
		s.setStatus(StatusSaved)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.remote.Save(ctx, doc); err != nil {
		log.Println("Remote save failed:", err)
		s.setStatus(StatusError)
		return
	}
	s.setStatus(StatusSaved)
}
