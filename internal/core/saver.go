package core

import (
	"sync"

	"github.com/argentum-labs/stackvault/internal/crypto"
	"github.com/argentum-labs/stackvault/internal/logger"
	"github.com/argentum-labs/stackvault/internal/storage"
)

// saveJob is one snapshot queued for persistence. Each job carries its own
// copy of the key material so a later rotation cannot race the write.
type saveJob struct {
	gen        uint64
	payload    []byte
	key        []byte
	salt       []byte
	iterations int
	pref       storage.Preference
}

// saver serializes encrypt-and-persist cycles on a single worker goroutine.
// Only one job is ever pending: a newer snapshot replaces an unstarted older
// one, so the last mutation in logical order is the one that lands on disk,
// and an older in-flight save can never overwrite a newer edit's result.
type saver struct {
	store     *storage.Store
	sessionID string
	log       *logger.Logger

	mu        sync.Mutex
	cond      *sync.Cond
	pending   *saveJob
	nextGen   uint64
	storedGen uint64
	err       error
	closed    bool
	done      chan struct{}
}

func newSaver(store *storage.Store, sessionID string, log *logger.Logger) *saver {
	s := &saver{
		store:     store,
		sessionID: sessionID,
		log:       log,
		done:      make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

func (s *saver) run() {
	defer close(s.done)
	s.mu.Lock()
	for {
		for s.pending == nil && !s.closed {
			s.cond.Wait()
		}
		if s.pending == nil {
			s.mu.Unlock()
			return
		}
		job := s.pending
		s.pending = nil
		s.mu.Unlock()

		err := s.write(job)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to persist dataset")
		}

		s.mu.Lock()
		s.storedGen = job.gen
		s.err = err
		s.cond.Broadcast()
	}
}

func (s *saver) write(job *saveJob) error {
	sealer := crypto.NewSealer(job.key)
	ciphertext, nonce, err := sealer.Seal(job.payload)
	crypto.ClearBytes(job.payload)
	crypto.ClearBytes(job.key)
	if err != nil {
		return err
	}

	blob := &storage.Blob{
		Version:    storage.BlobVersion,
		Ciphertext: ciphertext,
		Nonce:      nonce,
	}
	if len(job.salt) > 0 {
		blob.Salt = job.salt
		blob.Iterations = job.iterations
	}
	return s.store.WriteBlob(blob, job.pref, s.sessionID)
}

// enqueue queues a snapshot, displacing any not-yet-started one.
func (s *saver) enqueue(job *saveJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		crypto.ClearBytes(job.payload)
		crypto.ClearBytes(job.key)
		return
	}
	if s.pending != nil {
		crypto.ClearBytes(s.pending.payload)
		crypto.ClearBytes(s.pending.key)
	}
	s.nextGen++
	job.gen = s.nextGen
	s.pending = job
	s.cond.Broadcast()
}

// flush blocks until every queued snapshot has been written and returns the
// result of the last write.
func (s *saver) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.storedGen < s.nextGen && !s.closed {
		s.cond.Wait()
	}
	return s.err
}

// close drains pending work and stops the worker.
func (s *saver) close() error {
	err := s.flush()
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
	<-s.done
	return err
}
