package session

import (
	"log"

	"github.com/playmesh/tictactoe/game/history"
)

// Saver persists the registry and ledger asynchronously. Callers signal a
// dirty state with Notify and move on; the saver goroutine coalesces signals
// and writes full snapshots. In-memory state stays authoritative: a failed
// write is logged and never retried against the caller.
type Saver struct {
	store  *Store
	ledger *history.Ledger
	files  Persistence

	notify chan struct{}
	quit   chan struct{}
	done   chan struct{}
}

// NewSaver creates a saver. Call Run in a goroutine and Close on shutdown.
func NewSaver(store *Store, ledger *history.Ledger, files Persistence) *Saver {
	return &Saver{
		store:  store,
		ledger: ledger,
		files:  files,
		notify: make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Notify marks state dirty. It never blocks; a pending signal already
// covers this mutation because the saver snapshots current state.
func (s *Saver) Notify() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Run processes dirty signals until Close is called, then takes a final
// snapshot so shutdown never loses acknowledged state.
func (s *Saver) Run() {
	defer close(s.done)
	for {
		select {
		case <-s.notify:
			s.flush()
		case <-s.quit:
			s.flush()
			return
		}
	}
}

// Close stops the saver after a final flush and waits for it to finish.
func (s *Saver) Close() {
	close(s.quit)
	<-s.done
}

func (s *Saver) flush() {
	if err := s.files.SaveGames(s.store.Snapshot()); err != nil {
		log.Printf("Warning: failed to persist game registry: %v", err)
	}
	if err := s.files.SaveHistory(s.ledger.Snapshot()); err != nil {
		log.Printf("Warning: failed to persist history ledger: %v", err)
	}
}
