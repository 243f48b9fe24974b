package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/playmesh/tictactoe/game/engine"
	"github.com/playmesh/tictactoe/game/history"
)

const (
	gamesFile   = "games.json"
	historyFile = "history.json"
)

// FileStore implements Persistence with two JSON files under a data
// directory: games.json (registry snapshot) and history.json (ledger).
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// SaveGames writes the full registry snapshot.
func (fs *FileStore) SaveGames(games []*engine.Game) error {
	return fs.writeJSON(gamesFile, games)
}

// LoadGames reads the registry snapshot. A missing file means a fresh start.
func (fs *FileStore) LoadGames() ([]*engine.Game, error) {
	var games []*engine.Game
	if err := fs.readJSON(gamesFile, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// SaveHistory writes the ledger in append order.
func (fs *FileStore) SaveHistory(entries []history.Entry) error {
	return fs.writeJSON(historyFile, entries)
}

// LoadHistory reads the ledger, preserving its persisted order.
func (fs *FileStore) LoadHistory() ([]history.Entry, error) {
	var entries []history.Entry
	if err := fs.readJSON(historyFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (fs *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(fs.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (fs *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(fs.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}
