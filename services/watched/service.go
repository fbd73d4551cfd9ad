// Package watched persists the set of catalog ids the viewer has marked as
// watched.
package watched

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrStorageDirRequired indicates the caller did not provide a directory
	// for persistence.
	ErrStorageDirRequired = errors.New("storage directory is required")
	// ErrIDRequired indicates an empty catalog id was supplied.
	ErrIDRequired = errors.New("id is required")
)

const storageFile = "watched.json"

// document is the on-disk shape: one stable client identifier plus the flat
// set of watched ids, rewritten in full on every change.
type document struct {
	ClientID string   `json:"clientId"`
	IDs      []string `json:"ids"`
}

// Service stores the watched set in memory and mirrors every change to
// disk synchronously, so a toggle that has returned is already durable.
type Service struct {
	mu       sync.RWMutex
	path     string
	clientID string
	ids      map[string]struct{}
}

// NewService loads or creates the watched set under storageDir. A fresh
// store is assigned a generated client identifier that survives restarts.
func NewService(storageDir string) (*Service, error) {
	if strings.TrimSpace(storageDir) == "" {
		return nil, ErrStorageDirRequired
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	svc := &Service{
		path: filepath.Join(storageDir, storageFile),
		ids:  make(map[string]struct{}),
	}
	if err := svc.load(); err != nil {
		return nil, err
	}
	if svc.clientID == "" {
		svc.clientID = uuid.NewString()
		if err := svc.saveLocked(); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// ClientID returns the stable identifier assigned to this store.
func (s *Service) ClientID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientID
}

// IsWatched reports whether id is in the watched set.
func (s *Service) IsWatched(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// List returns the watched ids in sorted order.
func (s *Service) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

// Toggle flips the watched mark for id and persists the change before
// returning. The returned bool is the new state: true means id is now
// watched. Toggling twice always restores the original state.
func (s *Service) Toggle(id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.ids[id]
	if existed {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}

	if err := s.saveLocked(); err != nil {
		// Roll back so memory never disagrees with disk.
		if existed {
			s.ids[id] = struct{}{}
		} else {
			delete(s.ids, id)
		}
		return existed, err
	}
	return !existed, nil
}

func (s *Service) load() error {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open watched store: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read watched store: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err == nil {
		s.clientID = doc.ClientID
		for _, id := range doc.IDs {
			s.ids[id] = struct{}{}
		}
		return nil
	}

	// Earlier versions stored a bare JSON array of ids.
	var legacy []string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("failed to decode watched store: %w", err)
	}
	for _, id := range legacy {
		s.ids[id] = struct{}{}
	}
	return nil
}

func (s *Service) saveLocked() error {
	doc := document{
		ClientID: s.clientID,
		IDs:      s.sortedLocked(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode watched store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace watched store: %w", err)
	}
	return nil
}

func (s *Service) sortedLocked() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
