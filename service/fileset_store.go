package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
)

// FileSetStore keeps the generated sub-documents of each processed
// contract in memory, keyed by a generated id. Replacing a PDK swaps
// the stored bytes in place so the superseded document is released.
// ErrNotFound is returned when no file set exists under the given id.
var ErrNotFound = errors.New("file set not found")

type FileSetStore struct {
	mu   sync.RWMutex
	sets map[string]*dto.FileSet
}

func NewFileSetStore() *FileSetStore {
	return &FileSetStore{sets: make(map[string]*dto.FileSet)}
}

// Put registers a file set and returns its id.
func (s *FileSetStore) Put(fs *dto.FileSet) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs.ID = uuid.New().String()
	fs.CreatedAt = time.Now()
	s.sets[fs.ID] = fs
	return fs.ID
}

// Get returns a stored file set.
func (s *FileSetStore) Get(id string) (*dto.FileSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fs, ok := s.sets[id]
	if !ok {
		return nil, fmt.Errorf("file set %s: %w", id, ErrNotFound)
	}
	return fs, nil
}

// ReplacePdk swaps the PDK sub-document of a stored set. Passing nil
// removes it (DL contracts never carry one).
func (s *FileSetStore) ReplacePdk(id string, pdk []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.sets[id]
	if !ok {
		return fmt.Errorf("file set %s: %w", id, ErrNotFound)
	}
	if fs.Docs == nil {
		fs.Docs = make(map[dto.FileKey][]byte)
	}
	if pdk == nil {
		delete(fs.Docs, dto.FilePdk)
	} else {
		fs.Docs[dto.FilePdk] = pdk
	}
	return nil
}

// Delete drops a stored file set.
func (s *FileSetStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, id)
}
