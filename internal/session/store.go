package session

import (
	"context"
	"sync"

	"github.com/jonathan/landing-generator/internal/types"
)

// Store persists session documents.
// Load returns nil, nil when no document is stored under the id.
type Store interface {
	Load(ctx context.Context, id string) (*types.Document, error)
	Save(ctx context.Context, doc *types.Document) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps documents in process memory. Documents live as long as the process.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]types.Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]types.Document)}
}

// Load returns a copy of the stored document.
func (s *MemoryStore) Load(_ context.Context, id string) (*types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	cp := doc.Clone()
	return &cp, nil
}

// Save overwrites the document stored under doc.ID.
func (s *MemoryStore) Save(_ context.Context, doc *types.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc.Clone()
	return nil
}

// Delete removes a document. Deleting a missing id is not an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}
