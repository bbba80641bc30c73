package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/landing-generator/internal/intake"
	"github.com/jonathan/landing-generator/internal/types"
)

// Generator is the remote side of a session: the generation and regeneration webhooks.
type Generator interface {
	Generate(ctx context.Context, req types.GenerationRequest) (*types.Document, error)
	Regenerate(ctx context.Context, req types.RegenerationRequest) (string, error)
}

// Service applies user actions to stored documents.
// Webhook calls run without holding any lock; mutations of one document are serialized.
type Service struct {
	store Store
	hooks Generator
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock serializes mutations of one document. It is dropped from the map
// once no caller holds or waits for it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewService creates a session service over a store and a generator.
func NewService(store Store, hooks Generator) *Service {
	return &Service{
		store: store,
		hooks: hooks,
		now:   time.Now,
		locks: make(map[string]*sessionLock),
	}
}

// SetClock overrides the time source. Useful for testing.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Store returns the underlying document store.
func (s *Service) Store() Store {
	return s.store
}

func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// Generate validates the request, calls the generation webhook and stores the returned document.
// Nothing is stored when validation or the webhook fails.
func (s *Service) Generate(ctx context.Context, req types.GenerationRequest) (*types.Document, error) {
	req = intake.Normalize(req, s.now())
	if err := intake.Validate(req); err != nil {
		return nil, err
	}

	start := s.now()
	doc, err := s.hooks.Generate(ctx, req)
	if err != nil {
		log.Printf("[session] generation failed for %q: %v", req.NombreProducto, err)
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	fillFromRequest(doc, req)
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.CreatedAt == nil {
		created := s.now().UTC()
		doc.CreatedAt = &created
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Printf("[session] created %s (%s, %d sections) in %v", doc.ID, doc.TipoLanding, len(doc.Secciones), s.now().Sub(start))
	return doc, nil
}

// fillFromRequest copies request fields the webhook left out of its response.
func fillFromRequest(doc *types.Document, req types.GenerationRequest) {
	if doc.TipoLanding == "" {
		doc.TipoLanding = req.TipoLanding
	}
	if doc.NombreProducto == "" {
		doc.NombreProducto = req.NombreProducto
	}
	if doc.Audiencia == "" {
		doc.Audiencia = req.Audiencia
	}
	if doc.MensajesClave == "" {
		doc.MensajesClave = req.MensajesClave
	}
	if doc.Keywords == nil {
		doc.Keywords = append([]string{}, req.Keywords...)
	}
	if doc.URLsReferencia == nil {
		doc.URLsReferencia = append([]string{}, req.URLsReferencia...)
	}
	if doc.AIOverview == "" {
		doc.AIOverview = req.AIOverview
	}
	if doc.Secciones == nil {
		doc.Secciones = map[string]*types.SectionState{}
	}
}

// Get loads a stored document.
func (s *Service) Get(ctx context.Context, id string) (*types.Document, error) {
	doc, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	if doc == nil {
		return nil, &types.ErrSessionNotFound{ID: id}
	}
	return doc, nil
}

// Toggle flips the approval state of one section.
func (s *Service) Toggle(ctx context.Context, id, section string) (*types.Document, error) {
	return s.mutate(ctx, id, ToggleApproval{Section: section})
}

// Regenerate asks the webhook for new content for one section and stores it.
// The instruction must be non-empty after trimming. On any failure the stored document is unchanged.
func (s *Service) Regenerate(ctx context.Context, id, section, instruction string) (*types.Document, error) {
	instruction, err := intake.ValidateInstruction(instruction)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	current := snapshot.Section(section)
	if current == nil {
		return nil, &types.ErrSectionNotFound{Section: section}
	}

	content, err := s.hooks.Regenerate(ctx, types.RegenerationRequest{
		SessionID:       snapshot.ID,
		Seccion:         section,
		ContenidoActual: current.Contenido,
		Instruccion:     instruction,
		TipoLanding:     snapshot.TipoLanding,
		NombreProducto:  snapshot.NombreProducto,
		Keywords:        snapshot.Keywords,
	})
	if err != nil {
		log.Printf("[session] regeneration of %s/%s failed: %v", id, section, err)
		return nil, fmt.Errorf("regeneration failed: %w", err)
	}

	return s.mutate(ctx, id, ApplyRegeneration{
		Section:     section,
		Content:     content,
		Instruction: instruction,
		At:          s.now(),
	})
}

// Delete removes a stored document.
func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// mutate reloads the document under its lock, applies the action and saves the result.
func (s *Service) mutate(ctx context.Context, id string, action Action) (*types.Document, error) {
	unlock := s.lock(id)
	defer unlock()

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := Reduce(*doc, action)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return &next, nil
}
