package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/landing-generator/internal/intake"
	"github.com/jonathan/landing-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu         sync.Mutex
	doc        *types.Document
	genErr     error
	content    string
	regenErr   error
	genCalls   int
	regenCalls int
	lastRegen  types.RegenerationRequest
}

func (f *fakeGenerator) Generate(_ context.Context, _ types.GenerationRequest) (*types.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genCalls++
	if f.genErr != nil {
		return nil, f.genErr
	}
	cp := f.doc.Clone()
	return &cp, nil
}

func (f *fakeGenerator) Regenerate(_ context.Context, req types.RegenerationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regenCalls++
	f.lastRegen = req
	if f.regenErr != nil {
		return "", f.regenErr
	}
	return f.content, nil
}

func validRequest() types.GenerationRequest {
	return types.GenerationRequest{
		TipoLanding:          types.LandingProduct,
		SeccionesSolicitadas: []string{"hero", "faqs"},
		NombreProducto:       "Tarjeta Oro",
		Keywords:             []string{" tarjeta ", ""},
	}
}

func newTestService(gen *fakeGenerator) *Service {
	svc := NewService(NewMemoryStore(), gen)
	svc.SetClock(func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) })
	return svc
}

func TestService_Generate(t *testing.T) {
	gen := &fakeGenerator{doc: &types.Document{
		Secciones: map[string]*types.SectionState{"hero": {Contenido: "# Hola"}},
	}}
	svc := newTestService(gen)

	doc, err := svc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, types.LandingProduct, doc.TipoLanding)
	assert.Equal(t, "Tarjeta Oro", doc.NombreProducto)
	assert.Equal(t, []string{"tarjeta"}, doc.Keywords)
	require.NotNil(t, doc.CreatedAt)

	stored, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "# Hola", stored.Secciones["hero"].Contenido)
}

func TestService_GenerateValidationSkipsWebhook(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.GenerationRequest)
		message string
	}{
		{"missing type", func(r *types.GenerationRequest) { r.TipoLanding = "" }, intake.MsgTipoLanding},
		{"no sections", func(r *types.GenerationRequest) { r.SeccionesSolicitadas = nil }, intake.MsgSecciones},
		{"blank name", func(r *types.GenerationRequest) { r.NombreProducto = "   " }, intake.MsgNombreProducto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{doc: &types.Document{}}
			svc := newTestService(gen)

			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Generate(context.Background(), req)

			var valErr *types.ErrValidation
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.message, valErr.Message)
			assert.Zero(t, gen.genCalls)
		})
	}
}

func TestService_GenerateFailureStoresNothing(t *testing.T) {
	store := NewMemoryStore()
	gen := &fakeGenerator{genErr: errors.New("boom")}
	svc := NewService(store, gen)

	_, err := svc.Generate(context.Background(), validRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Empty(t, store.docs)
}

func TestService_Toggle(t *testing.T) {
	svc := newTestService(&fakeGenerator{})
	doc := sampleDocument()
	require.NoError(t, svc.Store().Save(context.Background(), &doc))

	next, err := svc.Toggle(context.Background(), "s1", "hero")
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, next.Secciones["hero"].Estado)

	stored, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, stored.Secciones["hero"].Estado)

	_, err = svc.Toggle(context.Background(), "missing", "hero")
	var notFound *types.ErrSessionNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestService_Regenerate(t *testing.T) {
	gen := &fakeGenerator{content: "- nuevas"}
	svc := newTestService(gen)
	doc := sampleDocument()
	require.NoError(t, svc.Store().Save(context.Background(), &doc))
	require.Equal(t, types.StatusApproved, doc.Secciones["faqs"].Estado)

	next, err := svc.Regenerate(context.Background(), "s1", "faqs", "  más preguntas  ")
	require.NoError(t, err)
	assert.Equal(t, "- nuevas", next.Secciones["faqs"].Contenido)
	assert.Equal(t, types.StatusPending, next.Secciones["faqs"].Estado)
	require.Len(t, next.Secciones["faqs"].Historial, 1)

	assert.Equal(t, "s1", gen.lastRegen.SessionID)
	assert.Equal(t, "faqs", gen.lastRegen.Seccion)
	assert.Equal(t, "- una", gen.lastRegen.ContenidoActual)
	assert.Equal(t, "más preguntas", gen.lastRegen.Instruccion)
	assert.Equal(t, []string{"tarjeta"}, gen.lastRegen.Keywords)
}

func TestService_RegenerateEmptyInstruction(t *testing.T) {
	gen := &fakeGenerator{content: "x"}
	svc := newTestService(gen)
	doc := sampleDocument()
	require.NoError(t, svc.Store().Save(context.Background(), &doc))

	_, err := svc.Regenerate(context.Background(), "s1", "faqs", "   ")
	var valErr *types.ErrValidation
	require.ErrorAs(t, err, &valErr)
	assert.Zero(t, gen.regenCalls)
}

func TestService_RegenerateFailureLeavesDocument(t *testing.T) {
	gen := &fakeGenerator{regenErr: errors.New("timeout")}
	svc := newTestService(gen)
	doc := sampleDocument()
	require.NoError(t, svc.Store().Save(context.Background(), &doc))

	_, err := svc.Regenerate(context.Background(), "s1", "faqs", "otra versión")
	require.Error(t, err)

	stored, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "- una", stored.Secciones["faqs"].Contenido)
	assert.Equal(t, types.StatusApproved, stored.Secciones["faqs"].Estado)
	assert.Empty(t, stored.Secciones["faqs"].Historial)
}

func TestService_RegenerateUnknownSection(t *testing.T) {
	gen := &fakeGenerator{content: "x"}
	svc := newTestService(gen)
	doc := sampleDocument()
	require.NoError(t, svc.Store().Save(context.Background(), &doc))

	_, err := svc.Regenerate(context.Background(), "s1", "nope", "algo")
	var notFound *types.ErrSectionNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Zero(t, gen.regenCalls)
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(&fakeGenerator{})
	doc := sampleDocument()
	require.NoError(t, svc.Store().Save(context.Background(), &doc))

	require.NoError(t, svc.Delete(context.Background(), "s1"))
	_, err := svc.Get(context.Background(), "s1")
	var notFound *types.ErrSessionNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestService_ConcurrentRegenerationsKeepVersionsContiguous(t *testing.T) {
	gen := &fakeGenerator{content: "- nueva"}
	svc := newTestService(gen)
	doc := sampleDocument()
	require.NoError(t, svc.Store().Save(context.Background(), &doc))

	const n = 30
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Regenerate(context.Background(), "s1", "faqs", fmt.Sprintf("instrucción %d", i))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	history := stored.Secciones["faqs"].Historial
	require.Len(t, history, n)

	versions := make([]int, 0, n)
	for _, rev := range history {
		versions = append(versions, rev.Version)
	}
	sort.Ints(versions)
	for i, v := range versions {
		assert.Equal(t, i+1, v)
	}
	assert.Equal(t, types.StatusPending, stored.Secciones["faqs"].Estado)
}

func TestService_LocksReleasedAfterUse(t *testing.T) {
	svc := newTestService(&fakeGenerator{content: "x"})
	doc := sampleDocument()
	require.NoError(t, svc.Store().Save(context.Background(), &doc))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Toggle(context.Background(), "s1", "hero")
		}()
	}
	wg.Wait()
	_, err := svc.Regenerate(context.Background(), "s1", "faqs", "otra")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), "s1"))

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.locks)
}
