package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"sync"

	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/domain/repository"
	"pharmanet/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore is an in-memory RecordStore with per-collection failure injection.
type memoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	createErr   map[string]error
	getErr      map[string]error
	calls       []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		collections: make(map[string]map[string]map[string]any),
		createErr:   make(map[string]error),
		getErr:      make(map[string]error),
	}
}

func (s *memoryStore) record(op, collection string) {
	s.calls = append(s.calls, op+":"+collection)
}

func (s *memoryStore) put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	s.collections[collection][id] = maps.Clone(fields)
}

func (s *memoryStore) fields(collection, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.collections[collection][id]

	return fields, ok
}

func (s *memoryStore) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.collections[collection])
}

func (s *memoryStore) NewID(string) string {
	return uuid.NewString()
}

func (s *memoryStore) Create(_ context.Context, collection, id string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("create", collection)
	if id == "" {
		id = uuid.NewString()
	}
	if err := s.createLocked(collection, id, fields); err != nil {
		return "", err
	}

	return id, nil
}

func (s *memoryStore) createLocked(collection, id string, fields map[string]any) error {
	if err := s.createErr[collection]; err != nil {
		return err
	}
	if _, ok := s.collections[collection][id]; ok {
		return repository.ErrRecordExists
	}
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]any)
	}
	s.collections[collection][id] = maps.Clone(fields)

	return nil
}

func (s *memoryStore) Get(_ context.Context, collection, id string) (*repository.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("get", collection)

	return s.getLocked(collection, id)
}

func (s *memoryStore) getLocked(collection, id string) (*repository.Record, error) {
	if err := s.getErr[collection]; err != nil {
		return nil, err
	}
	fields, ok := s.collections[collection][id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}

	return &repository.Record{ID: id, Fields: maps.Clone(fields)}, nil
}

func (s *memoryStore) Query(_ context.Context, collection, field string, value any) ([]*repository.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("query", collection)

	var records []*repository.Record
	for id, fields := range s.collections[collection] {
		if fields[field] == value {
			records = append(records, &repository.Record{ID: id, Fields: maps.Clone(fields)})
		}
	}

	return records, nil
}

func (s *memoryStore) List(_ context.Context, collection string) ([]*repository.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("list", collection)
	if err := s.getErr[collection]; err != nil {
		return nil, err
	}

	records := make([]*repository.Record, 0, len(s.collections[collection]))
	for id, fields := range s.collections[collection] {
		records = append(records, &repository.Record{ID: id, Fields: maps.Clone(fields)})
	}

	return records, nil
}

func (s *memoryStore) Merge(_ context.Context, collection, id string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record("merge", collection)

	fields, ok := s.collections[collection][id]
	if !ok {
		return repository.ErrRecordNotFound
	}
	maps.Copy(fields, partial)

	return nil
}

func (s *memoryStore) RunInTransaction(_ context.Context, fn func(tx repository.RecordTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	for _, w := range tx.writes {
		if err := s.createLocked(w.collection, w.id, w.fields); err != nil {
			return err
		}
	}

	return nil
}

type stagedWrite struct {
	collection string
	id         string
	fields     map[string]any
}

type memoryTx struct {
	store  *memoryStore
	writes []stagedWrite
}

func (tx *memoryTx) Get(collection, id string) (*repository.Record, error) {
	if len(tx.writes) > 0 {
		return nil, fmt.Errorf("read after write in transaction")
	}

	return tx.store.getLocked(collection, id)
}

func (tx *memoryTx) Create(collection, id string, fields map[string]any) error {
	if err := tx.store.createErr[collection]; err != nil {
		return err
	}
	tx.writes = append(tx.writes, stagedWrite{collection: collection, id: id, fields: fields})

	return nil
}

type fakeIdentity struct {
	id       string
	email    string
	password string
}

// fakeIdentityProvider keeps identities and open sessions in memory.
type fakeIdentityProvider struct {
	mu         sync.Mutex
	byEmail    map[string]*fakeIdentity
	sessions   map[string]bool
	deleted    []string
	ended      []string
	nextID     string
	createErr  error
	deleteErr  error
	endSession error
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{
		byEmail:  make(map[string]*fakeIdentity),
		sessions: make(map[string]bool),
	}
}

func (p *fakeIdentityProvider) seed(email, password string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := uuid.NewString()
	p.byEmail[email] = &fakeIdentity{id: id, email: email, password: password}

	return id
}

func (p *fakeIdentityProvider) findByID(id string) *fakeIdentity {
	for _, identity := range p.byEmail {
		if identity.id == id {
			return identity
		}
	}

	return nil
}

func (p *fakeIdentityProvider) hasSession(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.sessions[id]
}

func (p *fakeIdentityProvider) exists(email string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.byEmail[email]

	return ok
}

func (p *fakeIdentityProvider) CreateIdentity(_ context.Context, email, password string) (*entity.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.createErr != nil {
		return nil, p.createErr
	}
	if _, ok := p.byEmail[email]; ok {
		return nil, domainerrors.ErrEmailInUse
	}

	id := p.nextID
	if id == "" {
		id = uuid.NewString()
	}
	identity := &fakeIdentity{id: id, email: email, password: password}
	p.byEmail[email] = identity

	return &entity.Identity{ID: identity.id, Email: email}, nil
}

func (p *fakeIdentityProvider) Authenticate(_ context.Context, email, password string) (*entity.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.byEmail[email]
	if !ok || identity.password != password {
		return nil, domainerrors.ErrInvalidCredentials
	}
	p.sessions[identity.id] = true

	return &entity.Identity{ID: identity.id, Email: email, SessionID: "session-" + identity.id}, nil
}

func (p *fakeIdentityProvider) VerifySession(_ context.Context, id, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.sessions[id] {
		return domainerrors.ErrUnauthorized
	}

	return nil
}

func (p *fakeIdentityProvider) EndSession(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ended = append(p.ended, id)
	if p.endSession != nil {
		return p.endSession
	}
	delete(p.sessions, id)

	return nil
}

func (p *fakeIdentityProvider) Reauthenticate(_ context.Context, id, password string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity := p.findByID(id)
	if identity == nil || identity.password != password {
		return domainerrors.ErrReauthenticationFailed
	}

	return nil
}

func (p *fakeIdentityProvider) SetPassword(_ context.Context, id, newPassword string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity := p.findByID(id)
	if identity == nil {
		return domainerrors.ErrNotFound
	}
	identity.password = newPassword

	return nil
}

func (p *fakeIdentityProvider) UpdateEmail(_ context.Context, id, email string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity := p.findByID(id)
	if identity == nil {
		return domainerrors.ErrNotFound
	}
	if other, ok := p.byEmail[email]; ok && other.id != id {
		return domainerrors.ErrEmailInUse
	}
	delete(p.byEmail, identity.email)
	identity.email = email
	p.byEmail[email] = identity

	return nil
}

func (p *fakeIdentityProvider) DeleteIdentity(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.deleted = append(p.deleted, id)
	if p.deleteErr != nil {
		return p.deleteErr
	}
	if identity := p.findByID(id); identity != nil {
		delete(p.byEmail, identity.email)
	}

	return nil
}

// mockBlobStore is a testify mock for service.BlobStore.
type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Upload(ctx context.Context, path string, data []byte) (string, error) {
	args := m.Called(ctx, path, data)

	return args.String(0), args.Error(1)
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.DirectoryEvent
	err    error
}

func (p *recordingPublisher) PublishDirectoryEvent(_ context.Context, event *service.DirectoryEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}

	return types
}
