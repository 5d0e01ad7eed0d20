package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/folio/folio-go/internal/model"
	"github.com/folio/folio-go/internal/repository"
)

// memProjectStore is an in-memory ProjectStore.
type memProjectStore struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]model.Project
	clock   time.Time
	listErr error
	writes  int
}

func newMemProjectStore() *memProjectStore {
	return &memProjectStore{
		rows:  make(map[int64]model.Project),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memProjectStore) List(ctx context.Context) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Project, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memProjectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	c := clone(p)
	return &c, nil
}

func (m *memProjectStore) Create(ctx context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	p.ID = m.nextID
	p.CreatedAt = m.clock
	m.rows[p.ID] = clone(*p)
	m.writes++
	return nil
}

func (m *memProjectStore) Update(ctx context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[p.ID]
	if !ok {
		return repository.ErrProjectNotFound
	}
	p.CreatedAt = existing.CreatedAt
	m.rows[p.ID] = clone(*p)
	m.writes++
	return nil
}

// clone round-trips tags through the column encoding, like the real store.
func clone(p model.Project) model.Project {
	p.Tags = repository.SplitTags(repository.JoinTags(p.Tags))
	return p
}

// memLoginRecorder is an in-memory LoginRecorder.
type memLoginRecorder struct {
	mu     sync.Mutex
	hashes map[string]string
	logins map[string]int
	err    error
}

func newMemLoginRecorder() *memLoginRecorder {
	return &memLoginRecorder{hashes: map[string]string{}, logins: map[string]int{}}
}

func (m *memLoginRecorder) RecordLogin(ctx context.Context, email, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.hashes[email] = hash
	m.logins[email]++
	return nil
}

type memContactStore struct {
	saved []model.Contact
	err   error
}

func (m *memContactStore) Create(ctx context.Context, c *model.Contact) error {
	if m.err != nil {
		return m.err
	}
	c.ID = int64(len(m.saved) + 1)
	m.saved = append(m.saved, *c)
	return nil
}
