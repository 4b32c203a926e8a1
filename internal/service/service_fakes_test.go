package service

import (
	"context"
	"sync"

	"training-builder-be/internal/entity"
	"training-builder-be/internal/mapper"
	"training-builder-be/internal/model"
	"training-builder-be/internal/repository/contract"
	"training-builder-be/internal/repository/specification"
	"training-builder-be/internal/repository/unitofwork"
	"training-builder-be/pkg/embedding"

	"github.com/google/uuid"
)

// In-memory repository fakes. They interpret the specifications the
// services actually use (ByID, UserOwnedBy, ActiveOnly, ByCategory) by
// type switch, which keeps the tests off a real database. Session and
// template rows go through the real mappers on every write and read so the
// fakes reproduce the jsonb persistence boundary: entities come back
// rebuilt from JSON, never as the stored pointer.

type fakeUnitOfWork struct {
	sessions  *fakeSessionRepo
	templates *fakeTemplateRepo
	corpus    *fakeCorpusRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository {
	return u.sessions
}

func (u *fakeUnitOfWork) TemplateRepository() contract.TemplateRepository {
	return u.templates
}

func (u *fakeUnitOfWork) CorpusRepository() contract.CorpusRepository {
	return u.corpus
}

type fakeRepoFactory struct {
	uow *fakeUnitOfWork
}

func newFakeRepoFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		uow: &fakeUnitOfWork{
			sessions: &fakeSessionRepo{
				mapper: mapper.NewSessionMapper(),
				rows:   map[uuid.UUID]*model.TrainingSession{},
			},
			templates: &fakeTemplateRepo{
				mapper: mapper.NewTemplateMapper(),
				rows:   map[uuid.UUID]*model.Template{},
			},
			corpus: &fakeCorpusRepo{},
		},
	}
}

func (f *fakeRepoFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeSessionRepo struct {
	mu     sync.Mutex
	mapper *mapper.SessionMapper
	rows   map[uuid.UUID]*model.TrainingSession
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.TrainingSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[session.Id] = r.mapper.ToModel(session)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.TrainingSession) error {
	return r.Create(ctx, session)
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TrainingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if s := r.mapper.ToEntity(row); sessionMatches(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TrainingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.TrainingSession
	for _, row := range r.rows {
		if s := r.mapper.ToEntity(row); sessionMatches(s, specs) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func sessionMatches(s *entity.TrainingSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != v.UserID {
				return false
			}
		}
	}
	return true
}

type fakeTemplateRepo struct {
	mu     sync.Mutex
	mapper *mapper.TemplateMapper
	rows   map[uuid.UUID]*model.Template
}

func (r *fakeTemplateRepo) Create(ctx context.Context, template *entity.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[template.Id] = r.mapper.ToModel(template)
	return nil
}

func (r *fakeTemplateRepo) Update(ctx context.Context, template *entity.Template) error {
	return r.Create(ctx, template)
}

func (r *fakeTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeTemplateRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if t := r.mapper.ToEntity(row); templateMatches(t, specs) {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Template
	for _, row := range r.rows {
		if t := r.mapper.ToEntity(row); templateMatches(t, specs) {
			result = append(result, t)
		}
	}
	return result, nil
}

func templateMatches(t *entity.Template, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if t.Id != v.ID {
				return false
			}
		case specification.ActiveOnly:
			if !t.IsActive {
				return false
			}
		case specification.ByCategory:
			if t.Category != v.Category {
				return false
			}
		}
	}
	return true
}

type fakeCorpusRepo struct {
	mu      sync.Mutex
	docs    []*entity.CorpusDocument
	deleted []uuid.UUID
}

func (r *fakeCorpusRepo) Create(ctx context.Context, doc *entity.CorpusDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, doc)
	return nil
}

func (r *fakeCorpusRepo) CreateBulk(ctx context.Context, docs []*entity.CorpusDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, docs...)
	return nil
}

func (r *fakeCorpusRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, sessionId)
	kept := r.docs[:0]
	for _, d := range r.docs {
		if d.SessionId != sessionId {
			kept = append(kept, d)
		}
	}
	r.docs = kept
	return nil
}

func (r *fakeCorpusRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CorpusDocument, error) {
	return nil, nil
}

func (r *fakeCorpusRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.CorpusDocument{}, r.docs...), nil
}

func (r *fakeCorpusRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.docs)), nil
}

func (r *fakeCorpusRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredCorpusDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var scored []*contract.ScoredCorpusDocument
	for _, d := range r.docs {
		scored = append(scored, &contract.ScoredCorpusDocument{Document: d, Similarity: 0.9})
		if len(scored) == limit {
			break
		}
	}
	return scored, nil
}

// fakePublisher records watermill payloads instead of publishing them.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

// fakeEmbedder returns a fixed unit vector for any input.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls []string
}

func (e *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, taskType)
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}
