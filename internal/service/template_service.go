package service

import (
	"context"
	"time"

	"training-builder-be/internal/dto"
	"training-builder-be/internal/entity"
	"training-builder-be/internal/repository/specification"
	"training-builder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ITemplateService interface {
	GetAll(ctx context.Context, category string) ([]*dto.TemplateListItem, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowTemplateResponse, error)
	Instantiate(ctx context.Context, userId uuid.UUID, req *dto.InstantiateTemplateRequest) (*dto.InstantiateTemplateResponse, error)
}

type templateService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewTemplateService(uowFactory unitofwork.RepositoryFactory) ITemplateService {
	// Templates change rarely; a short in-process cache keeps the catalog
	// endpoint off the database.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &templateService{
		uowFactory: uowFactory,
		cache:      c,
	}
}

func (s *templateService) GetAll(ctx context.Context, category string) ([]*dto.TemplateListItem, error) {
	cacheKey := "templates:" + category
	if x, found := s.cache.Get(cacheKey); found {
		return x.([]*dto.TemplateListItem), nil
	}

	specs := []specification.Specification{specification.ActiveOnly{}}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	templates, err := uow.TemplateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TemplateListItem, 0, len(templates))
	for _, t := range templates {
		result = append(result, &dto.TemplateListItem{
			Id:          t.Id,
			Name:        t.Name,
			Category:    t.Category,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}

	s.cache.Set(cacheKey, result, cache.DefaultExpiration)
	return result, nil
}

func (s *templateService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	template, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	return &dto.ShowTemplateResponse{
		Id:          template.Id,
		Name:        template.Name,
		Category:    template.Category,
		Description: template.Description,
		Outline:     template.Outline,
		CreatedAt:   template.CreatedAt,
	}, nil
}

// Instantiate creates a new draft session seeded with a deep copy of the
// template's outline.
func (s *templateService) Instantiate(ctx context.Context, userId uuid.UUID, req *dto.InstantiateTemplateRequest) (*dto.InstantiateTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	template, err := uow.TemplateRepository().FindOne(ctx, specification.ByID{ID: req.TemplateId})
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, nil
	}

	session := entity.TrainingSession{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       req.Title,
		Description: template.Description,
		Status:      entity.SessionStatusDraft,
		Metadata:    metadataFromPayload(req.Metadata),
		CreatedAt:   time.Now(),
	}
	if template.Outline != nil {
		session.Outline = template.Outline.Clone()
	}

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.InstantiateTemplateResponse{SessionId: session.Id}, nil
}
