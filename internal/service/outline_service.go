package service

import (
	"context"
	"time"

	"training-builder-be/internal/dto"
	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"
	"training-builder-be/internal/pkg/serverutils"
	"training-builder-be/internal/repository/specification"
	"training-builder-be/internal/repository/unitofwork"
	"training-builder-be/pkg/events"
	"training-builder-be/pkg/generation"
	"training-builder-be/pkg/llm"
	pktNats "training-builder-be/pkg/nats"
	"training-builder-be/pkg/outline"
	"training-builder-be/pkg/retrieval"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOutlineService interface {
	SectionTypes() []*dto.SectionTypeResponse
	Generate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.GenerateOutlineRequest) (*dto.GenerateOutlineResponse, error)
	Select(ctx context.Context, userId uuid.UUID, req *dto.SelectOutlineRequest) (*dto.SelectOutlineResponse, error)
	AddSection(ctx context.Context, userId uuid.UUID, req *dto.AddSectionRequest) (*dto.OutlineResponse, error)
	UpdateSection(ctx context.Context, userId uuid.UUID, req *dto.UpdateSectionRequest) (*dto.OutlineResponse, error)
	RemoveSection(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, sectionId uuid.UUID) (*dto.OutlineResponse, error)
	DuplicateSection(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, sectionId uuid.UUID) (*dto.OutlineResponse, error)
	Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderSectionsRequest) (*dto.OutlineResponse, error)
	Validate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ValidateOutlineResponse, error)
	ConvertLegacy(ctx context.Context, userId uuid.UUID, req *dto.ConvertLegacyRequest) (*dto.OutlineResponse, error)
}

type outlineService struct {
	uowFactory     unitofwork.RepositoryFactory
	scorer         *retrieval.Scorer
	llmProvider    llm.LLMProvider
	registry       *outline.Registry
	genConfig      generation.Config
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewOutlineService(
	uowFactory unitofwork.RepositoryFactory,
	scorer *retrieval.Scorer,
	llmProvider llm.LLMProvider,
	registry *outline.Registry,
	genConfig generation.Config,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IOutlineService {
	return &outlineService{
		uowFactory:     uowFactory,
		scorer:         scorer,
		llmProvider:    llmProvider,
		registry:       registry,
		genConfig:      genConfig,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *outlineService) SectionTypes() []*dto.SectionTypeResponse {
	types := s.registry.Types()
	result := make([]*dto.SectionTypeResponse, 0, len(types))
	for _, t := range types {
		spec, ok := s.registry.Lookup(t)
		if !ok {
			continue
		}
		result = append(result, &dto.SectionTypeResponse{
			Type:            string(spec.Type),
			Label:           spec.Label,
			Icon:            spec.Icon,
			DefaultDuration: spec.DefaultDuration,
			DefaultTitle:    spec.DefaultTitle,
			RequiredFields:  spec.RequiredFields,
			AvailableFields: spec.AvailableFields,
			IsProtected:     spec.IsProtected,
			IsCollapsible:   spec.IsCollapsible,
		})
	}
	return result
}

// Generate runs retrieval and the four-persona fan-out for one session's
// brief. The candidates are returned to the caller for review; nothing is
// persisted until one is selected.
func (s *outlineService) Generate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.GenerateOutlineRequest) (*dto.GenerateOutlineResponse, error) {
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil || session == nil {
		return nil, err
	}

	result := s.scorer.Retrieve(ctx, session.Metadata)

	cfg := s.genConfig
	cfg.QuickTweak = req.QuickTweak
	generator := generation.NewGenerator(s.llmProvider, s.registry, cfg, s.logger)

	set, err := generator.Generate(ctx, session.Metadata, result)
	if err != nil {
		return nil, serverutils.NewHttpError(fiber.StatusBadGateway, err.Error())
	}

	return &dto.GenerateOutlineResponse{
		SessionId:   session.Id,
		Candidates:  set.Candidates,
		GeneratedAt: set.GeneratedAt,
	}, nil
}

func (s *outlineService) Select(ctx context.Context, userId uuid.UUID, req *dto.SelectOutlineRequest) (*dto.SelectOutlineResponse, error) {
	session, err := s.ownedSession(ctx, userId, req.SessionId)
	if err != nil || session == nil {
		return nil, err
	}

	doc := req.Outline.WithRegistry(s.registry)
	doc.Refresh()
	session.Outline = doc

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil && req.Persona != "" {
		evt := events.NewOutlineSelected(session.Id, req.Persona)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("outline", "failed to publish OUTLINE_SELECTED event", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return &dto.SelectOutlineResponse{Id: session.Id}, nil
}

func (s *outlineService) AddSection(ctx context.Context, userId uuid.UUID, req *dto.AddSectionRequest) (*dto.OutlineResponse, error) {
	return s.mutate(ctx, userId, req.SessionId, func(doc *outline.Document) (*outline.Document, error) {
		return doc.AddSection(outline.SectionType(req.Type), req.Position)
	})
}

func (s *outlineService) UpdateSection(ctx context.Context, userId uuid.UUID, req *dto.UpdateSectionRequest) (*dto.OutlineResponse, error) {
	return s.mutate(ctx, userId, req.SessionId, func(doc *outline.Document) (*outline.Document, error) {
		return doc.UpdateSection(req.SectionId, req.Fields)
	})
}

func (s *outlineService) RemoveSection(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, sectionId uuid.UUID) (*dto.OutlineResponse, error) {
	return s.mutate(ctx, userId, sessionId, func(doc *outline.Document) (*outline.Document, error) {
		return doc.RemoveSection(sectionId)
	})
}

func (s *outlineService) DuplicateSection(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, sectionId uuid.UUID) (*dto.OutlineResponse, error) {
	return s.mutate(ctx, userId, sessionId, func(doc *outline.Document) (*outline.Document, error) {
		return doc.DuplicateSection(sectionId)
	})
}

func (s *outlineService) Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderSectionsRequest) (*dto.OutlineResponse, error) {
	return s.mutate(ctx, userId, req.SessionId, func(doc *outline.Document) (*outline.Document, error) {
		return doc.ReorderSections(req.SectionIds)
	})
}

func (s *outlineService) Validate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ValidateOutlineResponse, error) {
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil || session == nil {
		return nil, err
	}
	if session.Outline == nil {
		return nil, serverutils.NewHttpError(fiber.StatusUnprocessableEntity, "Session has no outline")
	}

	result := session.Outline.WithRegistry(s.registry).Validate(outline.ValidateOptions{
		TargetDuration:    session.Metadata.TargetDuration,
		DurationTolerance: s.genConfig.DurationTolerance,
	})

	return &dto.ValidateOutlineResponse{
		IsValid: result.IsValid,
		Errors:  result.Errors,
	}, nil
}

// ConvertLegacy migrates a fixed five-slot outline record onto the session.
// The conversion is one-way and idempotent: re-submitting an already
// converted record keeps its conversion markers.
func (s *outlineService) ConvertLegacy(ctx context.Context, userId uuid.UUID, req *dto.ConvertLegacyRequest) (*dto.OutlineResponse, error) {
	session, err := s.ownedSession(ctx, userId, req.SessionId)
	if err != nil || session == nil {
		return nil, err
	}

	doc := outline.ConvertLegacy(s.registry, req.Record)
	session.Outline = doc

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	return &dto.OutlineResponse{SessionId: session.Id, Outline: doc}, nil
}

func (s *outlineService) ownedSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*entity.TrainingSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
}

func (s *outlineService) saveSession(ctx context.Context, session *entity.TrainingSession) error {
	now := time.Now()
	session.UpdatedAt = &now
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SessionRepository().Update(ctx, session)
}

// mutate loads the session's outline, applies one copy-on-write operation
// and persists the result. Domain errors pass through for the error
// handler to map.
func (s *outlineService) mutate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, op func(*outline.Document) (*outline.Document, error)) (*dto.OutlineResponse, error) {
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil || session == nil {
		return nil, err
	}
	if session.Outline == nil {
		return nil, serverutils.NewHttpError(fiber.StatusUnprocessableEntity, "Session has no outline")
	}

	next, err := op(session.Outline.WithRegistry(s.registry))
	if err != nil {
		return nil, err
	}

	session.Outline = next
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	return &dto.OutlineResponse{SessionId: session.Id, Outline: next}, nil
}
