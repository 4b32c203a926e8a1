package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"training-builder-be/internal/dto"
	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"
	"training-builder-be/internal/pkg/serverutils"
	"training-builder-be/internal/repository/specification"
	"training-builder-be/internal/repository/unitofwork"
	"training-builder-be/pkg/events"
	pktNats "training-builder-be/pkg/nats"
	"training-builder-be/pkg/outline"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SessionListItem, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowSessionResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.UpdateSessionResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Publish(ctx context.Context, userId uuid.UUID, id uuid.UUID, tolerance int) (*dto.PublishSessionResponse, error)
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	registry         *outline.Registry
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	registry *outline.Registry,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		registry:         registry,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func metadataFromPayload(p dto.SessionMetadataPayload) entity.SessionMetadata {
	return entity.SessionMetadata{
		Category:         p.Category,
		DesiredOutcome:   p.DesiredOutcome,
		Audience:         p.Audience,
		Tone:             p.Tone,
		Topics:           p.Topics,
		TargetDuration:   p.TargetDuration,
		ParticipantCount: p.ParticipantCount,
	}
}

func payloadFromMetadata(m entity.SessionMetadata) dto.SessionMetadataPayload {
	return dto.SessionMetadataPayload{
		Category:         m.Category,
		DesiredOutcome:   m.DesiredOutcome,
		Audience:         m.Audience,
		Tone:             m.Tone,
		Topics:           m.Topics,
		TargetDuration:   m.TargetDuration,
		ParticipantCount: m.ParticipantCount,
	}
}

func (s *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.TrainingSession{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.SessionStatusDraft,
		Metadata:    metadataFromPayload(req.Metadata),
		CreatedAt:   time.Now(),
	}

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *sessionService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.SessionListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionListItem, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, &dto.SessionListItem{
			Id:          session.Id,
			Title:       session.Title,
			Category:    session.Metadata.Category,
			Status:      session.Status,
			CreatedAt:   session.CreatedAt,
			UpdatedAt:   session.UpdatedAt,
			PublishedAt: session.PublishedAt,
		})
	}
	return result, nil
}

func (s *sessionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	return &dto.ShowSessionResponse{
		Id:          session.Id,
		Title:       session.Title,
		Description: session.Description,
		Status:      session.Status,
		Metadata:    payloadFromMetadata(session.Metadata),
		Outline:     session.Outline,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
		PublishedAt: session.PublishedAt,
	}, nil
}

func (s *sessionService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.UpdateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	session.Title = req.Title
	session.Description = req.Description
	if req.Metadata != nil {
		session.Metadata = metadataFromPayload(*req.Metadata)
	}

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.UpdateSessionResponse{Id: session.Id}, nil
}

func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.NewHttpError(fiber.StatusNotFound, "Session not found")
	}

	if err := uow.SessionRepository().Delete(ctx, id); err != nil {
		return err
	}

	// Published content should stop feeding retrieval once the session is gone.
	return uow.CorpusRepository().DeleteBySessionId(ctx, id)
}

// Publish flips a draft session live. The outline has to pass validation
// against the session's target duration; the embed pipeline and the
// external event bus are notified afterwards.
func (s *sessionService) Publish(ctx context.Context, userId uuid.UUID, id uuid.UUID, tolerance int) (*dto.PublishSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if session.Outline == nil {
		return nil, serverutils.NewHttpError(fiber.StatusUnprocessableEntity, "Session has no outline to publish")
	}

	// Documents loaded through the mapper come back without a registry
	// binding; validation needs one.
	validation := session.Outline.WithRegistry(s.registry).Validate(outline.ValidateOptions{
		TargetDuration:    session.Metadata.TargetDuration,
		DurationTolerance: tolerance,
	})
	if !validation.IsValid {
		return nil, serverutils.NewHttpError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Outline failed validation: %v", validation.Errors))
	}

	now := time.Now()
	session.Status = entity.SessionStatusPublished
	session.PublishedAt = &now

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedSessionMessage{SessionId: session.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewSessionPublished(session.Id, session.Metadata.Category)
		// External bus delivery is auxiliary, a failure must not roll back
		// the publish itself.
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("session", "failed to publish SESSION_PUBLISHED event", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return &dto.PublishSessionResponse{
		Id:          session.Id,
		Status:      session.Status,
		PublishedAt: now,
	}, nil
}
