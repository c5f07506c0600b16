package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nagrik-mitra-be/internal/dto"
	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/repository/specification"
	"nagrik-mitra-be/internal/repository/unitofwork"
	"nagrik-mitra-be/pkg/events"
	pktNats "nagrik-mitra-be/pkg/nats"

	"github.com/google/uuid"
)

type ISchemeService interface {
	Create(ctx context.Context, req *dto.CreateSchemeRequest) (*dto.SchemeResponse, error)
	CreateBulk(ctx context.Context, req *dto.BulkCreateSchemesRequest) (*dto.BulkCreateSchemesResponse, error)
	Update(ctx context.Context, req *dto.UpdateSchemeRequest) (*dto.SchemeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.SchemeResponse, error)
	List(ctx context.Context, category string) ([]*dto.SchemeResponse, error)
}

type schemeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewSchemeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) ISchemeService {
	return &schemeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *schemeService) Create(ctx context.Context, req *dto.CreateSchemeRequest) (*dto.SchemeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scheme := &entity.Scheme{
		Id:                uuid.New(),
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Eligibility:       req.Eligibility,
		Benefits:          req.Benefits,
		Link:              req.Link,
		EligibilityFields: req.EligibilityFields,
		CreatedAt:         time.Now(),
	}

	if err := uow.SchemeRepository().Create(ctx, scheme); err != nil {
		return nil, err
	}

	if err := s.requestEmbedding(ctx, scheme.Id); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, "SCHEME_CREATED", scheme)

	return toSchemeResponse(scheme), nil
}

func (s *schemeService) CreateBulk(ctx context.Context, req *dto.BulkCreateSchemesRequest) (*dto.BulkCreateSchemesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	schemes := make([]*entity.Scheme, len(req.Schemes))
	for i, row := range req.Schemes {
		schemes[i] = &entity.Scheme{
			Id:                uuid.New(),
			Title:             row.Title,
			Description:       row.Description,
			Category:          row.Category,
			Eligibility:       row.Eligibility,
			Benefits:          row.Benefits,
			Link:              row.Link,
			EligibilityFields: row.EligibilityFields,
			CreatedAt:         time.Now(),
		}
	}

	if err := uow.SchemeRepository().CreateBulk(ctx, schemes); err != nil {
		return nil, err
	}

	for _, scheme := range schemes {
		if err := s.requestEmbedding(ctx, scheme.Id); err != nil {
			return nil, err
		}
	}

	return &dto.BulkCreateSchemesResponse{Created: len(schemes)}, nil
}

func (s *schemeService) Update(ctx context.Context, req *dto.UpdateSchemeRequest) (*dto.SchemeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	scheme, err := uow.SchemeRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, errors.New("scheme not found")
	}

	scheme.Title = req.Title
	scheme.Description = req.Description
	scheme.Category = req.Category
	scheme.Eligibility = req.Eligibility
	scheme.Benefits = req.Benefits
	scheme.Link = req.Link
	scheme.EligibilityFields = req.EligibilityFields

	if err := uow.SchemeRepository().Update(ctx, scheme); err != nil {
		return nil, err
	}

	// Re-embed: the cached vector's content hash no longer matches
	if err := s.requestEmbedding(ctx, scheme.Id); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, "SCHEME_UPDATED", scheme)

	return toSchemeResponse(scheme), nil
}

func (s *schemeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SchemeEmbeddingRepository().DeleteBySchemeId(ctx, id); err != nil {
		return err
	}
	if err := uow.SchemeRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *schemeService) Show(ctx context.Context, id uuid.UUID) (*dto.SchemeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scheme, err := uow.SchemeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, errors.New("scheme not found")
	}
	return toSchemeResponse(scheme), nil
}

func (s *schemeService) List(ctx context.Context, category string) ([]*dto.SchemeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	schemes, err := uow.SchemeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SchemeResponse, len(schemes))
	for i, scheme := range schemes {
		responses[i] = toSchemeResponse(scheme)
	}
	return responses, nil
}

func (s *schemeService) requestEmbedding(ctx context.Context, schemeId uuid.UUID) error {
	msgPayload := dto.PublishEmbedSchemeMessage{SchemeId: schemeId}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

func (s *schemeService) publishEvent(ctx context.Context, eventType string, scheme *entity.Scheme) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"scheme_id": scheme.Id,
			"title":     scheme.Title,
			"category":  scheme.Category,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func toSchemeResponse(scheme *entity.Scheme) *dto.SchemeResponse {
	return &dto.SchemeResponse{
		Id:                scheme.Id,
		Title:             scheme.Title,
		Description:       scheme.Description,
		Category:          scheme.Category,
		Eligibility:       scheme.Eligibility,
		Benefits:          scheme.Benefits,
		Link:              scheme.Link,
		EligibilityFields: scheme.EligibilityFields,
		CreatedAt:         scheme.CreatedAt,
		UpdatedAt:         scheme.UpdatedAt,
	}
}
