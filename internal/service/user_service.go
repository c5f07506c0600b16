package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nagrik-mitra-be/internal/dto"
	"nagrik-mitra-be/internal/repository/specification"
	"nagrik-mitra-be/internal/repository/unitofwork"
	"nagrik-mitra-be/pkg/dialogue/fields"
	"nagrik-mitra-be/pkg/events"
	pktNats "nagrik-mitra-be/pkg/nats"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return &dto.ProfileResponse{
		Id:                   user.Id,
		Email:                user.Email,
		FullName:             user.FullName,
		Fields:               user.ProfileMap(),
		InterestedCategories: user.InterestedCategories,
		Languages:            user.Languages,
		CreatedAt:            user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	for name := range req.Fields {
		if name == "fullName" || name == "name" {
			continue
		}
		if !fields.Known(name) {
			return nil, fmt.Errorf("unknown profile field: %s", name)
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().UpdateProfileFields(ctx, userId, req.Fields)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	if s.eventPublisher != nil {
		updated := make([]string, 0, len(req.Fields))
		for name := range req.Fields {
			updated = append(updated, name)
		}
		event := events.BaseEvent{
			Type: "PROFILE_UPDATED",
			Data: map[string]interface{}{
				"user_id": userId,
				"fields":  updated,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish PROFILE_UPDATED event: %v\n", err)
		}
	}

	return &dto.ProfileResponse{
		Id:                   user.Id,
		Email:                user.Email,
		FullName:             user.FullName,
		Fields:               user.ProfileMap(),
		InterestedCategories: user.InterestedCategories,
		Languages:            user.Languages,
		CreatedAt:            user.CreatedAt,
	}, nil
}
