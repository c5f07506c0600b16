package service

import (
	"context"
	"errors"
	"time"

	"nagrik-mitra-be/internal/constant"
	"nagrik-mitra-be/internal/dto"
	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/pkg/logger"
	"nagrik-mitra-be/internal/repository/memory"
	"nagrik-mitra-be/internal/repository/specification"
	"nagrik-mitra-be/internal/repository/unitofwork"
	"nagrik-mitra-be/pkg/dialogue/intent"
	"nagrik-mitra-be/pkg/dialogue/match"
	"nagrik-mitra-be/pkg/dialogue/policy"
	"nagrik-mitra-be/pkg/embedding"
	"nagrik-mitra-be/pkg/llm"
	"nagrik-mitra-be/pkg/store"

	"github.com/google/uuid"
)

type IChatbotService interface {
	CreateSession(ctx context.Context, userId *uuid.UUID, title string) (*dto.ChatSessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error)
	History(ctx context.Context, chatSessionId uuid.UUID) (*dto.ChatHistoryResponse, error)
	SendChat(ctx context.Context, userId *uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, chatSessionId uuid.UUID, title string) (*dto.ChatSessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, chatSessionId uuid.UUID) error
}

type chatbotService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessionRepo *memory.SessionRepository
	policy      *policy.Policy
	logger      logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	log logger.ILogger,
) IChatbotService {
	matcher := match.NewMatcher(embeddingProvider, &schemeVectorCache{uowFactory: uowFactory, logger: log})
	classifier := intent.NewClassifier(llmProvider)
	dialoguePolicy := policy.NewPolicy(
		classifier,
		matcher,
		&schemeSource{uowFactory: uowFactory},
		llmProvider,
		&profileStore{uowFactory: uowFactory},
	)

	return &chatbotService{
		uowFactory:  uowFactory,
		sessionRepo: sessionRepo,
		policy:      dialoguePolicy,
		logger:      log,
	}
}

// schemeSource feeds the policy the full scheme corpus.
type schemeSource struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s *schemeSource) AllSchemes(ctx context.Context) ([]*entity.Scheme, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SchemeRepository().FindAll(ctx)
}

// profileStore narrows the user repository to the policy's single write path.
type profileStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s *profileStore) UpdateProfileFields(ctx context.Context, userId uuid.UUID, fields map[string]string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().UpdateProfileFields(ctx, userId, fields)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	return nil
}

// schemeVectorCache serves scheme vectors from the pgvector cache when the
// content hash still matches, and writes fresh vectors back. Cache errors
// degrade to a miss so the matcher falls through to the provider.
type schemeVectorCache struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func (c *schemeVectorCache) Get(ctx context.Context, scheme *entity.Scheme) ([]float32, bool) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	cached, err := uow.SchemeEmbeddingRepository().FindOne(ctx, specification.BySchemeID{SchemeID: scheme.Id})
	if err != nil {
		c.logger.Warn("chatbot", "scheme vector cache read failed", map[string]interface{}{
			"scheme_id": scheme.Id,
			"error":     err.Error(),
		})
		return nil, false
	}
	if cached == nil || cached.ContentHash != ContentHash(scheme.SummaryText()) {
		return nil, false
	}
	return cached.EmbeddingValue, true
}

// GetBatch fetches every scheme's cached vector in a single query and keeps
// only the rows whose content hash still matches. Stale or missing schemes are
// simply absent from the result.
func (c *schemeVectorCache) GetBatch(ctx context.Context, schemes []*entity.Scheme) map[uuid.UUID][]float32 {
	if len(schemes) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(schemes))
	for i, scheme := range schemes {
		ids[i] = scheme.Id
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.SchemeEmbeddingRepository().FindBySchemeIds(ctx, ids)
	if err != nil {
		c.logger.Warn("chatbot", "scheme vector batch read failed", map[string]interface{}{
			"scheme_count": len(schemes),
			"error":        err.Error(),
		})
		return nil
	}

	bySchemeId := make(map[uuid.UUID]*entity.SchemeEmbedding, len(rows))
	for _, row := range rows {
		bySchemeId[row.SchemeId] = row
	}

	fresh := make(map[uuid.UUID][]float32, len(rows))
	for _, scheme := range schemes {
		row, ok := bySchemeId[scheme.Id]
		if !ok || row.ContentHash != ContentHash(scheme.SummaryText()) {
			continue
		}
		fresh[scheme.Id] = row.EmbeddingValue
	}
	return fresh
}

func (c *schemeVectorCache) Put(ctx context.Context, scheme *entity.Scheme, vector []float32) {
	document := scheme.SummaryText()
	row := &entity.SchemeEmbedding{
		Id:             uuid.New(),
		SchemeId:       scheme.Id,
		ContentHash:    ContentHash(document),
		Document:       document,
		EmbeddingValue: vector,
		CreatedAt:      time.Now(),
	}
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SchemeEmbeddingRepository().Upsert(ctx, row); err != nil {
		c.logger.Warn("chatbot", "scheme vector cache write failed", map[string]interface{}{
			"scheme_id": scheme.Id,
			"error":     err.Error(),
		})
	}
}

func (s *chatbotService) CreateSession(ctx context.Context, userId *uuid.UUID, title string) (*dto.ChatSessionResponse, error) {
	if title == "" {
		title = "New conversation"
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return &dto.ChatSessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (s *chatbotService) ListSessions(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChatSessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = &dto.ChatSessionResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
		}
	}
	return responses, nil
}

func (s *chatbotService) History(ctx context.Context, chatSessionId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: chatSessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("chat session not found")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: chatSessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = dto.ChatMessageResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Chat:      msg.Chat,
			CreatedAt: msg.CreatedAt,
		}
	}
	return &dto.ChatHistoryResponse{
		ChatSessionId: chatSessionId,
		Messages:      responses,
	}, nil
}

func (s *chatbotService) RenameSession(ctx context.Context, userId uuid.UUID, chatSessionId uuid.UUID, title string) (*dto.ChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findOwnedSession(ctx, uow, userId, chatSessionId)
	if err != nil {
		return nil, err
	}

	session.Title = title
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return &dto.ChatSessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (s *chatbotService) DeleteSession(ctx context.Context, userId uuid.UUID, chatSessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwnedSession(ctx, uow, userId, chatSessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, chatSessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, chatSessionId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.sessionRepo.Delete(chatSessionId.String())
	return nil
}

// findOwnedSession resolves a session only for its owner. Anonymous sessions
// and other users' sessions both read as not found.
func (s *chatbotService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, chatSessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: chatSessionId})
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId == nil || *session.UserId != userId {
		return nil, errors.New("chat session not found")
	}
	return session, nil
}

func (s *chatbotService) SendChat(ctx context.Context, userId *uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.resolveSession(ctx, uow, userId, req)
	if err != nil {
		return nil, err
	}

	history, err := uow.ChatMessageRepository().FindRecent(ctx, session.Id, 10)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(history)+1)
	for _, msg := range history {
		role := "assistant"
		if msg.Role == constant.ChatMessageRoleUser {
			role = "user"
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Chat})
	}
	messages = append(messages, llm.Message{Role: "user", Content: req.Chat})

	profile := map[string]string{}
	if userId != nil {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *userId})
		if err != nil {
			return nil, err
		}
		if user != nil {
			profile = user.ProfileMap()
		}
	}

	turn := policy.TurnInput{
		Messages:    messages,
		Profile:     profile,
		UserId:      userId,
		SlotFilling: s.resolveSlotState(session.Id, req),
	}

	result := s.policy.Decide(ctx, turn)

	s.persistTurn(ctx, uow, session.Id, req.Chat, result.Output)
	s.mirrorSlotState(session.Id, userId, req.Chat, result.SlotFilling)

	response := &dto.SendChatResponse{
		ChatSessionId:     session.Id,
		Output:            result.Output,
		NeedsProfileField: result.NeedsProfileField,
	}
	if result.SlotFilling != nil {
		response.SlotFilling = &dto.SlotFillingDTO{
			Field:    result.SlotFilling.Field,
			SchemeId: result.SlotFilling.SchemeId,
		}
	}
	for _, scheme := range result.Schemes {
		response.Schemes = append(response.Schemes, dto.MatchedSchemeDTO{
			Name:            scheme.Name,
			Category:        scheme.Category,
			Description:     scheme.Description,
			Eligibility:     scheme.Eligibility,
			Benefits:        scheme.Benefits,
			ApplicationLink: scheme.ApplicationLink,
		})
	}
	return response, nil
}

func (s *chatbotService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, userId *uuid.UUID, req *dto.SendChatRequest) (*entity.ChatSession, error) {
	if req.ChatSessionId != nil {
		session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: *req.ChatSessionId})
		if err != nil {
			return nil, err
		}
		if session != nil {
			return session, nil
		}
	}

	title := req.Chat
	if len([]rune(title)) > 60 {
		title = string([]rune(title)[:60])
	}
	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// resolveSlotState prefers the client-echoed state; the in-memory mirror only
// covers clients that lost the echo (reconnect, page refresh).
func (s *chatbotService) resolveSlotState(sessionId uuid.UUID, req *dto.SendChatRequest) *policy.SlotFilling {
	if req.SlotFilling != nil && req.SlotFilling.Field != "" {
		return &policy.SlotFilling{
			Field:    req.SlotFilling.Field,
			SchemeId: req.SlotFilling.SchemeId,
		}
	}

	cached, found := s.sessionRepo.Get(sessionId.String())
	if !found || cached.PendingSlot == nil {
		return nil
	}
	pending := &policy.SlotFilling{Field: cached.PendingSlot.Field}
	if cached.PendingSlot.SchemeId != "" {
		if id, err := uuid.Parse(cached.PendingSlot.SchemeId); err == nil {
			pending.SchemeId = &id
		}
	}
	return pending
}

func (s *chatbotService) mirrorSlotState(sessionId uuid.UUID, userId *uuid.UUID, lastQuery string, slot *policy.SlotFilling) {
	session := &store.Session{
		ID:        sessionId.String(),
		LastQuery: lastQuery,
	}
	if userId != nil {
		session.UserID = userId.String()
	}
	if slot != nil {
		session.PendingSlot = &store.PendingSlot{Field: slot.Field}
		if slot.SchemeId != nil {
			session.PendingSlot.SchemeId = slot.SchemeId.String()
		}
	}
	s.sessionRepo.Save(session)
}

// persistTurn stores both sides of the exchange in one transaction, so the
// history never holds a user message without its reply. Failures are logged,
// not surfaced: the user already has their answer.
func (s *chatbotService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, userChat, output string) {
	if err := uow.Begin(ctx); err != nil {
		s.logger.Error("chatbot", "failed to start turn persistence", map[string]interface{}{
			"chat_session_id": sessionId,
			"error":           err.Error(),
		})
		return
	}
	defer uow.Rollback()

	now := time.Now()
	userMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          userChat,
		Role:          constant.ChatMessageRoleUser,
		ChatSessionId: sessionId,
		CreatedAt:     now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		s.logger.Error("chatbot", "failed to persist user message", map[string]interface{}{
			"chat_session_id": sessionId,
			"error":           err.Error(),
		})
		return
	}

	modelMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          output,
		Role:          constant.ChatMessageRoleModel,
		ChatSessionId: sessionId,
		CreatedAt:     now.Add(time.Millisecond),
	}
	if err := uow.ChatMessageRepository().Create(ctx, modelMsg); err != nil {
		s.logger.Error("chatbot", "failed to persist model message", map[string]interface{}{
			"chat_session_id": sessionId,
			"error":           err.Error(),
		})
		return
	}

	if err := uow.Commit(); err != nil {
		s.logger.Error("chatbot", "failed to commit turn persistence", map[string]interface{}{
			"chat_session_id": sessionId,
			"error":           err.Error(),
		})
	}
}
