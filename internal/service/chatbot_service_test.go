package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nagrik-mitra-be/internal/constant"
	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/repository/contract"
	"nagrik-mitra-be/internal/repository/memory"
	"nagrik-mitra-be/internal/repository/specification"
	"nagrik-mitra-be/internal/repository/unitofwork"
	"nagrik-mitra-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeChatMessageRepo struct {
	messages       []*entity.ChatMessage
	failOnRole     string
	deletedSession *uuid.UUID
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.failOnRole != "" && message.Role == r.failOnRole {
		return errors.New("insert failed")
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeChatMessageRepo) DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error {
	r.deletedSession = &chatSessionId
	kept := r.messages[:0]
	for _, msg := range r.messages {
		if msg.ChatSessionId != chatSessionId {
			kept = append(kept, msg)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.messages, nil
}

func (r *fakeChatMessageRepo) FindRecent(ctx context.Context, chatSessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	return r.messages, nil
}

type fakeChatSessionRepo struct {
	sessions map[uuid.UUID]*entity.ChatSession
	updated  *entity.ChatSession
}

func (r *fakeChatSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.sessions[session.Id] = session
	return nil
}

func (r *fakeChatSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.updated = session
	r.sessions[session.Id] = session
	return nil
}

func (r *fakeChatSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeChatSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.sessions[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeChatSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	out := make([]*entity.ChatSession, 0, len(r.sessions))
	for _, session := range r.sessions {
		out = append(out, session)
	}
	return out, nil
}

// fakeUow snapshots the message log on Begin so Rollback can restore it,
// mirroring what the real transaction does.
type fakeUow struct {
	sessions *fakeChatSessionRepo
	messages *fakeChatMessageRepo

	inTx       bool
	begun      int
	committed  int
	rolledBack int
	snapshot   []*entity.ChatMessage
}

func (u *fakeUow) Begin(ctx context.Context) error {
	if u.inTx {
		return errors.New("transaction already started")
	}
	u.inTx = true
	u.begun++
	u.snapshot = append([]*entity.ChatMessage(nil), u.messages.messages...)
	return nil
}

func (u *fakeUow) Commit() error {
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	u.inTx = false
	u.committed++
	return nil
}

func (u *fakeUow) Rollback() error {
	if !u.inTx {
		return errors.New("no transaction to rollback")
	}
	u.inTx = false
	u.rolledBack++
	u.messages.messages = u.snapshot
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository                       { return nil }
func (u *fakeUow) SchemeRepository() contract.SchemeRepository                   { return nil }
func (u *fakeUow) SchemeEmbeddingRepository() contract.SchemeEmbeddingRepository { return nil }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository         { return u.sessions }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository         { return u.messages }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newChatbotFixture() (*chatbotService, *fakeUow) {
	uow := &fakeUow{
		sessions: &fakeChatSessionRepo{sessions: map[uuid.UUID]*entity.ChatSession{}},
		messages: &fakeChatMessageRepo{},
	}
	svc := &chatbotService{
		uowFactory:  &fakeUowFactory{uow: uow},
		sessionRepo: memory.NewSessionRepository(),
		logger:      noopLogger{},
	}
	return svc, uow
}

func TestPersistTurnCommitsBothMessages(t *testing.T) {
	svc, uow := newChatbotFixture()
	sessionId := uuid.New()

	svc.persistTurn(context.Background(), uow, sessionId, "hello", "hi there")

	assert.Equal(t, 1, uow.begun)
	assert.Equal(t, 1, uow.committed)
	require.Len(t, uow.messages.messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, uow.messages.messages[0].Role)
	assert.Equal(t, constant.ChatMessageRoleModel, uow.messages.messages[1].Role)
}

func TestPersistTurnRollsBackWhenReplyInsertFails(t *testing.T) {
	svc, uow := newChatbotFixture()
	uow.messages.failOnRole = constant.ChatMessageRoleModel

	svc.persistTurn(context.Background(), uow, uuid.New(), "hello", "hi there")

	assert.Equal(t, 0, uow.committed)
	assert.Equal(t, 1, uow.rolledBack)
	// No orphaned user message without its reply.
	assert.Empty(t, uow.messages.messages)
}

func TestDeleteSessionRemovesMessagesAndMirror(t *testing.T) {
	svc, uow := newChatbotFixture()
	userId := uuid.New()
	sessionId := uuid.New()
	uow.sessions.sessions[sessionId] = &entity.ChatSession{
		Id:     sessionId,
		UserId: &userId,
		Title:  "Housing questions",
	}
	uow.messages.messages = []*entity.ChatMessage{
		{Id: uuid.New(), ChatSessionId: sessionId, Role: constant.ChatMessageRoleUser, Chat: "hi", CreatedAt: time.Now()},
	}
	svc.sessionRepo.Save(&store.Session{ID: sessionId.String()})

	err := svc.DeleteSession(context.Background(), userId, sessionId)

	require.NoError(t, err)
	assert.Equal(t, 1, uow.begun)
	assert.Equal(t, 1, uow.committed)
	assert.NotContains(t, uow.sessions.sessions, sessionId)
	require.NotNil(t, uow.messages.deletedSession)
	assert.Equal(t, sessionId, *uow.messages.deletedSession)
	_, found := svc.sessionRepo.Get(sessionId.String())
	assert.False(t, found)
}

func TestDeleteSessionRejectsForeignSession(t *testing.T) {
	svc, uow := newChatbotFixture()
	owner := uuid.New()
	sessionId := uuid.New()
	uow.sessions.sessions[sessionId] = &entity.ChatSession{Id: sessionId, UserId: &owner}

	err := svc.DeleteSession(context.Background(), uuid.New(), sessionId)

	assert.EqualError(t, err, "chat session not found")
	assert.Equal(t, 0, uow.begun)
	assert.Contains(t, uow.sessions.sessions, sessionId)
}

func TestDeleteSessionRejectsAnonymousSession(t *testing.T) {
	svc, uow := newChatbotFixture()
	sessionId := uuid.New()
	uow.sessions.sessions[sessionId] = &entity.ChatSession{Id: sessionId}

	err := svc.DeleteSession(context.Background(), uuid.New(), sessionId)

	assert.EqualError(t, err, "chat session not found")
	assert.Contains(t, uow.sessions.sessions, sessionId)
}

func TestRenameSessionUpdatesTitle(t *testing.T) {
	svc, uow := newChatbotFixture()
	userId := uuid.New()
	sessionId := uuid.New()
	uow.sessions.sessions[sessionId] = &entity.ChatSession{
		Id:     sessionId,
		UserId: &userId,
		Title:  "New conversation",
	}

	res, err := svc.RenameSession(context.Background(), userId, sessionId, "Pension questions")

	require.NoError(t, err)
	assert.Equal(t, "Pension questions", res.Title)
	require.NotNil(t, uow.sessions.updated)
	assert.Equal(t, "Pension questions", uow.sessions.updated.Title)
}

func TestRenameSessionUnknownSession(t *testing.T) {
	svc, _ := newChatbotFixture()

	_, err := svc.RenameSession(context.Background(), uuid.New(), uuid.New(), "anything")

	assert.EqualError(t, err, "chat session not found")
}
