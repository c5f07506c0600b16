package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/repository/specification"
	"nagrik-mitra-be/internal/repository/unitofwork"
	"nagrik-mitra-be/internal/service"
	"nagrik-mitra-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SchemeRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Scheme Embedding Repository", func(t *testing.T) {
		rows, err := uow.SchemeEmbeddingRepository().FindAll(context.Background())
		assert.NoError(t, err)
		t.Logf("SchemeEmbedding count: %d", len(rows))
	})

	t.Run("Check Scheme Embedding Upsert", func(t *testing.T) {
		ctx := context.Background()

		scheme := &entity.Scheme{
			Id:          uuid.New(),
			Title:       "Integration Test Scheme " + uuid.New().String(),
			Description: "A scheme created by the integration suite.",
			Category:    "Test",
			Eligibility: "Anyone running this test.",
		}
		err := uow.SchemeRepository().Create(ctx, scheme)
		assert.NoError(t, err)

		document := scheme.SummaryText()
		vector := make([]float32, 768)
		vector[0] = 1

		row := &entity.SchemeEmbedding{
			Id:             uuid.New(),
			SchemeId:       scheme.Id,
			ContentHash:    service.ContentHash(document),
			Document:       document,
			EmbeddingValue: vector,
		}
		err = uow.SchemeEmbeddingRepository().Upsert(ctx, row)
		assert.NoError(t, err)

		// A second upsert for the same scheme must replace, not duplicate.
		row.Id = uuid.New()
		row.ContentHash = service.ContentHash(document + " v2")
		err = uow.SchemeEmbeddingRepository().Upsert(ctx, row)
		assert.NoError(t, err)

		stored, err := uow.SchemeEmbeddingRepository().FindOne(ctx, specification.BySchemeID{SchemeID: scheme.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, stored) {
			assert.Equal(t, service.ContentHash(document+" v2"), stored.ContentHash)
		}

		// Cleanup
		assert.NoError(t, uow.SchemeEmbeddingRepository().DeleteBySchemeId(ctx, scheme.Id))
		assert.NoError(t, uow.SchemeRepository().Delete(ctx, scheme.Id))
	})

	t.Run("Check Transactional Chat Persistence", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		sessionId := uuid.New()
		session := &entity.ChatSession{
			Id:     sessionId,
			UserId: &userId,
			Title:  "Integration chat",
		}
		err = uow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		msg := &entity.ChatMessage{
			Id:            uuid.New(),
			Chat:          "kaunsi scheme milegi?",
			Role:          "user",
			ChatSessionId: sessionId,
		}
		err = uow.ChatMessageRepository().Create(ctx, msg)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created ChatSession with ChatMessage in Transaction")
	})

	t.Run("Check Profile Field Update", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-profile-" + uuid.New().String() + "@example.com",
			FullName: "Profile Test User",
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		updated, err := uow.UserRepository().UpdateProfileFields(ctx, userId, map[string]string{
			"familyIncome": "120000",
			"ruralUrban":   "rural",
		})
		assert.NoError(t, err)
		if assert.NotNil(t, updated) {
			assert.Equal(t, "120000", updated.Profile.FamilyIncome)
			assert.Equal(t, "rural", updated.Profile.RuralUrban)
		}
	})
}
