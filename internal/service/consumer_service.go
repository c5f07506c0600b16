package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"nagrik-mitra-be/internal/dto"
	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/repository/specification"
	"nagrik-mitra-be/internal/repository/unitofwork"
	"nagrik-mitra-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// ContentHash identifies a scheme summary; the cached vector is reused until
// the hash changes.
func ContentHash(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedSchemeMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing scheme embedding for SchemeId: %s", payload.SchemeId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	scheme, err := uow.SchemeRepository().FindOne(ctx, specification.ByID{ID: payload.SchemeId})
	if err != nil {
		log.Printf("[ERROR] Failed to get scheme %s: %v", payload.SchemeId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if scheme == nil {
		log.Printf("[ERROR] Scheme not found: %s", payload.SchemeId)
		msg.Ack() // Scheme deleted? Ack.
		return
	}

	document := scheme.SummaryText()
	hash := ContentHash(document)

	existing, err := uow.SchemeEmbeddingRepository().FindOne(ctx, specification.BySchemeID{SchemeID: scheme.Id})
	if err != nil {
		log.Printf("[ERROR] Failed to read cached embedding for scheme %s: %v", scheme.Id, err)
		msg.Nack()
		return
	}
	if existing != nil && existing.ContentHash == hash {
		log.Printf("[INFO] Scheme %s embedding is up to date, skipping", scheme.Id)
		msg.Ack()
		return
	}

	res, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for scheme %s: %v", scheme.Id, err)
		msg.Nack()
		return
	}

	embeddingRow := &entity.SchemeEmbedding{
		Id:             uuid.New(),
		SchemeId:       scheme.Id,
		ContentHash:    hash,
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		CreatedAt:      time.Now(),
	}

	if err := uow.SchemeEmbeddingRepository().Upsert(ctx, embeddingRow); err != nil {
		log.Printf("[ERROR] Failed to upsert embedding for scheme %s: %v", scheme.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Scheme embedding stored for SchemeId: %s", scheme.Id)
	msg.Ack()
}
