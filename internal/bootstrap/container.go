package bootstrap

import (
	"log"

	"nagrik-mitra-be/internal/config"
	"nagrik-mitra-be/internal/controller"
	"nagrik-mitra-be/internal/pkg/logger"
	"nagrik-mitra-be/internal/pkg/mailer"
	"nagrik-mitra-be/internal/pkg/serverutils"
	"nagrik-mitra-be/internal/repository/memory"
	"nagrik-mitra-be/internal/repository/unitofwork"
	"nagrik-mitra-be/internal/service"
	"nagrik-mitra-be/pkg/embedding"
	"nagrik-mitra-be/pkg/llm/factory"

	pktNats "nagrik-mitra-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	AuthController    controller.IAuthController
	UserController    controller.IUserController
	SchemeController  controller.ISchemeController
	ChatbotController controller.IChatbotController

	AuthMiddleware         fiber.Handler
	OptionalAuthMiddleware fiber.Handler

	// Background worker, run by main.go.
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Keys.OpenAI,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	sessionRepo := memory.NewSessionRepository()

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
	)

	if cfg.Keys.JwtSecret == "" {
		log.Printf("[WARN] JWT_SECRET is not set; authenticated routes will reject all requests")
	}

	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.Keys.JwtSecret)
	userService := service.NewUserService(uowFactory, natsPub)
	schemeService := service.NewSchemeService(uowFactory, publisherService, natsPub)
	chatbotService := service.NewChatbotService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		sessionRepo,
		sysLogger,
	)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		UserController:    controller.NewUserController(userService),
		SchemeController:  controller.NewSchemeController(schemeService),
		ChatbotController: controller.NewChatbotController(chatbotService),

		AuthMiddleware:         serverutils.JwtMiddleware(cfg.Keys.JwtSecret),
		OptionalAuthMiddleware: serverutils.OptionalJwtMiddleware(cfg.Keys.JwtSecret),

		ConsumerService: consumerService,
	}
}
