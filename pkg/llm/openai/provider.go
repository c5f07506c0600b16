package openai

import (
	"context"
	"fmt"

	"nagrik-mitra-be/pkg/llm"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	ApiKey    string
	ModelName string
	client    *openai.Client
}

var (
	_ llm.LLMProvider = &OpenAIProvider{}
	_ llm.ConfigProbe = &OpenAIProvider{}
)

func NewOpenAIProvider(apiKey, modelName string) *OpenAIProvider {
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	p := &OpenAIProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
	}
	if apiKey != "" {
		p.client = openai.NewClient(apiKey)
	}
	return p
}

// Configured reports whether the provider has an API key to call with.
func (p *OpenAIProvider) Configured() bool {
	return p.client != nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	// Key presence is checked per call so a key added at runtime (env reload,
	// container restart) does not need special handling upstream.
	if p.client == nil {
		return "", llm.ErrNotConfigured
	}

	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		switch role {
		case "model":
			role = openai.ChatMessageRoleAssistant
		case "system":
			role = openai.ChatMessageRoleSystem
		case "assistant":
			role = openai.ChatMessageRoleAssistant
		default:
			role = openai.ChatMessageRoleUser
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: empty choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
