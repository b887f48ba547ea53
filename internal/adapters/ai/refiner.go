package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/selivandex/consensus-engine/internal/adapters/config"
	"github.com/selivandex/consensus-engine/pkg/logger"
	"github.com/selivandex/consensus-engine/pkg/models"
)

// RefinerClient implements the refiner analyzer on top of OpenAI chat
// completions
type RefinerClient struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewRefinerClient creates new refiner analyzer client
func NewRefinerClient(cfg *config.AIConfig) *RefinerClient {
	return &RefinerClient{
		client:  openai.NewClient(cfg.OpenAIAPIKey),
		model:   cfg.OpenAIModel,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
	}
}

// AnalyzeNews evaluates recent news headlines for the symbol
func (r *RefinerClient) AnalyzeNews(ctx context.Context, symbol string, news *models.NewsData) (*models.NewsAnalysis, error) {
	headlines := "no recent headlines"
	if news != nil && len(news.Headlines) > 0 {
		lines := make([]string, 0, len(news.Headlines))
		for _, h := range news.Headlines {
			lines = append(lines, fmt.Sprintf("- [%s] %s", h.Source, h.Title))
		}
		headlines = strings.Join(lines, "\n")
	}

	userPrompt := fmt.Sprintf(newsUserPromptTemplate, symbol, headlines)

	content, err := r.complete(ctx, newsSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	return parseNewsAnalysis(content)
}

// RefineSocial refines the scout's social packet into a narrative analysis
func (r *RefinerClient) RefineSocial(ctx context.Context, symbol string, packet models.SocialDataPacket) (*models.RefinerAnalysis, error) {
	packetJSON, err := json.Marshal(packet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal social packet: %w", err)
	}

	userPrompt := fmt.Sprintf(socialUserPromptTemplate, symbol, string(packetJSON))

	content, err := r.complete(ctx, socialSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	return parseRefinerAnalysis(content)
}

// complete sends one chat completion request with rate limiting
func (r *RefinerClient) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	startTime := time.Now()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.2,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("refiner request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in refiner response")
	}

	content := resp.Choices[0].Message.Content

	logger.Debug("refiner response",
		zap.Duration("latency", time.Since(startTime)),
		zap.Int("tokens", resp.Usage.TotalTokens),
	)

	return content, nil
}
