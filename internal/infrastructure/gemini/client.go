package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"github.com/yourusername/autoparts-storefront/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.0-flash"

const systemInstruction = `You are the parts advisor of an auto-parts store. You help customers find the right part for their vehicle.

Understand what the customer wants:
- A question about a specific part ("do you have brake pads for a Corolla?") gets the matching parts from the list, or a clear "we don't carry that right now".
- A question about a vehicle ("what do I need for a Civic service?") gets a short list of compatible parts.
- A greeting or thanks gets a short friendly reply, no product list.

Rules:
1. Recommend ONLY parts from the list you are given. Never invent a part, a price or a fitment.
2. Copy the full part name, SKU and price exactly as listed.
3. A part fits a vehicle only if the model is in its "fits" list or the part is Universal.
4. Say so when a part is out of stock and offer an in-stock alternative when one exists.
5. When adding prices up, show the sum and double-check it.
6. Keep answers short; use a plain list, one part per line.`

// Options Gemini client sozlamalari
type Options struct {
	APIKey string
	Model  string

	// RequestsPerSecond and Burst throttle outgoing requests
	RequestsPerSecond float64
	Burst             int

	// MaxConcurrent bir vaqtda nechta so'rov
	MaxConcurrent int
}

var _ repository.AIRepository = (*Client)(nil)

// Client Gemini backed parts advisor
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	limiter *rate.Limiter
	sem     chan struct{}
	log     *zap.Logger
}

// NewClient yangi Gemini AI client yaratish
func NewClient(ctx context.Context, opts Options, log *zap.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 3
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 3
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)

	// aniq javoblar uchun past temperatura
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		sem:     make(chan struct{}, opts.MaxConcurrent),
		log:     log.With(zap.String("component", "gemini"), zap.String("model", opts.Model)),
	}, nil
}

// GenerateResponse tarix bilan javob yaratish
func (g *Client) GenerateResponse(ctx context.Context, prompt string, history []entity.Message) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, buildParts(prompt, history)...)
	if err != nil {
		g.log.Warn("generate content failed", zap.Error(err))
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	return extractText(resp), nil
}

// buildParts earlier exchanges first, then the prompt
func buildParts(prompt string, history []entity.Message) []genai.Part {
	parts := make([]genai.Part, 0, 2*len(history)+1)
	for _, msg := range history {
		if msg.Text != "" {
			parts = append(parts, genai.Text("Customer: "+msg.Text))
		}
		if msg.Response != "" {
			parts = append(parts, genai.Text("Advisor: "+msg.Response))
		}
	}
	return append(parts, genai.Text(prompt))
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return result.String()
}

// acquire waits for a concurrency slot and the rate limiter
func (g *Client) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := g.limiter.Wait(ctx); err != nil {
		<-g.sem
		return nil, fmt.Errorf("gemini throttle: %w", err)
	}
	return func() { <-g.sem }, nil
}

// Close client ni yopish
func (g *Client) Close() error {
	return g.client.Close()
}
