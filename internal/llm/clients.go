package llm

import (
	"context"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"google.golang.org/genai"
)

// ChatClient abstracts the text-generation capability the assistant consumes.
// The upstream service is untrusted: calls may fail, return empty content, or
// return content that ignores the requested JSON shape.
type ChatClient interface {
	GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Model() string
}

// defaultChatModel matches the default model the SDK previously applied when
// no model name was supplied.
const defaultChatModel = "gemini-2.5-flash"

// GeminiChatClient adapts the generativeAI LLM client to the ChatClient interface.
type GeminiChatClient struct {
	client generativeAI.ChatClient
}

// NewGeminiChatClient creates a ChatClient backed by Gemini.
func NewGeminiChatClient(ctx context.Context, apiKey string) (ChatClient, error) {
	client, err := generativeAI.NewGeminiChatClient(ctx, apiKey, defaultChatModel)
	if err != nil {
		return nil, err
	}
	return &GeminiChatClient{client: client}, nil
}

func (g *GeminiChatClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.GenerateResponse(ctx, prompt, config)
}

func (g *GeminiChatClient) Model() string {
	if g.client == nil {
		return ""
	}
	return g.client.Model()
}
