package llm

import (
	"context"
	"fmt"

	"github.com/quillnotes/reflect-api/internal/domain"
	"google.golang.org/genai"
)

// GeminiCaller implements domain.ModelCaller against Vertex AI. One client
// serves both the primary and the fallback model; the model name travels
// per call.
type GeminiCaller struct {
	client *genai.Client
}

func NewGeminiCaller(ctx context.Context, projectID, location string) (*GeminiCaller, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("gcp project and location must be set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiCaller{client: client}, nil
}

// Call implements domain.ModelCaller using Vertex AI.
func (g *GeminiCaller) Call(
	ctx context.Context,
	model, systemPrompt, userPrompt string,
) (domain.ModelParts, error) {
	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(1024)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}

	contents := []*genai.Content{
		genai.NewContentFromText(userPrompt, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return domain.ModelParts{}, fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return domain.ModelParts{}, fmt.Errorf("gemini returned empty text")
	}

	return ParseReflectionText(text)
}
