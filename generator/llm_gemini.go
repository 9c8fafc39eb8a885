package generator

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiLLM 基于 Gemini API 实现 LLMClient。
type GeminiLLM struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiLLM(ctx context.Context, cfg LLMSettings) (*GeminiLLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing; provide llm.api_key or GEMINI_API_KEY")
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiLLM{client: client, model: model, temperature: float32(cfg.Temperature)}, nil
}

func (g *GeminiLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt.String()),
		&genai.GenerateContentConfig{Temperature: genai.Ptr(g.temperature)},
	)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty candidates")
	}
	return text, nil
}
