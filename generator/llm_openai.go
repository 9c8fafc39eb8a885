package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAILLM 使用官方 openai-go SDK（chat completions）实现 LLMClient。
type OpenAILLM struct {
	Model       string
	Temperature float64
	Opts        []option.RequestOption
}

func NewOpenAILLM(cfg LLMSettings, extra ...option.RequestOption) (*OpenAILLM, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key or OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	// One request per user action; the SDK would otherwise retry twice.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)
	return &OpenAILLM{Model: cfg.Model, Temperature: cfg.Temperature, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt.String()),
		},
		Temperature: openai.Float(o.Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
