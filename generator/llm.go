package generator

import (
	"context"
	"fmt"
)

// DefaultTemperature is the sampling temperature used when none is configured.
const DefaultTemperature = 0.8

// LLMClient 抽象大模型客户端，便于替换/Mock。
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。Temperature 原样发送，默认值由 config 填充。
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
}

// NewLLM 按 s.Provider 创建客户端。
func NewLLM(ctx context.Context, s LLMSettings) (LLMClient, error) {
	switch s.Provider {
	case "openai":
		return NewOpenAILLM(s)
	case "deepseek":
		// OpenAI-compatible endpoint; base_url must point at it.
		if s.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return NewOpenAILLM(s)
	case "gemini":
		return NewGeminiLLM(ctx, s)
	case "mock":
		return MockLLM{}, nil
	case "":
		return nil, fmt.Errorf("llm provider missing; set llm.provider in config")
	default:
		return nil, fmt.Errorf("llm provider %s not supported", s.Provider)
	}
}
