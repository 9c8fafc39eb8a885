package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ai_content_studio/metrics"
)

// Agent 负责一次请求的提示词构建、模型调用与后处理。
type Agent struct {
	llm      LLMClient
	provider string
	model    string
	logger   *zap.Logger
}

func NewAgent(llm LLMClient, settings LLMSettings, logger *zap.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		llm:      llm,
		provider: settings.Provider,
		model:    settings.Model,
		logger:   logger,
	}, nil
}

// Generate 校验 req，只调用一次模型并后处理结果。失败直接返回，不重试。
func (a *Agent) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	prompt := BuildPrompt(req)
	ct := req.ContentType.String()

	a.logger.Debug("sending prompt",
		zap.String("provider", a.provider),
		zap.String("content_type", ct),
		zap.Int("prompt_len", len(prompt)))

	start := time.Now()
	raw, err := a.llm.Complete(ctx, prompt)
	metrics.ObserveCompletion(a.provider, time.Since(start))
	if err != nil {
		metrics.IncGeneration(ct, "error")
		metrics.IncError("llm", "complete")
		a.logger.Warn("completion failed", zap.String("content_type", ct), zap.Error(err))
		return Result{}, fmt.Errorf("completion failed: %w", err)
	}

	res, err := PostProcess(raw, req)
	if err != nil {
		metrics.IncGeneration(ct, "empty")
		return Result{}, err
	}
	res.Prompt = prompt
	res.Model = a.model
	if res.Calendar != nil {
		metrics.ObserveCalendarRows(len(res.Calendar))
	}
	metrics.IncGeneration(ct, "success")

	a.logger.Info("content generated",
		zap.String("id", res.ID),
		zap.String("content_type", ct),
		zap.Int("content_len", len(res.Content)),
		zap.Int("calendar_rows", len(res.Calendar)))
	return res, nil
}
