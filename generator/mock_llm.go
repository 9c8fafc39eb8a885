package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	text := prompt.String()
	var sb strings.Builder
	if strings.Contains(text, CalendarClause) {
		sb.WriteString("Day | Idea | Caption\n")
		for day := 1; day <= 30; day++ {
			sb.WriteString(fmt.Sprintf("%d. Sample idea %d: Sample caption for day %d\n", day, day, day))
		}
		return sb.String(), nil
	}
	sb.WriteString("# Sample content\n\n")
	sb.WriteString("Generated offline from the prompt below.\n\n")
	sb.WriteString("```\n")
	sb.WriteString(text)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
