package generator

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyCompletion = errors.New("model returned empty content")

const previewLimit = 120

var headingRe = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)

// PostProcess 校验模型回复并补全 Result 字段。
func PostProcess(raw string, req Request) (Result, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return Result{}, ErrEmptyCompletion
	}

	preview := extractPreview(content)
	if preview == "" {
		preview = defaultPreview(content, previewLimit)
	}

	res := Result{
		ID:          uuid.NewString(),
		ContentType: req.ContentType,
		Content:     content,
		Title:       extractTitle(content),
		Preview:     preview,
		CreatedAt:   time.Now().UTC(),
	}
	if req.ContentType == ContentCalendar {
		res.Calendar = ExtractCalendar(content)
	}
	return res, nil
}

func extractTitle(md string) string {
	m := headingRe.FindStringSubmatch(md)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// 摘要取首段（去掉标题行）。
func extractPreview(md string) string {
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) > previewLimit {
			return truncateRunes(line, previewLimit)
		}
		return line
	}
	return ""
}

func defaultPreview(md string, limit int) string {
	joined := strings.Join(strings.Fields(md), " ")
	return truncateRunes(joined, limit)
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
