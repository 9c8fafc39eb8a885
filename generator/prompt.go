package generator

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的提示词。
type Prompt string

func (p Prompt) String() string { return string(p) }

const (
	roleClause    = "You are an expert social media content strategist."
	closingClause = "Make it engaging, authentic, and optimized for maximum reach."

	PostTimingClause = "Also recommend the best days and times to post for maximum engagement, with a short reason for each slot."
	CalendarClause   = "Create a 30-day content plan. Write one line per day in the form 'Idea: Caption', with no extra commentary."
	HashtagsClause   = "Provide 20 relevant hashtags, mixing broad, mid-size, and niche tags."
	BlogTopicsClause = "List 10 blog topics, each with a one-sentence angle."
	AdCopyClause     = "Write 3 ad copy variations, each with a headline, body text, and call to action."
)

// contentTypeClauses has one slot per content type; an empty slot adds no clause.
var contentTypeClauses = [contentTypeCount]string{
	PerfectPostTiming: PostTimingClause,
	ContentCalendar:   CalendarClause,
	Hashtags:          HashtagsClause,
	BlogTopics:        BlogTopicsClause,
	AdCopy:            AdCopyClause,
}

// ExtraClause 返回该内容类型的附加要求（可空）。
func (c ContentType) ExtraClause() string {
	if !c.Valid() {
		return ""
	}
	return contentTypeClauses[c]
}

// BuildPrompt assembles the prompt for req. It is deterministic and does
// not validate; run req.Validate first. Fields are interpolated as given,
// blank optional fields add no clause.
func BuildPrompt(req Request) Prompt {
	var sb strings.Builder
	sb.WriteString(roleClause)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Generate %s ideas for the %s niche.", strings.ToLower(req.ContentType.String()), req.Niche))

	if !isBlank(string(req.Tone)) {
		sb.WriteString(fmt.Sprintf("\nUse a %s tone.", strings.ToLower(string(req.Tone))))
	}
	if !isBlank(req.Topic) {
		sb.WriteString(fmt.Sprintf("\nFocus on the topic: %s.", req.Topic))
	}
	if !isBlank(req.Description) {
		sb.WriteString(fmt.Sprintf("\nHere are more details: %s.", req.Description))
	}
	if extra := req.ContentType.ExtraClause(); extra != "" {
		sb.WriteString("\n")
		sb.WriteString(extra)
	}

	sb.WriteString("\n")
	sb.WriteString(closingClause)
	return Prompt(sb.String())
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
