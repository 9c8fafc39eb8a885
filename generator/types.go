package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNicheRequired      = errors.New("niche is required")
	ErrUnknownContentType = errors.New("unknown content type")
	ErrUnknownTone        = errors.New("unknown tone")
)

// ContentType is the closed set of outputs the studio can generate.
type ContentType int

const (
	InstagramCaption ContentType = iota
	Hashtags
	YouTubeScript
	PostIdeas
	BlogTopics
	PerfectPostTiming
	ContentCalendar
	AdCopy

	contentTypeCount
)

var contentTypeLabels = [contentTypeCount]string{
	InstagramCaption:  "Instagram Caption",
	Hashtags:          "Hashtags",
	YouTubeScript:     "YouTube Script",
	PostIdeas:         "Post Ideas",
	BlogTopics:        "Blog Topics",
	PerfectPostTiming: "Perfect Post Timing",
	ContentCalendar:   "30-Day Content Calendar",
	AdCopy:            "Ad Copy",
}

// AllContentTypes returns every content type in display order.
func AllContentTypes() []ContentType {
	out := make([]ContentType, 0, contentTypeCount)
	for ct := ContentType(0); ct < contentTypeCount; ct++ {
		out = append(out, ct)
	}
	return out
}

func (c ContentType) String() string {
	if c < 0 || c >= contentTypeCount {
		return fmt.Sprintf("ContentType(%d)", int(c))
	}
	return contentTypeLabels[c]
}

func (c ContentType) Valid() bool {
	return c >= 0 && c < contentTypeCount
}

// ParseContentType matches a display label, ignoring case and surrounding space.
func ParseContentType(label string) (ContentType, error) {
	want := strings.TrimSpace(label)
	for ct, l := range contentTypeLabels {
		if strings.EqualFold(l, want) {
			return ContentType(ct), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownContentType, label)
}

func (c ContentType) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownContentType, int(c))
	}
	return json.Marshal(c.String())
}

func (c *ContentType) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	ct, err := ParseContentType(label)
	if err != nil {
		return err
	}
	*c = ct
	return nil
}

// Tone is optional; the zero value means no tone clause.
type Tone string

const (
	ToneNone          Tone = ""
	ToneProfessional  Tone = "Professional"
	ToneCasual        Tone = "Casual"
	ToneFriendly      Tone = "Friendly"
	ToneHumorous      Tone = "Humorous"
	ToneInspirational Tone = "Inspirational"
	TonePersuasive    Tone = "Persuasive"
	ToneEducational   Tone = "Educational"
)

var tones = []Tone{
	ToneProfessional,
	ToneCasual,
	ToneFriendly,
	ToneHumorous,
	ToneInspirational,
	TonePersuasive,
	ToneEducational,
}

// AllTones lists the selectable tones, excluding ToneNone.
func AllTones() []Tone {
	return append([]Tone(nil), tones...)
}

func ParseTone(label string) (Tone, error) {
	want := strings.TrimSpace(label)
	if want == "" {
		return ToneNone, nil
	}
	for _, t := range tones {
		if strings.EqualFold(string(t), want) {
			return t, nil
		}
	}
	return ToneNone, fmt.Errorf("%w: %q", ErrUnknownTone, label)
}

// Request 是构建提示词所需的用户输入。
type Request struct {
	Niche       string      `json:"niche"`
	ContentType ContentType `json:"content_type"`
	Topic       string      `json:"topic,omitempty"`
	Description string      `json:"description,omitempty"`
	Tone        Tone        `json:"tone,omitempty"`
}

// Normalized returns a copy with surrounding whitespace trimmed from the
// free-text fields. Input edges call it before Validate and BuildPrompt.
func (r Request) Normalized() Request {
	r.Niche = strings.TrimSpace(r.Niche)
	r.Topic = strings.TrimSpace(r.Topic)
	r.Description = strings.TrimSpace(r.Description)
	return r
}

// Validate checks the fields the prompt builder relies on. Callers run it
// before BuildPrompt; the builder itself never fails.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Niche) == "" {
		return ErrNicheRequired
	}
	if !r.ContentType.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownContentType, int(r.ContentType))
	}
	if _, err := ParseTone(string(r.Tone)); err != nil {
		return err
	}
	return nil
}

// CalendarRow 记录 30 天内容日历中的一天。
type CalendarRow struct {
	Day     int    `json:"day"`
	Idea    string `json:"idea"`
	Caption string `json:"caption"`
}

// Result 是一次请求经后处理的模型产出。
type Result struct {
	ID          string        `json:"id"`
	ContentType ContentType   `json:"content_type"`
	Prompt      Prompt        `json:"prompt"`
	Content     string        `json:"content"`
	Title       string        `json:"title,omitempty"`
	Preview     string        `json:"preview"`
	Calendar    []CalendarRow `json:"calendar,omitempty"`
	Model       string        `json:"model,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
