package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcessEmpty(t *testing.T) {
	_, err := PostProcess(" \n\t ", Request{Niche: "Pets"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestPostProcessTitleAndPreview(t *testing.T) {
	raw := "\n# Five pet hacks\n\nKeep your dog cool with a frozen treat.\n\nMore text."
	res, err := PostProcess(raw, Request{Niche: "Pets", ContentType: PostIdeas})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, PostIdeas, res.ContentType)
	assert.Equal(t, strings.TrimSpace(raw), res.Content)
	assert.Equal(t, "Five pet hacks", res.Title)
	assert.Equal(t, "Keep your dog cool with a frozen treat.", res.Preview)
	assert.Nil(t, res.Calendar)
	assert.False(t, res.CreatedAt.IsZero())
}

func TestPostProcessPreviewTruncated(t *testing.T) {
	long := strings.Repeat("é", 300)
	res, err := PostProcess(long, Request{Niche: "Pets", ContentType: PostIdeas})
	require.NoError(t, err)
	assert.Equal(t, previewLimit, len([]rune(res.Preview)))
}

func TestPostProcessCalendarOnlyForCalendarType(t *testing.T) {
	raw := "Walkies: Morning stroll\nBath time: Suds up"

	res, err := PostProcess(raw, Request{Niche: "Pets", ContentType: ContentCalendar})
	require.NoError(t, err)
	assert.Len(t, res.Calendar, 2)

	res, err = PostProcess(raw, Request{Niche: "Pets", ContentType: InstagramCaption})
	require.NoError(t, err)
	assert.Nil(t, res.Calendar)
}

func TestPostProcessCalendarWithNoRows(t *testing.T) {
	res, err := PostProcess("Sorry, I cannot help with that", Request{Niche: "Pets", ContentType: ContentCalendar})
	require.NoError(t, err)
	assert.NotNil(t, res.Calendar)
	assert.Empty(t, res.Calendar)
}
