package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"go-echo-newsroom/internal/jobs/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishedTask(t *testing.T) {
	task, err := NewPublishedTask(context.Background(), 42, "Breaking News")
	require.NoError(t, err)

	assert.Equal(t, tasks.TypeArticlePublished, task.Type())

	var payload tasks.PublishedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, uint(42), payload.ArticleID)
	assert.Equal(t, "Breaking News", payload.ArticleTitle)
}

func TestPublishedTaskRoundTripsThroughMux(t *testing.T) {
	task, err := NewPublishedTask(context.Background(), 1, "t")
	require.NoError(t, err)

	assert.NoError(t, NewServeMux().ProcessTask(context.Background(), task))
}
