package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleArticlePublished(t *testing.T) {
	payload, err := json.Marshal(PublishedPayload{ArticleID: 7, ArticleTitle: "Breaking News"})
	require.NoError(t, err)

	err = HandleArticlePublished(context.Background(), asynq.NewTask(TypeArticlePublished, payload))
	assert.NoError(t, err)
}

func TestHandleArticlePublishedSkipsBadPayload(t *testing.T) {
	err := HandleArticlePublished(context.Background(), asynq.NewTask(TypeArticlePublished, []byte("{")))

	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleArticlePublishedSkipsMissingID(t *testing.T) {
	err := HandleArticlePublished(context.Background(), asynq.NewTask(TypeArticlePublished, []byte(`{"article_title":"x"}`)))

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
