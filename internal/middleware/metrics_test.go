package middleware

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordArticleLookup(t *testing.T) {
	before := testutil.ToFloat64(ArticleLookupsTotal.WithLabelValues("anonymous", "found"))

	RecordArticleLookup(context.Background(), "anonymous", "found")
	RecordArticleLookup(context.Background(), "anonymous", "found")

	assert.Equal(t, before+2, testutil.ToFloat64(ArticleLookupsTotal.WithLabelValues("anonymous", "found")))
}
