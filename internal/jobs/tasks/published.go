package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-echo-newsroom/internal/logging"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

const TypeArticlePublished = "notification:article_published"

var (
	tracer        = otel.Tracer("go-echo-newsroom-worker")
	meter         = otel.Meter("go-echo-newsroom-worker")
	jobsCompleted metric.Int64Counter
	jobsFailed    metric.Int64Counter
	jobsDuration  metric.Float64Histogram
)

func init() {
	var err error

	jobsCompleted, err = meter.Int64Counter(
		"jobs.completed",
		metric.WithDescription("Total number of jobs completed successfully"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs completed counter")
	}

	jobsFailed, err = meter.Int64Counter(
		"jobs.failed",
		metric.WithDescription("Total number of jobs failed"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs failed counter")
	}

	jobsDuration, err = meter.Float64Histogram(
		"jobs.duration_ms",
		metric.WithDescription("Job processing duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs duration histogram")
	}
}

type PublishedPayload struct {
	ArticleID    uint              `json:"article_id"`
	ArticleTitle string            `json:"article_title"`
	TraceContext map[string]string `json:"trace_context"`
}

// HandleArticlePublished announces a newly published article. Malformed
// payloads are skipped rather than retried.
func HandleArticlePublished(ctx context.Context, task *asynq.Task) error {
	start := time.Now()

	var payload PublishedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		recordJobMetrics(ctx, false, time.Since(start))
		return fmt.Errorf("decode %s payload: %v: %w", TypeArticlePublished, err, asynq.SkipRetry)
	}
	if payload.ArticleID == 0 {
		recordJobMetrics(ctx, false, time.Since(start))
		return fmt.Errorf("%s payload without article id: %w", TypeArticlePublished, asynq.SkipRetry)
	}

	parentCtx := otel.GetTextMapPropagator().Extract(
		ctx,
		propagation.MapCarrier(payload.TraceContext),
	)

	ctx, span := tracer.Start(parentCtx, "job.article_published")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("article.id", int64(payload.ArticleID)),
		attribute.String("article.title", payload.ArticleTitle),
		attribute.String("job.type", TypeArticlePublished),
	)

	logging.Info(ctx).
		Uint("article_id", payload.ArticleID).
		Str("article_title", payload.ArticleTitle).
		Msg("article published, notifying readers")

	span.SetStatus(codes.Ok, "notification processed")
	recordJobMetrics(ctx, true, time.Since(start))

	return nil
}

func recordJobMetrics(ctx context.Context, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("job.type", TypeArticlePublished))

	if success {
		if jobsCompleted != nil {
			jobsCompleted.Add(ctx, 1, attrs)
		}
	} else if jobsFailed != nil {
		jobsFailed.Add(ctx, 1, attrs)
	}

	if jobsDuration != nil {
		jobsDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}
