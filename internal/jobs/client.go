package jobs

import (
	"context"
	"encoding/json"

	"go-echo-newsroom/internal/jobs/tasks"
	"go-echo-newsroom/internal/logging"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

const DefaultQueue = "default"

var (
	tracer       = otel.Tracer("go-echo-newsroom")
	meter        = otel.Meter("go-echo-newsroom")
	jobsEnqueued metric.Int64Counter
)

type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) *Client {
	var err error
	jobsEnqueued, err = meter.Int64Counter(
		"jobs.enqueued",
		metric.WithDescription("Total number of jobs enqueued"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs enqueued counter")
	}

	return &Client{client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// NewPublishedTask builds the task announcing that an article went live. The
// caller's trace context travels in the payload.
func NewPublishedTask(ctx context.Context, articleID uint, title string) (*asynq.Task, error) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	payload, err := json.Marshal(tasks.PublishedPayload{
		ArticleID:    articleID,
		ArticleTitle: title,
		TraceContext: carrier,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(tasks.TypeArticlePublished, payload, asynq.Queue(DefaultQueue)), nil
}

func (c *Client) EnqueuePublished(ctx context.Context, articleID uint, title string) error {
	ctx, span := tracer.Start(ctx, "job.enqueue.article_published")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("article.id", int64(articleID)),
		attribute.String("job.type", tasks.TypeArticlePublished),
	)

	task, err := NewPublishedTask(ctx, articleID, title)
	if err != nil {
		span.RecordError(err)
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if jobsEnqueued != nil {
		jobsEnqueued.Add(ctx, 1, metric.WithAttributes(
			attribute.String("job.type", tasks.TypeArticlePublished),
		))
	}

	span.SetAttributes(
		attribute.String("job.id", info.ID),
		attribute.String("job.queue", info.Queue),
	)

	logging.Info(ctx).
		Str("job_id", info.ID).
		Str("job_type", tasks.TypeArticlePublished).
		Uint("article_id", articleID).
		Msg("job enqueued")

	return nil
}
