package services

import (
	"context"
	"errors"
	"strings"

	"go-echo-newsroom/internal/logging"
	"go-echo-newsroom/internal/models"
	"go-echo-newsroom/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("go-echo-newsroom")
	meter  = otel.Meter("go-echo-newsroom")

	articlesCreatedCounter    metric.Int64Counter
	publicationChangedCounter metric.Int64Counter
)

// Notifier is told about every article that ends up published.
type Notifier interface {
	EnqueuePublished(ctx context.Context, articleID uint, title string) error
}

type ArticleService struct {
	articles *repository.ArticleRepository
	notifier Notifier
}

// NewArticleService wires the service to its store. notifier may be nil.
func NewArticleService(articles *repository.ArticleRepository, notifier Notifier) *ArticleService {
	var err error
	articlesCreatedCounter, err = meter.Int64Counter(
		"articles.created",
		metric.WithDescription("Total number of articles created"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create articles counter")
	}

	publicationChangedCounter, err = meter.Int64Counter(
		"articles.publication.changed",
		metric.WithDescription("Total number of publish and unpublish actions"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create publication counter")
	}

	return &ArticleService{
		articles: articles,
		notifier: notifier,
	}
}

type CreateArticleInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (in CreateArticleInput) Validate() error {
	var messages []string
	if strings.TrimSpace(in.Title) == "" {
		messages = append(messages, "Title can't be blank")
	}
	if strings.TrimSpace(in.Body) == "" {
		messages = append(messages, "Body can't be blank")
	}
	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

func (s *ArticleService) Create(ctx context.Context, journalist *models.User, input CreateArticleInput) (*models.Article, error) {
	ctx, span := tracer.Start(ctx, "article.create")
	defer span.End()

	err := input.Validate()
	if journalist == nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			verr = &ValidationError{}
		}
		verr.Messages = append(verr.Messages, "Journalist must exist")
		err = verr
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid article")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("journalist.id", int64(journalist.ID)),
		attribute.String("article.title", input.Title),
	)

	article := models.Article{
		Title:        input.Title,
		Body:         input.Body,
		JournalistID: journalist.ID,
	}

	if err := s.articles.Create(ctx, &article); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create article")
		return nil, err
	}
	article.Journalist = *journalist

	if articlesCreatedCounter != nil {
		articlesCreatedCounter.Add(ctx, 1)
	}

	span.SetAttributes(attribute.Int64("article.id", int64(article.ID)))

	logging.Info(ctx).
		Uint("article_id", article.ID).
		Uint("journalist_id", journalist.ID).
		Msg("article created")

	return &article, nil
}

func (s *ArticleService) Get(ctx context.Context, id uint) (*models.Article, error) {
	ctx, span := tracer.Start(ctx, "article.get")
	defer span.End()

	span.SetAttributes(attribute.Int64("article.id", int64(id)))

	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}

// SetPublication publishes (attributed to actor) or unpublishes an article.
//
// If the article already carried a publisher when the call started, that
// attribution is cleared again as a second write, whatever the first write set.
// So publishing twice in a row leaves the article published with no publisher.
// Both writes commit together.
func (s *ArticleService) SetPublication(ctx context.Context, articleID uint, published bool, actor *models.User) (*models.Article, error) {
	ctx, span := tracer.Start(ctx, "article.set_publication")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("article.id", int64(articleID)),
		attribute.Bool("article.published", published),
	)

	if published && actor == nil {
		span.RecordError(ErrInvalidPublisher)
		span.SetStatus(codes.Error, ErrInvalidPublisher.Error())
		return nil, ErrInvalidPublisher
	}

	var (
		result  *models.Article
		cleared bool
	)
	err := s.articles.Transaction(ctx, func(tx *repository.ArticleRepository) error {
		article, err := tx.FindByID(ctx, articleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrArticleNotFound
			}
			return err
		}

		priorPublisher := article.PublisherID

		if published {
			article.Publish(actor.ID)
		} else {
			article.Unpublish()
		}
		if err := tx.SavePublication(ctx, article); err != nil {
			return err
		}

		cleared, err = clearPriorPublisher(ctx, tx, article, priorPublisher)
		if err != nil {
			return err
		}

		result = article
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set publication")
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("article.publisher_cleared", cleared),
		attribute.String("article.state", string(result.State())),
	)

	if publicationChangedCounter != nil {
		publicationChangedCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.Bool("published", published),
		))
	}

	logging.Info(ctx).
		Uint("article_id", result.ID).
		Str("state", string(result.State())).
		Bool("publisher_cleared", cleared).
		Msg("article publication changed")

	if result.Published && s.notifier != nil {
		if err := s.notifier.EnqueuePublished(ctx, result.ID, result.Title); err != nil {
			logging.Warn(ctx).Err(err).Uint("article_id", result.ID).Msg("failed to enqueue publication notification")
		}
	}

	return result, nil
}

// clearPriorPublisher is the correction step of SetPublication: when the
// article had a publisher before the update began, the publisher is written
// back to nil.
func clearPriorPublisher(ctx context.Context, tx *repository.ArticleRepository, article *models.Article, priorPublisher *uint) (bool, error) {
	if priorPublisher == nil {
		return false, nil
	}
	if err := tx.ClearPublisher(ctx, article.ID); err != nil {
		return false, err
	}
	article.PublisherID = nil
	article.Publisher = nil
	return true, nil
}

func (s *ArticleService) ListUnpublished(ctx context.Context) ([]models.Article, error) {
	ctx, span := tracer.Start(ctx, "article.list_unpublished")
	defer span.End()

	articles, err := s.articles.ListUnpublished(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(articles)))
	return articles, nil
}
