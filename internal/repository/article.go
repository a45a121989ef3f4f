package repository

import (
	"context"
	"errors"

	"go-echo-newsroom/internal/models"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Transaction runs fn against a repository bound to a single database
// transaction. Nothing fn writes is visible to other readers until it returns
// nil.
func (r *ArticleRepository) Transaction(ctx context.Context, fn func(tx *ArticleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ArticleRepository{db: tx})
	})
}

func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepository) ListUnpublished(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.WithContext(ctx).
		Preload("Journalist").
		Where("published = ?", false).
		Order("id ASC").
		Find(&articles).Error
	return articles, err
}

// SavePublication writes the publication columns of article and nothing else.
func (r *ArticleRepository) SavePublication(ctx context.Context, article *models.Article) error {
	result := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", article.ID).
		Updates(map[string]interface{}{
			"published":    article.Published,
			"publisher_id": article.PublisherID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) ClearPublisher(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", id).
		Update("publisher_id", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
