// Package testutil provides an in-memory database and fixtures for package
// tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"go-echo-newsroom/internal/database"
	"go-echo-newsroom/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database that lives as long as the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), false)
	require.NoError(t, err)

	// every connection to ":memory:" is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}

func CreateUser(t testing.TB, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)

	user := &models.User{
		Email: fmt.Sprintf("%s%d@newsroom.test", role, count+1),
		Name:  fmt.Sprintf("%s %d", strings.ToUpper(string(role[:1]))+string(role[1:]), count+1),
		Role:  role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateArticle(t testing.TB, db *gorm.DB, journalist *models.User, published bool) *models.Article {
	t.Helper()

	article := &models.Article{
		Title:        "Breaking News",
		Body:         strings.Repeat("Lorem ipsum ", 30),
		JournalistID: journalist.ID,
		Published:    published,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}
