package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleStartsUnpublished(t *testing.T) {
	a := Article{Title: "Breaking News", Body: "body", JournalistID: 1}

	assert.Equal(t, StateUnpublished, a.State())
	assert.Nil(t, a.PublisherID)
}

func TestArticlePublish(t *testing.T) {
	a := Article{JournalistID: 1}

	a.Publish(7)

	assert.Equal(t, StatePublished, a.State())
	require.NotNil(t, a.PublisherID)
	assert.Equal(t, uint(7), *a.PublisherID)
	assert.Equal(t, uint(1), a.JournalistID)
}

func TestArticleUnpublish(t *testing.T) {
	a := Article{JournalistID: 1}
	a.Publish(7)

	a.Unpublish()

	assert.Equal(t, StateUnpublished, a.State())
	assert.Nil(t, a.PublisherID)
	assert.Nil(t, a.Publisher)
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleVisitor, RoleSubscriber, RoleJournalist, RoleEditor} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleIsStaff(t *testing.T) {
	assert.True(t, RoleJournalist.IsStaff())
	assert.True(t, RoleEditor.IsStaff())
	assert.False(t, RoleSubscriber.IsStaff())
	assert.False(t, RoleVisitor.IsStaff())
}
