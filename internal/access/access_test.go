package access

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go-echo-newsroom/internal/models"

	"github.com/stretchr/testify/assert"
)

var allClasses = []CallerClass{Anonymous, Subscriber, NoCredential}

func TestClassify(t *testing.T) {
	assert.Equal(t, Anonymous, Classify(nil))
	assert.Equal(t, Subscriber, Classify(&Principal{UserID: 1, Role: models.RoleSubscriber}))
	assert.Equal(t, NoCredential, Classify(&Principal{UserID: 2, Role: models.RoleVisitor}))
	assert.Equal(t, NoCredential, Classify(&Principal{UserID: 3, Role: models.RoleJournalist}))
	assert.Equal(t, NoCredential, Classify(&Principal{UserID: 4, Role: models.RoleEditor}))
}

func TestCallerClassString(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "subscriber", Subscriber.String())
	assert.Equal(t, "no_credential", NoCredential.String())
	assert.Equal(t, "unknown", CallerClass(42).String())
}

func TestIsVisible(t *testing.T) {
	assert.False(t, IsVisible(nil))
	assert.False(t, IsVisible(&models.Article{Published: false}))
	assert.True(t, IsVisible(&models.Article{Published: true}))
}

func TestBodyForSubscriberIsFullLength(t *testing.T) {
	for _, n := range []int{0, 1, 349, 350, 351, 360, 5000} {
		body := strings.Repeat("a", n)
		article := &models.Article{Body: body, Published: true}

		assert.Equal(t, body, BodyFor(article, Subscriber), "length %d", n)
	}
}

func TestBodyForOthersIsTruncated(t *testing.T) {
	for _, class := range []CallerClass{Anonymous, NoCredential} {
		for _, n := range []int{0, 1, 349, 350, 351, 360, 5000} {
			article := &models.Article{Body: strings.Repeat("b", n), Published: true}

			got := BodyFor(article, class)
			assert.Len(t, got, min(PreviewLength, n), "%s length %d", class, n)
			assert.True(t, strings.HasPrefix(article.Body, got))
		}
	}
}

func TestBodyForCountsCharactersNotBytes(t *testing.T) {
	article := &models.Article{Body: strings.Repeat("å", 400), Published: true}

	got := BodyFor(article, Anonymous)

	assert.Equal(t, PreviewLength, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestPrincipalHasRole(t *testing.T) {
	var nobody *Principal
	assert.False(t, nobody.HasRole(models.RoleEditor))

	p := &Principal{UserID: 1, Role: models.RoleJournalist}
	assert.True(t, p.HasRole(models.RoleJournalist, models.RoleEditor))
	assert.False(t, p.HasRole(models.RoleEditor))
}

func TestUnpublishedIsNeverVisibleToAnyClass(t *testing.T) {
	article := &models.Article{Title: "t", Body: "b", Published: false}
	for _, class := range allClasses {
		assert.False(t, IsVisible(article), class.String())
	}
}
