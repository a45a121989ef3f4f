package models

import (
	"time"
)

type Article struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	JournalistID uint      `gorm:"not null;index" json:"journalist_id"`
	PublisherID  *uint     `gorm:"index" json:"publisher_id"`
	Published    bool      `gorm:"not null;default:false;index" json:"published"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Journalist User  `gorm:"foreignKey:JournalistID" json:"-"`
	Publisher  *User `gorm:"foreignKey:PublisherID" json:"-"`
}

type PublicationState string

const (
	StateUnpublished PublicationState = "unpublished"
	StatePublished   PublicationState = "published"
)

func (a *Article) State() PublicationState {
	if a.Published {
		return StatePublished
	}
	return StateUnpublished
}

// Publish moves the article to the published state, attributed to publisherID.
func (a *Article) Publish(publisherID uint) {
	a.Published = true
	a.PublisherID = &publisherID
	a.Publisher = nil
}

// Unpublish withdraws the article and drops its publisher attribution.
func (a *Article) Unpublish() {
	a.Published = false
	a.PublisherID = nil
	a.Publisher = nil
}
