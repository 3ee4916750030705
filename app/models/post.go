package models

import "time"

// PublishedOn formats the post date for display.
func (p *Post) PublishedOn() string {
	return p.Date.Format("02/01/2006")
}

// IsUndated reports whether the post fell back to the epoch date.
func (p *Post) IsUndated() bool {
	return p.Date.Equal(Epoch)
}

// Epoch is the date assigned to posts without a usable date.
var Epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
