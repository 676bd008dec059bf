package gallery

import (
	"strings"
	"time"
	"unicode"
)

type Category struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:120;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:140;not null" json:"slug"`

	// IsAdultOnly may only be set by staff; photos in such a category are
	// hidden from viewers who cannot view adult content.
	IsAdultOnly bool      `gorm:"default:false" json:"is_adult_only"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

// Slugify derives a URL slug from a category name: lowercase, alphanumeric
// runs joined by single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
