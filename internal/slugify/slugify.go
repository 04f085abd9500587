package slugify

import (
	"fmt"

	gosimple "github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Unique derives a URL slug from name and appends -1, -2, ... until no
// other row of model's table carries it. excludeID keeps a record from
// colliding with itself on update.
func Unique(db *gorm.DB, model interface{}, name string, excludeID uint) (string, error) {
	base := gosimple.Make(name)
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for counter := 1; ; counter++ {
		var count int64
		if err := db.Model(model).
			Where("slug = ? AND id <> ?", candidate, excludeID).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Ensure assigns a unique slug to *slug when it is blank. Called by the
// catalog handlers right before create and update, never implicitly.
func Ensure(db *gorm.DB, model interface{}, slug *string, name string, excludeID uint) error {
	if *slug != "" {
		return nil
	}
	s, err := Unique(db, model, name, excludeID)
	if err != nil {
		return err
	}
	*slug = s
	return nil
}
