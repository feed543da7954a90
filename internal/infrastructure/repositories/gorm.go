package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/you/quezi/domain"
)

// Models lists every GORM model owned by this package, in migration order
func Models() []interface{} {
	return []interface{}{
		&DBUser{},
		&DBOrganization{},
		&DBOrganizationMember{},
		&DBReview{},
	}
}

func paginate(page domain.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Limit > 0 {
			db = db.Limit(page.Limit)
		}
		if page.Offset > 0 {
			db = db.Offset(page.Offset)
		}
		return db
	}
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without error translation
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
