package persistence

import (
	"context"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// paginate applies limit and offset from p. A zero page size returns every row.
func paginate(db *gorm.DB, p shared.PageRequest) *gorm.DB {
	if p.PageSize > 0 {
		db = db.Limit(p.PageSize).Offset(p.Offset())
	}
	return db
}

// likeEscape declares the escape character used by likeContains and likePrefix
const likeEscape = ` ESCAPE '\'`

// likeContains returns a lower-cased LIKE pattern matching s anywhere
func likeContains(s string) string {
	return "%" + escapeLike(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// likePrefix returns a lower-cased LIKE pattern matching values starting with s
func likePrefix(s string) string {
	return escapeLike(strings.ToLower(strings.TrimSpace(s))) + "%"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

// saveEvents writes the aggregate's pending events to the outbox inside tx
func saveEvents(ctx context.Context, saver shared.OutboxEventSaver, tx *gorm.DB, events []shared.DomainEvent) error {
	if saver == nil || len(events) == 0 {
		return nil
	}
	return saver.SaveEvents(ctx, tx, events...)
}
