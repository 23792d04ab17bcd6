package domain

import "time"

// Todo is the business entity. It does not depend on Gin, Postgres or Redis.
// Description and FileName are nullable columns, hence pointers.
type Todo struct {
	ID          int64
	Title       string
	Description *string
	FileName    *string
	CreatedAt   time.Time
}
