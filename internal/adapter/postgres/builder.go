package postgres

import (
	"github.com/Masterminds/squirrel"
)

// Builder returns a squirrel statement builder configured for PostgreSQL
// ($1, $2, ...) placeholders. Repositories build their queries from it.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
