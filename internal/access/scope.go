package access

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotAllowed is returned when a query is built from a DENY decision.
var ErrNotAllowed = errors.New("access denied, no query may be issued")

const defaultPageSize = 10

// ResourceFilter carries the client-supplied filter parameters for a
// listing. Owner is a request parameter and is only honored for
// elevated callers; BuildQuery forces it to the caller's own id
// otherwise.
type ResourceFilter struct {
	Resource    string // resource name, for logs
	OwnerColumn string // e.g. "user_id"; empty disables owner scoping
	Owner       string // requested owner id (elevated callers only)

	Equals   map[string]interface{} // equality filters, column -> value
	Search   string                 // free-text substring, case-insensitive
	SearchIn []string               // columns OR-combined for Search

	Page  int
	Limit int
}

// Query is an executable query description. Building it performs no
// I/O; execution and error surfacing happen at the call site.
type Query struct {
	resource    string
	ownerColumn string
	ownerID     string
	equals      map[string]interface{}
	search      string
	searchIn    []string
	page        int
	limit       int
}

// BuildQuery constructs the least-privileged query for the identity.
// Preconditions: decision must be ALLOW; building from a DENY fails
// closed with ErrNotAllowed.
func BuildQuery(id Identity, decision Decision, filter ResourceFilter) (*Query, error) {
	if !decision.Allowed {
		return nil, ErrNotAllowed
	}

	q := &Query{
		resource:    filter.Resource,
		ownerColumn: filter.OwnerColumn,
		equals:      filter.Equals,
		search:      filter.Search,
		searchIn:    filter.SearchIn,
		page:        filter.Page,
		limit:       filter.Limit,
	}
	if q.page < 1 {
		q.page = 1
	}
	if q.limit < 1 {
		q.limit = defaultPageSize
	}

	if filter.OwnerColumn != "" {
		if id.Elevated() {
			// Admins may scope to any owner, or to none.
			q.ownerID = filter.Owner
		} else {
			// Non-elevated callers only ever see their own rows,
			// regardless of what the request asked for.
			q.ownerID = id.ID
		}
	}

	return q, nil
}

// OwnerID exposes the effective owner scope.
func (q *Query) OwnerID() string {
	return q.ownerID
}

// Offset returns the pagination offset.
func (q *Query) Offset() int {
	return (q.page - 1) * q.limit
}

// Limit returns the page size.
func (q *Query) Limit() int {
	return q.limit
}

// Apply attaches the query description to a gorm statement. Ordering
// is always newest-first with id as tiebreaker so pagination over a
// fixed table is stable.
func (q *Query) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("is_deleted = ?", false)

	if q.ownerColumn != "" && q.ownerID != "" {
		db = db.Where(q.ownerColumn+" = ?", q.ownerID)
	}

	for column, value := range q.equals {
		db = db.Where(column+" = ?", value)
	}

	if q.search != "" && len(q.searchIn) > 0 {
		clauses := make([]string, 0, len(q.searchIn))
		args := make([]interface{}, 0, len(q.searchIn))
		pattern := "%" + escapeLike(q.search) + "%"
		for _, column := range q.searchIn {
			clauses = append(clauses, column+" ILIKE ?")
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	db = db.Order("created_at DESC, id DESC")
	return db.Offset(q.Offset()).Limit(q.limit)
}

// Count applies everything except pagination, for total counts.
func (q *Query) Count(db *gorm.DB) *gorm.DB {
	db = db.Where("is_deleted = ?", false)
	if q.ownerColumn != "" && q.ownerID != "" {
		db = db.Where(q.ownerColumn+" = ?", q.ownerID)
	}
	for column, value := range q.equals {
		db = db.Where(column+" = ?", value)
	}
	if q.search != "" && len(q.searchIn) > 0 {
		clauses := make([]string, 0, len(q.searchIn))
		args := make([]interface{}, 0, len(q.searchIn))
		pattern := "%" + escapeLike(q.search) + "%"
		for _, column := range q.searchIn {
			clauses = append(clauses, column+" ILIKE ?")
			args = append(args, pattern)
		}
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}
	return db
}

// escapeLike escapes LIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
