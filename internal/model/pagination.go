package model

const (
	// MaxPageLimit caps the number of items a single listing may return.
	MaxPageLimit = 100
	// DefaultUsersLimit is the page size for user listings.
	DefaultUsersLimit = 10
	// DefaultWorkSessionsLimit is the page size for work session listings.
	DefaultWorkSessionsLimit = 20
)

// Pagination is an offset/limit window over an ordered listing.
type Pagination struct {
	Skip  int
	Limit int
}

// NewPagination validates skip and limit and clamps limit to MaxPageLimit.
func NewPagination(skip, limit int) (Pagination, error) {
	if skip < 0 {
		return Pagination{}, NewValidationError("skip", "must be greater than or equal to 0")
	}
	if limit < 1 {
		return Pagination{}, NewValidationError("limit", "must be greater than or equal to 1")
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return Pagination{Skip: skip, Limit: limit}, nil
}
