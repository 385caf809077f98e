package models

// SearchPage is the envelope returned by the user and tweet search endpoints.
type SearchPage struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"currentPage"`
}

// FeedPage is the envelope returned by the followed-authors feed endpoint.
type FeedPage struct {
	Tweets      []*Tweet `json:"tweets"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	TotalTweets int64    `json:"totalTweets"`
}

// PageCount returns the number of pages needed for total items at the given
// page size.
func PageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
