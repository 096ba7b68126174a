package ytservice

// SortKey is the ordering requested for search results.
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortDate       SortKey = "date"
	SortRating     SortKey = "rating"
	SortViewCount  SortKey = "viewCount"
	SortTitle      SortKey = "title"
	SortVideoCount SortKey = "videoCount"
)

// DefaultSort is used when the caller gives no or an unknown sort key.
const DefaultSort = SortRating

// ParseSortKey coerces s to a known key. videoCount is only accepted for
// channel searches. Unknown values fall back to DefaultSort.
func ParseSortKey(s string, forChannels bool) SortKey {
	switch k := SortKey(s); k {
	case SortRelevance, SortDate, SortRating, SortViewCount, SortTitle:
		return k
	case SortVideoCount:
		if forChannels {
			return k
		}
	}
	return DefaultSort
}
