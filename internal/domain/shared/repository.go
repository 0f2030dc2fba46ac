package shared

// Filter carries the paging, ordering and search options shared by the
// domain repository filters. Repositories validate OrderBy against their
// own whitelist of sortable columns before building queries.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}
