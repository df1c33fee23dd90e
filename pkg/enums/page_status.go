package enums

// PageStatus is the publish state of a generated SEO page.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
	PageStatusArchived  PageStatus = "archived"
)

var validPageStatuses = []PageStatus{
	PageStatusDraft,
	PageStatusPublished,
	PageStatusArchived,
}

// String implements fmt.Stringer.
func (p PageStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PageStatus) IsValid() bool {
	for _, candidate := range validPageStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}
