package model

import "modboard/internal/domain/enums"

// ReviewFilter is the fixed per-queue filter sent with every page query.
type ReviewFilter struct {
	EntityType enums.EntityType
	Reviewed   bool
	HasText    bool
}

// PageRequest asks for one page of the review queue. An empty Cursor
// requests the first page.
type PageRequest struct {
	Cursor string
	Limit  int
}

// ReviewPage is one page of backend results. An empty Next means no further
// pages exist.
type ReviewPage struct {
	Items []ReviewItem
	Next  string
}

// ActionPayload carries optional parameters of an action submission.
type ActionPayload struct {
	HardDelete bool
}
