package enums

import "strings"

type Queue string

const (
	QueuePendingReview Queue = "pending"
	QueueReviewed      Queue = "reviewed"
)

func ParseQueue(raw string) (Queue, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "pending_review":
		return QueuePendingReview, true
	case "reviewed":
		return QueueReviewed, true
	default:
		return "", false
	}
}
