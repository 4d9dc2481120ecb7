package model

import "time"

// ReviewItem is a flagged content record as returned by the moderation
// backend. Items are created only from adapter responses; locally they only
// ever move between queues, never mutate in place.
type ReviewItem struct {
	ID            string
	EntityType    string
	EntityCreator EntityCreator
	Flags         []Flag
	Payload       *ModerationPayload
	ReviewedBy    string
}

// EntityCreator summarizes the user who produced the flagged content.
type EntityCreator struct {
	ID                  string
	Name                string
	Role                string
	CreatedAt           time.Time
	BanCount            int
	RemovedContentCount int
}

type Flag struct {
	Type   string
	Labels []string
}

// ModerationPayload carries the content surfaced for review. Images hold
// display URLs; raw storage keys are presigned before the item reaches the
// dashboard.
type ModerationPayload struct {
	Texts  []string
	Images []string
}

// Clone returns a copy safe to hand to the presentation layer.
func (i ReviewItem) Clone() ReviewItem {
	cloned := i
	cloned.Flags = make([]Flag, 0, len(i.Flags))
	for _, flag := range i.Flags {
		labels := make([]string, len(flag.Labels))
		copy(labels, flag.Labels)
		cloned.Flags = append(cloned.Flags, Flag{Type: flag.Type, Labels: labels})
	}
	if i.Payload != nil {
		payload := ModerationPayload{
			Texts:  make([]string, len(i.Payload.Texts)),
			Images: make([]string, len(i.Payload.Images)),
		}
		copy(payload.Texts, i.Payload.Texts)
		copy(payload.Images, i.Payload.Images)
		cloned.Payload = &payload
	}
	return cloned
}
