package dto

import (
	"time"

	"modboard/internal/domain/model"
	"modboard/internal/services/review"
)

type DashboardStateResponse struct {
	Pending   QueueResponse       `json:"pending"`
	Reviewed  QueueResponse       `json:"reviewed"`
	IsLoading bool                `json:"is_loading"`
	ActiveTab string              `json:"active_tab"`
	Selected  *ReviewItemResponse `json:"selected,omitempty"`
}

type QueueResponse struct {
	Items   []ReviewItemResponse `json:"items"`
	HasMore bool                 `json:"has_more"`
}

type ReviewItemResponse struct {
	ID            string                     `json:"id"`
	EntityType    string                     `json:"entity_type"`
	EntityCreator EntityCreatorResponse      `json:"entity_creator"`
	Flags         []FlagResponse             `json:"flags"`
	Payload       *ModerationPayloadResponse `json:"moderation_payload,omitempty"`
	ReviewedBy    string                     `json:"reviewed_by,omitempty"`
}

type EntityCreatorResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Role                string    `json:"role"`
	CreatedAt           time.Time `json:"created_at"`
	BanCount            int       `json:"ban_count"`
	RemovedContentCount int       `json:"removed_content_count"`
}

type FlagResponse struct {
	Type   string   `json:"type"`
	Labels []string `json:"labels"`
}

type ModerationPayloadResponse struct {
	Texts  []string `json:"texts"`
	Images []string `json:"images"`
}

type SwitchTabRequest struct {
	Tab string `json:"tab"`
}

type SelectItemRequest struct {
	ItemID string `json:"item_id"`
}

type ScrollEventRequest struct {
	Offset         float64 `json:"offset"`
	ViewportHeight float64 `json:"viewport_height"`
	DocumentHeight float64 `json:"document_height"`
}

func FromSnapshot(snapshot review.Snapshot) DashboardStateResponse {
	response := DashboardStateResponse{
		Pending:   fromQueueView(snapshot.Pending),
		Reviewed:  fromQueueView(snapshot.Reviewed),
		IsLoading: snapshot.IsLoading,
		ActiveTab: string(snapshot.ActiveTab),
	}
	if snapshot.Selected != nil {
		selected := fromReviewItem(*snapshot.Selected)
		response.Selected = &selected
	}
	return response
}

func fromQueueView(view review.QueueView) QueueResponse {
	items := make([]ReviewItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, fromReviewItem(item))
	}
	return QueueResponse{Items: items, HasMore: view.HasMore}
}

func fromReviewItem(item model.ReviewItem) ReviewItemResponse {
	flags := make([]FlagResponse, 0, len(item.Flags))
	for _, flag := range item.Flags {
		flags = append(flags, FlagResponse{Type: flag.Type, Labels: flag.Labels})
	}

	response := ReviewItemResponse{
		ID:         item.ID,
		EntityType: item.EntityType,
		EntityCreator: EntityCreatorResponse{
			ID:                  item.EntityCreator.ID,
			Name:                item.EntityCreator.Name,
			Role:                item.EntityCreator.Role,
			CreatedAt:           item.EntityCreator.CreatedAt,
			BanCount:            item.EntityCreator.BanCount,
			RemovedContentCount: item.EntityCreator.RemovedContentCount,
		},
		Flags:      flags,
		ReviewedBy: item.ReviewedBy,
	}
	if item.Payload != nil {
		response.Payload = &ModerationPayloadResponse{
			Texts:  item.Payload.Texts,
			Images: item.Payload.Images,
		}
	}
	return response
}
