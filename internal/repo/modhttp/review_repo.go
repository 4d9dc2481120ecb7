package modhttp

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"modboard/internal/domain/enums"
	"modboard/internal/domain/model"
)

// ErrUnauthorized is returned by Connect when the backend rejects the
// moderator's credentials.
var ErrUnauthorized = errors.New("moderator credentials rejected")

// ReviewRepo exposes the moderation backend's review-queue contract:
// credential exchange, cursor-paginated queue queries, and per-item action
// submission.
type ReviewRepo struct {
	client *Client
}

func NewReviewRepo(client *Client) *ReviewRepo {
	return &ReviewRepo{client: client}
}

func (r *ReviewRepo) Connect(ctx context.Context, moderatorID string, token string) error {
	request := map[string]string{
		"moderator_user_id": strings.TrimSpace(moderatorID),
		"moderator_token":   strings.TrimSpace(token),
	}

	err := r.client.DoJSON(ctx, http.MethodPost, "/v1/moderators/connect", nil, request, nil)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) &&
			(reqErr.StatusCode == http.StatusUnauthorized || reqErr.StatusCode == http.StatusForbidden) {
			return ErrUnauthorized
		}
		return err
	}

	r.client.SetModeratorID(moderatorID)
	return nil
}

func (r *ReviewRepo) QueryReviewQueue(ctx context.Context, filter model.ReviewFilter, sort []string, page model.PageRequest) (model.ReviewPage, error) {
	query := url.Values{}
	query.Set("entity_type", string(filter.EntityType))
	query.Set("reviewed", strconv.FormatBool(filter.Reviewed))
	query.Set("has_text", strconv.FormatBool(filter.HasText))
	for _, field := range sort {
		if strings.TrimSpace(field) != "" {
			query.Add("sort", strings.TrimSpace(field))
		}
	}
	if strings.TrimSpace(page.Cursor) != "" {
		query.Set("cursor", strings.TrimSpace(page.Cursor))
	}
	limit := page.Limit
	if limit <= 0 {
		limit = 25
	}
	query.Set("limit", strconv.Itoa(limit))

	response := reviewQueueResponseDTO{}
	if err := r.client.DoJSON(ctx, http.MethodGet, "/v1/review-queue", query, nil, &response); err != nil {
		return model.ReviewPage{}, err
	}

	items := make([]model.ReviewItem, 0, len(response.Items))
	for _, dto := range response.Items {
		item := dto.toModel()
		if item.ID == "" {
			continue
		}
		items = append(items, item)
	}

	return model.ReviewPage{
		Items: items,
		Next:  strings.TrimSpace(response.Next),
	}, nil
}

func (r *ReviewRepo) SubmitAction(ctx context.Context, name enums.ActionName, itemID string, payload *model.ActionPayload) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return &RequestError{
			Op:  "submit moderation action",
			Err: errors.New("item id is empty"),
		}
	}

	request := map[string]interface{}{
		"action": string(name),
	}
	if payload != nil {
		request["hard_delete"] = payload.HardDelete
	}

	return r.client.DoJSON(
		ctx,
		http.MethodPost,
		"/v1/review-queue/items/"+url.PathEscape(itemID)+"/actions",
		nil,
		request,
		nil,
	)
}

type reviewQueueResponseDTO struct {
	Items []reviewItemDTO `json:"items"`
	Next  string          `json:"next"`
}

type reviewItemDTO struct {
	ID            string                `json:"id"`
	EntityType    string                `json:"entity_type"`
	EntityCreator entityCreatorDTO      `json:"entity_creator"`
	Flags         []flagDTO             `json:"flags"`
	Payload       *moderationPayloadDTO `json:"moderation_payload"`
	ReviewedBy    string                `json:"reviewed_by"`
}

type entityCreatorDTO struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Role                string    `json:"role"`
	CreatedAt           time.Time `json:"created_at"`
	BanCount            int       `json:"ban_count"`
	RemovedContentCount int       `json:"removed_content_count"`
}

type flagDTO struct {
	Type   string   `json:"type"`
	Labels []string `json:"labels"`
}

type moderationPayloadDTO struct {
	Texts  []string `json:"texts"`
	Images []string `json:"images"`
}

func (dto reviewItemDTO) toModel() model.ReviewItem {
	flags := make([]model.Flag, 0, len(dto.Flags))
	for _, flag := range dto.Flags {
		flagType := strings.TrimSpace(flag.Type)
		if flagType == "" {
			continue
		}
		flags = append(flags, model.Flag{
			Type:   flagType,
			Labels: uniqueStrings(flag.Labels),
		})
	}

	var payload *model.ModerationPayload
	if dto.Payload != nil {
		payload = &model.ModerationPayload{
			Texts:  cloneStrings(dto.Payload.Texts),
			Images: cloneStrings(dto.Payload.Images),
		}
	}

	return model.ReviewItem{
		ID:         strings.TrimSpace(dto.ID),
		EntityType: strings.TrimSpace(dto.EntityType),
		EntityCreator: model.EntityCreator{
			ID:                  strings.TrimSpace(dto.EntityCreator.ID),
			Name:                strings.TrimSpace(dto.EntityCreator.Name),
			Role:                strings.TrimSpace(dto.EntityCreator.Role),
			CreatedAt:           dto.EntityCreator.CreatedAt,
			BanCount:            dto.EntityCreator.BanCount,
			RemovedContentCount: dto.EntityCreator.RemovedContentCount,
		},
		Flags:      flags,
		Payload:    payload,
		ReviewedBy: strings.TrimSpace(dto.ReviewedBy),
	}
}

func cloneStrings(values []string) []string {
	cloned := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		cloned = append(cloned, trimmed)
	}
	return cloned
}

func uniqueStrings(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		exists := false
		for _, current := range result {
			if current == trimmed {
				exists = true
				break
			}
		}
		if !exists {
			result = append(result, trimmed)
		}
	}
	return result
}
