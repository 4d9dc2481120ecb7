package modhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"modboard/internal/domain/enums"
	"modboard/internal/domain/model"
)

func newTestRepo(t *testing.T, handler http.HandlerFunc) (*ReviewRepo, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-api-key", 2*time.Second)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	return NewReviewRepo(client), server
}

func TestConnectSendsCredentialsAndAttachesIdentity(t *testing.T) {
	t.Parallel()

	var connectBody map[string]string
	var queueModeratorHeader string

	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/moderators/connect":
			if r.Method != http.MethodPost {
				t.Errorf("connect method = %s, want POST", r.Method)
			}
			if got := r.Header.Get("X-Api-Key"); got != "test-api-key" {
				t.Errorf("connect X-Api-Key = %q", got)
			}
			if err := json.NewDecoder(r.Body).Decode(&connectBody); err != nil {
				t.Errorf("decode connect body: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		case "/v1/review-queue":
			queueModeratorHeader = r.Header.Get("X-Moderator-Id")
			_ = json.NewEncoder(w).Encode(reviewQueueResponseDTO{})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	if err := repo.Connect(context.Background(), " mod-1 ", "secret-token"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if connectBody["moderator_user_id"] != "mod-1" {
		t.Errorf("moderator_user_id = %q, want %q", connectBody["moderator_user_id"], "mod-1")
	}
	if connectBody["moderator_token"] != "secret-token" {
		t.Errorf("moderator_token = %q", connectBody["moderator_token"])
	}

	_, err := repo.QueryReviewQueue(context.Background(), model.ReviewFilter{}, nil, model.PageRequest{})
	if err != nil {
		t.Fatalf("QueryReviewQueue: %v", err)
	}
	if queueModeratorHeader != "mod-1" {
		t.Errorf("X-Moderator-Id after connect = %q, want %q", queueModeratorHeader, "mod-1")
	}
}

func TestConnectMapsRejectedCredentials(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		wantUn bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantUn: true},
		{name: "forbidden", status: http.StatusForbidden, wantUn: true},
		{name: "server error", status: http.StatusInternalServerError, wantUn: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo, _ := newTestRepo(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			})

			err := repo.Connect(context.Background(), "mod-1", "bad-token")
			if err == nil {
				t.Fatal("expected connect error")
			}
			if got := errors.Is(err, ErrUnauthorized); got != tc.wantUn {
				t.Errorf("errors.Is(err, ErrUnauthorized) = %v, want %v (err=%v)", got, tc.wantUn, err)
			}
			if !tc.wantUn {
				var reqErr *RequestError
				if !errors.As(err, &reqErr) {
					t.Fatalf("expected RequestError, got %T", err)
				}
				if reqErr.StatusCode != tc.status {
					t.Errorf("status = %d, want %d", reqErr.StatusCode, tc.status)
				}
			}
		})
	}
}

func TestQueryReviewQueueEncodesFilterAndCursor(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		q := r.URL.Query()
		if got := q.Get("entity_type"); got != "chat_message" {
			t.Errorf("entity_type = %q", got)
		}
		if got := q.Get("reviewed"); got != "true" {
			t.Errorf("reviewed = %q", got)
		}
		if got := q.Get("has_text"); got != "true" {
			t.Errorf("has_text = %q", got)
		}
		if got := q.Get("cursor"); got != "page-2" {
			t.Errorf("cursor = %q", got)
		}
		if got := q.Get("limit"); got != "25" {
			t.Errorf("limit = %q", got)
		}
		if got := q.Get("sort"); got != "created_at" {
			t.Errorf("sort = %q", got)
		}
		_ = json.NewEncoder(w).Encode(reviewQueueResponseDTO{Next: "page-3"})
	})

	page, err := repo.QueryReviewQueue(context.Background(),
		model.ReviewFilter{EntityType: enums.EntityTypeChatMessage, Reviewed: true, HasText: true},
		[]string{"created_at"},
		model.PageRequest{Cursor: "page-2", Limit: 25},
	)
	if err != nil {
		t.Fatalf("QueryReviewQueue: %v", err)
	}
	if page.Next != "page-3" {
		t.Errorf("Next = %q, want %q", page.Next, "page-3")
	}
	if page.Items == nil {
		t.Error("Items should be non-nil even when empty")
	}
}

func TestQueryReviewQueueMapsAndCleansItems(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepo(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(reviewQueueResponseDTO{
			Items: []reviewItemDTO{
				{
					ID:         " item-1 ",
					EntityType: "chat_message",
					EntityCreator: entityCreatorDTO{
						ID:   " user-1 ",
						Name: " Alice ",
					},
					Flags: []flagDTO{
						{Type: " toxic ", Labels: []string{"insult", " insult ", "", "threat"}},
						{Type: "  "},
					},
					Payload: &moderationPayloadDTO{
						Texts:  []string{" hello ", ""},
						Images: []string{"key/one.png"},
					},
				},
				{ID: "   "},
			},
			Next: " next-cursor ",
		})
	})

	page, err := repo.QueryReviewQueue(context.Background(), model.ReviewFilter{}, nil, model.PageRequest{})
	if err != nil {
		t.Fatalf("QueryReviewQueue: %v", err)
	}

	if len(page.Items) != 1 {
		t.Fatalf("items = %d, want 1 (blank ids dropped)", len(page.Items))
	}
	item := page.Items[0]
	if item.ID != "item-1" {
		t.Errorf("ID = %q", item.ID)
	}
	if item.EntityCreator.Name != "Alice" {
		t.Errorf("creator name = %q", item.EntityCreator.Name)
	}
	if len(item.Flags) != 1 {
		t.Fatalf("flags = %d, want 1 (blank type dropped)", len(item.Flags))
	}
	if got := item.Flags[0].Labels; len(got) != 2 || got[0] != "insult" || got[1] != "threat" {
		t.Errorf("labels = %v, want deduplicated [insult threat]", got)
	}
	if item.Payload == nil || len(item.Payload.Texts) != 1 || item.Payload.Texts[0] != "hello" {
		t.Errorf("payload texts = %+v", item.Payload)
	}
	if page.Next != "next-cursor" {
		t.Errorf("Next = %q", page.Next)
	}
}

func TestSubmitActionSendsSoftDeletePayload(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody map[string]interface{}

	repo, _ := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode action body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	err := repo.SubmitAction(context.Background(), enums.ActionDeleteMessage, "item 1", &model.ActionPayload{HardDelete: false})
	if err != nil {
		t.Fatalf("SubmitAction: %v", err)
	}
	if gotPath != "/v1/review-queue/items/item%201/actions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["action"] != string(enums.ActionDeleteMessage) {
		t.Errorf("action = %v", gotBody["action"])
	}
	hardDelete, ok := gotBody["hard_delete"].(bool)
	if !ok || hardDelete {
		t.Errorf("hard_delete = %v, want false", gotBody["hard_delete"])
	}
}

func TestSubmitActionRejectsEmptyItemID(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepo(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for empty item id")
		w.WriteHeader(http.StatusOK)
	})

	err := repo.SubmitAction(context.Background(), enums.ActionMarkReviewed, "  ", nil)
	if err == nil {
		t.Fatal("expected error for empty item id")
	}
}

func TestSubmitActionPropagatesBackendFailure(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepo(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "queue is locked", http.StatusConflict)
	})

	err := repo.SubmitAction(context.Background(), enums.ActionMarkReviewed, "item-1", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d", reqErr.StatusCode, http.StatusConflict)
	}
}

func TestNewClientValidatesConfiguration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		baseURL string
		apiKey  string
	}{
		{name: "empty base url", baseURL: "", apiKey: "key"},
		{name: "empty api key", baseURL: "http://localhost:8080", apiKey: " "},
		{name: "relative url", baseURL: "localhost:no-scheme-path", apiKey: "key"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewClient(tc.baseURL, tc.apiKey, time.Second); err == nil {
				t.Fatal("expected constructor error")
			}
		})
	}
}
