package handlers

import (
	"net/http"

	"modboard/internal/domain/enums"
	"modboard/internal/services/scroll"
	"modboard/internal/transport/http/dto"
	httperrors "modboard/internal/transport/http/errors"
)

// EventsHandler consumes UI-intent events raised by the presentation layer.
type EventsHandler struct {
	store    Store
	observer ScrollObserver
}

func NewEventsHandler(store Store, observer ScrollObserver) *EventsHandler {
	return &EventsHandler{store: store, observer: observer}
}

func (h *EventsHandler) SwitchTab(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeInternal(w, "STORE_UNAVAILABLE", "review store is unavailable")
		return
	}

	var request dto.SwitchTabRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	queue, ok := enums.ParseQueue(request.Tab)
	if !ok {
		writeBadRequest(w, "INVALID_TAB", "tab must be pending or reviewed")
		return
	}

	h.store.SwitchTab(queue)
	httperrors.Write(w, http.StatusOK, dto.FromSnapshot(h.store.Snapshot()))
}

func (h *EventsHandler) SelectItem(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeInternal(w, "STORE_UNAVAILABLE", "review store is unavailable")
		return
	}

	var request dto.SelectItemRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if request.ItemID == "" {
		writeBadRequest(w, "INVALID_ITEM_ID", "item_id is required")
		return
	}

	// Unknown ids are ignored rather than failed: the item may have just
	// been deleted by an action racing this event.
	h.store.SelectItem(request.ItemID)
	httperrors.Write(w, http.StatusOK, dto.FromSnapshot(h.store.Snapshot()))
}

func (h *EventsHandler) CloseDetail(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeInternal(w, "STORE_UNAVAILABLE", "review store is unavailable")
		return
	}

	h.store.CloseDetail()
	httperrors.Write(w, http.StatusOK, dto.FromSnapshot(h.store.Snapshot()))
}

// Scroll accepts a viewport observation and returns immediately; evaluation
// happens after the debounce window, so the response never reflects it.
func (h *EventsHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	if h.observer == nil {
		writeInternal(w, "TRIGGER_UNAVAILABLE", "scroll trigger is unavailable")
		return
	}

	var request dto.ScrollEventRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	h.observer.Observe(scroll.Position{
		Offset:         request.Offset,
		ViewportHeight: request.ViewportHeight,
		DocumentHeight: request.DocumentHeight,
	})
	writeAccepted(w)
}
