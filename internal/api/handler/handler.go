package handler

import (
	"obnavi/backend/internal/billing"
	"obnavi/backend/internal/compliance"
	"obnavi/backend/internal/meeting"
	"obnavi/backend/internal/messaging"
	"obnavi/backend/internal/moderation"
	"obnavi/backend/internal/objectstore"
	"obnavi/backend/internal/realtime"
	"obnavi/backend/internal/storage"
)

// Handler carries every dependency the API routes need. All clients are
// constructed at process start and injected here; nothing is memoized at
// module level.
type Handler struct {
	Storage    storage.Storage
	Messaging  *messaging.Service
	Meetings   *meeting.Service
	Moderation *moderation.Service
	Compliance *compliance.Service
	Billing    billing.Provider
	Uploader   objectstore.Uploader
	Hub        *realtime.Hub

	JWTSecret []byte
}

// NewHandler wires the handler.
func NewHandler(
	store storage.Storage,
	msg *messaging.Service,
	meet *meeting.Service,
	mod *moderation.Service,
	comp *compliance.Service,
	bill billing.Provider,
	up objectstore.Uploader,
	hub *realtime.Hub,
	jwtSecret string,
) *Handler {
	return &Handler{
		Storage:    store,
		Messaging:  msg,
		Meetings:   meet,
		Moderation: mod,
		Compliance: comp,
		Billing:    bill,
		Uploader:   up,
		Hub:        hub,
		JWTSecret:  []byte(jwtSecret),
	}
}
