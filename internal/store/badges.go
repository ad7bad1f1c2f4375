package store

import "chatverse-backend/internal/models"

const (
	BadgeMsg100 = "badge-msg-100"

	badgeMsg100Threshold = 100
)

var badgeCatalog = map[string]models.Badge{
	BadgeMsg100: {ID: BadgeMsg100, Name: "Wanderer", Icon: "💬", Description: "Sent 100 messages."},
}
