// Package avatar builds placeholder image URLs for users and servers that
// bring no picture of their own.
package avatar

import (
	"fmt"
	"net/url"
)

const placeholderHost = "https://picsum.photos/seed"

// UserUrl is deterministic for a given name, so the same user always renders
// with the same placeholder.
func UserUrl(name string) string {
	return fmt.Sprintf("%s/%s/100/100", placeholderHost, url.PathEscape(name))
}

// ServerUrl is seeded by the server ID so sibling servers don't share icons.
func ServerUrl(serverID int64) string {
	return fmt.Sprintf("%s/server-%d/128/128", placeholderHost, serverID)
}
