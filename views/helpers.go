package views

import (
	"context"
	"net/url"

	"github.com/AdamBeresnev/draft-pool/internal/middleware"
)

// Nav carries the admin key so links and forms on admin pages keep working.
type Nav struct {
	AdminKey string
}

func GetNav(ctx context.Context) Nav {
	return Nav{AdminKey: middleware.GetAdminKey(ctx)}
}

func (n Nav) IsAdmin() bool {
	return n.AdminKey != ""
}

// URL appends ?key= to path when the viewer is admin.
func (n Nav) URL(path string) string {
	if !n.IsAdmin() {
		return path
	}
	return path + "?" + url.Values{middleware.KeyParam: {n.AdminKey}}.Encode()
}

// TeamURL builds an admin link for one team, escaping the team name as a path segment.
func (n Nav) TeamURL(prefix string, teamName string) string {
	return n.URL(prefix + url.PathEscape(teamName))
}
