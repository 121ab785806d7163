package domain

import (
	"strings"
	"time"
)

// User is only the foreign key target for favorites plus a single credential check.
type User struct {
	ID           string
	PasswordHash string
	FirstName    string
	LastName     string
}

func (u User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
}

// Favorite is a user's mark on an item. MarkedAt is set once, on creation.
type Favorite struct {
	UserID   string
	ItemID   string
	MarkedAt time.Time
}

// NormalizeIDs trims ids and drops blanks and duplicates, keeping first-seen order.
func NormalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Demo account created by the seed tool and present in memory mode.
const (
	DemoUserID        = "1111"
	DemoUserFirstName = "John"
	DemoUserLastName  = "Smith"
	// md5 digest the web client submits for the demo password
	DemoUserPassword = "3229c1097c00d497a0fd282d586be050"
)
