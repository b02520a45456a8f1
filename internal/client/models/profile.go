// Package models defines the client-side domain types. Server DTOs are
// translated into these at the API boundary so loosely-typed wire shapes
// do not leak into the rest of the client.
package models

// ActivityStatus is the server-reported presence state of a user.
type ActivityStatus int

const (
	StatusOnline  ActivityStatus = 1
	StatusAway    ActivityStatus = 2
	StatusOffline ActivityStatus = 3
)

func (s ActivityStatus) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusAway:
		return "away"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Profile is the user-facing record returned by the profile-info endpoint.
// It is read-mostly: the client never mutates it locally, it re-fetches
// after the server acknowledges a write.
type Profile struct {
	UserID         int64
	Username       string
	AvatarURL      string
	Description    string
	ActivityStatus ActivityStatus
}

// StatusUpdate is a presence notification pushed over the status hub.
type StatusUpdate struct {
	UserID         int64          `json:"userId"`
	ActivityStatus ActivityStatus `json:"activityStatus"`
}
