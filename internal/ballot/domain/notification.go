package domain

import "time"

type NotificationType string

const (
	NotificationNewProposal  NotificationType = "new_proposal"
	NotificationVoteCast     NotificationType = "vote_cast"
	NotificationDeadlineSoon NotificationType = "deadline_soon"
	NotificationNewFollower  NotificationType = "new_follower"
	NotificationWelcome      NotificationType = "welcome"
)

type Notification struct {
	ID        int64
	Type      NotificationType
	Message   string
	LinkID    *int64 // proposal id, when the notification points at one
	Read      bool
	CreatedAt time.Time
}

// Link is a helper for building LinkID.
func Link(id int64) *int64 { return &id }
