package queue

import "time"

// QueueName is the durable queue shared by the publisher and the consumer.
const QueueName = "member.registered"

// MemberRegisteredEvent is published after a user record is created, either
// through self registration or by an admin.
type MemberRegisteredEvent struct {
	UserID       uint64    `json:"user_id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}
