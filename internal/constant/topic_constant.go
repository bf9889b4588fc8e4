package constant

import "time"

const (
	OrphanedSessionTopic = "chat.session.orphaned"

	OrphanDeleteTimeout = 30 * time.Second
	CleanupJobRetention = time.Hour
)
