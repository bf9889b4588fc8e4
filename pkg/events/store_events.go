package events

import "time"

const (
	TypeStoreCreated   = "STORE_CREATED"
	TypeStoreDeleted   = "STORE_DELETED"
	TypeFileIndexed    = "FILE_INDEXED"
	TypeOrphansCleaned = "ORPHANS_CLEANED"
)

func StoreCreated(userID, storeName, displayName string) BaseEvent {
	return BaseEvent{
		Type: TypeStoreCreated,
		Data: map[string]interface{}{
			"user_id":      userID,
			"store_name":   storeName,
			"display_name": displayName,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func StoreDeleted(userID, storeName string) BaseEvent {
	return BaseEvent{
		Type: TypeStoreDeleted,
		Data: map[string]interface{}{
			"user_id":    userID,
			"store_name": storeName,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func FileIndexed(userID, storeName, fileName string, elapsed time.Duration) BaseEvent {
	return BaseEvent{
		Type: TypeFileIndexed,
		Data: map[string]interface{}{
			"user_id":         userID,
			"store_name":      storeName,
			"file_name":       fileName,
			"elapsed_seconds": int(elapsed.Seconds()),
		},
		OccurredAt: time.Now().UTC(),
	}
}

func OrphansCleaned(jobID string, deleted, failed int) BaseEvent {
	return BaseEvent{
		Type: TypeOrphansCleaned,
		Data: map[string]interface{}{
			"job_id":  jobID,
			"deleted": deleted,
			"failed":  failed,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// StoreNameOf reads the store name carried by store events.
func StoreNameOf(e Event) string {
	name, _ := e.Payload()["store_name"].(string)
	return name
}
