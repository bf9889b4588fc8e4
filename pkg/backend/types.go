package backend

import (
	"time"

	"docrag-be/pkg/filesearch"
)

type ChatSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StoreName    string    `json:"rag_store_name"`
	StartedAt    time.Time `json:"started_at"`
	MessageCount int       `json:"message_count"`
}

type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreRecord is the backend's registry entry for a user store. RagStoreName is
// empty until the store has been provisioned on the provider side.
type StoreRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	RagStoreName  string `json:"rag_store_name"`
	DocumentCount int    `json:"document_count"`
}

func (r StoreRecord) ToStore() filesearch.Store {
	return filesearch.Store{
		Name:          r.RagStoreName,
		DisplayName:   r.DisplayName,
		DocumentCount: r.DocumentCount,
	}
}
