package dto

import "time"

type RecentChatDTO struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	LastMessage string `json:"last_message"`
	StoreName   string `json:"store_name"`
}

type RecentChatsResponse struct {
	Sessions     []RecentChatDTO `json:"sessions"`
	CleanupJobId string          `json:"cleanup_job_id,omitempty"`
}

type CleanupFailureDTO struct {
	SessionId string `json:"session_id"`
	Error     string `json:"error"`
}

type CleanupJobResponse struct {
	JobId      string              `json:"job_id"`
	Total      int                 `json:"total"`
	Deleted    []string            `json:"deleted"`
	Failed     []CleanupFailureDTO `json:"failed"`
	Done       bool                `json:"done"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt *time.Time          `json:"finished_at,omitempty"`
}

// OrphanedSessionMessage is published once per orphan on the cleanup topic.
type OrphanedSessionMessage struct {
	JobId     string `json:"job_id"`
	SessionId string `json:"session_id"`
	AuthToken string `json:"auth_token,omitempty"`
}
