package dto

type CreateStoreRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=128"`
}

type CreateStoreResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type UploadFileResponse struct {
	StoreName      string `json:"store_name"`
	FileName       string `json:"file_name"`
	Polls          int    `json:"polls"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

type ChatTurnDTO struct {
	Role    string `json:"role" validate:"required,oneof=user model"`
	Content string `json:"content"`
}

type QueryStoreRequest struct {
	Query   string        `json:"query" validate:"required"`
	History []ChatTurnDTO `json:"history,omitempty" validate:"omitempty,dive"`
}

type GroundingChunkDTO struct {
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

type QueryStoreResponse struct {
	Text            string              `json:"text"`
	GroundingChunks []GroundingChunkDTO `json:"grounding_chunks"`
}
