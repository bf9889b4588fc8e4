package reconcile

import (
	"strings"

	"docrag-be/internal/constant"
	"docrag-be/pkg/backend"
)

// DeriveTitle names a chat after the last path segment of its store.
func DeriveTitle(storeName string) string {
	segment := storeName
	if i := strings.LastIndex(storeName, "/"); i >= 0 {
		segment = storeName[i+1:]
	}
	if segment == "" {
		return constant.DefaultChatTitle
	}
	return truncateRunes(segment, constant.ChatTitleMaxRunes)
}

func Preview(messages []backend.Message) string {
	if len(messages) == 0 {
		return constant.EmptyChatPreview
	}
	return truncateRunes(messages[len(messages)-1].Content, constant.ChatPreviewMaxRunes)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
