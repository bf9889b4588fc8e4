package filesearch

import (
	"context"
	"io"
	"strings"
)

const storeNamePrefix = "fileSearchStores/"

// Store is a provider-hosted collection of indexed documents.
type Store struct {
	Name          string
	DisplayName   string
	DocumentCount int
}

// IsValid reports whether sessions may keep referencing this store.
func (s Store) IsValid() bool {
	return s.Name != "" && s.DocumentCount > 0
}

// ValidStoreNames returns the set of names of all valid stores.
func ValidStoreNames(stores []Store) map[string]struct{} {
	names := make(map[string]struct{}, len(stores))
	for _, s := range stores {
		if s.IsValid() {
			names[s.Name] = struct{}{}
		}
	}
	return names
}

// StoreName expands a bare store id into the provider's resource name.
// Already qualified names are returned untouched.
func StoreName(id string) string {
	if strings.HasPrefix(id, storeNamePrefix) {
		return id
	}
	return storeNamePrefix + id
}

// StoreID is the inverse of StoreName.
func StoreID(name string) string {
	return strings.TrimPrefix(name, storeNamePrefix)
}

// Operation is a long-running provider job, e.g. indexing an uploaded file.
type Operation struct {
	Name  string
	Done  bool
	Error *OperationError
}

type OperationError struct {
	Code    int
	Message string
}

type FileUpload struct {
	Name     string
	MIMEType string
	Reader   io.Reader
}

type GroundingChunk struct {
	Text  string `json:"text,omitempty"`
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

type QueryResult struct {
	Text            string           `json:"text"`
	GroundingChunks []GroundingChunk `json:"grounding_chunks"`
}

// Turn is one prior exchange fed back to the model as conversation context.
type Turn struct {
	Role    string // "user" or "model"
	Content string
}

type GenerateRequest struct {
	StoreNames        []string
	SystemInstruction string
	Prompt            string
}

type GenerateResponse struct {
	Text            string
	GroundingChunks []GroundingChunk
}

// StoreAPI is the provider surface for store lifecycle management.
type StoreAPI interface {
	CreateStore(ctx context.Context, displayName string) (*Store, error)
	UploadToStore(ctx context.Context, storeName string, file FileUpload) (*Operation, error)
	GetOperation(ctx context.Context, name string) (*Operation, error)
	DeleteStore(ctx context.Context, storeName string, force bool) error
}

// Generator runs a single grounded, non-streaming generation.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}
