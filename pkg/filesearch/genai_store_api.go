package filesearch

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const defaultUploadMIMEType = "application/octet-stream"

// NewGenAIClient builds the Gemini Developer API client shared by the store
// lifecycle and grounded generation. baseURL and httpClient may be empty.
func NewGenAIClient(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*genai.Client, error) {
	if apiKey == "" {
		return nil, ErrNotInitialized
	}

	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cc.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// GenAIStoreAPI manages File Search stores through the Gen AI SDK.
type GenAIStoreAPI struct {
	client *genai.Client
}

var _ StoreAPI = (*GenAIStoreAPI)(nil)

func NewGenAIStoreAPI(client *genai.Client) (*GenAIStoreAPI, error) {
	if client == nil {
		return nil, ErrNotInitialized
	}
	return &GenAIStoreAPI{client: client}, nil
}

func (g *GenAIStoreAPI) CreateStore(ctx context.Context, displayName string) (*Store, error) {
	res, err := g.client.FileSearchStores.Create(ctx, &genai.CreateFileSearchStoreConfig{
		DisplayName: displayName,
	})
	if err != nil {
		return nil, providerError(err)
	}

	return &Store{
		Name:          res.Name,
		DisplayName:   res.DisplayName,
		DocumentCount: int(res.ActiveDocumentsCount),
	}, nil
}

func (g *GenAIStoreAPI) UploadToStore(ctx context.Context, storeName string, file FileUpload) (*Operation, error) {
	if file.Reader == nil {
		return nil, fmt.Errorf("upload %q: empty file", file.Name)
	}

	mimeType := file.MIMEType
	if mimeType == "" {
		mimeType = defaultUploadMIMEType
	}

	op, err := g.client.FileSearchStores.UploadToFileSearchStore(ctx, file.Reader, storeName, &genai.UploadToFileSearchStoreConfig{
		DisplayName: file.Name,
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, providerError(err)
	}
	return toOperation(op), nil
}

func (g *GenAIStoreAPI) GetOperation(ctx context.Context, name string) (*Operation, error) {
	op, err := g.client.Operations.GetUploadToFileSearchStoreOperation(ctx,
		&genai.UploadToFileSearchStoreOperation{Name: name}, nil)
	if err != nil {
		return nil, providerError(err)
	}

	res := toOperation(op)
	if res.Name == "" {
		res.Name = name
	}
	return res, nil
}

func (g *GenAIStoreAPI) DeleteStore(ctx context.Context, storeName string, force bool) error {
	config := &genai.DeleteFileSearchStoreConfig{}
	if force {
		config.Force = &force
	}
	return providerError(g.client.FileSearchStores.Delete(ctx, storeName, config))
}

// toOperation keeps the fields the poller needs. The SDK reports the
// operation error as the raw google.rpc.Status map.
func toOperation(op *genai.UploadToFileSearchStoreOperation) *Operation {
	if op == nil {
		return nil
	}

	res := &Operation{Name: op.Name, Done: op.Done}
	if len(op.Error) > 0 {
		opErr := &OperationError{}
		if code, ok := op.Error["code"].(float64); ok {
			opErr.Code = int(code)
		}
		opErr.Message, _ = op.Error["message"].(string)
		res.Error = opErr
	}
	return res
}
