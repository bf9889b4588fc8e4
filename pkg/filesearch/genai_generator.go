package filesearch

import (
	"context"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// GenAIGenerator runs grounded generations through the Gen AI SDK with the
// File Search tool scoped to the requested stores.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

var _ Generator = (*GenAIGenerator)(nil)

func NewGenAIGenerator(client *genai.Client, model string) (*GenAIGenerator, error) {
	if client == nil {
		return nil, ErrNotInitialized
	}
	if model == "" {
		model = DefaultModel
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{
				FileSearch: &genai.FileSearch{
					FileSearchStoreNames: req.StoreNames,
				},
			},
		},
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, providerError(err)
	}

	return &GenerateResponse{
		Text:            resp.Text(),
		GroundingChunks: groundingChunks(resp),
	}, nil
}

func groundingChunks(resp *genai.GenerateContentResponse) []GroundingChunk {
	chunks := []GroundingChunk{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return chunks
	}

	for _, gc := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if gc == nil || gc.RetrievedContext == nil {
			continue
		}
		chunks = append(chunks, GroundingChunk{
			Text:  gc.RetrievedContext.Text,
			Title: gc.RetrievedContext.Title,
			URI:   gc.RetrievedContext.URI,
		})
	}
	return chunks
}
