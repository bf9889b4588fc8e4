package service

import (
	"context"
	"errors"
	"sync"

	"docrag-be/pkg/events"
	"docrag-be/pkg/filesearch"
)

type stubStoreAPI struct {
	created   []string
	deleted   []string
	pending   int
	opErr     *filesearch.OperationError
	uploadErr error
}

func (s *stubStoreAPI) CreateStore(_ context.Context, displayName string) (*filesearch.Store, error) {
	s.created = append(s.created, displayName)
	return &filesearch.Store{Name: "fileSearchStores/new-store", DisplayName: displayName}, nil
}

func (s *stubStoreAPI) UploadToStore(context.Context, string, filesearch.FileUpload) (*filesearch.Operation, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return &filesearch.Operation{Name: "op-1", Done: s.pending == 0}, nil
}

func (s *stubStoreAPI) GetOperation(_ context.Context, name string) (*filesearch.Operation, error) {
	s.pending--
	return &filesearch.Operation{Name: name, Done: s.pending <= 0, Error: s.opErr}, nil
}

func (s *stubStoreAPI) DeleteStore(_ context.Context, name string, _ bool) error {
	s.deleted = append(s.deleted, name)
	return nil
}

type stubGenerator struct {
	text     string
	err      error
	calls    int
	requests []filesearch.GenerateRequest
}

func (g *stubGenerator) Generate(_ context.Context, req filesearch.GenerateRequest) (*filesearch.GenerateResponse, error) {
	g.calls++
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &filesearch.GenerateResponse{
		Text:            g.text,
		GroundingChunks: []filesearch.GroundingChunk{{Text: "trecho", Title: "edital.pdf"}},
	}, nil
}

type memoryQuestionsCache struct {
	items       map[string][]string
	getErr      error
	invalidated []string
}

func newMemoryQuestionsCache() *memoryQuestionsCache {
	return &memoryQuestionsCache{items: map[string][]string{}}
}

func (c *memoryQuestionsCache) Get(_ context.Context, storeName string) ([]string, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	q, ok := c.items[storeName]
	return q, ok, nil
}

func (c *memoryQuestionsCache) Set(_ context.Context, storeName string, questions []string) error {
	c.items[storeName] = questions
	return nil
}

func (c *memoryQuestionsCache) Invalidate(_ context.Context, storeName string) error {
	c.invalidated = append(c.invalidated, storeName)
	delete(c.items, storeName)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

var errBoom = errors.New("boom")
