package service

import (
	"context"
	"time"

	"docrag-be/internal/dto"
	"docrag-be/internal/pkg/logger"
	"docrag-be/pkg/events"
	"docrag-be/pkg/filesearch"
)

type IStoreService interface {
	Create(ctx context.Context, userId string, req *dto.CreateStoreRequest) (*dto.CreateStoreResponse, error)
	UploadFile(ctx context.Context, userId, storeId string, file filesearch.FileUpload) (*dto.UploadFileResponse, error)
	Query(ctx context.Context, storeId string, req *dto.QueryStoreRequest) (*dto.QueryStoreResponse, error)
	ExampleQuestions(ctx context.Context, storeId string) ([]string, error)
	Delete(ctx context.Context, userId, storeId string) error
}

type QuestionsCache interface {
	Get(ctx context.Context, storeName string) ([]string, bool, error)
	Set(ctx context.Context, storeName string, questions []string) error
	Invalidate(ctx context.Context, storeName string) error
}

type storeService struct {
	fileSearch *filesearch.Client
	questions  QuestionsCache
	publisher  IEventPublisher
	logger     logger.ILogger
}

// NewStoreService accepts a nil file search client (calls then fail as not
// initialized) and a nil cache or publisher.
func NewStoreService(
	fileSearch *filesearch.Client,
	questions QuestionsCache,
	publisher IEventPublisher,
	log logger.ILogger,
) IStoreService {
	return &storeService{
		fileSearch: fileSearch,
		questions:  questions,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *storeService) Create(ctx context.Context, userId string, req *dto.CreateStoreRequest) (*dto.CreateStoreResponse, error) {
	name, err := s.fileSearch.CreateStore(ctx, req.DisplayName)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, events.StoreCreated(userId, name, req.DisplayName))

	return &dto.CreateStoreResponse{
		Id:          filesearch.StoreID(name),
		Name:        name,
		DisplayName: req.DisplayName,
	}, nil
}

func (s *storeService) UploadFile(ctx context.Context, userId, storeId string, file filesearch.FileUpload) (*dto.UploadFileResponse, error) {
	storeName := filesearch.StoreName(storeId)

	var (
		polls   int
		elapsed time.Duration
	)
	progress := filesearch.WithProgress(func(attempt int, waited time.Duration) {
		polls, elapsed = attempt, waited
		s.logger.Debug("STORE", "Waiting for file to be indexed", map[string]interface{}{
			"store":   storeName,
			"file":    file.Name,
			"attempt": attempt,
		})
	})

	if err := s.fileSearch.UploadFile(ctx, storeName, file, progress); err != nil {
		s.logger.Error("STORE", "Failed to upload file", map[string]interface{}{
			"store": storeName,
			"file":  file.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	// New documents change what the store can answer.
	s.invalidateQuestions(ctx, storeName)
	publishEvent(ctx, s.publisher, s.logger, events.FileIndexed(userId, storeName, file.Name, elapsed))

	return &dto.UploadFileResponse{
		StoreName:      storeName,
		FileName:       file.Name,
		Polls:          polls,
		ElapsedSeconds: int(elapsed.Seconds()),
	}, nil
}

func (s *storeService) Query(ctx context.Context, storeId string, req *dto.QueryStoreRequest) (*dto.QueryStoreResponse, error) {
	storeName := filesearch.StoreName(storeId)

	var (
		res *filesearch.QueryResult
		err error
	)
	if len(req.History) > 0 {
		history := make([]filesearch.Turn, 0, len(req.History))
		for _, t := range req.History {
			history = append(history, filesearch.Turn{Role: t.Role, Content: t.Content})
		}
		res, err = s.fileSearch.QueryWithHistory(ctx, storeName, req.Query, history)
	} else {
		res, err = s.fileSearch.Query(ctx, storeName, req.Query)
	}
	if err != nil {
		return nil, err
	}

	chunks := make([]dto.GroundingChunkDTO, 0, len(res.GroundingChunks))
	for _, c := range res.GroundingChunks {
		chunks = append(chunks, dto.GroundingChunkDTO{Text: c.Text, Title: c.Title, URI: c.URI})
	}

	return &dto.QueryStoreResponse{
		Text:            res.Text,
		GroundingChunks: chunks,
	}, nil
}

func (s *storeService) ExampleQuestions(ctx context.Context, storeId string) ([]string, error) {
	storeName := filesearch.StoreName(storeId)

	if s.questions != nil {
		cached, found, err := s.questions.Get(ctx, storeName)
		if err != nil {
			s.logger.Warn("STORE", "Example questions cache unavailable", map[string]interface{}{
				"store": storeName,
				"error": err.Error(),
			})
		} else if found {
			return cached, nil
		}
	}

	questions := s.fileSearch.GenerateExampleQuestions(ctx, storeName)

	// An empty list usually means generation failed; try again next time.
	if len(questions) > 0 && s.questions != nil {
		if err := s.questions.Set(ctx, storeName, questions); err != nil {
			s.logger.Warn("STORE", "Failed to cache example questions", map[string]interface{}{
				"store": storeName,
				"error": err.Error(),
			})
		}
	}
	return questions, nil
}

func (s *storeService) Delete(ctx context.Context, userId, storeId string) error {
	storeName := filesearch.StoreName(storeId)

	if err := s.fileSearch.DeleteStore(ctx, storeName); err != nil {
		return err
	}

	s.invalidateQuestions(ctx, storeName)
	publishEvent(ctx, s.publisher, s.logger, events.StoreDeleted(userId, storeName))
	return nil
}

func (s *storeService) invalidateQuestions(ctx context.Context, storeName string) {
	if s.questions == nil {
		return
	}
	if err := s.questions.Invalidate(ctx, storeName); err != nil {
		s.logger.Warn("STORE", "Failed to invalidate example questions", map[string]interface{}{
			"store": storeName,
			"error": err.Error(),
		})
	}
}
