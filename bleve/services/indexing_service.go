package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"
)

type IndexingServiceInterface interface {
	IndexDocument(indexName, id string, document interface{}) error
	BulkIndexDocuments(indexName string, documents map[string]interface{}) error
	DeleteDocument(indexName, id string) error
	UpdateDocument(indexName, id string, document interface{}) error
	GetDocument(indexName, id string) (interface{}, error)
	SearchIndex(indexName string, q query.Query, size int) (*bleve.SearchResult, error)
	DeleteAllIndices() error
}

// IndexingService owns the on-disk bleve indexes, one per entity kind, and
// lazily opens or creates them under basePath.
type IndexingService struct {
	indexes  map[string]bleve.Index
	logger   *zap.Logger
	basePath string
}

func NewIndexingService(logger *zap.Logger, basePath string) *IndexingService {
	return &IndexingService{
		indexes:  make(map[string]bleve.Index),
		logger:   logger,
		basePath: basePath,
	}
}

func (s *IndexingService) indexPath(indexName string) string {
	return filepath.Join(s.basePath, indexName+".bleve")
}

func (s *IndexingService) getOrCreateIndex(indexName string) (bleve.Index, error) {
	if idx, ok := s.indexes[indexName]; ok {
		return idx, nil
	}

	fullPath := s.indexPath(indexName)
	idx, err := bleve.Open(fullPath)
	if err != nil {
		idx, err = bleve.New(fullPath, bleve.NewIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create index %s: %w", fullPath, err)
		}
	}

	s.indexes[indexName] = idx
	return idx, nil
}

// SearchIndex runs the query and asks for all stored fields so callers can
// render hits without a database round trip.
func (s *IndexingService) SearchIndex(indexName string, q query.Query, size int) (*bleve.SearchResult, error) {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		s.logger.Error("Could not get or create index", zap.String("index", indexName), zap.Error(err))
		return nil, err
	}

	searchRequest := bleve.NewSearchRequestOptions(q, size, 0, false)
	searchRequest.Fields = []string{"*"}

	searchResult, err := idx.Search(searchRequest)
	if err != nil {
		s.logger.Error("Search failed", zap.String("index", indexName), zap.Error(err))
		return nil, err
	}
	return searchResult, nil
}

func (s *IndexingService) IndexDocument(indexName, id string, document interface{}) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return err
	}
	if err := idx.Index(id, document); err != nil {
		s.logger.Error("Failed to index document", zap.String("index", indexName), zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *IndexingService) BulkIndexDocuments(indexName string, documents map[string]interface{}) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return err
	}

	batch := idx.NewBatch()
	for id, doc := range documents {
		if err := batch.Index(id, doc); err != nil {
			s.logger.Error("Failed to add document to batch", zap.String("id", id), zap.Error(err))
			return err
		}
	}
	if err := idx.Batch(batch); err != nil {
		s.logger.Error("Failed to execute index batch", zap.String("index", indexName), zap.Error(err))
		return err
	}

	s.logger.Info("Bulk indexed documents", zap.String("index", indexName), zap.Int("count", len(documents)))
	return nil
}

func (s *IndexingService) DeleteDocument(indexName, id string) error {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return err
	}
	if err := idx.Delete(id); err != nil {
		s.logger.Error("Failed to delete document", zap.String("index", indexName), zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *IndexingService) UpdateDocument(indexName, id string, document interface{}) error {
	if err := s.DeleteDocument(indexName, id); err != nil {
		return fmt.Errorf("failed to delete existing document for update: %w", err)
	}
	if err := s.IndexDocument(indexName, id, document); err != nil {
		return fmt.Errorf("failed to re-index updated document: %w", err)
	}
	return nil
}

// GetDocument retrieves the stored fields of one document by ID.
func (s *IndexingService) GetDocument(indexName, id string) (interface{}, error) {
	idx, err := s.getOrCreateIndex(indexName)
	if err != nil {
		return nil, err
	}

	searchRequest := bleve.NewSearchRequest(bleve.NewDocIDQuery([]string{id}))
	searchRequest.Size = 1
	searchRequest.Fields = []string{"*"}

	searchResult, err := idx.Search(searchRequest)
	if err != nil {
		return nil, err
	}
	if len(searchResult.Hits) == 0 {
		return nil, fmt.Errorf("document not found")
	}
	return searchResult.Hits[0].Fields, nil
}

func (s *IndexingService) deleteIndex(indexName string) error {
	if idx, exists := s.indexes[indexName]; exists {
		if err := idx.Close(); err != nil {
			return fmt.Errorf("failed to close index: %w", err)
		}
		delete(s.indexes, indexName)
	}
	if err := os.RemoveAll(s.indexPath(indexName)); err != nil {
		return fmt.Errorf("failed to delete index files: %w", err)
	}
	return nil
}

// DeleteAllIndices drops every open index plus any orphaned index directory
// found under basePath. Used by the reindex-from-scratch path.
func (s *IndexingService) DeleteAllIndices() error {
	var failed int

	for indexName := range s.indexes {
		if err := s.deleteIndex(indexName); err != nil {
			s.logger.Error("Failed to delete index", zap.String("index", indexName), zap.Error(err))
			failed++
		}
	}

	files, err := filepath.Glob(filepath.Join(s.basePath, "*.bleve"))
	if err != nil {
		return fmt.Errorf("failed to scan index directory: %w", err)
	}
	for _, file := range files {
		indexName := strings.TrimSuffix(filepath.Base(file), ".bleve")
		if _, exists := s.indexes[indexName]; !exists {
			if err := os.RemoveAll(file); err != nil {
				s.logger.Error("Failed to delete orphaned index", zap.String("index", indexName), zap.Error(err))
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d errors occurred while deleting indices", failed)
	}
	return nil
}
