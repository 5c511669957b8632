package service

import (
	"encoding/base64"
	"errors"
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"proforma-tool/domain"
	"proforma-tool/repository"
)

var ErrDownloadNotFound = errors.New("download not found or expired")

type storedDocument struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"` // base64
}

// DownloadService parks exported documents in the cache under a one-time
// token so the browser can fetch them.
type DownloadService struct {
	cache repository.CacheRepository
	ttl   time.Duration
}

func NewDownloadService(cache repository.CacheRepository, ttl time.Duration) *DownloadService {
	return &DownloadService{cache: cache, ttl: ttl}
}

// Put stores doc and returns its download token.
func (s *DownloadService) Put(doc domain.Document) (string, error) {
	raw, err := json.Marshal(storedDocument{
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Data:        base64.StdEncoding.EncodeToString(doc.Data),
	})
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.cache.Set("export:"+token, string(raw), s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Take returns the document for token and forgets it.
func (s *DownloadService) Take(token string) (domain.Document, error) {
	key := "export:" + token

	raw, ok := s.cache.Get(key)
	if !ok {
		return domain.Document{}, ErrDownloadNotFound
	}
	if err := s.cache.Delete(key); err != nil {
		log.Printf("Warning: failed to delete download %s: %v", token, err)
	}

	var stored storedDocument
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return domain.Document{}, err
	}
	data, err := base64.StdEncoding.DecodeString(stored.Data)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		Filename:    stored.Filename,
		ContentType: stored.ContentType,
		Data:        data,
	}, nil
}
