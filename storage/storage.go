package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"ledgerline/config"

	"github.com/go-resty/resty/v2"
)

// BlobStore uploads user files to external blob storage. Put streams the
// bytes under a globally-unique name; MakePublic grants world-readable
// access so the returned URL can be served to the client directly.
type BlobStore interface {
	Put(name, contentType string, data []byte) error
	MakePublic(name string) error
	PublicURL(name string) string
}

// GCSBlobStore writes objects through the Google Cloud Storage JSON API.
type GCSBlobStore struct {
	client *resty.Client
	bucket string
	token  string
	apiURL string
}

func NewGCSBlobStore(cfg *config.Config) *GCSBlobStore {
	return &GCSBlobStore{
		client: resty.New(),
		bucket: cfg.StorageBucket,
		token:  cfg.StorageToken,
		apiURL: cfg.StorageApiURL,
	}
}

type gcsError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *GCSBlobStore) Put(name, contentType string, data []byte) error {
	uploadURL := fmt.Sprintf("%s/upload/storage/v1/b/%s/o", s.apiURL, s.bucket)

	resp, err := s.client.R().
		SetAuthToken(s.token).
		SetHeader("Content-Type", contentType).
		SetQueryParam("uploadType", "media").
		SetQueryParam("name", name).
		SetBody(data).
		Post(uploadURL)
	if err != nil {
		log.Printf("Failed to upload %s: %v", name, err)
		return err
	}
	if resp.StatusCode() != 200 {
		return s.apiError(resp.StatusCode(), resp.Body())
	}

	return nil
}

func (s *GCSBlobStore) MakePublic(name string) error {
	aclURL := fmt.Sprintf("%s/storage/v1/b/%s/o/%s/acl", s.apiURL, s.bucket, url.PathEscape(name))

	resp, err := s.client.R().
		SetAuthToken(s.token).
		SetBody(map[string]string{"entity": "allUsers", "role": "READER"}).
		Post(aclURL)
	if err != nil {
		log.Printf("Failed to make %s public: %v", name, err)
		return err
	}
	if resp.StatusCode() != 200 {
		return s.apiError(resp.StatusCode(), resp.Body())
	}

	return nil
}

func (s *GCSBlobStore) PublicURL(name string) string {
	return fmt.Sprintf("%s/%s/%s", s.apiURL, s.bucket, name)
}

func (s *GCSBlobStore) apiError(statusCode int, body []byte) error {
	var apiErr gcsError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("storage: %s", apiErr.Error.Message)
	}
	return fmt.Errorf("storage: unexpected status %d", statusCode)
}
