package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/erico-tech-world/personal-portfolio/internal/storage"
	"github.com/erico-tech-world/personal-portfolio/pkg/httpclient"
)

// DefaultBaseURL is the Cloudinary API endpoint.
const DefaultBaseURL = "https://api.cloudinary.com"

// Config holds the credentials and endpoint for the Cloudinary backend.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string

	// BaseURL overrides the API endpoint. Empty means DefaultBaseURL.
	BaseURL string
}

// Storage implements storage.Storage against the Cloudinary upload API
// using signed requests.
type Storage struct {
	cfg    Config
	client *httpclient.CircuitBreakerClient
	logger *slog.Logger

	// now is swapped in tests to produce stable signatures.
	now func() time.Time
}

// New creates a Cloudinary-backed storage instance.
func New(cfg Config, client *httpclient.CircuitBreakerClient, logger *slog.Logger) *Storage {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Storage{
		cfg:    cfg,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Upload sends a signed multipart upload request and returns the hosted
// asset's public ID and secure URL.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	timestamp := strconv.FormatInt(s.now().Unix(), 10)

	params := map[string]string{
		"timestamp": timestamp,
	}
	if input.Folder != "" {
		params["folder"] = input.Folder
	}
	signature := s.sign(params)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write form field %q: %w", key, err)
		}
	}
	if err := writer.WriteField("api_key", s.cfg.APIKey); err != nil {
		return nil, fmt.Errorf("write form field %q: %w", "api_key", err)
	}
	if err := writer.WriteField("signature", signature); err != nil {
		return nil, fmt.Errorf("write form field %q: %w", "signature", err)
	}

	part, err := writer.CreateFormFile("file", input.Filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, input.Data); err != nil {
		return nil, fmt.Errorf("copy asset data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/v1_1/%s/image/upload", s.cfg.BaseURL, s.cfg.CloudName)

	resp, err := s.client.Post(ctx, uploadURL, writer.FormDataContentType(), &body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "media-store")
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	s.logger.DebugContext(ctx, "asset uploaded",
		slog.String("media_id", uploaded.PublicID),
	)

	return &storage.UploadResult{
		MediaID: uploaded.PublicID,
		URL:     uploaded.SecureURL,
	}, nil
}

// Destroy sends a signed destroy request for the given public ID.
// Cloudinary reports "not found" for unknown IDs, which counts as success
// so that retried compensations stay safe.
func (s *Storage) Destroy(ctx context.Context, mediaID string) error {
	timestamp := strconv.FormatInt(s.now().Unix(), 10)

	params := map[string]string{
		"public_id": mediaID,
		"timestamp": timestamp,
	}
	signature := s.sign(params)

	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}
	form.Set("api_key", s.cfg.APIKey)
	form.Set("signature", signature)

	destroyURL := fmt.Sprintf("%s/v1_1/%s/image/destroy", s.cfg.BaseURL, s.cfg.CloudName)

	resp, err := s.client.Post(ctx, destroyURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("cloudinary destroy request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "media-store")
	}

	var destroyed destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&destroyed); err != nil {
		return fmt.Errorf("decode destroy response: %w", err)
	}

	if destroyed.Result != "ok" && destroyed.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %s: %s", mediaID, destroyed.Result)
	}

	return nil
}

// GetURL builds the delivery URL for the given public ID.
func (s *Storage) GetURL(_ context.Context, mediaID string) (string, error) {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", s.cfg.CloudName, mediaID), nil
}

// sign produces the Cloudinary request signature: the sorted query string
// of the signed params with the API secret appended, hashed with SHA-1.
func (s *Storage) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}
