package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/usecase"
)

const (
	DefaultPinataURL = "https://api.pinata.cloud"
	PinFileURL       = "/pinning/pinFileToIPFS"
)

// ErrMissingCredentials is returned when the Pinata keys are not configured
var ErrMissingCredentials = errors.New("pinata credentials are not configured (set PINATA_API_KEY and PINATA_SECRET_API_KEY)")

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int    `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// PinataAdapter uploads files to IPFS through the Pinata pinning service
type PinataAdapter struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewPinataAdapter creates an uploader from the IPFS configuration
func NewPinataAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *PinataAdapter {
	baseURL := cfg.IPFS.PinataURL
	if baseURL == "" {
		baseURL = DefaultPinataURL
	}
	return &PinataAdapter{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    cfg.IPFS.APIKey,
		apiSecret: cfg.IPFS.SecretKey,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		log: log,
	}
}

// Upload pins a file and returns its IPFS path, without the ipfs:// scheme
func (p *PinataAdapter) Upload(ctx context.Context, path string) (string, error) {
	if p.apiKey == "" || p.apiSecret == "" {
		return "", ErrMissingCredentials
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	payload := &bytes.Buffer{}
	writer := multipart.NewWriter(payload)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+PinFileURL, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Add("pinata_api_key", p.apiKey)
	req.Header.Add("pinata_secret_api_key", p.apiSecret)

	p.log.Debug("pinning file", "file", path, "size", payload.Len())
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("error pinning to ipfs: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pinResp pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pinResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if pinResp.IpfsHash == "" {
		return "", errors.New("error pinning to ipfs: empty hash")
	}
	return pinResp.IpfsHash, nil
}

var _ usecase.FileUploader = (*PinataAdapter)(nil)
