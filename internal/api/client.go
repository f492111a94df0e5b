package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"docvault/internal/dto"
	"docvault/internal/models"
)

const (
	pathGenerateOTP         = "/generateOTP"
	pathValidateOTP         = "/validateOTP"
	pathSaveDocumentEntry   = "/saveDocumentEntry"
	pathDocumentTags        = "/documentTags"
	pathSearchDocumentEntry = "/searchDocumentEntry"
)

const (
	defaultTimeout = 30 * time.Second

	// maxResponseBytes bounds how much of an envelope response is read.
	// File downloads stream past this limit separately.
	maxResponseBytes = 1 << 20
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the shared HTTP plumbing under the auth and document clients.
// It maps transport failures to models.ErrNetwork, undecodable bodies to
// models.ErrDecode and non-2xx statuses to models.APIError.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  TokenSource
}

func NewClient(cfg Config, tokens TokenSource) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
	}
}

// postJSON sends a JSON body and decodes the enveloped response into out.
// The session header is attached when token is non-empty.
func (c *Client) postJSON(ctx context.Context, path string, token string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set(dto.TokenHeader, token)
	}

	return c.do(req, out)
}

// postMultipart sends the upload body: a "data" field holding the JSON
// metadata blob and a "file" part carrying the content under its declared
// MIME type.
func (c *Client) postMultipart(ctx context.Context, path string, token string, file io.Reader, fileName string, mimeType string, meta any, out any) error {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	if err := w.WriteField(dto.MultipartDataField, string(metaJSON)); err != nil {
		return fmt.Errorf("write metadata field: %w", err)
	}

	part, err := w.CreatePart(filePartHeader(fileName, mimeType))
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(dto.TokenHeader, token)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return apiErrorFrom(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDecode, err)
	}

	return nil
}

// resolveURL makes the relative file URLs some search results carry usable.
func (c *Client) resolveURL(raw string) string {
	if strings.HasPrefix(raw, "/") {
		return c.baseURL + raw
	}

	return raw
}

// sameOrigin reports whether target points at the configured API host.
// Scheme and host must match exactly; a host that merely string-extends
// the base URL is foreign.
func (c *Client) sameOrigin(target string) bool {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}

	return u.Scheme == base.Scheme && u.Host == base.Host
}

// apiErrorFrom prefers the server-supplied message; a body that is not the
// standard envelope falls back to the bare status code.
func apiErrorFrom(status int, body []byte) error {
	var envelope dto.StatusResponse

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return &models.APIError{StatusCode: status, Message: envelope.Message}
	}

	return &models.APIError{StatusCode: status}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// filePartHeader builds the file part header by hand; CreateFormFile would
// pin the part to application/octet-stream.
func filePartHeader(fileName string, mimeType string) textproto.MIMEHeader {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, dto.MultipartFileField, quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", mimeType)

	return h
}
