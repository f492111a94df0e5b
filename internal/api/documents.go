package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"docvault/internal/dto"
	"docvault/internal/models"
)

// DocumentClient covers the authenticated document calls. Every operation
// checks the session before any network work and fails fast with
// models.ErrSessionMissing when none is present.
type DocumentClient struct {
	log  *slog.Logger
	base *Client
}

func NewDocumentClient(log *slog.Logger, base *Client) *DocumentClient {
	return &DocumentClient{
		log:  log,
		base: base,
	}
}

func (d *DocumentClient) requireToken() (string, error) {
	token, ok := d.base.tokens.Token()
	if !ok || token == "" {
		return "", models.ErrSessionMissing
	}

	return token, nil
}

// SaveDocumentEntry uploads one file together with its metadata blob.
func (d *DocumentClient) SaveDocumentEntry(ctx context.Context, file io.Reader, fileName string, mimeType string, meta models.DocumentMeta) error {
	op := pkg + "SaveDocumentEntry"

	log := d.log.With(slog.String("op", op))

	log.Debug("attempting to save document entry", slog.String("file", fileName))

	token, err := d.requireToken()
	if err != nil {
		log.Warn("no session token")
		return fmt.Errorf("%s: %w", op, err)
	}

	if meta.Tags == nil {
		meta.Tags = []models.Tag{}
	}

	var res dto.StatusResponse

	err = d.base.postMultipart(ctx, pathSaveDocumentEntry, token, file, fileName, mimeType, meta, &res)
	if err != nil {
		log.Error("request failed", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !res.Success {
		log.Warn("server rejected document", slog.String("message", res.Message))
		return fmt.Errorf("%s: %w", op, &models.APIError{Message: res.Message})
	}

	log.Debug("document entry saved")

	return nil
}

// DocumentTags lists the known tag catalogue, optionally narrowed by term.
func (d *DocumentClient) DocumentTags(ctx context.Context, term string) ([]models.Tag, error) {
	op := pkg + "DocumentTags"

	log := d.log.With(slog.String("op", op))

	log.Debug("attempting to list document tags")

	token, err := d.requireToken()
	if err != nil {
		log.Warn("no session token")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var res dto.DocumentTagsResponse

	err = d.base.postJSON(ctx, pathDocumentTags, token, dto.DocumentTagsRequest{Term: term}, &res)
	if err != nil {
		log.Error("request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !res.Success {
		log.Warn("server rejected request", slog.String("message", res.Message))
		return nil, fmt.Errorf("%s: %w", op, &models.APIError{Message: res.Message})
	}

	log.Debug("document tags listed", slog.Int("count", len(res.Data)))

	return res.Data, nil
}

// SearchDocumentEntry posts the filter verbatim and returns whatever page
// the server sends back; there is no client-side filtering or pagination.
func (d *DocumentClient) SearchDocumentEntry(ctx context.Context, filter models.SearchFilter) ([]models.DocumentRecord, error) {
	op := pkg + "SearchDocumentEntry"

	log := d.log.With(slog.String("op", op))

	log.Debug("attempting to search document entries")

	token, err := d.requireToken()
	if err != nil {
		log.Warn("no session token")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tags := filter.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	req := dto.SearchDocumentEntryRequest{
		MajorHead:  filter.MajorHead,
		MinorHead:  filter.MinorHead,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
		Tags:       tags,
		UploadedBy: filter.UploadedBy,
		Start:      filter.Start,
		Length:     filter.Length,
		FilterID:   filter.FilterID,
		Search:     dto.SearchQuery{Value: filter.Search},
	}

	var res dto.SearchDocumentEntryResponse

	err = d.base.postJSON(ctx, pathSearchDocumentEntry, token, req, &res)
	if err != nil {
		log.Error("request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !res.Success {
		log.Warn("server rejected search", slog.String("message", res.Message))
		return nil, fmt.Errorf("%s: %w", op, &models.APIError{Message: res.Message})
	}

	log.Debug("document entries searched", slog.Int("count", len(res.Data)))

	return res.Data, nil
}

// DownloadFile streams the file behind a search result URL into dst and
// returns the byte count. Best effort: no retry, no resumption. The session
// header is only attached when the URL points back at the API host.
func (d *DocumentClient) DownloadFile(ctx context.Context, fileURL string, dst io.Writer) (int64, error) {
	op := pkg + "DownloadFile"

	log := d.log.With(slog.String("op", op))

	log.Debug("attempting to download file", slog.String("url", fileURL))

	token, err := d.requireToken()
	if err != nil {
		log.Warn("no session token")
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if fileURL == "" {
		log.Warn("record carries no file url")
		return 0, fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	target := d.base.resolveURL(fileURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: build request: %w", op, err)
	}

	if d.base.sameOrigin(target) {
		req.Header.Set(dto.TokenHeader, token)
	}

	resp, err := d.base.http.Do(req)
	if err != nil {
		log.Error("request failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("%s: %w: %v", op, models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("server rejected download", slog.Int("status", resp.StatusCode))
		return 0, fmt.Errorf("%s: %w", op, &models.APIError{StatusCode: resp.StatusCode})
	}

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		log.Error("transfer interrupted", slog.String("error", err.Error()))
		return n, fmt.Errorf("%s: %w: %v", op, models.ErrNetwork, err)
	}

	log.Debug("file downloaded", slog.Int64("bytes", n))

	return n, nil
}
