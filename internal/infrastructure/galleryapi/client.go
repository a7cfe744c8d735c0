package galleryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Photo-Gallery/internal/dto"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/pkg/types/errs"
	"github.com/google/uuid"
)

const _defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer of the gallery server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}

	return e.Message
}

// Client talks to the gallery server. It is the image host, the record store
// and the record source of the gallery engine and the upload form.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("galleryapi - New - url.Parse: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("galleryapi - New: unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		base:    u,
		timeout: _defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

func (c *Client) endpoint(path string) string {
	return c.base.String() + path
}

// Upload posts the file to the upload adapter.
func (c *Client) Upload(ctx context.Context, file dto.UploadFile) (*dto.UploadResult, error) {
	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`,
		escapeQuotes(filepath.Base(file.Filename))))
	h.Set("Content-Type", file.ContentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("Client - Upload - mw.CreatePart: %w", err)
	}
	if _, err = part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("Client - Upload - part.Write: %w", err)
	}

	if err = mw.WriteField("title", file.Title); err != nil {
		return nil, fmt.Errorf("Client - Upload - mw.WriteField: %w", err)
	}
	if err = mw.WriteField("description", file.Description); err != nil {
		return nil, fmt.Errorf("Client - Upload - mw.WriteField: %w", err)
	}
	if err = mw.Close(); err != nil {
		return nil, fmt.Errorf("Client - Upload - mw.Close: %w", err)
	}

	var res dto.UploadResult

	err = c.do(ctx, http.MethodPost, "/v1/upload", mw.FormDataContentType(), &body, &res)
	if err != nil {
		return nil, fmt.Errorf("Client - Upload: %w", err)
	}

	return &res, nil
}

// DestroyImage removes the image from the image host.
func (c *Client) DestroyImage(ctx context.Context, publicID string) error {
	err := c.doJSON(ctx, http.MethodDelete, "/v1/image", request.DestroyImage{PublicID: publicID}, nil)
	if err != nil {
		return fmt.Errorf("Client - DestroyImage: %w", err)
	}

	return nil
}

func (c *Client) ListRecords(ctx context.Context) ([]entity.ImageRecord, error) {
	var res response.Records

	err := c.do(ctx, http.MethodGet, "/v1/records", "", nil, &res)
	if err != nil {
		return nil, fmt.Errorf("Client - ListRecords: %w", err)
	}

	return res.Records, nil
}

func (c *Client) CreateRecord(ctx context.Context, upload dto.UploadResult) (*entity.ImageRecord, error) {
	var rec entity.ImageRecord

	err := c.doJSON(ctx, http.MethodPost, "/v1/records", upload, &rec)
	if err != nil {
		return nil, fmt.Errorf("Client - CreateRecord: %w", err)
	}

	return &rec, nil
}

func (c *Client) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	err := c.do(ctx, http.MethodDelete, "/v1/records/"+id.String(), "", nil, nil)
	if err != nil {
		return fmt.Errorf("Client - DeleteRecord: %w", err)
	}

	return nil
}

func (c *Client) DeleteRecords(ctx context.Context, ids uuid.UUIDs) error {
	err := c.doJSON(ctx, http.MethodPost, "/v1/records/batch-delete", request.BatchDelete{IDs: ids}, nil)
	if err != nil {
		return fmt.Errorf("Client - DeleteRecords: %w", err)
	}

	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return c.do(ctx, method, path, "application/json", bytes.NewReader(payload), out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("c.http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("invalid response from server: %w", err)
	}

	return nil
}

// decodeError keeps the server's {"error"} text; 404 also matches
// errs.ErrRecordNotFound.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body response.Error
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed (%d: %s)", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if resp.StatusCode == http.StatusNotFound {
		return errors.Join(apiErr, errs.ErrRecordNotFound)
	}

	return apiErr
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
