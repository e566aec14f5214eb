package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/form"
)

// maxDocumentBytes bounds a downloaded document.
const maxDocumentBytes = 32 << 20

// Document is a downloaded estimate file.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SaveTo writes the document into dir and returns its path. Only the base
// name of Filename is used.
func (d *Document) SaveTo(dir string) (string, error) {
	name := filepath.Base(d.Filename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("save document: invalid filename %q", d.Filename)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, d.Data, 0o644); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}
	return path, nil
}

// DownloadEstimate asks the server to render d. Any failure, network or
// status, is a *TransportError whose Message is
// "failed to generate <FORMAT> file".
func (c *Client) DownloadEstimate(ctx context.Context, format docformat.Format, d form.Draft) (*Document, error) {
	fail := func(status int, err error) error {
		return &TransportError{
			Format:     string(format),
			Op:         "download estimate",
			StatusCode: status,
			Message:    fmt.Sprintf("failed to generate %s file", strings.ToUpper(string(format))),
			Err:        err,
		}
	}

	resp, err := c.do(ctx, "download estimate", http.MethodPost, "/api/estimate/download",
		url.Values{"format": {string(format)}}, newDraftPayload(d))
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			if te.StatusCode != 0 {
				return nil, fail(te.StatusCode, errors.New(te.Message))
			}
			return nil, fail(0, te.Err)
		}
		return nil, fail(0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fail(resp.StatusCode, err)
	}

	name := attachmentName(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = docformat.Filename(c.now(), format)
	}
	return &Document{
		Filename:    name,
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// attachmentName returns the filename parameter of a Content-Disposition
// header, or "" when absent or malformed.
func attachmentName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := params["filename"]
	if name == "" {
		return ""
	}
	return filepath.Base(name)
}
