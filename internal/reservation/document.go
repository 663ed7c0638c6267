package reservation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/roamdrive/rental-reservation-system/internal/remote"
)

// FileSaver stores a downloaded document locally. The retriever derives
// the filename; the saver decides where it goes.
type FileSaver interface {
	Save(filename string, data []byte) error
}

// DiskSaver writes documents into a directory.
type DiskSaver struct {
	Dir string
}

func (d DiskSaver) Save(filename string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Dir, filename), data, 0o644)
}

// DownloadErrorKind classifies a failed document retrieval.
type DownloadErrorKind string

const (
	DownloadMissingID  DownloadErrorKind = "missing_id"
	DownloadBadRequest DownloadErrorKind = "request_failed"
	DownloadNoResponse DownloadErrorKind = "no_response"
	DownloadRejected   DownloadErrorKind = "server_rejected"
)

// DownloadError carries the classification and a user-facing message
// for a failed document retrieval.
type DownloadError struct {
	Kind   DownloadErrorKind
	Status int
	Err    error
}

func (e *DownloadError) Error() string {
	return e.Message()
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Message is the user-facing text for this failure. Statuses the backend
// is known to emit get specific wording.
func (e *DownloadError) Message() string {
	switch e.Kind {
	case DownloadMissingID:
		return "No reservation id is available for this session yet."
	case DownloadBadRequest:
		return "The download request could not be prepared."
	case DownloadNoResponse:
		return "Could not reach the reservation service. Check your connection and try again."
	}
	switch e.Status {
	case http.StatusNotFound:
		return "The confirmation document was not found. The reservation may have been deleted."
	case http.StatusForbidden:
		return "You are not allowed to download this confirmation document."
	case http.StatusInternalServerError:
		return "The reservation service failed to generate the document. Try again later."
	default:
		return fmt.Sprintf("Downloading the document failed (status %d).", e.Status)
	}
}

// Retriever fetches confirmation documents and hands them to a
// FileSaver. It is stateless, idempotent per id, and never touches
// wizard state.
type Retriever struct {
	client *remote.Client
	saver  FileSaver
}

// NewRetriever creates a retriever. A nil saver skips local saving and
// only returns the bytes.
func NewRetriever(client *remote.Client, saver FileSaver) *Retriever {
	return &Retriever{client: client, saver: saver}
}

// Fetch downloads the confirmation document for a reservation and saves
// it as reservation-<id>.pdf. An empty id fails immediately without a
// network attempt.
func (r *Retriever) Fetch(ctx context.Context, reservationID string) (string, []byte, error) {
	reservationID = strings.TrimSpace(reservationID)
	if reservationID == "" {
		return "", nil, &DownloadError{Kind: DownloadMissingID}
	}

	data, err := r.client.Document(ctx, reservationID)
	if err != nil {
		return "", nil, classifyDownload(err)
	}

	filename := "reservation-" + reservationID + ".pdf"
	if r.saver != nil {
		if err := r.saver.Save(filename, data); err != nil {
			return "", nil, fmt.Errorf("save document: %w", err)
		}
	}
	return filename, data, nil
}

func classifyDownload(err error) error {
	var netErr *remote.NetworkError
	if errors.As(err, &netErr) {
		return &DownloadError{Kind: DownloadNoResponse, Err: err}
	}
	var srvErr *remote.ServerError
	if errors.As(err, &srvErr) {
		return &DownloadError{Kind: DownloadRejected, Status: srvErr.Status, Err: err}
	}
	return &DownloadError{Kind: DownloadBadRequest, Err: err}
}
