package reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamdrive/rental-reservation-system/internal/remote"
)

// memorySaver keeps saved documents in memory for assertions.
type memorySaver struct {
	saved map[string][]byte
}

func newMemorySaver() *memorySaver {
	return &memorySaver{saved: make(map[string][]byte)}
}

func (m *memorySaver) Save(filename string, data []byte) error {
	m.saved[filename] = data
	return nil
}

func TestRetriever_Fetch(t *testing.T) {
	pdf := []byte("%PDF-1.4 confirmation")
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/reservations/R1/document", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	saver := newMemorySaver()
	retriever := NewRetriever(remote.NewClient(srv.URL, ""), saver)

	filename, data, err := retriever.Fetch(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "reservation-R1.pdf", filename)
	assert.Equal(t, pdf, data)
	assert.Equal(t, pdf, saver.saved["reservation-R1.pdf"])

	// Retrieval is idempotent; repeating just downloads again.
	_, _, err = retriever.Fetch(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRetriever_EmptyID_NoNetworkCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	retriever := NewRetriever(remote.NewClient(srv.URL, ""), nil)

	_, _, err := retriever.Fetch(context.Background(), "  ")

	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, DownloadMissingID, dlErr.Kind)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestRetriever_StatusMessagesAreDistinct(t *testing.T) {
	statuses := []int{
		http.StatusNotFound,
		http.StatusForbidden,
		http.StatusInternalServerError,
		http.StatusTeapot,
	}

	messages := make(map[string]int)
	for _, status := range statuses {
		status := status
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		retriever := NewRetriever(remote.NewClient(srv.URL, ""), nil)
		_, _, err := retriever.Fetch(context.Background(), "R1")
		srv.Close()

		var dlErr *DownloadError
		require.ErrorAs(t, err, &dlErr)
		assert.Equal(t, DownloadRejected, dlErr.Kind)
		assert.Equal(t, status, dlErr.Status)
		messages[dlErr.Message()] = status
	}

	// Unreachable server yields its own message too.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	retriever := NewRetriever(remote.NewClient(srv.URL, ""), nil)
	_, _, err := retriever.Fetch(context.Background(), "R1")

	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, DownloadNoResponse, dlErr.Kind)
	messages[dlErr.Message()] = -1

	// Every failure mode reads differently to the user.
	assert.Len(t, messages, 5)
}

func TestDownloadError_Messages(t *testing.T) {
	notFound := (&DownloadError{Kind: DownloadRejected, Status: http.StatusNotFound}).Message()
	forbidden := (&DownloadError{Kind: DownloadRejected, Status: http.StatusForbidden}).Message()
	generation := (&DownloadError{Kind: DownloadRejected, Status: http.StatusInternalServerError}).Message()
	network := (&DownloadError{Kind: DownloadNoResponse}).Message()
	request := (&DownloadError{Kind: DownloadBadRequest}).Message()

	assert.NotEqual(t, notFound, forbidden)
	assert.NotEqual(t, notFound, network)
	assert.NotEqual(t, forbidden, network)
	assert.NotEqual(t, generation, notFound)
	assert.NotEqual(t, request, network)
}
