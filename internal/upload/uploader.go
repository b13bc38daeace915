// Package upload pushes file attachments to object storage in signed
// chunks. It is self-contained: nothing in the orchestration core depends
// on it beyond the cancellation contract.
package upload

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/appforge-ai/assistant-platform/pkg/metrics"
)

// ErrCancelled is returned when an upload is cancelled between chunks.
var ErrCancelled = errors.New("upload cancelled")

// DefaultChunkSize is the chunk size used when none is configured.
const DefaultChunkSize = 256 * 1024

// Uploader sends attachments to a storage endpoint. Each chunk request is
// signed with HMAC-SHA256 over the upload name, chunk index and chunk
// digest, so the storage side can verify integrity without shared session
// state.
type Uploader struct {
	endpoint  string
	keyID     string
	secret    []byte
	chunkSize int
	client    *http.Client

	cancelled atomic.Bool
}

// NewUploader creates an uploader against the given endpoint.
func NewUploader(endpoint, keyID, secret string, chunkSize int) *Uploader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Uploader{
		endpoint:  endpoint,
		keyID:     keyID,
		secret:    []byte(secret),
		chunkSize: chunkSize,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Cancel requests cooperative cancellation. The worker checks the flag
// between chunks; an in-flight chunk request runs to completion.
func (u *Uploader) Cancel() {
	u.cancelled.Store(true)
}

// Upload streams the reader to storage in signed chunks and returns the
// number of bytes sent.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) (int64, error) {
	u.cancelled.Store(false)

	buf := make([]byte, u.chunkSize)
	var sent int64
	index := 0

	for {
		if u.cancelled.Load() {
			metrics.UploadsTotal.WithLabelValues("cancelled").Inc()
			return sent, ErrCancelled
		}
		if err := ctx.Err(); err != nil {
			metrics.UploadsTotal.WithLabelValues("cancelled").Inc()
			return sent, err
		}

		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if uerr := u.sendChunk(ctx, name, index, buf[:n]); uerr != nil {
				metrics.UploadsTotal.WithLabelValues("failure").Inc()
				return sent, uerr
			}
			sent += int64(n)
			index++
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			metrics.UploadsTotal.WithLabelValues("failure").Inc()
			return sent, fmt.Errorf("read attachment: %w", err)
		}
	}

	metrics.UploadsTotal.WithLabelValues("success").Inc()
	return sent, nil
}

func (u *Uploader) sendChunk(ctx context.Context, name string, index int, chunk []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.endpoint, bytes.NewReader(chunk))
	if err != nil {
		return fmt.Errorf("build chunk request: %w", err)
	}

	digest := sha256.Sum256(chunk)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Upload-Name", name)
	req.Header.Set("X-Chunk-Index", strconv.Itoa(index))
	req.Header.Set("X-Key-Id", u.keyID)
	req.Header.Set("X-Signature", u.sign(name, index, digest[:]))

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("send chunk %d: %w", index, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("chunk %d rejected with status %d", index, resp.StatusCode)
	}
	return nil
}

// sign computes hex(HMAC-SHA256(secret, keyID|name|index|digest)).
func (u *Uploader) sign(name string, index int, digest []byte) string {
	mac := hmac.New(sha256.New, u.secret)
	mac.Write([]byte(u.keyID))
	mac.Write([]byte{0})
	mac.Write([]byte(name))
	mac.Write([]byte{0})
	mac.Write([]byte(strconv.Itoa(index)))
	mac.Write([]byte{0})
	mac.Write(digest)
	return hex.EncodeToString(mac.Sum(nil))
}
