package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/promptforge/image-relay/internal/consts"
)

// GetOnlineImage downloads an image and reports its content type. The body
// is capped at the same decoded-size limit as inline uploads, so a remote
// URL cannot carry a larger payload than imageBase64 allows.
func GetOnlineImage(ctx context.Context, url string) (bytes []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("failed to download image, status code: %d", resp.StatusCode)
		return
	}
	bytes, err = io.ReadAll(io.LimitReader(resp.Body, consts.MaxDecodedImageBytes+1))
	if err != nil {
		return
	}
	if len(bytes) > consts.MaxDecodedImageBytes {
		bytes = nil
		err = fmt.Errorf("image exceeds %d bytes", consts.MaxDecodedImageBytes)
		return
	}
	contentType = resp.Header.Get("Content-Type")
	return
}
