package request

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/promptforge/image-relay/internal/consts"
)

var allowedImageMIMEs = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

type Analyze struct {
	ImageURL    string `json:"imageUrl"`
	ImageBase64 string `json:"imageBase64"`

	data     []byte
	mimeType string
}

func (a *Analyze) Valid() error {
	if a.ImageURL != "" && a.ImageBase64 != "" {
		return fmt.Errorf("provide exactly one of imageUrl or imageBase64, not both")
	}
	if a.ImageURL == "" && a.ImageBase64 == "" {
		return fmt.Errorf("provide one of imageUrl or imageBase64")
	}
	if a.ImageURL != "" {
		u, err := url.Parse(a.ImageURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("imageUrl must be an http or https URL")
		}
		return nil
	}
	data, mimeType, err := a.decodeDataURL()
	if err != nil {
		return err
	}
	a.data, a.mimeType = data, mimeType
	return nil
}

// Decode returns the inline image bytes and MIME type. Validation already
// decoded the payload, so the bytes are reused rather than parsed again.
// Only valid for requests carrying imageBase64.
func (a *Analyze) Decode() ([]byte, string, error) {
	if a.data != nil {
		return a.data, a.mimeType, nil
	}
	data, mimeType, err := a.decodeDataURL()
	if err != nil {
		return nil, "", err
	}
	a.data, a.mimeType = data, mimeType
	return data, mimeType, nil
}

func (a *Analyze) decodeDataURL() ([]byte, string, error) {
	header, payload, found := strings.Cut(a.ImageBase64, ",")
	if !found || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, "", fmt.Errorf("imageBase64 must be a base64 data URL")
	}
	mimeType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if _, ok := allowedImageMIMEs[mimeType]; !ok {
		return nil, "", fmt.Errorf("unsupported image type: %s", mimeType)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > consts.MaxDecodedImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", consts.MaxDecodedImageBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("imageBase64 is not valid base64")
	}
	return data, mimeType, nil
}
