package generator

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/gogpu/gg"
)

const ImageMIMEType = "image/png"

// EncodedImage 编码结果。DataURI 用于对外返回，Payload 为裸 base64。
type EncodedImage struct {
	DataURI string
	Payload string
	PNG     []byte
}

// Encode serializes the surface as PNG. Encoding is lossless and the same
// pixels always produce the same bytes.
func Encode(dc *gg.Context) (*EncodedImage, error) {
	if dc == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrEncodingFailure)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}

	payload := base64.StdEncoding.EncodeToString(buf.Bytes())
	return &EncodedImage{
		DataURI: DataURI(payload),
		Payload: payload,
		PNG:     buf.Bytes(),
	}, nil
}

func DataURI(payload string) string {
	return "data:" + ImageMIMEType + ";base64," + payload
}
