package wizard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyReply is returned for an upload reply that is an empty sequence.
var ErrEmptyReply = errors.New("upload reply is an empty sequence")

// ReplyShape records how the upstream delivered an upload reply.
type ReplyShape int

const (
	ShapeObject ReplyShape = iota
	ShapeSequence
)

// ProductList is the products field of an upload reply. The upstream sends
// either a sequence of labels or one comma separated string; both decode to
// trimmed, non-empty labels in order.
type ProductList []string

func (p *ProductList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}

	var labels []string
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		labels = strings.Split(s, ",")
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				// numbers and other scalars keep their literal text
				s = string(bytes.TrimSpace(item))
			}
			labels = append(labels, s)
		}
	default:
		return fmt.Errorf("products: unsupported JSON value %.20s", data)
	}

	*p = NormalizeProducts(labels)
	return nil
}

// NormalizeProducts trims every label and drops empty ones.
func NormalizeProducts(labels []string) ProductList {
	out := make(ProductList, 0, len(labels))
	for _, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			out = append(out, label)
		}
	}
	return out
}

// UploadReply is the upstream answer to a file upload.
type UploadReply struct {
	Summary   string      `json:"summary"`
	Products  ProductList `json:"products"`
	ResumeURL string      `json:"resumeUrl"`
	Shape     ReplyShape  `json:"-"`
}

// HasProductData reports whether the reply can drive the products screen.
func (r UploadReply) HasProductData() bool {
	return strings.TrimSpace(r.Summary) != "" && len(r.Products) > 0
}

// DecodeUploadReply accepts a bare object or a sequence whose first element
// is the object.
func DecodeUploadReply(raw json.RawMessage) (UploadReply, error) {
	raw = bytes.TrimSpace(raw)
	var reply UploadReply
	if len(raw) > 0 && raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return reply, fmt.Errorf("decode upload reply: %w", err)
		}
		if len(items) == 0 {
			return reply, ErrEmptyReply
		}
		if err := json.Unmarshal(items[0], &reply); err != nil {
			return reply, fmt.Errorf("decode upload reply: %w", err)
		}
		reply.Shape = ShapeSequence
		return reply, nil
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return reply, fmt.Errorf("decode upload reply: %w", err)
	}
	reply.Shape = ShapeObject
	return reply, nil
}
