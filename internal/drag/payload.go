// Package drag implements the drag-and-drop protocol of the bookmark
// board and the quick link strip: what a drag carries, which index is
// being dragged or hovered, and how a drop turns into store mutations.
package drag

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nikbrunner/tabzero/internal/model"
)

// Kind tags what a drag carries.
type Kind string

const (
	KindCategory Kind = "category"
	KindBookmark Kind = "bookmark"
	KindExternal Kind = "external"
)

var ErrInvalidPayload = errors.New("invalid drag payload")

// Payload is the data attached to a drag.
//
// Category payloads carry ID. Bookmark payloads carry ID, Title and URL,
// so a bookmark can be dropped on a category tab or onto the quick link
// strip. External payloads carry Title and URL only.
type Payload struct {
	Kind  Kind   `json:"kind"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// CategoryPayload is the payload for dragging a category tab.
func CategoryPayload(id string) Payload {
	return Payload{Kind: KindCategory, ID: id}
}

// BookmarkPayload is the payload for dragging a bookmark tile.
func BookmarkPayload(b model.Bookmark) Payload {
	return Payload{Kind: KindBookmark, ID: b.ID, Title: b.Title, URL: b.URL}
}

// ExternalPayload is the payload for a link dragged in from elsewhere.
func ExternalPayload(title, url string) Payload {
	return Payload{Kind: KindExternal, Title: title, URL: url}
}

// Encode serialises p for a string drag channel.
func (p Payload) Encode() string {
	data, _ := json.Marshal(p)
	return string(data)
}

// Decode parses a drag channel string. It accepts encoded payloads and
// the older "category:<id>", "bookmark:<id>" and "external:<json>" forms.
func Decode(data string) (Payload, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, "{") {
		var p Payload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return p, p.validate()
	}
	return decodeTagged(data)
}

func decodeTagged(data string) (Payload, error) {
	tag, rest, ok := strings.Cut(data, ":")
	if !ok {
		return Payload{}, fmt.Errorf("%w: %q", ErrInvalidPayload, data)
	}

	var p Payload
	switch Kind(tag) {
	case KindCategory:
		p = CategoryPayload(rest)
	case KindBookmark:
		p = Payload{Kind: KindBookmark, ID: rest}
	case KindExternal:
		var link struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		}
		if err := json.Unmarshal([]byte(rest), &link); err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		p = ExternalPayload(link.Title, link.URL)
	default:
		return Payload{}, fmt.Errorf("%w: unknown tag %q", ErrInvalidPayload, tag)
	}
	return p, p.validate()
}

func (p Payload) validate() error {
	switch p.Kind {
	case KindCategory, KindBookmark:
		if p.ID == "" {
			return fmt.Errorf("%w: %s without id", ErrInvalidPayload, p.Kind)
		}
	case KindExternal:
		if p.URL == "" {
			return fmt.Errorf("%w: external link without url", ErrInvalidPayload)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, p.Kind)
	}
	return nil
}

// Link returns the title and URL a payload offers to a link target.
// Category payloads offer none.
func (p Payload) Link() (title, url string, ok bool) {
	switch p.Kind {
	case KindBookmark, KindExternal:
		return p.Title, p.URL, p.URL != ""
	case KindCategory:
		return "", "", false
	}
	return "", "", false
}
