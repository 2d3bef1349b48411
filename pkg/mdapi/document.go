package mdapi

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/valyala/fastjson"
)

// DocumentType is the type discriminator sent with every stored document.
const DocumentType = "markdown"

// PreviewLength is the number of characters kept in a document preview.
const PreviewLength = 100

// A Document is a markdown document as stored remotely.
type Document struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      string     `json:"tags"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	Type      string     `json:"type"`
}

// A DocumentPreview is the listing projection of a Document.
// It is derived wholesale on each list operation, never patched.
type DocumentPreview struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Preview   string     `json:"preview"`
	CreatedAt *time.Time `json:"created_at"`
	Type      string     `json:"type"`
}

// Preview truncates content to PreviewLength characters and appends an
// ellipsis marker.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) > PreviewLength {
		runes = runes[:PreviewLength]
	}
	return string(runes) + "..."
}

// documentFromJSON maps a raw record ({id, title, body, tags, createdAt})
// to a Document. Remote ids can be numbers or strings and are kept opaque.
func documentFromJSON(v *fastjson.Value) *Document {
	return &Document{
		ID:        stringField(v, "id"),
		Title:     stringField(v, "title"),
		Content:   stringField(v, "body"),
		Tags:      stringField(v, "tags"),
		CreatedAt: timeField(v, "createdAt"),
		UpdatedAt: timeField(v, "updatedAt"),
		Type:      DocumentType,
	}
}

// previewFromJSON maps a raw record to a DocumentPreview.
func previewFromJSON(v *fastjson.Value) DocumentPreview {
	return DocumentPreview{
		ID:        stringField(v, "id"),
		Title:     stringField(v, "title"),
		Preview:   Preview(stringField(v, "body")),
		CreatedAt: timeField(v, "createdAt"),
		Type:      DocumentType,
	}
}

func stringField(v *fastjson.Value, key string) string {
	field := v.Get(key)
	if field == nil {
		return ""
	}
	if field.Type() == fastjson.TypeString {
		return string(field.GetStringBytes())
	}
	return field.String()
}

// timeField parses a timestamp field leniently. Remote stores are not
// consistent about their time formats.
func timeField(v *fastjson.Value, key string) *time.Time {
	field := v.Get(key)
	if field == nil || field.Type() != fastjson.TypeString {
		return nil
	}

	t, err := dateparse.ParseAny(string(field.GetStringBytes()))
	if err != nil {
		return nil
	}
	return &t
}
