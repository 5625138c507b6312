package workflow

import (
	"encoding/json"

	"github.com/ohler55/ojg/jp"
)

// MetaKey is the top-level key holding optional display metadata.
const MetaKey = "cvb_meta"

const defaultVersion = "1"

var (
	metaID          = jp.C(MetaKey).C("id")
	metaTitle       = jp.C(MetaKey).C("title")
	metaDescription = jp.C(MetaKey).C("description")
	metaTags        = jp.C(MetaKey).C("tags")
	metaVersion     = jp.C(MetaKey).C("version")
)

// Metadata is the display information of one workflow file.
type Metadata struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Version     string   `json:"version,omitempty"`
}

// MetadataFor derives Metadata from the embedded cvb_meta block of doc,
// falling back to values derived from filename.
func MetadataFor(filename string, doc any) Metadata {
	stem := Stem(filename)
	md := Metadata{
		ID:      stem,
		Title:   DisplayTitle(stem),
		Tags:    []string{},
		Version: defaultVersion,
	}
	if _, ok := doc.(map[string]any); !ok {
		return md
	}
	if s, ok := scalarString(metaID.First(doc)); ok && s != "" {
		md.ID = s
	}
	if s, ok := scalarString(metaTitle.First(doc)); ok && s != "" {
		md.Title = s
	}
	if s, ok := scalarString(metaDescription.First(doc)); ok {
		md.Description = s
	}
	if s, ok := scalarString(metaVersion.First(doc)); ok {
		md.Version = s
	}
	if list, ok := metaTags.First(doc).([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				md.Tags = append(md.Tags, s)
			}
		}
	}
	return md
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}
