package catalog

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Model is the normalized record a catalog client hands to the manifest
// pipeline. Both upstream schemas are converted into this shape by their
// adapters; the core never sees upstream-specific fields.
type Model struct {
	ID      string   `json:"id"`
	Catalog string   `json:"catalog"`
	Name    string   `json:"name"`
	Type    string   `json:"type,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	// Versions are ordered as the upstream returned them, newest first.
	Versions []Version `json:"versions,omitempty"`
}

type Version struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	BaseModel string  `json:"base_model,omitempty"`
	Files     []File  `json:"files,omitempty"`
	Images    []Image `json:"images,omitempty"`
}

type File struct {
	Name        string  `json:"name"`
	SizeKB      float64 `json:"size_kb,omitempty"`
	DownloadURL string  `json:"download_url,omitempty"`
}

type Image struct {
	URL string `json:"url"`
}

// PrimaryVersion returns the first version, or nil when the upstream record
// carried none.
func (m *Model) PrimaryVersion() *Version {
	if m == nil || len(m.Versions) == 0 {
		return nil
	}
	return &m.Versions[0]
}

// PrimaryFile returns the first file of a version, or nil when the version
// has nothing to download.
func (v *Version) PrimaryFile() *File {
	if v == nil || len(v.Files) == 0 {
		return nil
	}
	return &v.Files[0]
}

// PreviewURL returns the first preview image URL, or "" when the version has
// no previews.
func (v *Version) PreviewURL() string {
	if v == nil || len(v.Images) == 0 {
		return ""
	}
	return v.Images[0].URL
}

type Models []*Model

func (ms Models) Search(term string) Models {
	var filtered Models
	term = strings.ToLower(term)
	for _, m := range ms {
		if fuzzy.Match(term, strings.ToLower(m.Name)) ||
			strings.Contains(strings.ToLower(m.Name), term) ||
			strings.Contains(strings.ToLower(strings.Join(m.Tags, ",")), term) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func (ms Models) FindByID(id string) *Model {
	for _, m := range ms {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (ms Models) Paginate(pageNum int, itemsNum int) Models {
	start := (pageNum - 1) * itemsNum
	end := start + itemsNum
	if start > len(ms) {
		start = len(ms)
	}
	if end > len(ms) {
		end = len(ms)
	}
	return ms[start:end]
}

// DedupeByID drops models already seen earlier in the list, preserving order.
// Paged fetches can return the same model twice when the upstream result set
// shifts between requests.
func (ms Models) DedupeByID() Models {
	seen := make(map[string]bool, len(ms))
	var out Models
	for _, m := range ms {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}

// SearchParams are the query parameters shared by both catalog clients.
// Fields a catalog does not support are ignored by its client.
type SearchParams struct {
	Query      string
	Types      []string
	BaseModels []string
	NSFW       bool
	// Limit is the page size requested from the upstream.
	Limit int
	// Cursor is the opaque pagination cursor returned by a previous page.
	Cursor string
}

// Page is one page of catalog results. NextCursor is empty on the last page.
type Page struct {
	Items      Models
	NextCursor string
}
