package civitai

import (
	"strconv"

	"github.com/modelscout/modelscout/core/catalog"
)

// Wire types for the /models endpoint. Only the fields the pipeline needs
// are mapped.
type searchResponse struct {
	Items    []modelItem  `json:"items"`
	Metadata pageMetadata `json:"metadata"`
}

type pageMetadata struct {
	NextCursor string `json:"nextCursor"`
	NextPage   string `json:"nextPage"`
}

type modelItem struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	Tags          []string       `json:"tags"`
	ModelVersions []modelVersion `json:"modelVersions"`
}

type modelVersion struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	BaseModel string       `json:"baseModel"`
	Files     []modelFile  `json:"files"`
	Images    []modelImage `json:"images"`
}

type modelFile struct {
	Name        string  `json:"name"`
	SizeKB      float64 `json:"sizeKB"`
	DownloadURL string  `json:"downloadUrl"`
}

type modelImage struct {
	URL string `json:"url"`
}

func convertModels(items []modelItem) catalog.Models {
	models := make(catalog.Models, 0, len(items))
	for _, item := range items {
		models = append(models, convertModel(item))
	}
	return models
}

func convertModel(item modelItem) *catalog.Model {
	m := &catalog.Model{
		ID:      strconv.Itoa(item.ID),
		Catalog: Name,
		Name:    item.Name,
		Type:    item.Type,
		Tags:    item.Tags,
	}
	for _, v := range item.ModelVersions {
		version := catalog.Version{
			ID:        strconv.Itoa(v.ID),
			Name:      v.Name,
			BaseModel: v.BaseModel,
		}
		for _, f := range v.Files {
			version.Files = append(version.Files, catalog.File{
				Name:        f.Name,
				SizeKB:      f.SizeKB,
				DownloadURL: f.DownloadURL,
			})
		}
		for _, img := range v.Images {
			version.Images = append(version.Images, catalog.Image{URL: img.URL})
		}
		m.Versions = append(m.Versions, version)
	}
	return m
}
