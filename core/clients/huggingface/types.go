package huggingface

import (
	"strings"

	"github.com/modelscout/modelscout/core/catalog"
)

// Wire types for the /api/models endpoint.
type hubModel struct {
	ID          string       `json:"id"`
	ModelID     string       `json:"modelId"`
	PipelineTag string       `json:"pipeline_tag"`
	Tags        []string     `json:"tags"`
	Siblings    []hubSibling `json:"siblings"`
}

type hubSibling struct {
	Rfilename string `json:"rfilename"`
	Size      int64  `json:"size"`
}

// weightExtensions are the sibling files worth downloading; everything else
// in a repo is configs, docs and tokenizer assets.
var weightExtensions = []string{".safetensors", ".ckpt", ".pt", ".bin", ".gguf"}

func isWeightFile(name string) bool {
	lowered := strings.ToLower(name)
	for _, ext := range weightExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}

func (m hubModel) repoID() string {
	if m.ID != "" {
		return m.ID
	}
	return m.ModelID
}

// displayName is the repo name without the owner prefix.
func (m hubModel) displayName() string {
	id := m.repoID()
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// modelType derives the upstream type tag. The Hub has no typed field, so
// adapter-ness is read from tags.
func (m hubModel) modelType() string {
	for _, tag := range m.Tags {
		switch strings.ToLower(tag) {
		case "lora":
			return "LORA"
		case "textual_inversion", "textual-inversion":
			return "TextualInversion"
		case "controlnet":
			return "Controlnet"
		}
	}
	return "Checkpoint"
}

func (c *Client) convertModels(items []hubModel) catalog.Models {
	models := make(catalog.Models, 0, len(items))
	for _, item := range items {
		if m := c.convertModel(item); m != nil {
			models = append(models, m)
		}
	}
	return models
}

func (c *Client) convertModel(item hubModel) *catalog.Model {
	id := item.repoID()
	if id == "" {
		return nil
	}

	// A single synthetic version: the Hub exposes one file tree per repo.
	// The base-model signal stays in the tags, where the classifier reads it.
	version := catalog.Version{}
	for _, s := range item.Siblings {
		if !isWeightFile(s.Rfilename) {
			continue
		}
		version.Files = append(version.Files, catalog.File{
			Name:        s.Rfilename,
			SizeKB:      float64(s.Size) / 1024,
			DownloadURL: c.endpoint + "/" + id + "/resolve/main/" + s.Rfilename,
		})
	}

	return &catalog.Model{
		ID:       id,
		Catalog:  Name,
		Name:     item.displayName(),
		Type:     item.modelType(),
		Tags:     item.Tags,
		Versions: []catalog.Version{version},
	}
}
