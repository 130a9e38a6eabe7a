package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Storage directories a manifest entry can point into.
const (
	DirCheckpoints   = "checkpoints"
	DirLoras         = "loras"
	DirEmbeddings    = "embeddings"
	DirHypernetworks = "hypernetworks"
	DirControlNet    = "controlnet"
	DirVAE           = "vae"
	DirModels        = "models"
)

const defaultExtension = ".safetensors"

var typeDirectories = map[string]string{
	"checkpoint":       DirCheckpoints,
	"checkpoints":      DirCheckpoints,
	"lora":             DirLoras,
	"locon":            DirLoras,
	"lycoris":          DirLoras,
	"dora":             DirLoras,
	"textualinversion": DirEmbeddings,
	"embedding":        DirEmbeddings,
	"embeddings":       DirEmbeddings,
	"hypernetwork":     DirHypernetworks,
	"controlnet":       DirControlNet,
	"vae":              DirVAE,
}

var adapterTypes = map[string]bool{
	"lora":    true,
	"locon":   true,
	"lycoris": true,
	"dora":    true,
}

func normalizeType(t string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(t)), " ", "")
}

// DirectoryForType maps an upstream type tag to a storage directory.
// Unrecognized types land in the generic models directory.
func DirectoryForType(t string) string {
	if dir, ok := typeDirectories[normalizeType(t)]; ok {
		return dir
	}
	return DirModels
}

// IsAdapterType reports whether the upstream type tag names a LoRA-style
// supplementary model rather than a full checkpoint.
func IsAdapterType(t string) bool {
	return adapterTypes[normalizeType(t)]
}

// ManifestEntry is one normalized, exportable record: where to fetch a model
// file and where to store it. Never mutated after creation.
type ManifestEntry struct {
	Name       string `json:"model_name"`
	URL        string `json:"url"`
	Directory  string `json:"directory"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// Manifest is the export envelope. The "models" key is consumed by
// downstream tooling and must not change.
type Manifest struct {
	Models []ManifestEntry `json:"models"`
}

// BuildEntry builds the manifest entry for one model, given its primary
// version and file. A nil return means there is nothing to download for this
// model and it should be skipped; that is not an error.
//
// Adapter files are renamed to "{archPrefix}-{sanitizedName}{ext}" so that
// adapters for different families sort together on disk; everything else
// keeps its original filename.
func BuildEntry(m *Model, version *Version, file *File) *ManifestEntry {
	if m == nil || version == nil || file == nil || file.DownloadURL == "" {
		return nil
	}

	name := file.Name
	if IsAdapterType(m.Type) {
		arch := DetectArchitecture(m.Tags, version.BaseModel)
		ext := filepath.Ext(file.Name)
		if ext == "" {
			ext = defaultExtension
		}
		name = fmt.Sprintf("%s-%s%s", arch.Prefix(), SanitizeName(m.Name, true), ext)
	}

	return &ManifestEntry{
		Name:       name,
		URL:        file.DownloadURL,
		Directory:  DirectoryForType(m.Type),
		PreviewURL: version.PreviewURL(),
	}
}

// BuildPrimaryEntry is BuildEntry applied to the model's primary version and
// that version's primary file.
func BuildPrimaryEntry(m *Model) *ManifestEntry {
	version := m.PrimaryVersion()
	return BuildEntry(m, version, version.PrimaryFile())
}

// BuildManifest runs the pipeline over a list of models, dropping the ones
// with nothing to download.
func BuildManifest(models Models) Manifest {
	manifest := Manifest{Models: []ManifestEntry{}}
	for _, m := range models {
		if entry := BuildPrimaryEntry(m); entry != nil {
			manifest.Models = append(manifest.Models, *entry)
		}
	}
	return manifest
}
