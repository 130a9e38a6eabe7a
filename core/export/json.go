package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/modelscout/modelscout/core/catalog"
)

// WriteJSON writes the manifest envelope {"models": [...]} to w. The envelope
// key is relied on by downstream tooling.
func WriteJSON(w io.Writer, manifest catalog.Manifest) error {
	if manifest.Models == nil {
		manifest.Models = []catalog.ManifestEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(manifest)
}

// ReadJSON parses a manifest envelope back into entries.
func ReadJSON(r io.Reader) (catalog.Manifest, error) {
	var manifest catalog.Manifest
	if err := json.NewDecoder(r).Decode(&manifest); err != nil {
		return catalog.Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return manifest, nil
}
