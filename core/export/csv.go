package export

import (
	"encoding/csv"
	"io"

	"github.com/modelscout/modelscout/core/catalog"
)

var csvHeader = []string{"model_name", "url", "directory", "preview_url"}

// WriteCSV flattens the manifest to CSV, one row per entry, header first.
func WriteCSV(w io.Writer, manifest catalog.Manifest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, entry := range manifest.Models {
		if err := cw.Write([]string{entry.Name, entry.URL, entry.Directory, entry.PreviewURL}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
