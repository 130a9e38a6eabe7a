package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/modelscout/modelscout/core/catalog"
)

// Formats understood by the serializers.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Write serializes the manifest to w in the given format.
func Write(w io.Writer, manifest catalog.Manifest, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return WriteJSON(w, manifest)
	case FormatCSV:
		return WriteCSV(w, manifest)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteFile serializes the manifest to a file, inferring the format from the
// extension when format is empty.
func WriteFile(path string, manifest catalog.Manifest, format string) error {
	if format == "" {
		if strings.HasSuffix(strings.ToLower(path), ".csv") {
			format = FormatCSV
		} else {
			format = FormatJSON
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	defer f.Close()

	return Write(f, manifest, format)
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	if strings.ToLower(format) == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}
