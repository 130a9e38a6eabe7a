package cli

import (
	"fmt"
	"os"

	"github.com/modelscout/modelscout/core/catalog"
	cliContext "github.com/modelscout/modelscout/core/cli/context"
)

type ValidateCMD struct {
	File string `arg:"" optional:"" default:"manifest.json" help:"Manifest file to validate"`
}

func (v *ValidateCMD) Run(ctx *cliContext.Context) error {
	data, err := os.ReadFile(v.File)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	report, err := catalog.ValidateManifest(data)
	if err != nil {
		return err
	}

	fmt.Printf("Total models: %d\n", report.TotalModels)

	if report.OK() {
		fmt.Println("No issues found!")
		return nil
	}

	if len(report.FieldIssues) > 0 {
		fmt.Printf("\nField issues (%d):\n", len(report.FieldIssues))
		for _, issue := range report.FieldIssues {
			name := issue.Name
			if name == "" {
				name = "unknown"
			}
			fmt.Printf("  [%d] missing required field %q: %s\n", issue.Index, issue.Field, name)
		}
	}
	if len(report.DuplicateURLs) > 0 {
		fmt.Printf("\nDuplicate URLs (%d):\n", len(report.DuplicateURLs))
		for _, group := range report.DuplicateURLs {
			fmt.Printf("  %s: entries %v\n", group.Value, group.Indexes)
		}
	}
	if len(report.DuplicateNames) > 0 {
		fmt.Printf("\nDuplicate model names (%d):\n", len(report.DuplicateNames))
		for _, group := range report.DuplicateNames {
			fmt.Printf("  %s: entries %v\n", group.Value, group.Indexes)
		}
	}

	return fmt.Errorf("manifest has issues: %d field, %d duplicate urls, %d duplicate names",
		len(report.FieldIssues), len(report.DuplicateURLs), len(report.DuplicateNames))
}
