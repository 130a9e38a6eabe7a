package catalog

import (
	"encoding/json"
	"fmt"
)

// FieldIssue reports a manifest entry missing a required field.
type FieldIssue struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	Name  string `json:"model_name,omitempty"`
}

// DuplicateGroup reports one value shared by several manifest entries.
type DuplicateGroup struct {
	Value   string `json:"value"`
	Indexes []int  `json:"indexes"`
}

// ManifestReport is the result of validating a manifest document. Issues are
// findings, not errors: a manifest with duplicates still parses and exports.
type ManifestReport struct {
	TotalModels    int              `json:"total_models"`
	FieldIssues    []FieldIssue     `json:"field_issues,omitempty"`
	DuplicateURLs  []DuplicateGroup `json:"duplicate_urls,omitempty"`
	DuplicateNames []DuplicateGroup `json:"duplicate_names,omitempty"`
}

// OK reports whether the manifest is issue-free.
func (r *ManifestReport) OK() bool {
	return len(r.FieldIssues) == 0 && len(r.DuplicateURLs) == 0 && len(r.DuplicateNames) == 0
}

// ValidateManifest parses a manifest JSON document and reports missing
// required fields and duplicate download URLs or names. Only unparseable
// input is an error.
func ValidateManifest(data []byte) (*ManifestReport, error) {
	var envelope struct {
		Models *[]ManifestEntry `json:"models"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON: %w", err)
	}
	if envelope.Models == nil {
		return nil, fmt.Errorf("missing \"models\" array in root object")
	}

	return ValidateEntries(*envelope.Models), nil
}

// ValidateEntries validates an already-parsed entry list.
func ValidateEntries(entries []ManifestEntry) *ManifestReport {
	report := &ManifestReport{TotalModels: len(entries)}

	urlIndex := map[string][]int{}
	nameIndex := map[string][]int{}
	var urlOrder, nameOrder []string

	for i, entry := range entries {
		if entry.Name == "" {
			report.FieldIssues = append(report.FieldIssues, FieldIssue{Index: i, Field: "model_name"})
		}
		if entry.URL == "" {
			report.FieldIssues = append(report.FieldIssues, FieldIssue{Index: i, Field: "url", Name: entry.Name})
		}
		if entry.Directory == "" {
			report.FieldIssues = append(report.FieldIssues, FieldIssue{Index: i, Field: "directory", Name: entry.Name})
		}

		if entry.URL != "" {
			if _, seen := urlIndex[entry.URL]; !seen {
				urlOrder = append(urlOrder, entry.URL)
			}
			urlIndex[entry.URL] = append(urlIndex[entry.URL], i)
		}
		if entry.Name != "" {
			if _, seen := nameIndex[entry.Name]; !seen {
				nameOrder = append(nameOrder, entry.Name)
			}
			nameIndex[entry.Name] = append(nameIndex[entry.Name], i)
		}
	}

	for _, url := range urlOrder {
		if indexes := urlIndex[url]; len(indexes) > 1 {
			report.DuplicateURLs = append(report.DuplicateURLs, DuplicateGroup{Value: url, Indexes: indexes})
		}
	}
	for _, name := range nameOrder {
		if indexes := nameIndex[name]; len(indexes) > 1 {
			report.DuplicateNames = append(report.DuplicateNames, DuplicateGroup{Value: name, Indexes: indexes})
		}
	}

	return report
}
