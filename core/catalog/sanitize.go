package catalog

import (
	"regexp"
	"sort"
	"strings"
)

// strippableTerms are architecture families, weight formats, version markers
// and model-type markers that carry no information once the file lives in an
// architecture-prefixed name inside a typed directory.
var strippableTerms = []string{
	// architecture families and their common spellings
	"z-image turbo", "z-image", "zimage", "hidream",
	"qwen image edit 2509", "qwen image edit", "qwen image", "qwen",
	"flux.1 kontext", "flux.1 fill", "flux.1 schnell", "flux.1 dev",
	"flux.1 d", "flux.1 s", "flux.1", "flux1", "flux",
	"kontext", "schnell",
	"wan video 2.2", "wan video 2.1", "wan video",
	"wan 2.2", "wan 2.1", "wan2.2", "wan2.1", "wan",
	"noobai xl", "noobai", "noob",
	"illustrious xl", "illustrious_xl", "illustriousxl", "illustrious", "ilxl",
	"pony diffusion xl", "pony diffusion", "pony", "pdxl",
	"cogvideox", "cogvideo", "hunyuanvideo", "hunyuan", "auraflow",
	"stable diffusion", "stable-diffusion",
	"sdxl 1.0", "sdxl", "sd 3.5", "sd3.5", "sd 3", "sd3",
	"sd 1.5", "sd1.5", "sd15", "sd 2.1", "sd2.1", "sd21", "sd",
	"xl",
	// weight formats
	"safetensors", "ckpt", "gguf", "pruned",
	"fp16", "fp8", "bf16", "fp32",
	// version markers
	"v1.0", "v1.5", "v2.0", "v3.0",
	"v1", "v2", "v3", "v4", "v5",
	// model-type markers
	"lora", "locon", "lycoris", "dora",
	"checkpoint", "embedding", "textual inversion",
	"hypernetwork", "controlnet", "vae",
	"model",
}

type stripPattern struct {
	term     string
	patterns []*regexp.Regexp
}

var (
	stripPatterns []stripPattern

	whitespaceRun = regexp.MustCompile(`\s+`)
	nonToken      = regexp.MustCompile(`[^a-z0-9]+`)
)

func init() {
	terms := make([]string, len(strippableTerms))
	copy(terms, strippableTerms)
	// Longest first, so "illustrious xl" is stripped whole before
	// "illustrious" and "xl" get a chance to eat parts of it.
	sort.SliceStable(terms, func(i, j int) bool {
		return len(terms[i]) > len(terms[j])
	})

	for _, term := range terms {
		q := regexp.QuoteMeta(term)
		stripPatterns = append(stripPatterns, stripPattern{
			term: term,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b` + q + `\b`),
				regexp.MustCompile(`[\s_\-]` + q + `[\s_\-]`),
				regexp.MustCompile(`^` + q + `[\s_\-]`),
				regexp.MustCompile(`[\s_\-]` + q + `$`),
			},
		})
	}
}

// finalizeName reduces a display name to the restricted filename character
// class: lower-case alphanumerics separated by single underscores, no
// leading or trailing separator.
func finalizeName(name string) string {
	name = strings.ToLower(name)
	name = nonToken.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// SanitizeName turns a human display name into a filesystem-safe token.
// With stripArchTerms set, architecture/format/version/type jargon is removed
// first; if that leaves fewer than 2 characters the original name is
// finalized instead, so the result is never degenerate.
func SanitizeName(name string, stripArchTerms bool) string {
	if !stripArchTerms {
		return finalizeName(name)
	}

	stripped := strings.ToLower(name)
	for _, sp := range stripPatterns {
		for _, p := range sp.patterns {
			stripped = p.ReplaceAllString(stripped, " ")
		}
	}
	stripped = whitespaceRun.ReplaceAllString(stripped, " ")
	stripped = strings.TrimSpace(stripped)

	out := finalizeName(stripped)
	if len(out) < 2 {
		return finalizeName(name)
	}
	return out
}
