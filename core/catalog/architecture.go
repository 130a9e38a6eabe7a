package catalog

import (
	"strings"
)

// Architecture is the canonical family a model is built on. Detection is
// best-effort over free-text upstream metadata, so ArchitectureOther is the
// exhaustive fallback.
type Architecture string

const (
	ArchitectureZImageTurbo       Architecture = "Z-Image Turbo"
	ArchitectureHiDream           Architecture = "HiDream"
	ArchitectureQwenImageEdit2509 Architecture = "Qwen Image Edit 2509"
	ArchitectureQwenImageEdit     Architecture = "Qwen Image Edit"
	ArchitectureQwenImage         Architecture = "Qwen Image"
	ArchitectureQwen              Architecture = "Qwen"
	ArchitectureFluxKontext       Architecture = "Flux.1 Kontext"
	ArchitectureFluxFill          Architecture = "Flux.1 Fill"
	ArchitectureFluxSchnell       Architecture = "Flux.1 Schnell"
	ArchitectureFluxDev           Architecture = "Flux.1 Dev"
	ArchitectureFlux              Architecture = "Flux.1"
	ArchitectureWan22             Architecture = "Wan 2.2"
	ArchitectureWan21             Architecture = "Wan 2.1"
	ArchitectureWanVideo          Architecture = "Wan Video"
	ArchitectureNoobAI            Architecture = "NoobAI"
	ArchitectureIllustriousXL     Architecture = "Illustrious XL"
	ArchitectureIllustrious       Architecture = "Illustrious"
	ArchitecturePony              Architecture = "Pony"
	ArchitectureCogVideoX         Architecture = "CogVideoX"
	ArchitectureHunyuanVideo      Architecture = "HunyuanVideo"
	ArchitectureAuraFlow          Architecture = "AuraFlow"
	ArchitectureSD35              Architecture = "SD 3.5"
	ArchitectureSD3               Architecture = "SD 3"
	ArchitectureSDXL              Architecture = "SDXL"
	ArchitectureSD15              Architecture = "SD 1.5"
	ArchitectureSD21              Architecture = "SD 2.1"
	ArchitectureOther             Architecture = "Other"
)

// architectureRule matches one family. base markers are matched against the
// base-model value, tag markers against every tag; all matching is
// case-insensitive substring matching over lower-cased input.
type architectureRule struct {
	label Architecture
	base  []string
	tags  []string
}

// architectureRules is evaluated in order, first match wins. The order
// encodes precedence: specific variants come before their generic parent
// (Flux.1 Kontext before Flux.1 Dev before Flux.1), and families trained on
// another family come before it (NoobAI is trained on Illustrious, Pony and
// Illustrious are SDXL-based). Reordering entries changes classification.
var architectureRules = []architectureRule{
	{
		label: ArchitectureZImageTurbo,
		base:  []string{"z-image", "z image", "zimage"},
		tags:  []string{"z-image", "zimage"},
	},
	{
		label: ArchitectureHiDream,
		base:  []string{"hidream"},
		tags:  []string{"hidream"},
	},
	{
		label: ArchitectureQwenImageEdit2509,
		base:  []string{"qwen image edit 2509", "qwen-image-edit-2509"},
		tags:  []string{"qwen image edit 2509", "qwen-image-edit-2509"},
	},
	{
		label: ArchitectureQwenImageEdit,
		base:  []string{"qwen image edit", "qwen-image-edit"},
		tags:  []string{"qwen image edit", "qwen-image-edit"},
	},
	{
		label: ArchitectureQwenImage,
		base:  []string{"qwen image", "qwen-image"},
		tags:  []string{"qwen image", "qwen-image"},
	},
	{
		label: ArchitectureQwen,
		base:  []string{"qwen"},
		tags:  []string{"qwen"},
	},
	{
		label: ArchitectureFluxKontext,
		base:  []string{"kontext"},
		tags:  []string{"kontext"},
	},
	{
		label: ArchitectureFluxFill,
		base:  []string{"flux.1 fill", "flux fill", "flux-fill", "flux1-fill", "flux.1-fill"},
		tags:  []string{"flux fill", "flux-fill", "flux1-fill", "flux.1-fill"},
	},
	{
		label: ArchitectureFluxSchnell,
		base:  []string{"schnell"},
		tags:  []string{"schnell"},
	},
	{
		label: ArchitectureFluxDev,
		base:  []string{"flux.1 d", "flux.1-dev", "flux-dev", "flux dev", "flux1-dev", "flux1.dev"},
		tags:  []string{"flux.1-dev", "flux-dev", "flux dev", "flux1-dev", "flux.1 dev"},
	},
	{
		label: ArchitectureFlux,
		base:  []string{"flux"},
		tags:  []string{"flux"},
	},
	{
		label: ArchitectureWan22,
		base:  []string{"wan video 2.2", "wan 2.2", "wan2.2", "wan-2.2", "wan2_2"},
		tags:  []string{"wan 2.2", "wan2.2", "wan-2.2", "wan video 2.2", "wan2_2"},
	},
	{
		label: ArchitectureWan21,
		base:  []string{"wan video 2.1", "wan 2.1", "wan2.1", "wan-2.1", "wan2_1"},
		tags:  []string{"wan 2.1", "wan2.1", "wan-2.1", "wan video 2.1", "wan2_1"},
	},
	{
		label: ArchitectureWanVideo,
		base:  []string{"wan video", "wanvideo", "wan-video", "wan-ai", "wan2"},
		tags:  []string{"wan video", "wanvideo", "wan-video", "wan2"},
	},
	{
		label: ArchitectureNoobAI,
		base:  []string{"noob"},
		tags:  []string{"noob"},
	},
	{
		label: ArchitectureIllustriousXL,
		base:  []string{"illustrious xl", "illustrious-xl", "illustriousxl", "illustrious_xl"},
		tags:  []string{"illustrious xl", "illustrious-xl", "illustriousxl", "illustrious_xl"},
	},
	{
		label: ArchitectureIllustrious,
		base:  []string{"illustrious"},
		tags:  []string{"illustrious"},
	},
	{
		label: ArchitecturePony,
		base:  []string{"pony"},
		tags:  []string{"pony"},
	},
	{
		label: ArchitectureCogVideoX,
		base:  []string{"cogvideo"},
		tags:  []string{"cogvideo"},
	},
	{
		label: ArchitectureHunyuanVideo,
		base:  []string{"hunyuan"},
		tags:  []string{"hunyuan"},
	},
	{
		label: ArchitectureAuraFlow,
		base:  []string{"auraflow", "aura flow"},
		tags:  []string{"auraflow", "aura flow"},
	},
	{
		label: ArchitectureSD35,
		base:  []string{"sd 3.5", "sd3.5", "sd-3.5", "stable-diffusion-3.5", "stable diffusion 3.5"},
		tags:  []string{"sd 3.5", "sd3.5", "stable-diffusion-3.5", "stable diffusion 3.5"},
	},
	{
		label: ArchitectureSD3,
		base:  []string{"sd 3", "sd3", "stable-diffusion-3", "stable diffusion 3"},
		tags:  []string{"sd 3", "sd3", "stable-diffusion-3", "stable diffusion 3"},
	},
	{
		label: ArchitectureSDXL,
		base:  []string{"sdxl", "stable-diffusion-xl", "stable diffusion xl"},
		tags:  []string{"sdxl", "stable-diffusion-xl", "stable diffusion xl"},
	},
	{
		label: ArchitectureSD15,
		base:  []string{"sd 1.5", "sd1.5", "sd-1.5", "sd15", "stable-diffusion-v1-5", "stable diffusion 1.5", "stable-diffusion-1.5"},
		tags:  []string{"sd 1.5", "sd1.5", "sd15", "stable-diffusion-v1-5", "stable diffusion 1.5"},
	},
	{
		label: ArchitectureSD21,
		base:  []string{"sd 2.1", "sd2.1", "sd-2.1", "sd21", "stable-diffusion-2-1", "stable diffusion 2.1"},
		tags:  []string{"sd 2.1", "sd2.1", "sd21", "stable-diffusion-2-1", "stable diffusion 2.1"},
	},
}

const baseModelTagPrefix = "base_model:"

// baseModelFromTags extracts the authoritative base-model signal from a
// base_model:<value> tag. Adapter and finetune derivations are skipped: they
// name what a model was derived from, not what it runs on top of.
func baseModelFromTags(tags []string) string {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		if !strings.HasPrefix(tag, baseModelTagPrefix) {
			continue
		}
		if strings.Contains(tag, ":adapter:") || strings.Contains(tag, ":finetune:") {
			continue
		}
		value := strings.TrimPrefix(tag, baseModelTagPrefix)
		for {
			switch {
			case strings.HasPrefix(value, "quantized:"):
				value = strings.TrimPrefix(value, "quantized:")
			case strings.HasPrefix(value, "merge:"):
				value = strings.TrimPrefix(value, "merge:")
			default:
				return value
			}
		}
	}
	return ""
}

// DetectArchitecture maps free-text upstream metadata to a canonical family.
// A base_model:<value> tag wins over the explicit base-model field, so both
// upstream schemas classify identically. Total: every input yields a label.
func DetectArchitecture(tags []string, explicitBaseModel string) Architecture {
	base := strings.ToLower(explicitBaseModel)
	if fromTags := baseModelFromTags(tags); fromTags != "" {
		base = fromTags
	}

	lowered := make([]string, 0, len(tags))
	for _, tag := range tags {
		lowered = append(lowered, strings.ToLower(tag))
	}

	for _, rule := range architectureRules {
		if base != "" {
			for _, marker := range rule.base {
				if strings.Contains(base, marker) {
					return rule.label
				}
			}
		}
		for _, tag := range lowered {
			for _, marker := range rule.tags {
				if strings.Contains(tag, marker) {
					return rule.label
				}
			}
		}
	}

	return ArchitectureOther
}

// architecturePrefixes maps a family to the short token used as the filename
// prefix for adapter files.
var architecturePrefixes = map[Architecture]string{
	ArchitectureZImageTurbo:       "zimage",
	ArchitectureHiDream:           "hidream",
	ArchitectureQwenImageEdit2509: "qwen2509",
	ArchitectureQwenImageEdit:     "qwenedit",
	ArchitectureQwenImage:         "qwenimage",
	ArchitectureQwen:              "qwen",
	ArchitectureFluxKontext:       "flux1k",
	ArchitectureFluxFill:          "flux1f",
	ArchitectureFluxSchnell:       "flux1s",
	ArchitectureFluxDev:           "flux1",
	ArchitectureFlux:              "flux1",
	ArchitectureWan22:             "wan22",
	ArchitectureWan21:             "wan21",
	ArchitectureWanVideo:          "wan",
	ArchitectureNoobAI:            "noobai",
	ArchitectureIllustriousXL:     "ilxl",
	ArchitectureIllustrious:       "illustrious",
	ArchitecturePony:              "pony",
	ArchitectureCogVideoX:         "cogvideox",
	ArchitectureHunyuanVideo:      "hunyuan",
	ArchitectureAuraFlow:          "auraflow",
	ArchitectureSD35:              "sd35",
	ArchitectureSD3:               "sd3",
	ArchitectureSDXL:              "sdxl",
	ArchitectureSD15:              "sd15",
	ArchitectureSD21:              "sd21",
}

// Prefix returns the filename prefix token for the family, "unknown" for
// anything without one.
func (a Architecture) Prefix() string {
	if p, ok := architecturePrefixes[a]; ok {
		return p
	}
	return "unknown"
}
