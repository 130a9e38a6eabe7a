package catalog_test

import (
	. "github.com/modelscout/modelscout/core/catalog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DetectArchitecture", func() {
	It("falls back to Other when nothing matches", func() {
		Expect(DetectArchitecture(nil, "")).To(Equal(ArchitectureOther))
		Expect(DetectArchitecture([]string{"anime", "style"}, "")).To(Equal(ArchitectureOther))
		Expect(DetectArchitecture([]string{"", "🎨"}, "some custom arch")).To(Equal(ArchitectureOther))
	})

	It("detects families from the explicit base-model field", func() {
		Expect(DetectArchitecture(nil, "SDXL 1.0")).To(Equal(ArchitectureSDXL))
		Expect(DetectArchitecture(nil, "SD 1.5")).To(Equal(ArchitectureSD15))
		Expect(DetectArchitecture(nil, "Pony")).To(Equal(ArchitecturePony))
		Expect(DetectArchitecture(nil, "HiDream")).To(Equal(ArchitectureHiDream))
		Expect(DetectArchitecture(nil, "AuraFlow")).To(Equal(ArchitectureAuraFlow))
	})

	It("is case-insensitive", func() {
		Expect(DetectArchitecture(nil, "sDxL")).To(Equal(ArchitectureSDXL))
		Expect(DetectArchitecture([]string{"PONY"}, "")).To(Equal(ArchitecturePony))
	})

	It("detects families from tags alone", func() {
		Expect(DetectArchitecture([]string{"anime", "illustrious"}, "")).To(Equal(ArchitectureIllustrious))
		Expect(DetectArchitecture([]string{"hunyuan video lora"}, "")).To(Equal(ArchitectureHunyuanVideo))
	})

	It("prefers the specific variant over its generic parent", func() {
		Expect(DetectArchitecture(nil, "Flux.1 Kontext")).To(Equal(ArchitectureFluxKontext))
		Expect(DetectArchitecture(nil, "Flux.1 Schnell")).To(Equal(ArchitectureFluxSchnell))
		Expect(DetectArchitecture(nil, "Flux.1 D")).To(Equal(ArchitectureFluxDev))
		Expect(DetectArchitecture(nil, "Flux.1")).To(Equal(ArchitectureFlux))

		Expect(DetectArchitecture(nil, "Qwen Image Edit 2509")).To(Equal(ArchitectureQwenImageEdit2509))
		Expect(DetectArchitecture(nil, "Qwen Image Edit")).To(Equal(ArchitectureQwenImageEdit))
		Expect(DetectArchitecture(nil, "Qwen Image")).To(Equal(ArchitectureQwenImage))

		Expect(DetectArchitecture(nil, "SD 3.5 Large")).To(Equal(ArchitectureSD35))
		Expect(DetectArchitecture(nil, "SD 3")).To(Equal(ArchitectureSD3))

		Expect(DetectArchitecture(nil, "Wan Video 2.2 T2V-A14B")).To(Equal(ArchitectureWan22))
		Expect(DetectArchitecture(nil, "Wan Video 2.1 T2V-1.3B")).To(Equal(ArchitectureWan21))
		Expect(DetectArchitecture(nil, "Wan Video")).To(Equal(ArchitectureWanVideo))
	})

	It("classifies NoobAI as NoobAI even when Illustrious markers are present", func() {
		// NoobAI is trained on Illustrious and must not be classified upward.
		Expect(DetectArchitecture([]string{"illustrious"}, "noobai-xl-v1")).To(Equal(ArchitectureNoobAI))
	})

	It("keeps Illustrious XL distinct from plain Illustrious", func() {
		Expect(DetectArchitecture(nil, "Illustrious XL")).To(Equal(ArchitectureIllustriousXL))
		Expect(DetectArchitecture(nil, "Illustrious")).To(Equal(ArchitectureIllustrious))
	})

	It("lets a base_model tag override the explicit base-model field", func() {
		tags := []string{"lora", "base_model:stabilityai/stable-diffusion-xl-base-1.0"}
		Expect(DetectArchitecture(tags, "Flux.1 D")).To(Equal(ArchitectureSDXL))
	})

	It("strips quantized and merge prefixes from the tag value", func() {
		Expect(DetectArchitecture([]string{"base_model:quantized:Qwen/Qwen-Image"}, "")).To(Equal(ArchitectureQwenImage))
		Expect(DetectArchitecture([]string{"base_model:merge:stabilityai/stable-diffusion-xl-base-1.0"}, "")).To(Equal(ArchitectureSDXL))
	})

	It("ignores adapter and finetune base_model tags for extraction", func() {
		// The adapter tag names an SDXL repo, but the explicit field still
		// wins because adapter derivations are not extracted. Pony precedes
		// SDXL in the precedence order, so the loose tag match cannot flip
		// the result either.
		tags := []string{"base_model:adapter:some-org/sdxl-base"}
		Expect(DetectArchitecture(tags, "Pony V6")).To(Equal(ArchitecturePony))
	})

	It("detects video families", func() {
		Expect(DetectArchitecture(nil, "CogVideoX")).To(Equal(ArchitectureCogVideoX))
		Expect(DetectArchitecture([]string{"cogvideox-5b"}, "")).To(Equal(ArchitectureCogVideoX))
		Expect(DetectArchitecture(nil, "HunyuanVideo")).To(Equal(ArchitectureHunyuanVideo))
	})

	It("detects Z-Image Turbo ahead of everything", func() {
		Expect(DetectArchitecture(nil, "Z-Image Turbo")).To(Equal(ArchitectureZImageTurbo))
	})
})

var _ = Describe("Architecture prefixes", func() {
	It("maps known families to short tokens", func() {
		Expect(ArchitectureFluxDev.Prefix()).To(Equal("flux1"))
		Expect(ArchitectureSDXL.Prefix()).To(Equal("sdxl"))
		Expect(ArchitecturePony.Prefix()).To(Equal("pony"))
		Expect(ArchitectureNoobAI.Prefix()).To(Equal("noobai"))
	})

	It("falls back to unknown", func() {
		Expect(ArchitectureOther.Prefix()).To(Equal("unknown"))
		Expect(Architecture("bogus").Prefix()).To(Equal("unknown"))
	})
})
