package catalog_test

import (
	. "github.com/modelscout/modelscout/core/catalog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SanitizeName", func() {
	Context("without term stripping", func() {
		It("lower-cases and underscores", func() {
			Expect(SanitizeName("My Cool Model!!", false)).To(Equal("my_cool_model"))
		})

		It("collapses separator runs and trims the edges", func() {
			Expect(SanitizeName("a---b__c", false)).To(Equal("a_b_c"))
			Expect(SanitizeName("  spaced   out  ", false)).To(Equal("spaced_out"))
			Expect(SanitizeName("__wrapped__", false)).To(Equal("wrapped"))
		})
	})

	Context("with term stripping", func() {
		It("removes architecture, type and version jargon", func() {
			Expect(SanitizeName("Flux1 SuperRealism LoRA v2", true)).To(Equal("superrealism"))
		})

		It("keeps ordinary words untouched", func() {
			Expect(SanitizeName("Best Anime Style", true)).To(Equal("best_anime_style"))
		})

		It("strips longer terms before their substring terms", func() {
			// "illustrious xl" goes as a whole, not as "illustrious" plus a
			// leftover "xl" fragment glued to the name.
			Expect(SanitizeName("Illustrious XL Detailer", true)).To(Equal("detailer"))
		})

		It("does not strip terms embedded in larger words", func() {
			// "sd" and "xl" are only removed as standalone words.
			Expect(SanitizeName("wisdom pixel", true)).To(Equal("wisdom_pixel"))
		})

		It("falls back to the unstripped name when stripping removes everything", func() {
			Expect(SanitizeName("XL", true)).To(Equal("xl"))
			Expect(SanitizeName("SDXL LoRA v2", true)).To(Equal("sdxl_lora_v2"))
		})

		It("is idempotent", func() {
			for _, name := range []string{
				"Flux1 SuperRealism LoRA v2",
				"Best Anime Style",
				"Illustrious XL Detailer",
				"XL",
				"Pony Realism fp16 safetensors",
			} {
				once := SanitizeName(name, true)
				Expect(SanitizeName(once, true)).To(Equal(once), "input %q", name)
			}
		})
	})
})
