package civitai_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/modelscout/modelscout/core/catalog"
	"github.com/modelscout/modelscout/core/clients/civitai"
)

const pageOne = `{
  "items": [
    {
      "id": 101,
      "name": "Best Anime Style",
      "type": "LORA",
      "tags": ["style", "base_model:sdxl 1.0"],
      "modelVersions": [
        {
          "id": 2001,
          "name": "v1.0",
          "baseModel": "SDXL 1.0",
          "files": [
            {"name": "best.safetensors", "sizeKB": 144000, "downloadUrl": "https://dl.example/101"}
          ],
          "images": [{"url": "https://img.example/101.png"}]
        }
      ]
    }
  ],
  "metadata": {"nextCursor": "abc"}
}`

const pageTwo = `{
  "items": [
    {
      "id": 101,
      "name": "Best Anime Style",
      "type": "LORA",
      "tags": [],
      "modelVersions": []
    },
    {
      "id": 202,
      "name": "Photo Checkpoint",
      "type": "Checkpoint",
      "tags": [],
      "modelVersions": []
    }
  ],
  "metadata": {}
}`

var _ = Describe("Civitai client", func() {
	var (
		server   *httptest.Server
		requests []*http.Request
	)

	BeforeEach(func() {
		requests = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests = append(requests, r.Clone(context.Background()))
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("cursor") == "abc" {
				fmt.Fprint(w, pageTwo)
				return
			}
			fmt.Fprint(w, pageOne)
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	newClient := func(opts ...civitai.Option) *civitai.Client {
		opts = append([]civitai.Option{
			civitai.WithEndpoint(server.URL),
			civitai.WithRequestDelay(0),
		}, opts...)
		return civitai.New(opts...)
	}

	Context("SearchPage", func() {
		It("converts wire models and reports the next cursor", func() {
			page, err := newClient().SearchPage(context.Background(), catalog.SearchParams{Query: "anime"})
			Expect(err).ToNot(HaveOccurred())
			Expect(page.NextCursor).To(Equal("abc"))
			Expect(page.Items).To(HaveLen(1))

			m := page.Items[0]
			Expect(m.ID).To(Equal("101"))
			Expect(m.Catalog).To(Equal("civitai"))
			Expect(m.Name).To(Equal("Best Anime Style"))
			Expect(m.Type).To(Equal("LORA"))
			Expect(m.Tags).To(ContainElement("base_model:sdxl 1.0"))

			version := m.PrimaryVersion()
			Expect(version).ToNot(BeNil())
			Expect(version.BaseModel).To(Equal("SDXL 1.0"))
			Expect(version.PrimaryFile().DownloadURL).To(Equal("https://dl.example/101"))
			Expect(version.PreviewURL()).To(Equal("https://img.example/101.png"))
		})

		It("encodes search parameters on the request", func() {
			_, err := newClient(civitai.WithPageSize(25)).SearchPage(context.Background(), catalog.SearchParams{
				Query:      "anime",
				Types:      []string{"LORA", "Checkpoint"},
				BaseModels: []string{"SDXL 1.0"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(requests).To(HaveLen(1))

			q := requests[0].URL.Query()
			Expect(q.Get("query")).To(Equal("anime"))
			Expect(q.Get("limit")).To(Equal("25"))
			Expect(q["types"]).To(Equal([]string{"LORA", "Checkpoint"}))
			Expect(q["baseModels"]).To(Equal([]string{"SDXL 1.0"}))
			Expect(q.Get("nsfw")).To(Equal("false"))
		})

		It("omits the nsfw filter when NSFW results are requested", func() {
			_, err := newClient().SearchPage(context.Background(), catalog.SearchParams{NSFW: true})
			Expect(err).ToNot(HaveOccurred())
			Expect(requests[0].URL.Query().Has("nsfw")).To(BeFalse())
		})

		It("sends the API token as a Bearer credential", func() {
			_, err := newClient(civitai.WithToken("tok")).SearchPage(context.Background(), catalog.SearchParams{})
			Expect(err).ToNot(HaveOccurred())
			Expect(requests[0].Header.Get("Authorization")).To(Equal("Bearer tok"))
		})
	})

	Context("SearchAll", func() {
		It("follows cursors and deduplicates repeated models", func() {
			models, err := newClient().SearchAll(context.Background(), catalog.SearchParams{}, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(requests).To(HaveLen(2))

			Expect(models).To(HaveLen(2))
			Expect(models[0].ID).To(Equal("101"))
			Expect(models[1].ID).To(Equal("202"))
		})

		It("stops once the item cap is reached", func() {
			models, err := newClient().SearchAll(context.Background(), catalog.SearchParams{}, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(requests).To(HaveLen(1))
			Expect(models).To(HaveLen(1))
		})

		It("stops between pages when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var calls int
			paged := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				cancel()
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, pageOne)
			}))
			defer paged.Close()

			c := civitai.New(
				civitai.WithEndpoint(paged.URL),
				civitai.WithRequestDelay(time.Hour),
			)
			_, err := c.SearchAll(ctx, catalog.SearchParams{}, 0)
			Expect(err).To(MatchError(context.Canceled))
			Expect(calls).To(Equal(1))
		})
	})
})
