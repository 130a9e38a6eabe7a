package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/modelscout/modelscout/core/catalog"
	cliContext "github.com/modelscout/modelscout/core/cli/context"
	"github.com/modelscout/modelscout/core/config"
	"github.com/modelscout/modelscout/core/export"
)

type ExportCMD struct {
	CatalogFlags `embed:""`

	Query      string   `arg:"" optional:"" help:"Search query sent to the catalog"`
	Catalog    string   `env:"MODELSCOUT_CATALOG" default:"civitai" enum:"civitai,huggingface" help:"Catalog to search [${enum}]" group:"export"`
	Types      []string `help:"Restrict to upstream model types (e.g. Checkpoint, LORA)" group:"export"`
	BaseModels []string `help:"Restrict to upstream base models (Civitai only)" group:"export"`
	NSFW       bool     `help:"Include NSFW-flagged models" group:"export"`
	Output     string   `short:"o" default:"manifest.json" help:"Manifest file to write" group:"export"`
	Format     string   `enum:",json,csv" default:"" help:"Manifest format, inferred from the output extension when empty" group:"export"`
}

func (e *ExportCMD) Run(ctx *cliContext.Context) error {
	appConfig := config.NewApplicationConfig(e.CatalogFlags.options()...)
	catalogService := newCatalogService(appConfig)

	client, err := catalogService.Client(e.Catalog)
	if err != nil {
		return err
	}

	params := catalog.SearchParams{
		Query:      e.Query,
		Types:      e.Types,
		BaseModels: e.BaseModels,
		NSFW:       e.NSFW,
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("fetching models from %s", e.Catalog)),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	// Paged fetch by hand instead of SearchAll, so the bar can tick between
	// pages.
	var models catalog.Models
	for {
		page, err := client.SearchPage(appConfig.Context, params)
		if err != nil {
			return err
		}
		models = append(models, page.Items...)
		models = models.DedupeByID()
		if err := bar.Set(len(models)); err != nil {
			log.Debug().Err(err).Msg("progress bar update failed")
		}

		if appConfig.MaxResults > 0 && len(models) >= appConfig.MaxResults {
			models = models[:appConfig.MaxResults]
			break
		}
		if page.NextCursor == "" {
			break
		}
		params.Cursor = page.NextCursor
		time.Sleep(appConfig.RequestDelay)
	}
	_ = bar.Finish()

	manifest := catalog.BuildManifest(models)
	if err := export.WriteFile(e.Output, manifest, e.Format); err != nil {
		return err
	}

	log.Info().Int("fetched", len(models)).Int("exported", len(manifest.Models)).Str("output", e.Output).Msg("manifest written")
	return nil
}
