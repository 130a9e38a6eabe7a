package cli

import (
	"time"

	"github.com/rs/zerolog/log"

	cliContext "github.com/modelscout/modelscout/core/cli/context"
	"github.com/modelscout/modelscout/core/clients/civitai"
	"github.com/modelscout/modelscout/core/clients/huggingface"
	"github.com/modelscout/modelscout/core/config"
	"github.com/modelscout/modelscout/core/http"
	"github.com/modelscout/modelscout/core/services"
	"github.com/modelscout/modelscout/internal"
)

// CatalogFlags are the upstream connection settings shared by the run and
// export commands.
type CatalogFlags struct {
	CivitaiEndpoint     string        `env:"MODELSCOUT_CIVITAI_ENDPOINT" help:"Override the Civitai API endpoint" group:"catalogs"`
	CivitaiToken        string        `env:"MODELSCOUT_CIVITAI_TOKEN,CIVITAI_TOKEN" help:"Civitai API token, passed through to the catalog untouched" group:"catalogs"`
	HuggingfaceEndpoint string        `env:"MODELSCOUT_HUGGINGFACE_ENDPOINT" help:"Override the Hugging Face Hub endpoint" group:"catalogs"`
	HuggingfaceToken    string        `env:"MODELSCOUT_HUGGINGFACE_TOKEN,HF_TOKEN" help:"Hugging Face Hub token, passed through to the catalog untouched" group:"catalogs"`
	PageSize            int           `env:"MODELSCOUT_PAGE_SIZE" default:"100" help:"Page size requested from the upstream catalogs" group:"catalogs"`
	MaxResults          int           `env:"MODELSCOUT_MAX_RESULTS" default:"500" help:"Cap on the number of models fetched per search" group:"catalogs"`
	MaxRetries          int           `env:"MODELSCOUT_MAX_RETRIES" default:"3" help:"Retries on rate-limited or failing upstream requests" group:"catalogs"`
	RequestDelay        time.Duration `env:"MODELSCOUT_REQUEST_DELAY" default:"500ms" help:"Delay between paged upstream requests" group:"catalogs"`
}

// options turns the shared flags into config options.
func (f *CatalogFlags) options() []config.AppOption {
	return []config.AppOption{
		config.WithCivitaiEndpoint(f.CivitaiEndpoint),
		config.WithCivitaiToken(f.CivitaiToken),
		config.WithHuggingFaceEndpoint(f.HuggingfaceEndpoint),
		config.WithHuggingFaceToken(f.HuggingfaceToken),
		config.WithPageSize(f.PageSize),
		config.WithMaxResults(f.MaxResults),
		config.WithMaxRetries(f.MaxRetries),
		config.WithRequestDelay(f.RequestDelay),
	}
}

// newCatalogService wires the two catalog adapters from the resolved config.
func newCatalogService(appConfig *config.ApplicationConfig) *services.CatalogService {
	civitaiClient := civitai.New(
		civitai.WithEndpoint(appConfig.CivitaiEndpoint),
		civitai.WithToken(appConfig.CivitaiToken),
		civitai.WithPageSize(appConfig.PageSize),
		civitai.WithMaxRetries(appConfig.MaxRetries),
		civitai.WithRequestDelay(appConfig.RequestDelay),
	)
	hfClient := huggingface.New(
		huggingface.WithEndpoint(appConfig.HuggingFaceEndpoint),
		huggingface.WithToken(appConfig.HuggingFaceToken),
		huggingface.WithPageSize(appConfig.PageSize),
		huggingface.WithMaxRetries(appConfig.MaxRetries),
		huggingface.WithRequestDelay(appConfig.RequestDelay),
	)
	return services.NewCatalogService(appConfig.SessionTTL, civitaiClient, hfClient)
}

type RunCMD struct {
	CatalogFlags `embed:""`

	Address      string        `env:"MODELSCOUT_ADDRESS,ADDRESS" default:":8099" help:"Bind address for the API server" group:"api"`
	ConfigFile   string        `env:"MODELSCOUT_CONFIG_FILE" help:"YAML config file" group:"api"`
	CORS         bool          `env:"MODELSCOUT_CORS,CORS" help:"Enable CORS for the API" group:"api"`
	DisableWebUI bool          `env:"MODELSCOUT_DISABLE_WEBUI" default:"false" help:"Serve only the JSON API, no static UI" group:"api"`
	SessionTTL   time.Duration `env:"MODELSCOUT_SESSION_TTL" default:"30m" help:"How long cached search sessions stay exportable" group:"api"`
}

func (r *RunCMD) Run(ctx *cliContext.Context) error {
	// Flags (and their env defaults) first, the config file last: every flag
	// carries a default, so the file has to overlay them to be usable at all.
	opts := r.CatalogFlags.options()
	opts = append(opts,
		config.WithAddress(r.Address),
		config.WithCors(r.CORS),
		config.WithDisableWebUI(r.DisableWebUI),
		config.WithSessionTTL(r.SessionTTL),
		config.WithConfigFile(r.ConfigFile),
	)
	appConfig := config.NewApplicationConfig(opts...)

	catalogService := newCatalogService(appConfig)

	app, err := http.API(appConfig, catalogService)
	if err != nil {
		return err
	}

	log.Info().Msgf("modelscout version: %s", internal.PrintableVersion())
	log.Info().Str("address", appConfig.Address).Msg("starting API server")
	return app.Start(appConfig.Address)
}
