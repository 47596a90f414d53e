package config

const (
	defaultDataDir        = "~/.local/share/shoplens"
	defaultLogDir         = "~/.local/share/shoplens/logs"
	defaultTextModel      = "gemini-2.0-flash"
	defaultImageModel     = "gemini-2.5-flash-image-preview"
	defaultTimeoutSeconds = 120
	defaultMarketplace    = "etsy"
	defaultLanguage       = "en"
	defaultMaxProjects    = 20
	defaultMaxAssets      = 200
	defaultHistoryLimit   = 10
	defaultStoreDomain    = "shoplens.lemonsqueezy.com"
	defaultSuccessURL     = "https://www.shoplens.app/?payment=success"
	defaultCancelURL      = "https://www.shoplens.app/?payment=cancelled"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Gemini: Gemini{
			TextModel:      defaultTextModel,
			ImageModel:     defaultImageModel,
			TimeoutSeconds: defaultTimeoutSeconds,
			Grounding:      true,
		},
		Listing: Listing{
			Marketplace: defaultMarketplace,
			Language:    defaultLanguage,
		},
		Library: Library{
			MaxProjects:  defaultMaxProjects,
			MaxAssets:    defaultMaxAssets,
			HistoryLimit: defaultHistoryLimit,
		},
		Checkout: Checkout{
			StoreDomain: defaultStoreDomain,
			SuccessURL:  defaultSuccessURL,
			CancelURL:   defaultCancelURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
