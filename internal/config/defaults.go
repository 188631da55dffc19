package config

const (
	defaultNotesDir       = "~/notes/bookmarks"
	defaultAttachmentsDir = "~/notes/attachments"
	defaultStateDir       = "~/.local/share/webmark"
	defaultLogDir         = "~/.local/share/webmark/logs"

	defaultReaderBackend = "remote"
	defaultReaderBaseURL = "https://r.jina.ai"
	defaultSearchBaseURL = "https://s.jina.ai"
	defaultReaderTimeout = 60

	defaultLLMBaseURL = "https://api.openai.com/v1"
	defaultLLMModel   = "gpt-4o-mini"
	defaultLLMTimeout = 120

	defaultScreenshotBackend = "remote"
	defaultScreenshotTimeout = 60
	defaultViewportWidth     = 1280
	defaultViewportHeight    = 800

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			NotesDir:       defaultNotesDir,
			AttachmentsDir: defaultAttachmentsDir,
			StateDir:       defaultStateDir,
			LogDir:         defaultLogDir,
		},
		Reader: Reader{
			Backend:        defaultReaderBackend,
			BaseURL:        defaultReaderBaseURL,
			SearchURL:      defaultSearchBaseURL,
			TimeoutSeconds: defaultReaderTimeout,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Screenshot: Screenshot{
			Backend:        defaultScreenshotBackend,
			TimeoutSeconds: defaultScreenshotTimeout,
			ViewportWidth:  defaultViewportWidth,
			ViewportHeight: defaultViewportHeight,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
