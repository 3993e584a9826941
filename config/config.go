package config

// Config structure
type Config struct {
	Language     string `json:"language"`     // UI and message language: "한국어" or "English"
	FontFamily   string `json:"fontFamily"`   // Typeface forced onto every rendered run
	TemplatePath string `json:"templatePath"` // Template .pptx; empty selects the bundled template
	LastExcelDir string `json:"lastExcelDir"` // Directory of the last opened spreadsheet
	LastSaveDir  string `json:"lastSaveDir"`  // Directory the last deck was saved to
	LogDir       string `json:"logDir"`       // Directory for run log files
	DetailedLog  bool   `json:"detailedLog"`  // Log template analysis and per-run replacements
}

const (
	DefaultLanguage   = "한국어"
	DefaultFontFamily = "맑은 고딕"
)

// Default returns the configuration used when no config file exists yet.
func Default(storageDir string) Config {
	return Config{
		Language:   DefaultLanguage,
		FontFamily: DefaultFontFamily,
		LogDir:     storageDir,
	}
}

// applyDefaults fills empty fields of a loaded configuration.
func (c *Config) applyDefaults(storageDir string) {
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.FontFamily == "" {
		c.FontFamily = DefaultFontFamily
	}
	if c.LogDir == "" {
		c.LogDir = storageDir
	}
}
