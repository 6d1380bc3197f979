// Package config provides configuration management for the SheetDeck CLI.
package config

// Default configuration values.
const (
	DefaultPort        = 8765
	DefaultPreviewRows = 10
	DefaultMaxUploadMB = 32
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "sheetdeck.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "sheetdeck.yml"

// Config holds all CLI configuration options.
type Config struct {
	Port        int    `koanf:"port"`
	AutoOpen    bool   `koanf:"auto_open"`
	Open        string `koanf:"open"`
	Watch       bool   `koanf:"watch"`
	PreviewRows int    `koanf:"preview_rows"`
	MaxUploadMB int    `koanf:"max_upload_mb"`
	Verbose     bool   `koanf:"verbose"`
}

// ApplyDefaults fills zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.PreviewRows == 0 {
		c.PreviewRows = DefaultPreviewRows
	}
	if c.MaxUploadMB == 0 {
		c.MaxUploadMB = DefaultMaxUploadMB
	}
}
