package types

// OutputFormat selects the serialization of a generated template.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Extension returns the file extension (with dot) written for the format.
func (f OutputFormat) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Valid reports whether f names a supported format.
func (f OutputFormat) Valid() bool {
	return f == FormatJSON || f == FormatYAML
}

// ConvertConfig holds settings for the conversion stage.
type ConvertConfig struct {
	// Format selects the output serialization: json (default) or yaml.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Title, when set, is written as the template's exportTitle.
	Title string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`

	// Output overrides the derived output path. Only valid for a single input.
	Output string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
}

// CatalogDriver names the database/sql driver backing the catalog.
type CatalogDriver string

const (
	DriverSQLite   CatalogDriver = "sqlite3"
	DriverPostgres CatalogDriver = "postgres"
)

// CatalogConfig holds settings for the template catalog.
type CatalogConfig struct {
	// Driver is sqlite3 (default) or postgres.
	Driver CatalogDriver `json:"driver" yaml:"driver" mapstructure:"driver"`

	// DSN is the data source name. For sqlite3 it is a file path
	// (default ~/.config/prefy/catalog.db).
	DSN string `json:"dsn" yaml:"dsn" mapstructure:"dsn"`

	// MaxResults caps search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds settings for the stderr debug logger.
type LogConfig struct {
	// Level is debug, info, warn (default), or error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text (default), json, or logfmt.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every section of prefy.yaml.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
