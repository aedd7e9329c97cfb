package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"schema-validator/internal/dialect"
	"schema-validator/internal/schema"
	"schema-validator/internal/validator"
)

type Settings struct {
	Comparison ComparisonConfig `mapstructure:"comparison"`
	Output     OutputConfig     `mapstructure:"output"`
	Lookup     LookupConfig     `mapstructure:"lookup"`
	Run        RunConfig        `mapstructure:"settings"`
	Databases  []DBProfile      `mapstructure:"databases"`
}

type ComparisonConfig struct {
	Source  string `mapstructure:"source"`
	Target  string `mapstructure:"target"`
	Compare string `mapstructure:"compare"` // comma separated categories
}

type OutputConfig struct {
	Directory    string `mapstructure:"directory"`
	LogFile      string `mapstructure:"log_file"`
	ErrorLogFile string `mapstructure:"error_log_file"`
	LogLevel     string `mapstructure:"log_level"`
}

type LookupConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Folder  string            `mapstructure:"folder"`
	Files   map[string]string `mapstructure:"files"`
}

func (l LookupConfig) toLookup() validator.Lookup {
	return validator.Lookup{Enabled: l.Enabled, Folder: l.Folder, Files: l.Files}
}

type RunConfig struct {
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	Progress     bool          `mapstructure:"progress"`
}

// DBProfile is one named connection. Either DSN or Host must be set.
type DBProfile struct {
	Name       string                 `mapstructure:"name"`
	Driver     string                 `mapstructure:"driver"`
	Host       string                 `mapstructure:"host"`
	Port       int                    `mapstructure:"port"`
	Username   string                 `mapstructure:"username"`
	Password   string                 `mapstructure:"password"`
	Database   string                 `mapstructure:"database"` // database, or service name for oracle
	SchemaName string                 `mapstructure:"schema_name"`
	SSLMode    string                 `mapstructure:"sslmode"`
	DSN        string                 `mapstructure:"dsn"`
	Queries    dialect.CatalogQueries `mapstructure:"queries"`
}

// Schema is the schema to compare; MySQL falls back to the database name.
func (p DBProfile) Schema() string {
	if p.SchemaName == "" && (p.Driver == "mysql" || p.Driver == "") {
		return p.Database
	}
	return p.SchemaName
}

// LoadSettings decodes the configuration, expands $VARS in credentials and
// validates every profile.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	seen := make(map[string]bool)
	for i := range s.Databases {
		p := &s.Databases[i]
		p.Driver = strings.ToLower(strings.TrimSpace(p.Driver))
		p.Host = os.ExpandEnv(p.Host)
		p.Username = os.ExpandEnv(p.Username)
		p.Password = os.ExpandEnv(p.Password)
		p.DSN = os.ExpandEnv(p.DSN)

		if p.Name == "" {
			return nil, fmt.Errorf("databases[%d]: name is required", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate database profile %q", p.Name)
		}
		seen[p.Name] = true

		if !supportedDriver(p.Driver) {
			return nil, fmt.Errorf("profile %s: %w: %q", p.Name, ErrUnsupportedDriver, p.Driver)
		}
		if p.DSN == "" && p.Host == "" {
			return nil, fmt.Errorf("profile %s: either dsn or host is required", p.Name)
		}
	}
	return &s, nil
}

// Profile returns the named profile.
func (s *Settings) Profile(name string) (*DBProfile, error) {
	for i := range s.Databases {
		if s.Databases[i].Name == name {
			return &s.Databases[i], nil
		}
	}
	return nil, fmt.Errorf("database profile %q not found in config", name)
}

// ComparisonPlan resolves the source and target profiles and the category list.
func (s *Settings) ComparisonPlan() (src, tgt *DBProfile, kinds []schema.Kind, err error) {
	if s.Comparison.Source == "" || s.Comparison.Target == "" {
		return nil, nil, nil, fmt.Errorf("comparison.source and comparison.target are required")
	}
	if src, err = s.Profile(s.Comparison.Source); err != nil {
		return nil, nil, nil, err
	}
	if tgt, err = s.Profile(s.Comparison.Target); err != nil {
		return nil, nil, nil, err
	}
	if kinds, err = schema.ParseCategories(s.Comparison.Compare); err != nil {
		return nil, nil, nil, err
	}
	return src, tgt, kinds, nil
}
