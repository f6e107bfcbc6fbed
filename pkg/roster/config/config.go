// Package config loads the garrison configuration file: where the source
// roster lives, how its columns are laid out, the letter-to-workbook
// partition map, and the notification and asset settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/grid"
	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/partition"
)

// DefaultPath is where commands look for the config file unless told
// otherwise.
const DefaultPath = "garrison.yaml"

// Config models the garrison.yaml file.
type Config struct {
	Source      SourceConfig      `yaml:"source"`
	Consolidate ConsolidateConfig `yaml:"consolidate"`
	Partitions  PartitionsConfig  `yaml:"partitions"`
	Notify      NotifyConfig      `yaml:"notify"`
	Assets      AssetsConfig      `yaml:"assets"`
	Template    TemplateConfig    `yaml:"template"`
}

// SourceConfig locates the roster sheet and its record columns.
type SourceConfig struct {
	Sheet   string        `yaml:"sheet"`
	Columns ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig names the record columns by letter.
type ColumnsConfig struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Program string `yaml:"program"`
}

// ConsolidateConfig carries the consolidation defaults; the CLI flags
// override them per run.
type ConsolidateConfig struct {
	IDColumn    string `yaml:"id_column"`
	GradeFrom   string `yaml:"grade_from"`
	GradeTo     string `yaml:"grade_to"`
	OutputSheet string `yaml:"output_sheet"`
}

// PartitionsConfig declares the destination workbooks and the letter map.
type PartitionsConfig struct {
	Books   map[string]string `yaml:"books"`
	Letters map[string]string `yaml:"letters"`
}

// NotifyConfig configures the routing-failure alert channel. With no SMTP
// host the alerts go to the run log.
type NotifyConfig struct {
	To   string     `yaml:"to"`
	SMTP SMTPConfig `yaml:"smtp"`
}

type SMTPConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	From        string `yaml:"from"`
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
}

// AssetsConfig locates static assets; Logo is the stable ID of the PNG
// anchored on every student sheet.
type AssetsConfig struct {
	Dir  string `yaml:"dir"`
	Logo string `yaml:"logo"`
}

// TemplateConfig toggles optional template pieces. Nil means the default.
type TemplateConfig struct {
	Legend *bool `yaml:"legend"`
	Logo   *bool `yaml:"logo"`
}

// Default returns the configuration used when no file overrides it. The
// partition map is site-specific and stays empty.
func Default() Config {
	return Config{
		Source: SourceConfig{
			Sheet: "Form Responses",
			Columns: ColumnsConfig{
				ID:      "B",
				Name:    "C",
				Email:   "D",
				Program: "E",
			},
		},
		Consolidate: ConsolidateConfig{
			IDColumn:    "B",
			GradeFrom:   "F",
			GradeTo:     "L",
			OutputSheet: "Consolidated",
		},
	}
}

// Load reads the config file at path, fills defaults, and validates the
// result. A missing file at the default path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the parts of the file that are present. Completeness of
// the partition map is a routing concern, enforced by RoutingMap.
func (c Config) Validate() error {
	if _, err := c.Layout(); err != nil {
		return err
	}
	if _, _, _, err := c.ConsolidateColumns(); err != nil {
		return err
	}
	for letter, id := range c.Partitions.Letters {
		if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
			return fmt.Errorf("partition letter %q: must be a single uppercase letter", letter)
		}
		if _, ok := c.Partitions.Books[id]; !ok {
			return fmt.Errorf("partition letter %s: %w", letter, &partition.UnknownBookError{BookID: id})
		}
	}
	if c.Notify.SMTP.Host != "" {
		if c.Notify.SMTP.From == "" || c.Notify.To == "" {
			return fmt.Errorf("notify: smtp requires both a from and a to address")
		}
	}
	return nil
}

// Layout resolves the record columns into 1-based indices.
func (c Config) Layout() (roster.ColumnLayout, error) {
	var (
		layout roster.ColumnLayout
		err    error
	)
	if layout.ID, err = grid.ParseColumn(c.Source.Columns.ID); err != nil {
		return roster.ColumnLayout{}, fmt.Errorf("source id column: %w", err)
	}
	if layout.Name, err = grid.ParseColumn(c.Source.Columns.Name); err != nil {
		return roster.ColumnLayout{}, fmt.Errorf("source name column: %w", err)
	}
	if layout.Email, err = grid.ParseColumn(c.Source.Columns.Email); err != nil {
		return roster.ColumnLayout{}, fmt.Errorf("source email column: %w", err)
	}
	if layout.Program, err = grid.ParseColumn(c.Source.Columns.Program); err != nil {
		return roster.ColumnLayout{}, fmt.Errorf("source program column: %w", err)
	}
	return layout, nil
}

// ConsolidateColumns resolves the configured consolidation selection.
func (c Config) ConsolidateColumns() (idCol, from, to int, err error) {
	idCol, err = grid.ParseColumn(c.Consolidate.IDColumn)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("consolidate id column: %w", err)
	}
	from, to, err = grid.ParseColumnRange(c.Consolidate.GradeFrom, c.Consolidate.GradeTo)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("consolidate grade range: %w", err)
	}
	return idCol, from, to, nil
}

// RoutingMap builds the partition map and requires it to cover A-Z with
// declared books.
func (c Config) RoutingMap() (partition.Map, error) {
	m := partition.Map{Letters: c.Partitions.Letters}
	if err := m.Validate(c.Partitions.Books); err != nil {
		return partition.Map{}, err
	}
	return m, nil
}
