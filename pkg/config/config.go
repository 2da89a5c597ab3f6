// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultFiles are looked up, in order, when no config file is given
var DefaultFiles = []string{".custool.yaml", ".custool.yml", ".custool.json", ".custool.hcl"}

// 🔄 ReplaceArgs configures the content replacer
type ReplaceArgs struct {
	Sheet     string `json:"sheet" yaml:"sheet"`
	OldColumn string `json:"old_column" yaml:"old_column"`
	NewColumn string `json:"new_column" yaml:"new_column"`
	InPlace   bool   `json:"in_place" yaml:"in_place"`
	Backup    bool   `json:"backup" yaml:"backup"`
}

// 🏷️ RenameArgs configures the file renamer. An empty Sheet is the first sheet.
type RenameArgs struct {
	Sheet     string `json:"sheet" yaml:"sheet"`
	OldColumn string `json:"old_column" yaml:"old_column"`
	NewColumn string `json:"new_column" yaml:"new_column"`
	LogDir    string `json:"log_dir" yaml:"log_dir"`
	NoReveal  bool   `json:"no_reveal" yaml:"no_reveal"`
}

// 📂 Category groups files by extension for line counting
type Category struct {
	Name       string   `json:"name" yaml:"name"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// 📊 CountArgs configures the line counter
type CountArgs struct {
	Categories      []Category `json:"categories" yaml:"categories"`
	CommentPrefixes []string   `json:"comment_prefixes" yaml:"comment_prefixes"`
	Exclude         []string   `json:"exclude" yaml:"exclude"`
}

// 📦 CopyArgs configures the copier
type CopyArgs struct {
	IgnorePatterns []string `json:"ignore_patterns" yaml:"ignore_patterns"` // Glob patterns for files to ignore
}

// 🧰 ToolsArgs configures the tool launcher
type ToolsArgs struct {
	Dir        string   `json:"dir" yaml:"dir"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Replace ReplaceArgs `json:"replace" yaml:"replace"`
	Rename  RenameArgs  `json:"rename" yaml:"rename"`
	Count   CountArgs   `json:"loc" yaml:"loc"`
	Copy    CopyArgs    `json:"copy" yaml:"copy"`
	Tools   ToolsArgs   `json:"tools" yaml:"tools"`
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads path, or the first of DefaultFiles found in dir
// when path is empty. Nothing found gives the built-in configuration.
func LoadOrDefault(ctx context.Context, dir, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return Load(ctx, candidate)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Replace.Sheet == "" {
		cfg.Replace.Sheet = "Sheet1"
	}
	if cfg.Replace.OldColumn == "" {
		cfg.Replace.OldColumn = "old_content"
	}
	if cfg.Replace.NewColumn == "" {
		cfg.Replace.NewColumn = "new_content"
	}

	if cfg.Rename.OldColumn == "" {
		cfg.Rename.OldColumn = "old_name"
	}
	if cfg.Rename.NewColumn == "" {
		cfg.Rename.NewColumn = "new_name"
	}
	if cfg.Rename.LogDir == "" {
		cfg.Rename.LogDir = defaultLogDir()
	}
	cfg.Rename.LogDir = filepath.Clean(cfg.Rename.LogDir)

	if len(cfg.Count.Categories) == 0 {
		cfg.Count.Categories = []Category{
			{Name: "Header Files", Extensions: []string{".h"}},
			{Name: "Source Files", Extensions: []string{".cpp"}},
		}
	}
	if len(cfg.Count.CommentPrefixes) == 0 {
		cfg.Count.CommentPrefixes = []string{"#", "//", "/*", "*", "*/"}
	}
	seen := make(map[string]string)
	for i, c := range cfg.Count.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return errors.Errorf("loc.categories[%d].name is required", i)
		}
		if len(c.Extensions) == 0 {
			return errors.Errorf("loc.categories[%d].extensions is required", i)
		}
		for j, ext := range c.Extensions {
			ext = normalizeExt(ext)
			if other, ok := seen[ext]; ok {
				return errors.Errorf("extension %s is in both %q and %q", ext, other, c.Name)
			}
			seen[ext] = c.Name
			cfg.Count.Categories[i].Extensions[j] = ext
		}
	}

	if cfg.Tools.Dir == "" {
		cfg.Tools.Dir = "."
	}
	if len(cfg.Tools.Extensions) == 0 {
		cfg.Tools.Extensions = []string{".bat", ".py", ".exe", ".ps1", ".sh"}
	}
	for i, ext := range cfg.Tools.Extensions {
		cfg.Tools.Extensions[i] = normalizeExt(ext)
	}

	return nil
}

// normalizeExt lower-cases ext and makes sure it starts with a dot
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func defaultLogDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "custool", "rename-logs")
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
