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
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

type HCLParser struct{}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// envObject exposes the process environment to HCL as `env.NAME`
func envObject() cty.Value {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Replace *struct {
			Sheet     string `hcl:"sheet,optional"`
			OldColumn string `hcl:"old_column,optional"`
			NewColumn string `hcl:"new_column,optional"`
			InPlace   bool   `hcl:"in_place,optional"`
			Backup    bool   `hcl:"backup,optional"`
		} `hcl:"replace,block"`
		Rename *struct {
			Sheet     string `hcl:"sheet,optional"`
			OldColumn string `hcl:"old_column,optional"`
			NewColumn string `hcl:"new_column,optional"`
			LogDir    string `hcl:"log_dir,optional"`
			NoReveal  bool   `hcl:"no_reveal,optional"`
		} `hcl:"rename,block"`
		Count *struct {
			Categories []struct {
				Name       string   `hcl:"name,label"`
				Extensions []string `hcl:"extensions"`
			} `hcl:"category,block"`
			CommentPrefixes []string `hcl:"comment_prefixes,optional"`
			Exclude         []string `hcl:"exclude,optional"`
		} `hcl:"loc,block"`
		Copy *struct {
			IgnorePatterns []string `hcl:"ignore_patterns,optional"`
		} `hcl:"copy,block"`
		Tools *struct {
			Dir        string   `hcl:"dir,optional"`
			Extensions []string `hcl:"extensions,optional"`
		} `hcl:"tools,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}
	if r := hclCfg.Replace; r != nil {
		cfg.Replace = ReplaceArgs{
			Sheet:     r.Sheet,
			OldColumn: r.OldColumn,
			NewColumn: r.NewColumn,
			InPlace:   r.InPlace,
			Backup:    r.Backup,
		}
	}
	if r := hclCfg.Rename; r != nil {
		cfg.Rename = RenameArgs{
			Sheet:     r.Sheet,
			OldColumn: r.OldColumn,
			NewColumn: r.NewColumn,
			LogDir:    r.LogDir,
			NoReveal:  r.NoReveal,
		}
	}
	if c := hclCfg.Count; c != nil {
		cfg.Count.CommentPrefixes = c.CommentPrefixes
		cfg.Count.Exclude = c.Exclude
		for _, cat := range c.Categories {
			cfg.Count.Categories = append(cfg.Count.Categories, Category{
				Name:       cat.Name,
				Extensions: cat.Extensions,
			})
		}
	}
	if c := hclCfg.Copy; c != nil {
		cfg.Copy.IgnorePatterns = c.IgnorePatterns
	}
	if t := hclCfg.Tools; t != nil {
		cfg.Tools = ToolsArgs{
			Dir:        t.Dir,
			Extensions: t.Extensions,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
