// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/suggestrank/internal/config"
	"github.com/tomtom215/suggestrank/internal/models"
	"github.com/tomtom215/suggestrank/internal/ranking"
	"github.com/tomtom215/suggestrank/internal/ranking/standard"
	"github.com/tomtom215/suggestrank/internal/validation"
)

// Output formats.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type rootOptions struct {
	output     string
	configPath string
	verbose    bool
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           "rankctl",
		Short:         "Rank suggestions offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if opts.output != outputJSON && opts.output != outputYAML {
				return fmt.Errorf("unsupported output %q (json or yaml)", opts.output)
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")
	flags.StringVar(&opts.configPath, "config", "", "YAML config file with ranking settings")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log ranking details to stderr")

	cmd.AddCommand(
		newPersonalizedCmd(opts),
		newTrendingCmd(opts),
		newContextCmd(opts),
	)

	return cmd
}

// engine builds an engine from the defaults or --config.
func (o *rootOptions) engine() (*ranking.Engine, error) {
	rankingCfg := ranking.DefaultConfig()
	if o.configPath != "" {
		cfg, err := config.LoadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		rankingCfg = cfg.RankingEngineConfig()
	}

	logger := zerolog.Nop()
	if o.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: o.stderr}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return standard.NewEngine(rankingCfg, logger)
}

// write renders v in the selected format. YAML output keeps the JSON field
// names by going through a generic value.
func (o *rootOptions) write(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if o.output == outputJSON {
		_, err = fmt.Fprintln(o.stdout, string(data))
		return err
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	enc := yaml.NewEncoder(o.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// readInput returns the trimmed contents of path. "-" reads stdin.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return data, nil
}

// suggestionFile is the validated form of a suggestions file.
type suggestionFile struct {
	Suggestions []models.SuggestionInput `json:"suggestions" validate:"max=10000,dive"`
}

// readSuggestions accepts either a bare array or {"suggestions": [...]}.
func readSuggestions(path string, stdin io.Reader) ([]ranking.Suggestion, error) {
	if path == "" {
		return nil, errors.New("--suggestions is required")
	}
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}

	var file suggestionFile
	if data[0] == '[' {
		err = json.Unmarshal(data, &file.Suggestions)
	} else {
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if verr := validation.ValidateStruct(&file); verr != nil {
		return nil, fmt.Errorf("invalid %s: %s", path, verr.Error())
	}
	return models.ToSuggestions(file.Suggestions), nil
}

// readBehavior decodes a behavior file. An empty path means no history.
func readBehavior(path string, stdin io.Reader) (*ranking.Behavior, error) {
	if path == "" {
		return nil, nil
	}
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}

	var in models.BehaviorInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if verr := validation.ValidateStruct(&in); verr != nil {
		return nil, fmt.Errorf("invalid %s: %s", path, verr.Error())
	}
	b := in.ToBehavior()
	return &b, nil
}
