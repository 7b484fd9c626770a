package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file. The format is picked from the extension:
// .hcl, .yaml/.yml or .json. Every format is applied on top of Default(), so
// omitted blocks and keys keep their default values. A missing file yields
// Default().
func Load(filename string) (Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".hcl":
		return loadHCL(filename)
	case ".yaml", ".yml":
		return loadYAML(filename)
	case ".json":
		return loadJSON(filename)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
}

// hclFile mirrors Config with every block and attribute optional so a file
// may set only what it changes.
type hclFile struct {
	Player     *hclPlayer     `hcl:"player,block"`
	Pot        *hclPot        `hcl:"pot,block"`
	Simulation *hclSimulation `hcl:"simulation,block"`
}

type hclPlayer struct {
	PlayersCount      *int `hcl:"players_count,optional"`
	InitialPlayerCoin *int `hcl:"initial_player_coin,optional"`
	CoinPutAmount     *int `hcl:"coin_put_amount,optional"`
}

type hclPot struct {
	InitialPotCoin    *int  `hcl:"initial_pot_coin,optional"`
	AllowZeroCoinDraw *bool `hcl:"allow_zero_coin_draw,optional"`
}

type hclSimulation struct {
	Repetition    *int   `hcl:"repetition,optional"`
	VerboseOutput *bool  `hcl:"verbose_output,optional"`
	Seed          *int64 `hcl:"seed,optional"`
}

// loadHCL starts from the defaults, like the YAML and JSON loaders.
func loadHCL(filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	raw.applyTo(&cfg)
	return cfg, nil
}

func (f hclFile) applyTo(cfg *Config) {
	if p := f.Player; p != nil {
		set(&cfg.Player.PlayersCount, p.PlayersCount)
		set(&cfg.Player.InitialPlayerCoin, p.InitialPlayerCoin)
		set(&cfg.Player.CoinPutAmount, p.CoinPutAmount)
	}
	if p := f.Pot; p != nil {
		set(&cfg.Pot.InitialPotCoin, p.InitialPotCoin)
		set(&cfg.Pot.AllowZeroCoinDraw, p.AllowZeroCoinDraw)
	}
	if s := f.Simulation; s != nil {
		set(&cfg.Simulation.Repetition, s.Repetition)
		set(&cfg.Simulation.VerboseOutput, s.VerboseOutput)
		set(&cfg.Simulation.Seed, s.Seed)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// loadYAML starts from the defaults so a file may set only what it changes.
func loadYAML(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return cfg, nil
}

// loadJSON reads the legacy configs.json layout.
func loadJSON(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return cfg, nil
}
