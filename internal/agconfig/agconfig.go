// Public domain.

// Package agconfig loads the analysis configuration, in the section layout
// of the AGILE analysis configuration files.
//
// A configuration is read from YAML (.yaml, .yml) or HCL (.hcl).  HCL
// files may use env.NAME to reference environment variables.  In both
// formats "$NAME" in a path is expanded.
package agconfig

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/agilescience/agtools/internal/agastro"
	"github.com/agilescience/agtools/internal/aglib"
	"github.com/agilescience/agtools/internal/agparam"
)

// Defaults applied to unset fields.
const (
	DefaultEmin       = 100.
	DefaultEmax       = 10000.
	DefaultTimeType   = "TT"
	DefaultVerboseLvl = 1
	DefaultCatalogDir = "$AGILE/catalogs"
	DefaultPrefix     = "agtools"
)

// Config is a complete analysis configuration.
type Config struct {
	Input     Input     `yaml:"input"`
	Output    Output    `yaml:"output"`
	Selection Selection `yaml:"selection"`
	Model     Model     `yaml:"model"`
}

// Input names the input files.
type Input struct {
	// EvtFile and LogFile are the event and log file indexes of the
	// observation.
	EvtFile    string `yaml:"evtfile" hcl:"evtfile,optional"`
	LogFile    string `yaml:"logfile" hcl:"logfile,optional"`
	CatalogDir string `yaml:"catalogdir" hcl:"catalogdir,optional"`
}

// Output sets where results go and how much is logged.
type Output struct {
	OutDir         string `yaml:"outdir" hcl:"outdir,optional"`
	FilenamePrefix string `yaml:"filenameprefix" hcl:"filenameprefix,optional"`
	SourceName     string `yaml:"sourcename" hcl:"sourcename,optional"`
	VerboseLvl     *int   `yaml:"verboselvl" hcl:"verboselvl,optional"`
}

// Selection is the data selection: time window, energy band, and map
// center.
type Selection struct {
	Tmin     float64 `yaml:"tmin" hcl:"tmin,optional"`
	Tmax     float64 `yaml:"tmax" hcl:"tmax,optional"`
	TimeType string  `yaml:"timetype" hcl:"timetype,optional"` // TT or MJD
	Emin     float64 `yaml:"emin" hcl:"emin,optional"`
	Emax     float64 `yaml:"emax" hcl:"emax,optional"`
	Glon     float64 `yaml:"glon" hcl:"glon,optional"`
	Glat     float64 `yaml:"glat" hcl:"glat,optional"`
}

// Model gives the sources to start from.
type Model struct {
	// ModelFile is a source file, .txt, .multi, or .xml.
	ModelFile string `yaml:"modelfile" hcl:"modelfile,optional"`
	// Catalog is a catalog name, see aglib.Catalogs.
	Catalog string `yaml:"catalog" hcl:"catalog,optional"`
	// Energy band of the ModelFile fluxes, if different from the
	// selection band.
	EminSources float64 `yaml:"emin_sources" hcl:"emin_sources,optional"`
	EmaxSources float64 `yaml:"emax_sources" hcl:"emax_sources,optional"`
	// Distance range from the map center of loaded sources, degrees.
	// MaxDistance 0 is unlimited.
	MinDistance float64 `yaml:"mindistance" hcl:"mindistance,optional"`
	MaxDistance float64 `yaml:"maxdistance" hcl:"maxdistance,optional"`
}

// hclFile is the HCL form of Config.  Sections are blocks and may be
// omitted.
type hclFile struct {
	Input     *Input     `hcl:"input,block"`
	Output    *Output    `hcl:"output,block"`
	Selection *Selection `hcl:"selection,block"`
	Model     *Model     `hcl:"model,block"`
}

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	File     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s",
		e.File, strings.Join(e.Problems, "; "))
}

// Default returns the completed configuration of an empty file.
func Default() *Config {
	var c Config
	c.Complete()
	return &c
}

// Load reads, completes, and validates the configuration file fn.
func Load(fn string) (*Config, error) {
	var c Config
	var err error
	switch ext := filepath.Ext(fn); ext {
	case ".yaml", ".yml":
		err = c.decodeYAML(fn)
	case ".hcl":
		err = c.decodeHCL(fn)
	default:
		return nil, fmt.Errorf("configuration %s: format %q not supported, "+
			"supported formats: .yaml, .yml, .hcl", fn, ext)
	}
	if err != nil {
		return nil, err
	}
	c.Complete()
	if err := c.Validate(); err != nil {
		err.(*ValidationError).File = fn
		return nil, err
	}
	c.normalizeTime()
	return &c, nil
}

func (c *Config) decodeYAML(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && err != io.EOF {
		return fmt.Errorf("decoding configuration %s: %w", fn, err)
	}
	return nil
}

func envContext() *hcl.EvalContext {
	env := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(env)},
	}
}

func (c *Config) decodeHCL(fn string) error {
	f, diags := hclparse.NewParser().ParseHCLFile(fn)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse configuration %s: %w", fn, diags)
	}
	var h hclFile
	if diags := gohcl.DecodeBody(f.Body, envContext(), &h); diags.HasErrors() {
		return fmt.Errorf("failed to decode configuration %s: %w", fn, diags)
	}
	if h.Input != nil {
		c.Input = *h.Input
	}
	if h.Output != nil {
		c.Output = *h.Output
	}
	if h.Selection != nil {
		c.Selection = *h.Selection
	}
	if h.Model != nil {
		c.Model = *h.Model
	}
	return nil
}

// Complete sets defaults for unset fields and expands environment
// variables in paths.
func (c *Config) Complete() {
	s := &c.Selection
	if s.Emin == 0 {
		s.Emin = DefaultEmin
	}
	if s.Emax == 0 {
		s.Emax = DefaultEmax
	}
	if s.TimeType == "" {
		s.TimeType = DefaultTimeType
	}
	if c.Output.VerboseLvl == nil {
		v := DefaultVerboseLvl
		c.Output.VerboseLvl = &v
	}
	if c.Output.FilenamePrefix == "" {
		c.Output.FilenamePrefix = DefaultPrefix
	}
	if c.Input.CatalogDir == "" {
		c.Input.CatalogDir = DefaultCatalogDir
	}
	for _, p := range []*string{&c.Input.EvtFile, &c.Input.LogFile,
		&c.Input.CatalogDir, &c.Output.OutDir, &c.Model.ModelFile} {
		*p = os.ExpandEnv(*p)
	}
}

// Validate checks a completed configuration.  The error, if any, is a
// *ValidationError.
func (c *Config) Validate() error {
	var p []string
	bad := func(format string, a ...any) { p = append(p, fmt.Sprintf(format, a...)) }
	s := c.Selection
	if s.Tmin != 0 || s.Tmax != 0 {
		if s.Tmin >= s.Tmax {
			bad("selection: tmin %g must be less than tmax %g", s.Tmin, s.Tmax)
		}
	}
	if s.TimeType != "TT" && s.TimeType != "MJD" {
		bad("selection: timetype %q must be TT or MJD", s.TimeType)
	}
	if s.Emin >= s.Emax {
		bad("selection: emin %g must be less than emax %g", s.Emin, s.Emax)
	}
	if s.Glat < -90 || s.Glat > 90 {
		bad("selection: glat %g out of range [-90, 90]", s.Glat)
	}
	if s.Glon < 0 || s.Glon > 360 {
		bad("selection: glon %g out of range [0, 360]", s.Glon)
	}
	if v := c.Verbose(); v < 0 || v > 3 {
		bad("output: verboselvl %d out of range [0, 3]", v)
	}
	m := c.Model
	if (m.EminSources == 0) != (m.EmaxSources == 0) {
		bad("model: emin_sources and emax_sources must be given together")
	} else if m.EminSources != 0 && m.EminSources >= m.EmaxSources {
		bad("model: emin_sources %g must be less than emax_sources %g",
			m.EminSources, m.EmaxSources)
	}
	if m.MinDistance < 0 {
		bad("model: mindistance %g is negative", m.MinDistance)
	}
	if m.MaxDistance != 0 && m.MaxDistance < m.MinDistance {
		bad("model: maxdistance %g less than mindistance %g", m.MaxDistance, m.MinDistance)
	}
	if len(p) > 0 {
		return &ValidationError{Problems: p}
	}
	return nil
}

// normalizeTime converts an MJD time window to AGILE mission seconds.
func (c *Config) normalizeTime() {
	s := &c.Selection
	if s.TimeType != "MJD" {
		return
	}
	s.Tmin = agastro.MJDToTT(s.Tmin)
	s.Tmax = agastro.MJDToTT(s.Tmax)
	s.TimeType = "TT"
}

// Verbose returns the verbosity level.
func (c *Config) Verbose() int {
	if c.Output.VerboseLvl == nil {
		return DefaultVerboseLvl
	}
	return *c.Output.VerboseLvl
}

// Band returns the analysis energy band.
func (c *Config) Band() agastro.Band {
	return agastro.Band{Emin: c.Selection.Emin, Emax: c.Selection.Emax}
}

// Center returns the map center.
func (c *Config) Center() agparam.Pair {
	return agparam.Pair{c.Selection.Glon, c.Selection.Glat}
}

// SourcesBand returns the energy band of the model file fluxes, nil if
// they need no rescaling.
func (c *Config) SourcesBand() *agastro.Band {
	m := c.Model
	if m.EminSources == 0 {
		return nil
	}
	b := agastro.Band{Emin: m.EminSources, Emax: m.EmaxSources}
	if b == c.Band() {
		return nil
	}
	return &b
}

// DistRange returns the distance range of loaded sources.
func (c *Config) DistRange() aglib.DistRange {
	r := aglib.DistRange{Lo: c.Model.MinDistance, Hi: math.Inf(1)}
	if c.Model.MaxDistance != 0 {
		r.Hi = c.Model.MaxDistance
	}
	return r
}

// LibraryOptions returns the settings of a sources library for this
// configuration.
func (c *Config) LibraryOptions() aglib.Options {
	return aglib.Options{Band: c.Band(), Center: c.Center(),
		CatalogDir: c.Input.CatalogDir}
}

// OutputPrefix returns the output file prefix, directory included.
func (c *Config) OutputPrefix() string {
	return filepath.Join(c.Output.OutDir, c.Output.FilenamePrefix)
}
