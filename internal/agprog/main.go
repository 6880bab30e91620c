// Public domain.

// Package agprog is the agtools command.
package agprog

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/soniakeys/exit"

	"github.com/agilescience/agtools/internal/agconfig"
	"github.com/agilescience/agtools/internal/agexpr"
	"github.com/agilescience/agtools/internal/aglib"
	"github.com/agilescience/agtools/internal/aglog"
	"github.com/agilescience/agtools/internal/agmle"
	"github.com/agilescience/agtools/internal/agsource"
)

const versionString = "agtools version 0.3"
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()
	cl := parseCommandLine()
	cfg, err := cl.config()
	if err != nil {
		exit.Log(err)
	}
	logger := aglog.New(os.Stderr, aglog.LevelFor(cfg.Verbose()))
	if err := run(cl, cfg, os.Stdout, logger); err != nil {
		aglog.Critical(logger, "agtools failed", "err", err)
		exit.Log(err)
	}
}

type commandLine struct {
	fnConfig string   // -c config file
	catalog  string   // -catalog name
	file     string   // -f source file
	dmin     float64  // -dmin, negative for the configured value
	dmax     float64  // -dmax, negative for the configured value
	sel      string   // -sel expression
	free     string   // -free parameter
	freeFlag int      // -flag free flag
	del      bool     // -delete
	describe bool     // -describe
	prefix   string   // -o output prefix
	formats  string   // -fmt comma separated output formats
	mle      []string // MLE .source files
}

func parseCommandLine() *commandLine {
	var cl commandLine
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.StringVar(&cl.fnConfig, "c", "", "")
	flag.StringVar(&cl.catalog, "catalog", "", "")
	flag.StringVar(&cl.file, "f", "", "")
	flag.Float64Var(&cl.dmin, "dmin", -1, "")
	flag.Float64Var(&cl.dmax, "dmax", -1, "")
	flag.StringVar(&cl.sel, "sel", "", "")
	flag.StringVar(&cl.free, "free", "", "")
	flag.IntVar(&cl.freeFlag, "flag", 1, "")
	flag.BoolVar(&cl.del, "delete", false, "")
	flag.BoolVar(&cl.describe, "describe", false, "")
	flag.StringVar(&cl.prefix, "o", "", "")
	flag.StringVar(&cl.formats, "fmt", "txt", "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: agtools [options] [mle-file ...]   build a sources library
       agtools -h                         display help
       agtools -v                         display version and copyright

Options:
       -c <config-file>         .yaml, .yml, or .hcl
       -catalog <name>          load a catalog, 2AGL
       -f <source-file>         load a .txt, .multi, or .xml source file
       -dmin <deg> -dmax <deg>  distance range from the map center
       -sel <expression>        select sources
       -free <param>            with -sel, set the free flag of param
       -flag <0|1|2>            free flag for -free, default 1
       -delete                  with -sel, delete the selected sources
       -describe                print a report of each source
       -o <prefix>              output file prefix
       -fmt <formats>           comma separated txt, xml, reg
`)
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	case (cl.free != "" || cl.del) && cl.sel == "":
		flag.Usage()
		os.Exit(1)
	}
	cl.mle = flag.Args()
	return &cl
}

func printHelp() {
	flag.Usage()
	os.Stderr.WriteString(`
Selection expressions compare variables with numbers or quoted strings
and combine comparisons with AND, OR, and parentheses:

       sqrtts > 3 AND dist <= 5
       name == "2AGLJ2254+1609" OR flux > 1e-7

Variables: ` + strings.Join(agsource.SelectionVars, ", ") + `,
and the spectrum parameters.  sqrtts needs MLE results.

Freeable parameters: ` + strings.Join(agsource.FreeableParams, ", ") + `
`)
}

// config loads the configuration file, if any, and applies command line
// overrides.
func (cl *commandLine) config() (*agconfig.Config, error) {
	cfg := agconfig.Default()
	if cl.fnConfig != "" {
		var err error
		if cfg, err = agconfig.Load(cl.fnConfig); err != nil {
			return nil, err
		}
	}
	if cl.catalog != "" {
		cfg.Model.Catalog = cl.catalog
	}
	if cl.file != "" {
		cfg.Model.ModelFile = os.ExpandEnv(cl.file)
	}
	if cl.dmin >= 0 {
		cfg.Model.MinDistance = cl.dmin
	}
	if cl.dmax >= 0 {
		cfg.Model.MaxDistance = cl.dmax
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cl *commandLine, cfg *agconfig.Config, w io.Writer, logger *slog.Logger) error {
	lib := aglib.New(cfg.LibraryOptions(), logger)
	rng := cfg.DistRange()
	if c := cfg.Model.Catalog; c != "" {
		if _, err := lib.LoadSourcesFromCatalog(c, rng); err != nil {
			return err
		}
	}
	if f := cfg.Model.ModelFile; f != "" {
		if _, err := lib.LoadSourcesFromFile(f, rng, cfg.SourcesBand()); err != nil {
			return err
		}
	}
	for _, fn := range cl.mle {
		m, err := agmle.ParseFile(fn)
		if err != nil {
			return err
		}
		if _, err := lib.UpdateMulti(m); err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
	}

	if cl.sel != "" {
		sel := agexpr.Query(cl.sel)
		var r []*agsource.Source
		var err error
		switch {
		case cl.free != "":
			r, err = lib.FreeSources(sel, cl.free, cl.freeFlag)
		case cl.del:
			r, err = lib.DeleteSources(sel)
		default:
			r, err = lib.SelectSources(sel)
		}
		if err != nil {
			return err
		}
		for _, s := range r {
			fmt.Fprintln(w, s.Name)
		}
	}

	if cl.describe {
		for _, s := range lib.Sources() {
			fmt.Fprintln(w, s.Describe())
		}
	}

	prefix := cl.prefix
	if prefix == "" {
		prefix = cfg.OutputPrefix()
	}
	for _, f := range strings.Split(cl.formats, ",") {
		if f = strings.TrimSpace(f); f == "" {
			continue
		}
		fn, err := lib.WriteToFile(prefix, f)
		if err != nil {
			return err
		}
		if fn != "" {
			fmt.Fprintln(w, "wrote", fn)
		}
	}
	return nil
}
