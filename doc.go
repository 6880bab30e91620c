/*
Command agtools builds and edits libraries of AGILE gamma-ray sources.

Contents

  Program overview
  Command line usage
  Configuration
  File formats
  Selection expressions


Program overview

A sources library is the list of point sources a likelihood analysis starts
from.  Agtools loads sources from the 2AGL catalog or from source files,
keeping those within a distance range of the map center, merges the results
of AGILE maximum likelihood runs into them, selects, frees, or deletes
sources, and writes the library as an AGILE text file, an XML file, or a DS9
region file.

Catalog fluxes are rescaled to the configured energy band when the catalog
band differs, assuming a power law spectrum with the source photon index.


Command line usage

  agtools [options] [mle-file ...]

Mle-files are .source files written by the AGILE maximum likelihood tool.
Each is merged into the source it names.  Parameters free in the library
take the fitted values, and the source moves to the fitted position if the
fit found one.

Options:

  -c <config-file>
  -catalog <name>
  -f <source-file>
  -dmin <deg>
  -dmax <deg>
  -sel <expression>
  -free <param>
  -flag <0|1|2>
  -delete
  -describe
  -o <prefix>
  -fmt <formats>

With -sel alone, the names of the selected sources are listed.  With -free,
the free flag of the parameter is set on selected sources and the sources
that changed are listed.  With -delete, selected sources are removed and
listed.  Output files are written last, one per format of -fmt, default txt.


Configuration

The configuration file is YAML (.yaml, .yml) or HCL (.hcl), with sections
input, output, selection, and model:

  input:
    catalogdir: $AGILE/catalogs
  output:
    outdir: $HOME/vela
    filenameprefix: vela
    verboselvl: 1
  selection:
    tmin: 58884
    tmax: 58891
    timetype: MJD
    emin: 100
    emax: 10000
    glon: 263.552
    glat: -2.787
  model:
    catalog: 2AGL
    maxdistance: 10

Unset values take the defaults shown, except tmin, tmax, glon, and glat,
which default to 0.  MJD times are converted to AGILE mission seconds (TT),
seconds since 2004-01-01.  Environment variables in paths are expanded.
In HCL files env.NAME also refers to environment variable NAME.

Verboselvl 0 logs warnings only, 1 adds progress messages, 2 and 3 add
debug messages.


File formats

AGILE text files (.txt, .multi) have one source per line, 17 fields
separated by white space:

  flux glon glat index fixflag 2 name locationLimit spectrumType
  par2 par3 indexMin indexMax par2Min par2Max par3Min par3Max

Spectrum types are 0 PowerLaw, 1 PLExpCutoff, 2 PLSuperExpCutoff, and
3 LogParabola.  Par2 is cutoffEnergy or pivotEnergy, par3 is index2 or
curvature.  Fixflag bits, least significant first, free flux, position,
index, par2, and par3.  Bit 5 frees the position with flag 2.  A fixed flux
fixes everything, except that fixflag 32 frees only the position, with
flag 2.

XML files have a source_library element holding source elements:

  <source name="2AGLJ2254+1609" type="PointSource">
    <spectrum type="PowerLaw">
      <parameter name="flux" value="7.45398e-08" free="1"/>
      <parameter name="index" value="2.2" free="0" min="0.5" max="5"/>
    </spectrum>
    <spatialModel type="PointSource" locationLimit="0">
      <parameter name="pos" value="(92.4102, -10.3946)" free="0"/>
    </spatialModel>
  </source>

Region files hold one DS9 ellipse per source with MLE results, the 95%
confidence contour of the fitted position, or a 0.5 degree circle at the
peak position when the fit found no contour.


Selection expressions

Expressions compare a variable with a number, a quoted string, or another
variable, using < <= > >= == !=, and combine comparisons with AND, OR, and
parentheses.  AND binds tighter than OR.

  sqrtts > 3 AND dist <= 5
  name == "2AGLJ2254+1609" OR (flux > 1e-7 AND index < 2.5)

Variables are name, flux, index, dist, glon, glat, locationLimit, sqrtts,
and the spectrum parameter names.  Flux, index, and sqrtts are the fitted
values once MLE results are merged.  Sources without MLE results are not
selected by expressions using sqrtts.  Sources lacking a variable, such as
pivotEnergy on a PowerLaw source, are not selected.

-------------
Public domain.
*/
package main
