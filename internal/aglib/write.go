// Public domain.

package aglib

import (
	"bufio"
	"encoding/xml"
	"os"

	"github.com/agilescience/agtools/internal/agsource"
)

// OutputFormats lists the formats WriteToFile writes.
var OutputFormats = []string{"txt", "xml", "reg"}

// WriteToFile writes the library to prefix plus the extension of format,
// txt, xml, or reg, and returns the file name.  Environment variables in
// prefix are expanded.  An empty library writes nothing and returns "".
//
// The region file has one ellipse per source with MLE results; other
// sources are skipped with a warning.
func (l *Library) WriteToFile(prefix, format string) (string, error) {
	var write func(*bufio.Writer) error
	switch format {
	case "txt":
		write = l.writeText
	case "xml":
		write = l.writeXML
	case "reg":
		write = l.writeRegion
	default:
		return "", &FormatError{Path: prefix, Format: format, Supported: OutputFormats}
	}
	if len(l.sources) == 0 {
		l.log.Warn("sources library is empty, nothing written")
		return "", nil
	}
	fn := os.ExpandEnv(prefix) + "." + format
	f, err := os.Create(fn)
	if err != nil {
		return "", err
	}
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return "", err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	l.log.Info("sources library written", "file", fn, "sources", len(l.sources))
	return fn, nil
}

func (l *Library) writeText(w *bufio.Writer) error {
	for _, s := range l.sources {
		w.WriteString(s.AgileLine())
		w.WriteByte('\n')
	}
	return nil
}

func (l *Library) writeXML(w *bufio.Writer) error {
	lib := agsource.XMLLibrary{Title: "agtools sources library"}
	for _, s := range l.sources {
		lib.Sources = append(lib.Sources, s.ToXML())
	}
	w.WriteString(xml.Header)
	e := xml.NewEncoder(w)
	e.Indent("", "  ")
	if err := e.Encode(lib); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

func (l *Library) writeRegion(w *bufio.Writer) error {
	w.WriteString(agsource.RegionHeader)
	for _, s := range l.sources {
		line, ok := s.RegionLine()
		if !ok {
			l.log.Warn("source has no MLE results, not in region file", "name", s.Name)
			continue
		}
		w.WriteString(line)
		w.WriteByte('\n')
	}
	return nil
}
