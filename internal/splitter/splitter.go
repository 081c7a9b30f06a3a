// Package splitter segments a simulator's textual report stream into numbered
// files, one per recognized report header line.
package splitter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// Header is the marker substring that opens every McPAT report block.
	Header = "McPAT (version"

	// DefaultTemplate names the output files when no template is given.
	DefaultTemplate = "mcpat-report-%d"
)

// Expand substitutes %d with the 1-based counter n and %% with a literal
// percent sign. Any other character after % is kept verbatim, as is a
// trailing lone %.
func Expand(template string, n int) string {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i == len(template)-1 {
			b.WriteByte(c)
			continue
		}
		switch template[i+1] {
		case 'd':
			b.WriteString(strconv.Itoa(n))
			i++
		case '%':
			b.WriteByte('%')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Splitter routes an input stream into per-report output files.
type Splitter struct {
	// Header is the marker substring starting a new report. Defaults to
	// Header when empty.
	Header string
	// Template names the output files; see Expand. Defaults to
	// DefaultTemplate when empty.
	Template string
	// Dir is the directory output files are created in, the current
	// directory when empty. Pre-existing files are truncated.
	Dir string
}

// Split scans r line by line. A line containing the header substring closes
// the current output file (if any) and opens the next numbered one; the
// header line itself becomes its first line. Lines seen before the first
// header are discarded. It returns the number of files created.
func (s *Splitter) Split(r io.Reader) (int, error) {
	header := s.Header
	if header == "" {
		header = Header
	}
	template := s.Template
	if template == "" {
		template = DefaultTemplate
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		count int
		file  *os.File
		out   *bufio.Writer
	)
	closeCurrent := func() error {
		if file == nil {
			return nil
		}
		if err := out.Flush(); err != nil {
			file.Close()
			return fmt.Errorf("write %s: %w", file.Name(), err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("close %s: %w", file.Name(), err)
		}
		file, out = nil, nil
		return nil
	}

	for sc.Scan() {
		line := sc.Text()
		if strings.Contains(line, header) {
			if err := closeCurrent(); err != nil {
				return count, err
			}
			count++
			name := filepath.Join(s.Dir, Expand(template, count))
			f, err := os.Create(name)
			if err != nil {
				return count, fmt.Errorf("create %s: %w", name, err)
			}
			log.Debug().Str("file", name).Msg("report header found, starting new file")
			file = f
			out = bufio.NewWriter(f)
		}
		if out == nil {
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if err := closeCurrent(); err != nil {
		return count, err
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("read input: %w", err)
	}
	return count, nil
}
