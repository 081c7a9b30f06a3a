// Package runx runs external build tools for one project, capturing combined
// stdout/stderr into the project's install log while echoing tagged, colored
// lines to the console.
package runx

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	ct "github.com/daviddengcn/go-colortext"
)

// consoleMu serializes console writes so tags and payloads from interleaved
// streams never tear.
var consoleMu sync.Mutex

var palette = []ct.Color{
	ct.Green,
	ct.Cyan,
	ct.Magenta,
	ct.Yellow,
	ct.Blue,
	ct.Red,
}

// Proc tags and routes the output of one project's external commands.
type Proc struct {
	tag   string
	color ct.Color
	log   io.Writer
	echo  bool

	mu  sync.Mutex
	buf bytes.Buffer
}

// New returns a Proc writing to log. seq picks the console color; echo
// controls whether lines are mirrored to the console at all.
func New(tag string, seq int, log io.Writer, echo bool) *Proc {
	return &Proc{
		tag:   tag,
		color: palette[seq%len(palette)],
		log:   log,
		echo:  echo,
	}
}

// Output returns the writer child processes should use for both stdout and
// stderr.
func (p *Proc) Output() io.Writer {
	return (*procWriter)(p)
}

// Run executes argv[0] with the remaining arguments in dir, wiring combined
// output through the Proc. The command line itself is recorded in the log
// first.
func (p *Proc) Run(dir string, argv ...string) error {
	fmt.Fprintf(p.log, "$ %s\n", strings.Join(argv, " "))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = nil
	out := p.Output()
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

// procWriter splits writes into lines, appending each to the log and echoing
// it with a colored [tag] prefix. Partial lines are buffered until their
// newline arrives.
type procWriter Proc

func (w *procWriter) Write(b []byte) (int, error) {
	p := (*Proc)(w)
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf.Write(b)
	for {
		line, err := p.buf.ReadString('\n')
		if err != nil {
			// Incomplete line: keep it for the next write.
			p.buf.WriteString(line)
			break
		}
		p.emit(line)
	}
	return len(b), nil
}

// Flush writes out any buffered partial line. Call after the child exits.
func (p *Proc) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf.Len() > 0 {
		p.emit(p.buf.String() + "\n")
		p.buf.Reset()
	}
}

func (p *Proc) emit(line string) {
	io.WriteString(p.log, line)
	if !p.echo {
		return
	}
	consoleMu.Lock()
	ct.ChangeColor(p.color, false, ct.None, false)
	fmt.Printf("[%-8s] ", p.tag)
	ct.ResetColor()
	fmt.Print(line)
	consoleMu.Unlock()
}
