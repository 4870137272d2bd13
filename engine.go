// Package slc contains a CLI-driven engine for collecting SimpleLang source
// lines and analyzing them continuously until the user quits.
package slc

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/mawais/slc/internal/input"
	"github.com/mawais/slc/internal/langdef"
	"github.com/mawais/slc/simplelang"
	"github.com/mawais/slc/simplelang/scan"
)

// Engine contains the things needed to run an analysis session from an
// interactive shell attached to an input stream and an output stream.
type Engine struct {
	lang        scan.Language
	buffer      []string
	in          lineReader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

type lineReader interface {
	ReadLine() (string, error)
	AllowBlank(allow bool)
	Close() error
}

const consoleOutputWidth = 80

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream
// and a buffered writer on the output stream.
//
// If nil is given for the input stream, a reader is opened on stdin. If nil
// is given for the output stream, a buffered writer is opened on stdout. If
// langFilePath is non-empty, the lexical definition is loaded from that file
// instead of using the built-in SimpleLang one.
func New(inputStream io.Reader, outputStream io.Writer, langFilePath string, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	lang := scan.SimpleLang()
	if langFilePath != "" {
		var err error
		lang, err = langdef.LoadLanguageFile(langFilePath)
		if err != nil {
			return nil, err
		}
	}

	eng := &Engine{
		lang:        lang,
		out:         bufio.NewWriter(outputStream),
		running:     false,
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		var err error
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	// session lines may legitimately be blank
	eng.in.AllowBlank(true)

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close line reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading lines from the streams and applying them to
// the session until the QUIT command is received or input hits EOF.
//
// Lines whose first word is an upper-case command name are executed as
// commands; every other line, blank ones included, is appended to the source
// buffer and the buffer is re-analyzed immediately. Type HELP for the
// command list.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "SimpleLang Analyzer - " + eng.lang.Name + "\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "===========================\n"
	introMsg += "\n"
	introMsg += "Enter source lines, or HELP for commands\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for eng.running {
		line, err := eng.in.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("get session line: %w", err)
		}

		msg, quit := eng.Execute(line)
		if quit {
			eng.running = false
		}
		if msg != "" {
			if err := eng.write(msg + "\n"); err != nil {
				return err
			}
		}
	}

	if err := eng.write("Goodbye\n"); err != nil {
		return err
	}

	return nil
}

// Execute applies a single session line and returns the text to display
// along with whether the session should end. It is exported so that
// frontends other than RunUntilQuit can drive a session.
func (eng *Engine) Execute(line string) (msg string, quit bool) {
	fields := strings.Fields(line)

	var verb, arg string
	if len(fields) > 0 {
		verb = fields[0]
		arg = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), verb))
	}

	switch verb {
	case "QUIT", "EXIT":
		return "", true
	case "HELP":
		return eng.helpText(), false
	case "TOKENS":
		return eng.showTokens(), false
	case "SYMBOLS":
		return eng.showSymbols(), false
	case "PARSE":
		return eng.showParse(), false
	case "TAC":
		return eng.showTAC(), false
	case "LIST":
		return eng.showBuffer(), false
	case "SAMPLE":
		eng.SetSource(simplelang.Sample)
		return eng.statusLine(), false
	case "CLEAR":
		eng.buffer = nil
		return "source buffer cleared", false
	case "LOAD":
		if arg == "" {
			return "LOAD requires a file path", false
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return "could not load: " + err.Error(), false
		}
		eng.SetSource(string(data))
		return eng.statusLine(), false
	default:
		eng.buffer = append(eng.buffer, line)
		return eng.statusLine(), false
	}
}

// SetSource replaces the session's source buffer with the given text.
func (eng *Engine) SetSource(source string) {
	source = strings.TrimSuffix(source, "\n")
	if source == "" {
		eng.buffer = nil
		return
	}
	eng.buffer = strings.Split(source, "\n")
}

// Source returns the current contents of the session's source buffer.
func (eng *Engine) Source() string {
	return strings.Join(eng.buffer, "\n")
}

func (eng *Engine) analyze() simplelang.Analysis {
	return simplelang.AnalyzeWith(eng.lang, eng.Source())
}

// statusLine gives the one-line summary printed after every buffer change.
func (eng *Engine) statusLine() string {
	a := eng.analyze()

	sig := scan.Significant(a.Tokens)
	lexErrs := 0
	for _, tok := range a.Tokens {
		if tok.Err != scan.NoError {
			lexErrs++
		}
	}

	status := fmt.Sprintf("%d lines, %d tokens, %d symbols", len(eng.buffer), len(sig), a.Symbols.Len())
	if lexErrs > 0 {
		status += fmt.Sprintf(", %d lexical problems", lexErrs)
	}
	if len(a.SyntaxErrors) > 0 {
		status += fmt.Sprintf(", %d syntax errors", len(a.SyntaxErrors))
	}
	return status
}

func (eng *Engine) showTokens() string {
	a := eng.analyze()
	sig := scan.Significant(a.Tokens)

	if len(sig) == 0 {
		return "no tokens; source buffer is empty"
	}

	data := [][]string{{"#", "Kind", "Text", "Line", "Col", "Note"}}
	for i, tok := range sig {
		note := ""
		if tok.Err != scan.NoError {
			note = tok.Err.String()
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			tok.Kind.String(),
			tok.Text,
			strconv.Itoa(tok.Line),
			strconv.Itoa(tok.Column),
			note,
		})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
		String()
}

func (eng *Engine) showSymbols() string {
	a := eng.analyze()

	if a.Symbols.Len() == 0 {
		return "no symbols; source buffer has no identifiers"
	}

	data := [][]string{{"Name", "Count", "Lines"}}
	for _, e := range a.Symbols.Entries() {
		lines := make([]string, len(e.Lines))
		for i, ln := range e.Lines {
			lines[i] = strconv.Itoa(ln)
		}
		data = append(data, []string{e.Name, strconv.Itoa(e.Count), strings.Join(lines, ", ")})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
		String()
}

func (eng *Engine) showParse() string {
	a := eng.analyze()

	var output string
	if len(a.SyntaxErrors) == 0 {
		output = "no syntax errors\n"
	} else {
		for _, serr := range a.SyntaxErrors {
			output += serr.Error() + "\n"
		}
	}

	if len(a.Decls) > 0 {
		data := [][]string{{"Name", "Type", "Scope", "Line"}}
		for _, d := range a.Decls {
			data = append(data, []string{d.Name, d.Type, strconv.Itoa(d.Scope), strconv.Itoa(d.Line)})
		}

		tableOpts := rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}

		output += rosed.Edit("\n").
			InsertTableOpts(0, data, consoleOutputWidth, tableOpts).
			String()
	}

	return strings.TrimSuffix(output, "\n")
}

func (eng *Engine) showTAC() string {
	a := eng.analyze()

	if len(a.TAC) == 0 {
		return "no instructions generated"
	}

	var sb strings.Builder
	for i, instr := range a.TAC {
		fmt.Fprintf(&sb, "%3d: %s\n", i+1, instr)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (eng *Engine) showBuffer() string {
	if len(eng.buffer) == 0 {
		return "source buffer is empty"
	}

	var sb strings.Builder
	for i, line := range eng.buffer {
		fmt.Fprintf(&sb, "%3d | %s\n", i+1, line)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (eng *Engine) helpText() string {
	help := "Any line that does not start with a command word is appended to the " +
		"source buffer and the buffer is re-analyzed. Commands:"

	cmds := [][2]string{
		{"TOKENS", "Show the token table for the current buffer"},
		{"SYMBOLS", "Show the identifier symbol table"},
		{"PARSE", "Check the buffer against the grammar and list declarations"},
		{"TAC", "Show the three-address code listing"},
		{"LIST", "Show the buffer with line numbers"},
		{"LOAD <path>", "Replace the buffer with the contents of a file"},
		{"SAMPLE", "Replace the buffer with the built-in sample program"},
		{"CLEAR", "Empty the buffer"},
		{"HELP", "Show this text"},
		{"QUIT", "End the session"},
	}

	return rosed.Edit(help + "\n\n").
		Wrap(consoleOutputWidth).
		InsertDefinitionsTable(math.MaxInt, cmds, consoleOutputWidth).
		String()
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
