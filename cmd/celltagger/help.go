package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError renders the help of the command it was raised for.
type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := renderHelp(e.of)
	if err != nil {
		return err.Error()
	}
	return help
}

func renderHelp(h HelpData) (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, h.Template(), h); err != nil {
		return "", fmt.Errorf("render help %s: %w", h.Template(), err)
	}
	return buf.String(), nil
}

// usageFunc prints the help of h to its flag set's output.
func usageFunc(h HelpData) func() {
	return func() {
		help, err := renderHelp(h)
		if err != nil {
			help = err.Error()
		}
		fmt.Fprint(h.FlagSet().Output(), help)
	}
}

func (r *root) Template() string {
	return "root.txt"
}

func (a *annotateCmd) Template() string {
	return "annotate.txt"
}

func (e *exportCmd) Template() string {
	return "export.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (v *versionCmd) Template() string {
	return "version.txt"
}
