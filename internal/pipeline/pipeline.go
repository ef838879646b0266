package pipeline

import (
	"fmt"
	"strings"

	"github.com/TobiSchelling/billtally/internal/database"
	"github.com/TobiSchelling/billtally/internal/export"
	"github.com/TobiSchelling/billtally/internal/tabulate"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a report run.
type Result struct {
	Deliverable tabulate.Deliverable
	Steps       []StepResult
}

// Err returns the first failed step's error, if any.
func (r *Result) Err() error {
	for _, s := range r.Steps {
		if s.Err != nil {
			return s.Err
		}
	}
	return nil
}

// Source supplies the four input tables.
type Source interface {
	LoadTables() (tabulate.Tables, error)
}

// FileSource reads the tables from CSV files.
type FileSource struct {
	Paths tabulate.Paths
}

// LoadTables implements Source.
func (s FileSource) LoadTables() (tabulate.Tables, error) {
	return tabulate.LoadFiles(s.Paths)
}

var _ Source = FileSource{}
var _ Source = (*database.DB)(nil)

// Options select what a run produces and where it goes.
type Options struct {
	Deliverable tabulate.Deliverable
	Format      export.Format
	OutputPath  string
}

// Pipeline runs prepare -> generate -> write for one deliverable.
type Pipeline struct {
	source Source
	log    tabulate.Logger
}

// New creates a new pipeline.
func New(source Source, log tabulate.Logger) *Pipeline {
	if log == nil {
		log = tabulate.Discard
	}
	return &Pipeline{source: source, log: log}
}

// Run executes the three steps, stopping at the first failure. The output
// file is only written once the report is fully rendered.
func (p *Pipeline) Run(opts Options) *Result {
	r := &Result{Deliverable: opts.Deliverable}

	tb, step := p.prepare()
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	report, step := p.generate(tb, opts.Deliverable)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	step = p.write(report, opts)
	r.Steps = append(r.Steps, step)
	return r
}

// DryRun prepares data and generates the report without writing output.
func (p *Pipeline) DryRun(opts Options) *Result {
	r := &Result{Deliverable: opts.Deliverable}

	tb, step := p.prepare()
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	report, step := p.generate(tb, opts.Deliverable)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	r.Steps = append(r.Steps, StepResult{
		Name:    "Write",
		Summary: fmt.Sprintf("[dry-run] Would write %d rows to %s as %s", len(report.Rows), opts.OutputPath, formatName(opts.Format)),
	})
	return r
}

func (p *Pipeline) prepare() (*tabulate.Tabulator, StepResult) {
	p.log.Info("Preparing data.")
	tables, err := p.source.LoadTables()
	if err != nil {
		p.log.Critical("Error preparing data: " + err.Error())
		return nil, StepResult{Name: "Prepare", Err: err}
	}
	tb := tabulate.New(tables, p.log)
	return tb, StepResult{
		Name:    "Prepare",
		Summary: fmt.Sprintf("Loaded %s; joined %d records", tables, len(tb.Joined())),
	}
}

func (p *Pipeline) generate(tb *tabulate.Tabulator, d tabulate.Deliverable) (tabulate.Report, StepResult) {
	report, err := tb.Generate(d)
	if err != nil {
		p.log.Critical(err.Error())
		return tabulate.Report{}, StepResult{Name: "Generate", Err: err}
	}
	return report, StepResult{
		Name:    "Generate",
		Summary: fmt.Sprintf("Generated %s deliverable: %d rows", d.Ordinal(), len(report.Rows)),
	}
}

func (p *Pipeline) write(report tabulate.Report, opts Options) StepResult {
	if err := export.WriteFile(opts.OutputPath, report, opts.Format); err != nil {
		p.log.Critical("Error writing output: " + err.Error())
		return StepResult{Name: "Write", Err: err}
	}
	p.log.Info(capitalize(opts.Deliverable.Ordinal()) + " deliverable created.")
	return StepResult{
		Name:    "Write",
		Summary: fmt.Sprintf("Wrote %d rows to %s", len(report.Rows), opts.OutputPath),
	}
}

func formatName(f export.Format) string {
	if f == "" {
		return string(export.FormatCSV)
	}
	return string(f)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
