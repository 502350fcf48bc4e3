// Package visuals turns a dataset into an AI-suggested chart report:
// prompt, completion, JSON chart descriptors, one evaluated chart (or
// inline error) per descriptor.
package visuals

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"

	"github.com/tabwise/workbench/internal/analysis/query"
	"github.com/tabwise/workbench/internal/model/dataset"
	"github.com/tabwise/workbench/internal/service/ai"
)

// ChartDescriptor is one (title, expression) pair returned by the model.
type ChartDescriptor struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

// Block is one rendered section of the report: either a chart snippet or
// an inline error for that chart's title.
type Block struct {
	Title   string
	Element template.HTML
	Script  template.HTML
	Err     string
}

// Report is the full set of blocks for one dataset.
type Report struct {
	Blocks []Block
}

// ParseError reports a completion that could not be decoded as a chart
// list; it carries the raw completion text for display.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse chart descriptors: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Service generates visualization reports through a completer.
type Service struct {
	completer  ai.Completer
	chartCount int
}

// NewService returns a visuals service requesting chartCount charts per
// report.
func NewService(completer ai.Completer, chartCount int) *Service {
	return &Service{completer: completer, chartCount: chartCount}
}

// Generate runs the full pipeline for one dataset. A completion failure or
// an undecodable completion aborts the whole report; a failure in a single
// descriptor only errors that block.
func (s *Service) Generate(ctx context.Context, ds *dataset.Dataset) (*Report, error) {
	raw, err := s.completer.Complete(ctx, ai.VisualsPrompt(ds, s.chartCount))
	if err != nil {
		return nil, err
	}

	cleaned := ai.StripFences(raw)
	var descriptors []ChartDescriptor
	if err := json.Unmarshal([]byte(cleaned), &descriptors); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	env := query.ChartEnv(ds.Frame)
	blocks := make([]Block, 0, len(descriptors))
	for _, desc := range descriptors {
		blocks = append(blocks, buildBlock(desc, env))
	}

	log.Printf("[visuals] report generated for dataset=%s, blocks=%d", ds.ID, len(blocks))
	return &Report{Blocks: blocks}, nil
}

func buildBlock(desc ChartDescriptor, env map[string]any) Block {
	out, err := query.Evaluate(ai.StripFences(desc.Code), env)
	if err != nil {
		return Block{Title: desc.Title, Err: err.Error()}
	}

	chart, ok := out.(*query.Chart)
	if !ok {
		return Block{Title: desc.Title, Err: "expression did not produce a chart"}
	}

	snippet := chart.Snippet()
	return Block{
		Title:   desc.Title,
		Element: template.HTML(snippet.Element),
		Script:  template.HTML(snippet.Script),
	}
}
