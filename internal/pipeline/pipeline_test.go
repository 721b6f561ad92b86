package pipeline

import (
	"testing"

	"github.com/funvibe/intogeneric/internal/diagnostics"
)

type stageFunc func(ctx *PipelineContext) *PipelineContext

func (f stageFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

func TestRunKeepsGoingAfterErrors(t *testing.T) {
	var order []string
	stage := func(name string, fail bool) Processor {
		return stageFunc(func(ctx *PipelineContext) *PipelineContext {
			order = append(order, name)
			if fail {
				ctx.Errors = append(ctx.Errors, &diagnostics.DiagnosticError{Code: diagnostics.ErrP001, Message: name})
			}
			return ctx
		})
	}

	ctx := New(stage("lex", false), stage("parse", true), stage("expand", false)).Run(NewPipelineContext("src"))
	if len(order) != 3 || order[2] != "expand" {
		t.Fatalf("stages ran as %v", order)
	}
	if len(ctx.Errors) != 1 || ctx.Errors[0].Message != "parse" {
		t.Errorf("errors = %v", ctx.Errors)
	}
}

func TestResultAndChanged(t *testing.T) {
	tests := []struct {
		output  string
		result  string
		changed bool
	}{
		{"", "fn f() {}", false},
		{"fn f() {}", "fn f() {}", false},
		{"fn g() {}", "fn g() {}", true},
	}
	for _, tt := range tests {
		ctx := NewPipelineContext("fn f() {}")
		ctx.Output = tt.output
		if got := ctx.Result(); got != tt.result {
			t.Errorf("Output %q: Result() = %q, want %q", tt.output, got, tt.result)
		}
		if got := ctx.Changed(); got != tt.changed {
			t.Errorf("Output %q: Changed() = %v, want %v", tt.output, got, tt.changed)
		}
	}
}
