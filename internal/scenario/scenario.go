// Package scenario contains runnable demonstrations of the contract runtime:
// small guarded types and the calls that exercise each contract kind, with
// the outcome every call is expected to have.
//
// Scenarios run against a caller-supplied registry whose handler must panic
// on violation (contract.Raise, optionally wrapped by contract.Instrument).
package scenario

import (
	"fmt"
	"sort"

	"github.com/kolkov/contracts/contract"
)

// Outcome is the observable result of one step.
type Outcome string

const (
	// Pass means the step returned without a violation or panic.
	Pass Outcome = "pass"

	// Panic means the step panicked with a value that is not a violation.
	Panic Outcome = "panic"
)

// Violated returns the outcome of a violation of category c.
func Violated(c contract.Category) Outcome {
	return Outcome(c.String())
}

// Step is one call with its expected outcome.
type Step struct {
	Name string
	Want Outcome
	Call func(reg *contract.Registry)
}

// Result is the observed outcome of a step.
type Result struct {
	Step string
	Want Outcome
	Got  Outcome

	// Report is set when the step raised a violation.
	Report *contract.Report

	// Value is the panic value when Got is Panic.
	Value any
}

// OK reports whether the observed outcome matches the expectation.
func (r Result) OK() bool {
	return r.Want == r.Got
}

// String formats the result as a single line.
func (r Result) String() string {
	status := "ok"
	if !r.OK() {
		status = "MISMATCH"
	}
	return fmt.Sprintf("%-8s %-58s want %-13s got %s", status, r.Step, r.Want, r.Got)
}

// Scenario is a named sequence of steps.
type Scenario struct {
	Name        string
	Description string

	// steps builds fresh steps for one run. Steps of a run may share an
	// instance, so every run starts from a new one.
	steps func() []Step
}

// Steps returns the steps of a fresh run.
func (s Scenario) Steps() []Step {
	return s.steps()
}

// Run executes every step against reg and returns the results in order.
// A failing step does not stop the scenario.
func (s Scenario) Run(reg *contract.Registry) []Result {
	steps := s.Steps()
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		res := Result{Step: step.Name, Want: step.Want}
		res.Got, res.Report, res.Value = capture(reg, step.Call)
		results = append(results, res)
	}
	return results
}

func capture(reg *contract.Registry, call func(*contract.Registry)) (got Outcome, rep *contract.Report, value any) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(*contract.Error); ok {
			report := err.Report
			got, rep = Violated(err.Category), &report
			return
		}
		got, value = Panic, r
	}()
	call(reg)
	return Pass, nil, nil
}

var catalog = map[string]Scenario{}

func register(name, description string, steps func() []Step) {
	if _, dup := catalog[name]; dup {
		panic("scenario: duplicate name " + name)
	}
	catalog[name] = Scenario{Name: name, Description: description, steps: steps}
}

// Catalog returns every scenario, sorted by name.
func Catalog() []Scenario {
	out := make([]Scenario, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the scenario with the given name.
func Lookup(name string) (Scenario, bool) {
	s, ok := catalog[name]
	return s, ok
}

// errNonContract is the panic value of bodies that fail for reasons
// unrelated to contracts.
type errNonContract struct{}

func (errNonContract) Error() string { return "non-contract failure" }
