package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"circular_platform/pkg/core/assumption"
	"circular_platform/pkg/core/calc"
	"circular_platform/pkg/core/projection"
	"circular_platform/pkg/core/utils"
	"circular_platform/pkg/core/validate"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "Assumptions JSON payload (missing fields default)")
	flag.Parse()

	os.Exit(run(*mode, *dataStr, os.Stdout))
}

func run(mode, payload string, out io.Writer) int {
	a, err := parseAssumptions(payload)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}

	m := calc.Compute(a)

	switch mode {
	case "check":
		flow := validate.ValidateFlow(m, validate.DefaultTolerance)
		pf := validate.ValidateProjection(projection.Project(a, m, assumption.DefaultGrowth()), validate.DefaultTolerance)
		if flow.AllPassed && pf.AllPassed {
			fmt.Fprintln(out, "Success: incoming >= recovered >= usable >= finished >= 0, sold + internal = finished, pro forma ties out")
			return 0
		}
		for _, p := range append(flow.FailedChecks, pf.FailedChecks...) {
			fmt.Fprintf(out, "Error: %s\n", p)
		}
		return 1
	case "calculate":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			fmt.Fprintf(out, "Error encoding snapshot: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(out, "Unknown mode: %s\n", mode)
		return 2
	}
}

func parseAssumptions(payload string) (assumption.AssumptionSet, error) {
	a := assumption.Defaults()
	if payload == "" {
		return a, nil
	}
	normalized, err := utils.SmartParse(payload, &assumption.AssumptionSet{})
	if err != nil {
		return a, fmt.Errorf("unmarshaling data: %w", err)
	}
	if err := json.Unmarshal([]byte(normalized), &a); err != nil {
		return a, fmt.Errorf("unmarshaling data: %w", err)
	}
	if err := assumption.Validate(a); err != nil {
		return a, err
	}
	return a, nil
}
