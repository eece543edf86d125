package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mholzen/lifo/pkg/script"
)

var printer = message.NewPrinter(language.English)

func printJSONToWriter(w io.Writer, response interface{}) error {
	prettyJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot format JSON: %w", err)
	}
	fmt.Fprintf(w, "%s\n", prettyJSON)
	return nil
}

func printSteps(w io.Writer, steps []script.Step, format string) error {
	if format == "json" {
		return printJSONToWriter(w, steps)
	}
	for _, step := range steps {
		fmt.Fprintln(w, step.String())
	}
	return nil
}

type TeardownReport struct {
	Variant  string        `json:"variant"`
	Count    int           `json:"count"`
	Released int           `json:"released"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

func (r TeardownReport) String() string {
	return printer.Sprintf("%s: released %d of %d nodes in %v", r.Variant, r.Released, r.Count, r.Elapsed)
}
