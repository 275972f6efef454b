package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/schemarules"
	"github.com/goliatone/go-formstate/pkg/tui"
)

func main() {
	definition := flag.String("definition", "form.yaml", "form definition file")
	mode := flag.String("mode", string(form.ModeOnSubmit), "validation mode: onSubmit|onBlur|onChange|all")
	criteria := flag.String("criteria", string(form.CriteriaFirstError), "error criteria: firstError|all")
	flag.Parse()

	raw, err := os.ReadFile(*definition)
	if err != nil {
		log.Fatalf("Failed to read definition: %v", err)
	}

	def, err := schemarules.ParseYAML(raw)
	if err != nil {
		log.Fatalf("Failed to parse definition: %v", err)
	}

	frm := form.New(
		form.WithMode(form.Mode(*mode)),
		form.WithCriteria(form.CriteriaMode(*criteria)),
		form.WithDefaultValues(def.Defaults()),
	)

	ctx := context.Background()
	filler := tui.NewFiller()

	if err := filler.Fill(ctx, frm, def); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(1)
		}
		log.Fatalf("Failed to fill form: %v", err)
	}

	if err := filler.Submit(ctx, frm); err != nil {
		log.Fatalf("Failed to submit form: %v", err)
	}
}
