package main

import (
	"bytes"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/ardmn/faunadb-go/render"
	"github.com/ardmn/faunadb-go/values"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	a, err := cfg.readDoc(args[0])
	if err != nil {
		return err
	}
	b, err := cfg.readDoc(args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		a, b = b, a
	}
	if values.Equal(a, b) {
		return nil
	}
	aText, err := renderPlain(a)
	if err != nil {
		return err
	}
	bText, err := renderPlain(b)
	if err != nil {
		return err
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(aText, bText, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	if _, err := fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func renderPlain(v *values.Value) (string, error) {
	var buf bytes.Buffer
	if err := render.Render(v, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
