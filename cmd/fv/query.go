package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"

	"github.com/ardmn/faunadb-go/structmap"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires one argument, an expression", cli.ErrUsage)
	}
	prog, err := expr.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: bad expression %q: %v", cli.ErrUsage, args[0], err)
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		env := map[string]any{"doc": doc.Native()}
		if members, ok := doc.Native().(map[string]any); ok {
			for k, v := range members {
				env[k] = v
			}
		}
		out, err := expr.Run(prog, env)
		if err != nil {
			return fmt.Errorf("error evaluating against %s: %w", arg, err)
		}
		res, err := structmap.Encode(out)
		if err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		if err := cfg.writeDoc(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}
