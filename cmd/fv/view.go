package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/ardmn/faunadb-go/values"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var filter *vm.Program
	if cfg.Where != "" {
		filter, err = expr.Compile(cfg.Where, expr.AsBool())
		if err != nil {
			return fmt.Errorf("%w: bad filter %q: %v", cli.ErrUsage, cfg.Where, err)
		}
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		doc, err := cfg.readDoc(arg)
		if err != nil {
			return err
		}
		if filter != nil {
			keep, err := matchesFilter(filter, doc)
			if err != nil {
				return fmt.Errorf("error filtering %s: %w", arg, err)
			}
			if !keep {
				continue
			}
		}
		if err := cfg.writeDoc(cc.Out, doc); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}

// matchesFilter evaluates a compiled expression with the document's
// plain-Go form as the environment, so filters read like "age > 21" or
// "doc.name == 'x'".
func matchesFilter(prog *vm.Program, doc *values.Value) (bool, error) {
	env := map[string]any{"doc": doc.Native()}
	if members, ok := doc.Native().(map[string]any); ok {
		for k, v := range members {
			env[k] = v
		}
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		return false, err
	}
	keep, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, want bool", out)
	}
	return keep, nil
}
