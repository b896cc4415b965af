package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/ardmn/faunadb-go/values"
	"github.com/ardmn/faunadb-go/wire"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.String && cfg.File {
		return fmt.Errorf("%w: -s and -f are mutually exclusive", cli.ErrUsage)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	patchBytes, err := patchArg(cfg, args[0])
	if err != nil {
		return err
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
		var res *values.Value
		if cfg.Merge {
			res, err = wire.ApplyMergePatch(doc, patchBytes)
		} else {
			res, err = wire.ApplyPatch(doc, patchBytes)
		}
		if err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
		if err := cfg.writeDoc(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

// patchArg resolves the patch argument to wire JSON. Without -s or -f
// it is treated as a file if one exists at that path, a literal
// otherwise.
func patchArg(cfg *PatchConfig, arg string) ([]byte, error) {
	isFile := cfg.File
	if !cfg.String && !cfg.File {
		if _, err := os.Stat(arg); err == nil {
			isFile = true
		}
	}
	if !isFile {
		return []byte(arg), nil
	}
	doc, err := cfg.readDoc(arg)
	if err != nil {
		return nil, err
	}
	return wire.ToJSON(doc)
}
