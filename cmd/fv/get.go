package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/ardmn/faunadb-go/values"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a field path", cli.ErrUsage)
	}
	field, err := parseFieldPath(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
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
		res := doc.GetField(field)
		if res.IsErr() {
			return fmt.Errorf("error querying %s: %w", arg, res.Err())
		}
		if err := cfg.writeDoc(cc.Out, res.MustGet()); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}

// parseFieldPath turns "a.b[2].c" into a field. A leading '.' is
// tolerated so paths copied from jq-style tools work too.
func parseFieldPath(s string) (values.Field, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return values.Field{}, fmt.Errorf("empty field path")
	}
	var segs []values.Segment
	for _, part := range strings.Split(s, ".") {
		for {
			open := strings.IndexByte(part, '[')
			if open == -1 {
				if part != "" {
					segs = append(segs, values.Key(part))
				}
				break
			}
			if open > 0 {
				segs = append(segs, values.Key(part[:open]))
			}
			part = part[open+1:]
			end := strings.IndexByte(part, ']')
			if end == -1 {
				return values.Field{}, fmt.Errorf("unterminated index in field path %q", s)
			}
			idx, err := strconv.Atoi(part[:end])
			if err != nil {
				return values.Field{}, fmt.Errorf("bad index %q in field path %q", part[:end], s)
			}
			segs = append(segs, values.Index(idx))
			part = part[end+1:]
		}
	}
	if len(segs) == 0 {
		return values.Field{}, fmt.Errorf("empty field path %q", s)
	}
	return values.At(segs...), nil
}
