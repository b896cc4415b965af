package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/ardmn/faunadb-go/render"
	"github.com/ardmn/faunadb-go/values"
	"github.com/ardmn/faunadb-go/wire"
)

type docFormat int

const (
	jsonFormat docFormat = iota
	yamlFormat
)

func parseDocFormat(v string) (docFormat, error) {
	switch v {
	case "json", "j":
		return jsonFormat, nil
	case "yaml", "y":
		return yamlFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q", v)
}

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Color   bool `cli:"name=color desc='render with color'"`
	Compact bool `cli:"name=compact desc='output in compact wire form'"`

	InFormat, OutFormat *docFormat

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**docFormat) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := parseDocFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) inFormat() docFormat {
	f := jsonFormat
	if cfg.Y {
		f = yamlFormat
	}
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	return f
}

func (cfg *MainConfig) outFormat() docFormat {
	f := jsonFormat
	if cfg.Y {
		f = yamlFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

// readDoc parses one document from a file path, with "-" meaning
// stdin.
func (cfg *MainConfig) readDoc(arg string) (*values.Value, error) {
	var r io.Reader
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var v *values.Value
	switch cfg.inFormat() {
	case yamlFormat:
		v, err = wire.FromYAML(data)
	default:
		v, err = wire.FromJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return v, nil
}

func (cfg *MainConfig) writeDoc(w io.Writer, v *values.Value) error {
	switch cfg.outFormat() {
	case yamlFormat:
		d, err := wire.ToYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		if cfg.Compact {
			d, err := wire.ToJSON(v)
			if err != nil {
				return err
			}
			d = append(d, '\n')
			_, err = w.Write(d)
			return err
		}
		return render.Render(v, w, cfg.renderOpts(w)...)
	}
}

func (cfg *MainConfig) renderOpts(w io.Writer) []render.RenderOption {
	var res []render.RenderOption
	if cfg.Color {
		res = append(res, render.RenderColors(render.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, render.RenderColors(render.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig

	Where string `cli:"name=w desc='filter expression over documents'"`
	View  *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge  bool `cli:"name=merge desc='treat the patch as an rfc 7386 merge patch'"`
	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}
