package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/ardmn/faunadb-go/values"
)

type Colorable struct {
	Kind values.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
	WrapperColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range values.Kinds() {
		able := Colorable{
			Kind: k,
			Attr: SepColor,
		}
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
		able.Attr = WrapperColor
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = values.LongKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = values.DoubleKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = values.NullKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Kind = values.BoolKind
	colors.Map[able] = color.CyanString

	able.Kind = values.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Kind = values.BytesKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	able.Kind = values.DateKind
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()
	able.Kind = values.TimeKind
	colors.Map[able] = color.RGB(88, 158, 86).SprintfFunc()

	able.Kind = values.RefKind
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Kind = values.SetRefKind
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()

	able = Colorable{Kind: values.ObjectKind, Attr: FieldColor}
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Kind = values.SetRefKind
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k values.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k values.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
