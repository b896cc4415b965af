package render

type RenderOption func(*RenderState)

func Indent(n int) RenderOption {
	return func(rs *RenderState) { rs.indent = n }
}

// Compact suppresses newlines and indentation.
func Compact(v bool) RenderOption {
	return func(rs *RenderState) { rs.compact = v }
}

func RenderColors(c *Colors) RenderOption {
	return func(rs *RenderState) { rs.Color = c.Color }
}
