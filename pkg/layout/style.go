package layout

// FontSpec names the font a draw instruction must be rendered with.
// A Size of 0 means "fit": the renderer picks the largest size whose
// measured extent still fits the target rectangle.
type FontSpec struct {
	Name      string
	Variation string
	Size      float64
}

// Style is one layer of text styling. Zero values mean "unset" and fall
// through to the next layer during resolution.
type Style struct {
	FontName      string
	FontVariation string
	FontSize      float64
	Fill          string
	Anchor        string
}

// merge returns s with every set field of over layered on top.
func (s Style) merge(over Style) Style {
	if over.FontName != "" {
		s.FontName = over.FontName
	}
	if over.FontVariation != "" {
		s.FontVariation = over.FontVariation
	}
	if over.FontSize != 0 {
		s.FontSize = over.FontSize
	}
	if over.Fill != "" {
		s.Fill = over.Fill
	}
	if over.Anchor != "" {
		s.Anchor = over.Anchor
	}
	return s
}

// ResolveStyle folds the style layers into one effective style.
// Precedence is entry > grid > global; the fold is pure and the inputs are
// never modified. An anchor left unset by every layer becomes DefaultAnchor.
func ResolveStyle(global, grid, entry Style) Style {
	s := global.merge(grid).merge(entry)
	if s.Anchor == "" {
		s.Anchor = DefaultAnchor
	}
	return s
}
