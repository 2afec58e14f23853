package web

// Theme is the single palette rendered into every page as CSS variables.
type Theme struct {
	Mode      string
	Primary   string
	Secondary string
}

// DefaultTheme returns the light palette.
func DefaultTheme() Theme {
	return Theme{
		Mode:      "light",
		Primary:   "#1976d2",
		Secondary: "#dc004e",
	}
}
