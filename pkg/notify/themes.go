package notify

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Built-in theme names.
const (
	ThemeMinimal = "minimal"
	ThemeBranded = "branded"
	ThemeDark    = "dark"
)

// DefaultBrandColor is the indigo applied by the branded theme when the
// caller does not supply one.
const DefaultBrandColor = "#4f46e5"

// brandToken marks manifest token values the branded theme replaces with the
// caller's brand color at resolution time.
const brandToken = "{brand}"

func builtinManifests() map[string]*theme.Manifest {
	return map[string]*theme.Manifest{
		ThemeMinimal: {
			Name:    ThemeMinimal,
			Version: "1.0.0",
			Tokens: map[string]string{
				"background": "#ffffff",
				"text":       "#1f2937",
				"muted":      "#6b7280",
				"panel":      "#f9fafb",
				"border":     "#e5e7eb",
				"heading":    "#111827",
			},
		},
		ThemeBranded: {
			Name:    ThemeBranded,
			Version: "1.0.0",
			Tokens: map[string]string{
				"background": "#ffffff",
				"text":       "#1f2937",
				"muted":      "#6b7280",
				"panel":      "#f9fafb",
				"border":     brandToken,
				"heading":    brandToken,
			},
		},
		ThemeDark: {
			Name:    ThemeDark,
			Version: "1.0.0",
			Tokens: map[string]string{
				"background": "#111827",
				"text":       "#e5e7eb",
				"muted":      "#9ca3af",
				"panel":      "#1f2937",
				"border":     "#374151",
				"heading":    "#f9fafb",
			},
		},
	}
}

// ThemeNames returns the built-in theme names in stable order.
func ThemeNames() []string {
	return []string{ThemeMinimal, ThemeBranded, ThemeDark}
}

// resolveTheme materialises a go-theme renderer configuration for the named
// built-in theme, substituting the brand color where the manifest asks for
// it. Tokens are copied so callers can't mutate the manifests.
func resolveTheme(name, brandColor string) (*theme.RendererConfig, error) {
	if strings.TrimSpace(name) == "" {
		name = ThemeMinimal
	}
	manifest, ok := builtinManifests()[name]
	if !ok {
		return nil, fmt.Errorf("notify: unknown theme %q", name)
	}

	brand := strings.TrimSpace(brandColor)
	if brand == "" {
		brand = DefaultBrandColor
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	cssVars := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		if value == brandToken {
			value = brand
		}
		tokens[key] = value
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:   manifest.Name,
		Tokens:  tokens,
		CSSVars: cssVars,
	}, nil
}
