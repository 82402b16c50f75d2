package facets

import (
	"strings"

	"github.com/matst80/slask-facets/pkg/query"
)

// Href joins a path and parameters the way the storefront links are written,
// always with a '?' even when no parameters remain.
func Href(basePath string, params query.Params) string {
	return basePath + "?" + params.Encode()
}

// OptionLink is the link selecting, or for toggles deselecting, an option.
func OptionLink(filter FilterDefinition, input Input, params query.Params, basePath string) string {
	return Href(basePath, ApplyInput(filter.Type, input, params))
}

// ResetLink clears the whole group the active filter belongs to. For variant
// options that is every value of the option name.
func ResetLink(active ActiveFilter, params query.Params, basePath string) string {
	result := params.Clone()
	if active.UrlParam.Key == VariantOptionKey {
		rewriteVariants(&result, func(v string) bool {
			name, _ := splitVariant(v)
			return name != active.Name
		})
	} else {
		result.Delete(active.UrlParam.Key)
	}
	return Href(basePath, result)
}

func PriceResetLink(params query.Params, basePath string) string {
	result := params.Clone()
	result.Delete(MinPriceKey)
	result.Delete(MaxPriceKey)
	return Href(basePath, result)
}

// RemoveLink removes only the given active filter. Other values of the same
// variant option stay applied.
func RemoveLink(active ActiveFilter, params query.Params, basePath string) string {
	result := params.Clone()
	if active.UrlParam.Key == VariantOptionKey {
		rewriteVariants(&result, func(v string) bool {
			return v != active.UrlParam.Value
		})
	} else {
		result.Delete(active.UrlParam.Key)
	}
	return Href(basePath, result)
}

// splitVariant splits at the first ':' only, so "Ratio:16:9" keeps the value "16:9".
func splitVariant(encoded string) (string, string) {
	name, value, _ := strings.Cut(encoded, ":")
	return name, value
}
