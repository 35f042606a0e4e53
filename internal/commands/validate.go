package commands

import (
	"fmt"

	"github.com/assetpack/apo/internal/model"
)

// minTextureCount is how many textures a complete product carries. Fewer is
// reported as an issue but does not block packaging.
const minTextureCount = 3

// Validate checks a product's classification against the completeness
// requirements. The issues list keeps a fixed order. Usable is false only
// when one of model, buffer, or binary-model is entirely absent; a texture
// shortfall is a warning.
func Validate(c model.Classification) model.ValidationResult {
	var issues []string

	if c.Count(model.CategoryModel) == 0 {
		issues = append(issues, "Missing .gltf file")
	}
	if c.Count(model.CategoryBuffer) == 0 {
		issues = append(issues, "Missing .bin file")
	}
	if n := c.Count(model.CategoryTexture); n < minTextureCount {
		issues = append(issues, fmt.Sprintf("Only %d texture(s) found (need %d)", n, minTextureCount))
	}
	if c.Count(model.CategoryBinaryModel) == 0 {
		issues = append(issues, "Missing .glb file")
	}
	// Thumbnail is optional (a product .jpg can stand in)

	usable := c.Count(model.CategoryModel) > 0 &&
		c.Count(model.CategoryBuffer) > 0 &&
		c.Count(model.CategoryBinaryModel) > 0

	return model.ValidationResult{Usable: usable, Issues: issues}
}
