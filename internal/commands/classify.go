package commands

import (
	"path/filepath"
	"strings"

	"github.com/assetpack/apo/internal/model"
	"github.com/assetpack/apo/internal/utils"
)

var textureKeywords = []string{"basecolor", "normal", "occlusion", "roughness", "metallic", "orm", "material"}
var thumbnailKeywords = []string{"thumbnail", "thumb"}

// Classify assigns every file of a product listing to a category. Rules are
// applied per file, in listing order, first match wins:
//
//   - .gltf -> model, .bin -> buffer, .glb -> binary-model, .json -> sidecar
//   - .png/.jpg with a thumbnail keyword in the stem -> thumbnail
//   - .png/.jpg with a texture keyword in the stem -> texture
//   - .png/.jpg without keywords -> thumbnail if none assigned yet, else texture
//
// Files with unrecognized extensions are dropped. Because the untagged-image
// rule depends on whether a thumbnail was already seen, the listing order
// decides which untagged image becomes the thumbnail.
func Classify(listing ProductListing) *model.Product {
	c := model.NewClassification()
	for _, f := range listing.Files {
		if cat, ok := classifyFile(c, f.Name); ok {
			c.Add(cat, f)
		}
	}
	return &model.Product{ID: listing.ID, Dir: listing.Dir, Files: c}
}

func classifyFile(c model.Classification, name string) (model.Category, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	stem := utils.ToTrimmedLower(strings.TrimSuffix(name, filepath.Ext(name)))

	switch ext {
	case ".gltf":
		return model.CategoryModel, true
	case ".bin":
		return model.CategoryBuffer, true
	case ".glb":
		return model.CategoryBinaryModel, true
	case ".json":
		return model.CategorySidecar, true
	case ".png", ".jpg":
		switch {
		case containsAny(stem, thumbnailKeywords):
			return model.CategoryThumbnail, true
		case containsAny(stem, textureKeywords):
			return model.CategoryTexture, true
		case c.Count(model.CategoryThumbnail) == 0:
			// untagged image defaults to thumbnail if none was assigned yet
			return model.CategoryThumbnail, true
		default:
			return model.CategoryTexture, true
		}
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
