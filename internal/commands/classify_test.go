package commands

import (
	"testing"

	"github.com/assetpack/apo/internal/model"
	"github.com/stretchr/testify/assert"
)

func listingOf(id string, names ...string) ProductListing {
	l := ProductListing{ID: id, Dir: "/src/" + id}
	for _, n := range names {
		l.Files = append(l.Files, model.FileRef{Name: n, Path: l.Dir + "/" + n})
	}
	return l
}

func TestClassifyByExtension(t *testing.T) {
	tests := []struct {
		name string
		cat  model.Category
	}{
		{"scene.gltf", model.CategoryModel},
		{"Scene.GLTF", model.CategoryModel},
		{"scene.bin", model.CategoryBuffer},
		{"scene.glb", model.CategoryBinaryModel},
		{"meta.json", model.CategorySidecar},
	}

	for i, test := range tests {
		prod := Classify(listingOf("P", test.name))
		assert.Equal(t, 1, prod.Files.Count(test.cat), "in test %d for %s", i, test.name)
	}
}

func TestClassifyImageKeywords(t *testing.T) {
	tests := []struct {
		name string
		cat  model.Category
	}{
		{"thing_thumbnail.png", model.CategoryThumbnail},
		{"thumb.jpg", model.CategoryThumbnail},
		{"mat_baseColor_1001.png", model.CategoryTexture},
		{"mat_Normal.png", model.CategoryTexture},
		{"mat_occlusionRoughnessMetallic.png", model.CategoryTexture},
		{"mat_ORM.jpg", model.CategoryTexture},
		{"DefaultMaterial.png", model.CategoryTexture},
	}

	for i, test := range tests {
		// a decoy thumbnail first, so the untagged-image fallback never applies
		prod := Classify(listingOf("P", "product_thumbnail.png", test.name))
		assert.Equal(t, 1, prod.Files.Count(test.cat), "in test %d for %s", i, test.name)
	}
}

func TestClassifyThumbnailKeywordBeatsTextureKeyword(t *testing.T) {
	// "thumb" wins even though "normal" is present in the stem
	prod := Classify(listingOf("P", "normal_thumb.png"))
	assert.Equal(t, 1, prod.Files.Count(model.CategoryThumbnail))
	assert.Equal(t, 0, prod.Files.Count(model.CategoryTexture))
}

func TestClassifyUntaggedImageFallback(t *testing.T) {
	t.Run("first untagged image becomes the thumbnail, second a texture", func(t *testing.T) {
		prod := Classify(listingOf("P", "front.png", "back.png"))

		if assert.Equal(t, 1, prod.Files.Count(model.CategoryThumbnail)) {
			f, _ := prod.Files.First(model.CategoryThumbnail)
			assert.Equal(t, "front.png", f.Name)
		}
		if assert.Equal(t, 1, prod.Files.Count(model.CategoryTexture)) {
			f, _ := prod.Files.First(model.CategoryTexture)
			assert.Equal(t, "back.png", f.Name)
		}
	})
	t.Run("texture keyword image never becomes the fallback thumbnail", func(t *testing.T) {
		prod := Classify(listingOf("P", "mat_normal.png", "untagged.png"))

		if assert.Equal(t, 1, prod.Files.Count(model.CategoryThumbnail)) {
			f, _ := prod.Files.First(model.CategoryThumbnail)
			assert.Equal(t, "untagged.png", f.Name)
		}
		f, _ := prod.Files.First(model.CategoryTexture)
		assert.Equal(t, "mat_normal.png", f.Name)
	})
	t.Run("untagged image after a keyword thumbnail becomes a texture", func(t *testing.T) {
		prod := Classify(listingOf("P", "hero_thumbnail.png", "untagged.png"))

		assert.Equal(t, 1, prod.Files.Count(model.CategoryThumbnail))
		if assert.Equal(t, 1, prod.Files.Count(model.CategoryTexture)) {
			f, _ := prod.Files.First(model.CategoryTexture)
			assert.Equal(t, "untagged.png", f.Name)
		}
	})
}

func TestClassifyDropsUnrecognizedExtensions(t *testing.T) {
	prod := Classify(listingOf("P", "readme.txt", "scene.fbx", "archive.tar.gz", "scene.gltf"))

	total := 0
	for _, cat := range model.Categories {
		total += prod.Files.Count(cat)
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, prod.Files.Count(model.CategoryModel))
}

func TestClassifyKeepsListingOrderWithinCategory(t *testing.T) {
	prod := Classify(listingOf("P", "b_basecolor.png", "a_basecolor.png", "c_basecolor.png"))

	textures := prod.Files[model.CategoryTexture]
	if assert.Len(t, textures, 3) {
		assert.Equal(t, "b_basecolor.png", textures[0].Name)
		assert.Equal(t, "a_basecolor.png", textures[1].Name)
		assert.Equal(t, "c_basecolor.png", textures[2].Name)
	}
}
