package model

// Category is the semantic role a source file plays within a product's asset
// bundle. A file belongs to exactly one category, decided once during
// classification and never revised.
type Category string

const (
	CategoryModel       Category = "model"        // .gltf
	CategoryBuffer      Category = "buffer"       // .bin
	CategoryBinaryModel Category = "binary-model" // .glb, self-contained packed model
	CategoryTexture     Category = "texture"
	CategoryThumbnail   Category = "thumbnail"
	CategorySidecar     Category = "sidecar" // pre-existing product metadata .json
)

// Categories lists all known categories in a stable order.
var Categories = []Category{
	CategoryModel,
	CategoryBuffer,
	CategoryBinaryModel,
	CategoryTexture,
	CategoryThumbnail,
	CategorySidecar,
}

// FileRef points at one classified file in a product's source folder.
type FileRef struct {
	// Name is the base name including extension
	Name string
	// Path is the absolute path of the file
	Path string
}

// Classification maps each category to the files assigned to it, in the
// order they were encountered during the scan.
type Classification map[Category][]FileRef

func NewClassification() Classification {
	c := make(Classification, len(Categories))
	for _, cat := range Categories {
		c[cat] = nil
	}
	return c
}

func (c Classification) Add(cat Category, f FileRef) {
	c[cat] = append(c[cat], f)
}

func (c Classification) Count(cat Category) int {
	return len(c[cat])
}

// First returns the first file assigned to cat and whether one exists.
func (c Classification) First(cat Category) (FileRef, bool) {
	if len(c[cat]) == 0 {
		return FileRef{}, false
	}
	return c[cat][0], true
}

// Product is one source subdirectory representing a single catalog item's
// 3D asset bundle. The ID is the subdirectory name and is treated as an
// opaque string.
type Product struct {
	ID    string
	Dir   string
	Files Classification
}

// ValidationResult pairs the hard usability gate with the ordered list of
// human-readable issues found for a product. Issues may be present on a
// usable product; those are warnings only.
type ValidationResult struct {
	Usable bool
	Issues []string
}

// PackagedProduct describes the normalized output folder written for a
// valid product. It is created once and never mutated; a rerun overwrites
// the folder wholesale.
type PackagedProduct struct {
	ProductID string
	Dir       string

	Archive   string
	Binary    string
	Thumbnail string // empty if no thumbnail source existed
	Metadata  string
}

// Summary holds the counters reported at the end of a run.
type Summary struct {
	Total     int
	Processed int
	Failed    int
	Uploaded  int
}
