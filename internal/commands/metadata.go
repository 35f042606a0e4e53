package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/assetpack/apo/internal/model"
	"github.com/assetpack/apo/internal/utils"
	"github.com/assetpack/apo/internal/validation"
	"github.com/buger/jsonparser"
)

type Now func() time.Time

// Metadata is the generated per-product metadata document.
type Metadata struct {
	ProductID   string        `json:"product_id"`
	CreatedAt   string        `json:"created_at"`
	Files       MetadataFiles `json:"files"`
	ZipContents ZipContents   `json:"zip_contents"`
	Status      string        `json:"status"`
}

type MetadataFiles struct {
	Zip       string `json:"zip"`
	Glb       string `json:"glb"`
	Thumbnail string `json:"thumbnail"`
}

type ZipContents struct {
	Gltf     string   `json:"gltf"`
	Bin      string   `json:"bin"`
	Textures []string `json:"textures"`
}

const statusProcessed = "processed"

// buildMetadata assembles the generated metadata document for a product.
// The files block names the normalized output files unconditionally, whether
// or not a thumbnail source existed; that matches the original layout.
func buildMetadata(prod *model.Product, now Now) Metadata {
	md := Metadata{
		ProductID: prod.ID,
		CreatedAt: now().Format(time.RFC3339),
		Files: MetadataFiles{
			Zip:       prod.ID + ".zip",
			Glb:       prod.ID + ".glb",
			Thumbnail: prod.ID + "_thumbnail.png",
		},
		// textures must serialize as a list even when empty
		ZipContents: ZipContents{Textures: []string{}},
		Status:      statusProcessed,
	}
	if f, ok := prod.Files.First(model.CategoryModel); ok {
		md.ZipContents.Gltf = f.Name
	}
	if f, ok := prod.Files.First(model.CategoryBuffer); ok {
		md.ZipContents.Bin = f.Name
	}
	for i, t := range prod.Files[model.CategoryTexture] {
		if i == maxArchiveTextures {
			break
		}
		md.ZipContents.Textures = append(md.ZipContents.Textures, t.Name)
	}
	return md
}

// renderMetadata serializes the generated document and shallow-merges the
// product's sidecar metadata into it, if present. The sidecar is checked
// against the schema before merging; a violation is logged and does not
// block the merge. Top-level sidecar keys overwrite generated keys, last
// write wins, including "status" and "files". A sidecar that cannot be
// read or parsed is logged and skipped; the generated document is written
// unchanged.
func renderMetadata(ctx context.Context, prod *model.Product, now Now) ([]byte, error) {
	log := utils.GetLogger(ctx, "commands.Packager")

	md := buildMetadata(prod, now)
	generated, err := json.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("unexpected encoding error: %w", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(generated, &doc); err != nil {
		return nil, fmt.Errorf("unexpected encoding error: %w", err)
	}

	if sidecar, ok := prod.Files.First(model.CategorySidecar); ok {
		_, raw, err := utils.ReadRequiredFile(sidecar.Path)
		if err != nil {
			log.Warn("could not read original metadata", "product", prod.ID, "file", sidecar.Name, "error", err)
		} else {
			// advisory check: violations are logged, the merge still happens
			if schemaErr := validation.ValidateSidecar(raw); schemaErr != nil {
				log.Warn("original metadata does not match the sidecar schema", "product", prod.ID, "file", sidecar.Name, "error", schemaErr)
			}
			if mergeErr := mergeSidecar(doc, raw); mergeErr != nil {
				log.Warn("could not merge original metadata", "product", prod.ID, "file", sidecar.Name, "error", mergeErr)
			}
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}

// mergeSidecar copies every top-level field of the sidecar document into
// doc. Returns an error without touching doc if raw is not a JSON object.
func mergeSidecar(doc map[string]any, raw []byte) error {
	merged := map[string]any{}
	err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		v, err := jsValue(value, dataType)
		if err != nil {
			return err
		}
		merged[string(key)] = v
		return nil
	})
	if err != nil {
		return err
	}
	for k, v := range merged {
		doc[k] = v
	}
	return nil
}

func jsValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		return s, err
	case jsonparser.Number:
		return strconv.ParseFloat(string(value), 64)
	case jsonparser.Boolean:
		return string(value) == "true", nil
	case jsonparser.Null:
		return nil, nil
	default: // Object, Array
		var v any
		err := json.Unmarshal(value, &v)
		return v, err
	}
}
