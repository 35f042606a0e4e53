package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/assetpack/apo/internal/utils"
)

// minimalPNG is a valid 1x1 black PNG.
var minimalPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
	0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41,
	0x54, 0x08, 0xD7, 0x63, 0x60, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0xE2, 0x21, 0xBC, 0x33, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
	0x42, 0x60, 0x82,
}

// Seed creates n sample products under dir, one complete asset bundle per
// product folder, for trying the organizer out without real data. Returns
// the generated product IDs.
func Seed(ctx context.Context, dir string, n int) ([]string, error) {
	log := utils.GetLogger(ctx, "commands.Seed")

	dir, err := utils.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for i := 1; i <= n; i++ {
		select {
		case <-ctx.Done():
			return ids, ctx.Err()
		default:
		}
		id := fmt.Sprintf("PROD%03d", i)
		if err := seedProduct(dir, id); err != nil {
			return ids, fmt.Errorf("could not create sample product %s: %w", id, err)
		}
		ids = append(ids, id)
		log.Info("created sample product", "product", id)
	}
	return ids, nil
}

func seedProduct(dir, id string) error {
	prodDir := filepath.Join(dir, id)
	if err := os.MkdirAll(prodDir, defaultDirPermissions); err != nil {
		return err
	}

	gltf, err := json.MarshalIndent(map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []any{map[string]any{"nodes": []any{0}}},
	}, "", "  ")
	if err != nil {
		return err
	}

	sidecar, err := json.MarshalIndent(map[string]any{
		"product_id":  id,
		"name":        fmt.Sprintf("Sample Product %s", id),
		"description": "generated sample product",
		"category":    "3D Models",
	}, "", "  ")
	if err != nil {
		return err
	}

	files := map[string][]byte{
		id + "_model.gltf": gltf,
		id + "_model.bin":  bytes.Repeat([]byte{0x00}, 1024),
		id + "_model.glb":  append([]byte("glTF"), bytes.Repeat([]byte{0x00}, 1020)...),
		id + "_DefaultMaterial_baseColor_1001.png":                 minimalPNG,
		id + "_DefaultMaterial_normal_1001.png":                    minimalPNG,
		id + "_DefaultMaterial_occlusionRoughnessMetallic_1001.png": minimalPNG,
		id + "_thumbnail.png": minimalPNG,
		id + "_metadata.json": sidecar,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(prodDir, name), content, defaultFilePermissions); err != nil {
			return err
		}
	}
	return nil
}
