package utils

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"image_to_code_server/internal/types"
	"image_to_code_server/internal/utils"
)

// bundleFilenames maps each format to the file it is exported as.
var bundleFilenames = map[string]string{
	types.FormatHTML:       "index.html",
	types.FormatCSS:        "styles.css",
	types.FormatJavaScript: "script.js",
	types.FormatReact:      "Component.jsx",
	types.FormatVue:        "Component.vue",
	types.FormatTailwind:   "tailwind.html",
}

// BundleFiles lists the non-empty formats of a bundle as files, in format order.
func BundleFiles(bundle types.CodeBundle) []types.GeneratedFile {
	files := make([]types.GeneratedFile, 0, len(types.Formats))
	for _, format := range types.Formats {
		content := bundle.Get(format)
		if strings.TrimSpace(content) == "" {
			continue
		}
		filename := bundleFilenames[format]
		files = append(files, types.GeneratedFile{
			Filename: filename,
			Type:     utils.DetermineFileType(filename),
			Content:  content,
		})
	}
	return files
}

// WriteZip writes files as a zip archive to w.
func WriteZip(w io.Writer, files []types.GeneratedFile) error {
	archive := zip.NewWriter(w)
	for _, file := range files {
		entry, err := archive.Create(file.Filename)
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", file.Filename, err)
		}
		if _, err := io.WriteString(entry, file.Content); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", file.Filename, err)
		}
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}
