package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	docmark "github.com/alnah/go-docmark"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToRender is a source file and the directory its outputs go to.
// Output names derive from the document title, known only after parsing.
type FileToRender struct {
	InputPath string
	OutputDir string
}

// discoverFiles finds the markdown files to render. A directory is walked
// recursively and its layout mirrored under outputDir. Hidden directories
// are skipped.
func discoverFiles(inputPath, outputDir string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToRender{{InputPath: inputPath, OutputDir: resolveFileOutputDir(inputPath, outputDir, "")}}, nil
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdown(path) {
			return nil
		}
		files = append(files, FileToRender{InputPath: path, OutputDir: resolveFileOutputDir(path, outputDir, inputPath)})
		return nil
	})

	return files, err
}

// resolveFileOutputDir determines where outputs for inputPath are written.
func resolveFileOutputDir(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return filepath.Dir(inputPath)
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel))
		}
	}
	return outputDir
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > docmark.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, docmark.MaxPoolSize)
	}
	return nil
}
