package domain

import (
	"fmt"
	"os"
)

// Target is what a caller asked to test: a directory tree or a single source file.
type Target interface {
	TargetPath() string
	isTarget()
}

// DirectoryTarget is a tree of fixtures to be grouped into units.
type DirectoryTarget struct {
	Path string
}

// FileTarget is a single source file tested on its own.
type FileTarget struct {
	Path string
}

func (t DirectoryTarget) TargetPath() string { return t.Path }
func (t FileTarget) TargetPath() string      { return t.Path }

func (DirectoryTarget) isTarget() {}
func (FileTarget) isTarget()      {}

// ClassifyTarget stats path once and returns the matching variant.
func ClassifyTarget(path string) (Target, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat target %s: %w", path, err)
	}
	if info.IsDir() {
		return DirectoryTarget{Path: path}, nil
	}
	return FileTarget{Path: path}, nil
}
