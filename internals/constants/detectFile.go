package constants

import (
	"path/filepath"
	"strings"
)

type FileKind int

const (
	FileKindUnknown FileKind = iota
	FileKindImage
	FileKindDocument
	FileKindVideo
)

func DetectFileTypeFromExt(filename string) FileKind {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileKindImage
	case ".pdf", ".doc", ".docx", ".ppt", ".pptx":
		return FileKindDocument
	case ".mp4", ".webm", ".mov":
		return FileKindVideo
	default:
		return FileKindUnknown
	}
}

func IsImageFile(filename string) bool {
	return DetectFileTypeFromExt(filename) == FileKindImage
}
