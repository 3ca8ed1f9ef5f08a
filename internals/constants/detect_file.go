package constants

import (
	"path/filepath"
	"strings"
)

// Label jenis lampiran untuk kebutuhan tampilan klien (pilih ikon, badge).
const (
	FileTypePDF         = "pdf"
	FileTypeDocument    = "document"
	FileTypeSlide       = "slide"
	FileTypeSpreadsheet = "spreadsheet"
	FileTypeImage       = "image"
	FileTypeText        = "text"
	FileTypeOther       = "other"
)

func DetectFileTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FileTypePDF
	case ".doc", ".docx":
		return FileTypeDocument
	case ".ppt", ".pptx":
		return FileTypeSlide
	case ".xls", ".xlsx", ".csv":
		return FileTypeSpreadsheet
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileTypeImage
	case ".txt", ".md":
		return FileTypeText
	default:
		return FileTypeOther
	}
}
