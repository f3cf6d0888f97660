package render

import (
	"path/filepath"

	"github.com/colonyops/lado/internal/core/config"
)

// Nerd font glyphs. Look them up with https://github.com/loichyan/nerdfix
var (
	nerdFolderOpen   = ""
	nerdFolderClosed = ""
	nerdFileDefault  = ""
	nerdMarkdown     = ""
	nerdTypeScript   = "\U000f06e6"
	nerdJavaScript   = "\U000f031e"
)

var nerdByExt = map[string]string{
	".go":   "",
	".js":   nerdJavaScript,
	".jsx":  nerdJavaScript,
	".ts":   nerdTypeScript,
	".tsx":  nerdTypeScript,
	".py":   "",
	".md":   nerdMarkdown,
	".json": "",
	".yaml": "",
	".yml":  "",
	".toml": "",
	".xml":  "\U000f05c0",
	".html": "",
	".css":  "",
	".rs":   "",
	".c":    "",
	".h":    "",
	".cpp":  "",
	".cc":   "",
	".hpp":  "",
	".java": "",
	".rb":   "",
	".php":  "",
	".sh":   "",
	".vim":  "",
	".lua":  "",
}

var nerdByName = map[string]string{
	"Dockerfile": "\U000f0868",
	"Makefile":   "",
	"README":     nerdMarkdown,
	"README.md":  nerdMarkdown,
}

var unicodeByExt = map[string]string{
	".md":   "📝",
	".json": "⚙️",
	".yaml": "⚙️",
	".yml":  "⚙️",
	".toml": "⚙️",
	".go":   "💻",
	".js":   "💻",
	".ts":   "💻",
	".py":   "💻",
	".rs":   "💻",
	".c":    "💻",
	".cpp":  "💻",
	".java": "💻",
	".html": "🌐",
	".css":  "🌐",
}

// folderIcon returns the icon for a folder. Empty for IconStyleNone.
func folderIcon(style config.IconStyle, expanded bool) string {
	switch style {
	case config.IconStyleNerdFonts:
		if expanded {
			return nerdFolderOpen
		}
		return nerdFolderClosed
	case config.IconStyleUnicode:
		if expanded {
			return "📂"
		}
		return "📁"
	case config.IconStyleASCII:
		if expanded {
			return "v"
		}
		return ">"
	default:
		return ""
	}
}

// fileIcon returns the icon for a file path. Empty for IconStyleNone.
func fileIcon(style config.IconStyle, path string) string {
	switch style {
	case config.IconStyleNerdFonts:
		if icon, ok := nerdByName[filepath.Base(path)]; ok {
			return icon
		}
		if icon, ok := nerdByExt[filepath.Ext(path)]; ok {
			return icon
		}
		return nerdFileDefault
	case config.IconStyleUnicode:
		if icon, ok := unicodeByExt[filepath.Ext(path)]; ok {
			return icon
		}
		return "📄"
	case config.IconStyleASCII:
		return "*"
	default:
		return ""
	}
}
