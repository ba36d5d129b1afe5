package discovery

import (
	"path/filepath"
	"strings"

	"github.com/repograph/repograph/internal/pipeline"
)

// extensionFileType maps a lowercased file extension (without the leading
// dot) to its FileType. Extensions absent from this table resolve via
// baseNameFileType or fall back to FileTypeOther.
var extensionFileType = map[string]pipeline.FileType{
	"go":    pipeline.FileTypeGo,
	"rs":    pipeline.FileTypeRust,
	"ts":    pipeline.FileTypeTypeScript,
	"tsx":   pipeline.FileTypeTypeScript,
	"py":    pipeline.FileTypePython,
	"pyi":   pipeline.FileTypePython,
	"js":    pipeline.FileTypeJavaScript,
	"jsx":   pipeline.FileTypeJavaScript,
	"mjs":   pipeline.FileTypeJavaScript,
	"cjs":   pipeline.FileTypeJavaScript,
	"java":  pipeline.FileTypeJava,
	"cpp":   pipeline.FileTypeCPP,
	"cc":    pipeline.FileTypeCPP,
	"cxx":   pipeline.FileTypeCPP,
	"hpp":   pipeline.FileTypeCPP,
	"hh":    pipeline.FileTypeCPP,
	"c":     pipeline.FileTypeC,
	"h":     pipeline.FileTypeC,
	"cs":    pipeline.FileTypeCSharp,
	"swift": pipeline.FileTypeSwift,
	"kt":    pipeline.FileTypeKotlin,
	"kts":   pipeline.FileTypeKotlin,
	"dart":  pipeline.FileTypeDart,
	"rb":    pipeline.FileTypeRuby,
	"scala": pipeline.FileTypeScala,
	"jl":    pipeline.FileTypeJulia,
	"ex":    pipeline.FileTypeElixir,
	"exs":   pipeline.FileTypeElixir,
	"php":   pipeline.FileTypePHP,
	"hs":    pipeline.FileTypeHaskell,
	"r":     pipeline.FileTypeR,
	"elm":   pipeline.FileTypeElm,
	"lua":   pipeline.FileTypeLua,
	"md":    pipeline.FileTypeMarkdown,
	"mdx":   pipeline.FileTypeMarkdown,
	"json":  pipeline.FileTypeJSON,
	"yaml":  pipeline.FileTypeYAML,
	"yml":   pipeline.FileTypeYAML,
	"toml":  pipeline.FileTypeTOML,
	"xml":   pipeline.FileTypeXML,
	"html":  pipeline.FileTypeHTML,
	"htm":   pipeline.FileTypeHTML,
	"css":   pipeline.FileTypeCSS,
	"scss":  pipeline.FileTypeCSS,
	"txt":   pipeline.FileTypeText,
}

// baseNameFileType maps extensionless or dotfile base names (lowercased) to
// their FileType, for files the extension table cannot classify.
var baseNameFileType = map[string]pipeline.FileType{
	"dockerfile": pipeline.FileTypeText,
	"makefile":   pipeline.FileTypeText,
	"readme":     pipeline.FileTypeMarkdown,
	"license":    pipeline.FileTypeText,
	"gemfile":    pipeline.FileTypeRuby,
	"rakefile":   pipeline.FileTypeRuby,
}

// DetectFileType classifies relPath into the closed FileType enumeration
// using its extension, falling back to a handful of well-known extensionless
// base names, then FileTypeOther.
func DetectFileType(relPath string) pipeline.FileType {
	base := strings.ToLower(filepath.Base(relPath))
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	if ext != "" {
		if ft, ok := extensionFileType[ext]; ok {
			return ft
		}
	}

	stem := strings.TrimSuffix(base, "."+ext)
	if ft, ok := baseNameFileType[stem]; ok {
		return ft
	}

	return pipeline.FileTypeOther
}
