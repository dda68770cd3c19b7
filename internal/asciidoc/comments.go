package asciidoc

import "strings"

// CommentStyle is the line-comment syntax for one source language. Close
// is empty for languages with single-token comments.
type CommentStyle struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close,omitempty"`
}

// DefaultCommentStyle is used for unknown language tags.
var DefaultCommentStyle = CommentStyle{Open: "#"}

// commentStyles maps [source,<lang>] tags to their comment syntax.
var commentStyles = map[string]CommentStyle{
	"ada":        {Open: "--"},
	"asciidoc":   {Open: "//"},
	"bash":       {Open: "#"},
	"c":          {Open: "//"},
	"cpp":        {Open: "//"},
	"c++":        {Open: "//"},
	"csharp":     {Open: "//"},
	"css":        {Open: "/*", Close: "*/"},
	"dart":       {Open: "//"},
	"dockerfile": {Open: "#"},
	"erlang":     {Open: "%"},
	"go":         {Open: "//"},
	"groovy":     {Open: "//"},
	"haskell":    {Open: "--"},
	"html":       {Open: "<!--", Close: "-->"},
	"ini":        {Open: ";"},
	"java":       {Open: "//"},
	"javascript": {Open: "//"},
	"js":         {Open: "//"},
	"json5":      {Open: "//"},
	"kotlin":     {Open: "//"},
	"lua":        {Open: "--"},
	"makefile":   {Open: "#"},
	"perl":       {Open: "#"},
	"php":        {Open: "//"},
	"powershell": {Open: "#"},
	"properties": {Open: "#"},
	"python":     {Open: "#"},
	"r":          {Open: "#"},
	"ruby":       {Open: "#"},
	"rust":       {Open: "//"},
	"scala":      {Open: "//"},
	"sh":         {Open: "#"},
	"shell":      {Open: "#"},
	"sql":        {Open: "--"},
	"swift":      {Open: "//"},
	"toml":       {Open: "#"},
	"typescript": {Open: "//"},
	"ts":         {Open: "//"},
	"xml":        {Open: "<!--", Close: "-->"},
	"yaml":       {Open: "#"},
	"yml":        {Open: "#"},
}

// CommentStyleFor returns the comment syntax for a language tag, falling
// back to DefaultCommentStyle for unknown tags.
func CommentStyleFor(lang string) CommentStyle {
	if style, ok := commentStyles[strings.ToLower(strings.TrimSpace(lang))]; ok {
		return style
	}
	return DefaultCommentStyle
}

// RegisterCommentStyle overrides or adds the comment syntax for a
// language tag. Used by the config layer for user-supplied overrides.
func RegisterCommentStyle(lang string, style CommentStyle) {
	commentStyles[strings.ToLower(strings.TrimSpace(lang))] = style
}

// Comment renders text as a trailing comment in the given style.
func (s CommentStyle) Comment(text string) string {
	if s.Close != "" {
		return s.Open + " " + text + " " + s.Close
	}
	return s.Open + " " + text
}
