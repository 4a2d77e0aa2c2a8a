package theme

import (
	"path"
	"strings"
)

// IconStyle selects how file icons are drawn.
type IconStyle string

const (
	IconsNerd  IconStyle = "nerd"
	IconsASCII IconStyle = "ascii"
	IconsNone  IconStyle = "none"
)

// ParseIconStyle parses a config or flag value. "" means nerd.
func ParseIconStyle(s string) (IconStyle, bool) {
	switch IconStyle(s) {
	case "", IconsNerd:
		return IconsNerd, true
	case IconsASCII:
		return IconsASCII, true
	case IconsNone:
		return IconsNone, true
	}
	return IconsNerd, false
}

// Nerd Font Icons (Private Constants)
const (
	nerdIconFile       = "" // fa-file
	nerdIconText       = "" // fa-file_text
	nerdIconImage      = "" // fa-file_image
	nerdIconArchive    = "" // oct-file_zip
	nerdIconLock       = "" // fa-lock
	nerdIconGo         = "" // seti-go
	nerdIconRust       = "" // dev-rust
	nerdIconPython     = "" // seti-python
	nerdIconJavaScript = "" // dev-javascript
	nerdIconTypeScript = "" // seti-typescript
	nerdIconReact      = "" // dev-react
	nerdIconJSON       = "" // seti-json
	nerdIconMarkdown   = "" // seti-markdown
	nerdIconYAML       = "" // seti-yml
	nerdIconTOML       = "" // seti-toml
	nerdIconHTML       = "" // dev-html5
	nerdIconCSS        = "" // dev-css3
	nerdIconShell      = "" // dev-terminal
	nerdIconDocker     = "" // linux-docker
	nerdIconGit        = "" // dev-git
	nerdIconC          = "" // custom-c
	nerdIconCpp        = "" // custom-cpp
	nerdIconJava       = "" // dev-java
	nerdIconRuby       = "" // dev-ruby
	nerdIconSQL        = "" // dev-database
	nerdIconLicense    = "" // seti-license
	nerdIconMake       = "" // dev-gnu
	nerdIconLua        = "" // seti-lua
	nerdIconVim        = "" // custom-vim
	nerdIconNix        = "" // linux-nixos
	nerdIconProto      = "" // seti-proto
	nerdIconSvelte     = "" // seti-svelte
	nerdIconVue        = "" // seti-vue
)

// ASCII fallback for every file
const asciiIconFile = "*"

type fileIcon struct {
	glyph string
	color string
}

var defaultFileIcon = fileIcon{nerdIconFile, "#7e8e91"}

// Exact file names take precedence over extensions.
var iconsByName = map[string]fileIcon{
	"dockerfile":         {nerdIconDocker, "#458ee6"},
	"docker-compose.yml": {nerdIconDocker, "#458ee6"},
	"makefile":           {nerdIconMake, "#6d8086"},
	"license":            {nerdIconLicense, "#d0bf41"},
	"license.md":         {nerdIconLicense, "#d0bf41"},
	".gitignore":         {nerdIconGit, "#f54d27"},
	".gitattributes":     {nerdIconGit, "#f54d27"},
	".gitmodules":        {nerdIconGit, "#f54d27"},
	"go.mod":             {nerdIconGo, "#519aba"},
	"go.sum":             {nerdIconGo, "#519aba"},
	"cargo.lock":         {nerdIconLock, "#dea584"},
	"package-lock.json":  {nerdIconLock, "#7a0d21"},
	"flake.lock":         {nerdIconNix, "#7ebae4"},
}

var iconsByExt = map[string]fileIcon{
	"go":     {nerdIconGo, "#519aba"},
	"rs":     {nerdIconRust, "#dea584"},
	"py":     {nerdIconPython, "#ffbc03"},
	"js":     {nerdIconJavaScript, "#cbcb41"},
	"mjs":    {nerdIconJavaScript, "#f1e05a"},
	"ts":     {nerdIconTypeScript, "#519aba"},
	"jsx":    {nerdIconReact, "#20c2e3"},
	"tsx":    {nerdIconReact, "#1354bf"},
	"json":   {nerdIconJSON, "#cbcb41"},
	"md":     {nerdIconMarkdown, "#dddddd"},
	"yml":    {nerdIconYAML, "#6d8086"},
	"yaml":   {nerdIconYAML, "#6d8086"},
	"toml":   {nerdIconTOML, "#9c4221"},
	"html":   {nerdIconHTML, "#e44d26"},
	"css":    {nerdIconCSS, "#42a5f5"},
	"scss":   {nerdIconCSS, "#f55385"},
	"sh":     {nerdIconShell, "#4d5a5e"},
	"bash":   {nerdIconShell, "#89e051"},
	"zsh":    {nerdIconShell, "#89e051"},
	"c":      {nerdIconC, "#599eff"},
	"h":      {nerdIconC, "#a074c4"},
	"cpp":    {nerdIconCpp, "#519aba"},
	"hpp":    {nerdIconCpp, "#a074c4"},
	"java":   {nerdIconJava, "#cc3e44"},
	"rb":     {nerdIconRuby, "#701516"},
	"sql":    {nerdIconSQL, "#dad8d8"},
	"lua":    {nerdIconLua, "#51a0cf"},
	"vim":    {nerdIconVim, "#019833"},
	"nix":    {nerdIconNix, "#7ebae4"},
	"proto":  {nerdIconProto, "#e8e8e8"},
	"vue":    {nerdIconVue, "#8dc149"},
	"svelte": {nerdIconSvelte, "#ff3e00"},
	"lock":   {nerdIconLock, "#bbbbbb"},
	"txt":    {nerdIconText, "#89e051"},
	"png":    {nerdIconImage, "#a074c4"},
	"jpg":    {nerdIconImage, "#a074c4"},
	"jpeg":   {nerdIconImage, "#a074c4"},
	"gif":    {nerdIconImage, "#a074c4"},
	"svg":    {nerdIconImage, "#ffb13b"},
	"zip":    {nerdIconArchive, "#eca517"},
	"gz":     {nerdIconArchive, "#eca517"},
	"tar":    {nerdIconArchive, "#eca517"},
}

// lightDarken is how far icon colors are pulled toward black on light
// backgrounds.
const lightDarken = 0.35

// IconSet looks up a glyph and color for file names.
type IconSet struct {
	style IconStyle
	mode  Mode
}

// NewIconSet creates an icon lookup for the given style and background.
func NewIconSet(style IconStyle, mode Mode) *IconSet {
	return &IconSet{style: style, mode: mode}
}

// Icon returns the glyph and #rrggbb color for name. The glyph is empty
// when icons are disabled.
func (s *IconSet) Icon(name string) (glyph string, color string) {
	if s.style == IconsNone {
		return "", ""
	}

	icon := lookupFileIcon(name)
	color = icon.color
	if s.mode == Light {
		color = FromHex(color).Darken(lightDarken).Hex()
	}

	if s.style == IconsASCII {
		return asciiIconFile, color
	}
	return icon.glyph, color
}

func lookupFileIcon(name string) fileIcon {
	base := strings.ToLower(path.Base(name))
	if icon, ok := iconsByName[base]; ok {
		return icon
	}
	if ext := strings.TrimPrefix(path.Ext(base), "."); ext != "" {
		if icon, ok := iconsByExt[ext]; ok {
			return icon
		}
	}
	return defaultFileIcon
}
