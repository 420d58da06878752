package manifest

import (
	"sort"

	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/beevik/etree"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// decoder turns raw manifest bytes into entries
type decoder interface {
	Name() string
	Decode(data []byte) (rawDocument, error)
}

// decoders maps lower-case file extensions to the parser handling them
var decoders = map[string]decoder{
	".yaml": yamlDecoder{},
	".yml":  yamlDecoder{},
	".toml": tomlDecoder{},
	".xml":  xmlDecoder{},
}

// SupportedExtensions lists the manifest extensions that can be parsed
func SupportedExtensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

type yamlDecoder struct{}

func (yamlDecoder) Name() string { return "yaml" }

func (yamlDecoder) Decode(data []byte) (rawDocument, error) {
	var doc struct {
		Dotfiles *[]types.DotfileEntry `yaml:"dotfiles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return rawDocument{}, err
	}
	if doc.Dotfiles == nil {
		return rawDocument{}, nil
	}
	return rawDocument{Present: true, Entries: *doc.Dotfiles}, nil
}

type tomlDecoder struct{}

func (tomlDecoder) Name() string { return "toml" }

// Decode expects an array of tables:
//
//	[[dotfiles]]
//	source = "zsh/zshrc"
//	destination = ".zshrc"
//	description = "zsh configuration"
func (tomlDecoder) Decode(data []byte) (rawDocument, error) {
	var doc struct {
		Dotfiles *[]types.DotfileEntry `toml:"dotfiles"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return rawDocument{}, err
	}
	if doc.Dotfiles == nil {
		return rawDocument{}, nil
	}
	return rawDocument{Present: true, Entries: *doc.Dotfiles}, nil
}

type xmlDecoder struct{}

func (xmlDecoder) Name() string { return "xml" }

// Decode reads <dotfiles><dotfile .../></dotfiles>. Fields may be given as
// attributes or as child elements; attributes win when both are present.
func (xmlDecoder) Decode(data []byte) (rawDocument, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return rawDocument{}, err
	}

	root := doc.Root()
	if root == nil || root.Tag != CollectionKey {
		return rawDocument{}, nil
	}

	var entries []types.DotfileEntry
	for _, el := range root.SelectElements("dotfile") {
		entries = append(entries, types.DotfileEntry{
			Source:      xmlField(el, "source"),
			Destination: xmlField(el, "destination"),
			Description: xmlField(el, "description"),
		})
	}
	return rawDocument{Present: true, Entries: entries}, nil
}

func xmlField(el *etree.Element, name string) string {
	if v := el.SelectAttrValue(name, ""); v != "" {
		return v
	}
	if child := el.SelectElement(name); child != nil {
		return child.Text()
	}
	return ""
}
