// Package templates provides the bundled default rule documents that setup
// seeds into the user's config directory.
package templates

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/crules/pkg/errors"
)

// GlobalName is the name of the global rules blob
const GlobalName = "global"

const (
	globalFile = "global.md"
	langDir    = "lang"
	langExt    = ".md"
)

//go:embed embedded
var embedded embed.FS

// Provider returns named text blobs: the global rules document and one rule
// document per language identifier.
type Provider interface {
	// Languages returns the sorted identifiers of the available language rules
	Languages() ([]string, error)
	// Get returns the blob named GlobalName or a language identifier
	Get(name string) (string, error)
}

// FSProvider reads templates from an fs.FS laid out as
//
//	global.md
//	lang/<id>.md
type FSProvider struct {
	fsys fs.FS
}

// New creates a provider over fsys
func New(fsys fs.FS) *FSProvider {
	return &FSProvider{fsys: fsys}
}

// Default returns the provider for the templates compiled into the binary
func Default() *FSProvider {
	sub, err := fs.Sub(embedded, "embedded")
	if err != nil {
		panic(err)
	}
	return New(sub)
}

func (p *FSProvider) Languages() ([]string, error) {
	entries, err := fs.ReadDir(p.fsys, langDir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplate, "failed to list language templates")
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), langExt) {
			continue
		}
		if id := strings.TrimSuffix(entry.Name(), langExt); id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (p *FSProvider) Get(name string) (string, error) {
	file := globalFile
	if name != GlobalName {
		file = path.Join(langDir, name+langExt)
	}

	data, err := fs.ReadFile(p.fsys, file)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplate, "template %q not available", name)
	}
	return string(data), nil
}
