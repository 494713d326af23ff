// Package project reads the Vercel project a directory is linked to.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// LinkFile is written by `vercel link`
const LinkFile = ".vercel/project.json"

// ErrNotLinked is returned when no link file exists
var ErrNotLinked = errors.New("directory is not linked to a Vercel project")

// Project identifies a linked Vercel project
type Project struct {
	ID    string
	OrgID string
	Name  string
	Path  string
}

// DisplayName returns the project name, or its id when unnamed
func (p *Project) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Load reads the link file under dir
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, LinkFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLinked
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(path, data)
}

// Parse extracts the project fields from a link file body
func Parse(path string, data []byte) (*Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON in %s", path)
	}

	doc := gjson.ParseBytes(data)
	p := &Project{
		ID:    doc.Get("projectId").String(),
		OrgID: doc.Get("orgId").String(),
		Name:  doc.Get("projectName").String(),
		Path:  path,
	}
	if p.ID == "" {
		return nil, fmt.Errorf("missing projectId in %s", path)
	}
	return p, nil
}

// Find walks up from dir to the first linked directory
func Find(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for {
		p, err := Load(abs)
		if !errors.Is(err, ErrNotLinked) {
			return p, err
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, ErrNotLinked
		}
		abs = parent
	}
}
