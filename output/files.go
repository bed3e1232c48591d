package output

import (
	"path/filepath"

	"github.com/yourusername/go-relgen/datagen"
)

type Role string

const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
)

// FileSpec names one of the four fixture files.
type FileSpec struct {
	Role    Role
	Ordered bool
	Path    string
}

// Kind is the middle part of the file name, e.g. "unordered_secondary".
func (f FileSpec) Kind() string {
	return kind(f.Role, f.Ordered)
}

func kind(role Role, ordered bool) string {
	if ordered {
		return "ordered_" + string(role)
	}
	return "unordered_" + string(role)
}

// Plan lists the fixture files in the order they are written.
func Plan(dir string, cfg datagen.Config, codec Codec) []FileSpec {
	specs := []FileSpec{
		{Role: RolePrimary, Ordered: true},
		{Role: RoleSecondary, Ordered: true},
		{Role: RolePrimary, Ordered: false},
		{Role: RoleSecondary, Ordered: false},
	}
	for i := range specs {
		specs[i].Path = filepath.Join(dir, cfg.FileName(specs[i].Kind())+codec.Suffix())
	}
	return specs
}

// Find returns the spec for role/ordered from a plan.
func Find(specs []FileSpec, role Role, ordered bool) (FileSpec, bool) {
	for _, s := range specs {
		if s.Role == role && s.Ordered == ordered {
			return s, true
		}
	}
	return FileSpec{}, false
}
