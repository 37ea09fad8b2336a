package listingqa

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths into a Dataset in a chain-safe way.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
}

// Root returns the PathRef for the whole dataset.
func Root() PathRef { return &pathRef{parts: nil} }

// At parses a JSON Pointer such as "/rows/3/price" into a PathRef.
func At(path string) PathRef {
	if path == "" || path == "/" {
		return Root()
	}
	// naive split on '/', ignoring first empty due to leading '/'
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

// RowPath returns the path of column col in row i, e.g. /rows/12/price.
func RowPath(i int, col string) PathRef {
	return Root().Field("rows").Index(i).Field(col)
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}
