package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// LatestVersion is the alias that always points at the newest version.
const LatestVersion = "latest"

const metadataFile = "metadata.json"

// Ref addresses one version of an artifact.
type Ref struct {
	Name    string
	Version string
}

// ParseRef parses "name:version". A missing version means LatestVersion.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	name, version := s, LatestVersion
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		name, version = s[:i], s[i+1:]
	}
	if name == "" || version == "" {
		return Ref{}, fmt.Errorf("artifact: invalid reference %q: want name:version", s)
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return Ref{}, fmt.Errorf("artifact: invalid name %q", name)
	}
	if strings.ContainsAny(version, "/\\") || version == "." || version == ".." {
		return Ref{}, fmt.Errorf("artifact: invalid version %q", version)
	}
	return Ref{Name: name, Version: version}, nil
}

func (r Ref) String() string { return r.Name + ":" + r.Version }

func (r Ref) key() string { return path.Join(r.Name, r.Version, r.Name) }

func (r Ref) metadataKey() string { return path.Join(r.Name, r.Version, metadataFile) }

// Artifact describes an artifact about to be logged.
type Artifact struct {
	Name        string
	Type        string
	Description string
	RunID       string
}

// Metadata is stored next to every logged version.
type Metadata struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Size        int64     `json:"size"`
	SHA256      string    `json:"sha256"`
	CreatedAt   time.Time `json:"created_at"`
	RunID       string    `json:"run_id,omitempty"`
}

// Ref returns the immutable reference of the logged version.
func (m Metadata) Ref() Ref { return Ref{Name: m.Name, Version: m.Version} }

// Registry resolves and logs versioned artifacts on a Store.
type Registry struct {
	store Store
	now   func() time.Time
	mu    sync.Mutex // serializes Log within this process
}

// NewRegistry returns a Registry backed by store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store, now: time.Now}
}

// Fetch opens the content of ref.
func (r *Registry) Fetch(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	rc, err := r.store.Open(ctx, ref.key())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("artifact %s: %w", ref, ErrNotFound)
		}
		return nil, fmt.Errorf("artifact %s: %w", ref, err)
	}
	return rc, nil
}

// Metadata reads the metadata of ref.
func (r *Registry) Metadata(ctx context.Context, ref Ref) (Metadata, error) {
	rc, err := r.store.Open(ctx, ref.metadataKey())
	if err != nil {
		return Metadata{}, fmt.Errorf("artifact %s metadata: %w", ref, err)
	}
	defer rc.Close()
	var m Metadata
	if err := json.NewDecoder(rc).Decode(&m); err != nil {
		return Metadata{}, fmt.Errorf("artifact %s metadata: %w", ref, err)
	}
	return m, nil
}

// Versions lists the numbered versions of name in logging order.
func (r *Registry) Versions(ctx context.Context, name string) ([]string, error) {
	keys, err := r.store.List(ctx, name+"/")
	if err != nil {
		return nil, fmt.Errorf("artifact %s: list versions: %w", name, err)
	}
	seen := map[int]bool{}
	for _, k := range keys {
		parts := strings.Split(k, "/")
		if len(parts) != 3 || parts[0] != name {
			continue
		}
		if n, ok := versionNumber(parts[1]); ok {
			seen[n] = true
		}
	}
	nums := make([]int, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = "v" + strconv.Itoa(n)
	}
	return out, nil
}

func versionNumber(v string) (int, bool) {
	if !strings.HasPrefix(v, "v") {
		return 0, false
	}
	n, err := strconv.Atoi(v[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Log stores data as the next version of a.Name and moves the latest alias
// to it.
func (r *Registry) Log(ctx context.Context, a Artifact, data []byte) (Metadata, error) {
	if ref, err := ParseRef(a.Name); err != nil || ref.Name != a.Name {
		return Metadata{}, fmt.Errorf("artifact: invalid name %q", a.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	versions, err := r.Versions(ctx, a.Name)
	if err != nil {
		return Metadata{}, err
	}
	next := 0
	if len(versions) > 0 {
		last, _ := versionNumber(versions[len(versions)-1])
		next = last + 1
	}
	sum := sha256.Sum256(data)
	m := Metadata{
		Name:        a.Name,
		Version:     "v" + strconv.Itoa(next),
		Type:        a.Type,
		Description: a.Description,
		Size:        int64(len(data)),
		SHA256:      hex.EncodeToString(sum[:]),
		CreatedAt:   r.now().UTC(),
		RunID:       a.RunID,
	}
	meta, err := json.Marshal(m)
	if err != nil {
		return Metadata{}, err
	}
	for _, ref := range []Ref{m.Ref(), {Name: a.Name, Version: LatestVersion}} {
		if err := r.store.Put(ctx, ref.key(), data); err != nil {
			return Metadata{}, fmt.Errorf("artifact %s: %w", ref, err)
		}
		if err := r.store.Put(ctx, ref.metadataKey(), meta); err != nil {
			return Metadata{}, fmt.Errorf("artifact %s metadata: %w", ref, err)
		}
	}
	return m, nil
}
