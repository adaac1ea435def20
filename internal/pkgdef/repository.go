package pkgdef

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/turboladen/selfie/internal/fsport"
	"github.com/turboladen/selfie/internal/worker"
)

// yamlExtensions are the two file suffixes a package definition may use.
var yamlExtensions = []string{".yaml", ".yml"}

// ParseFailure pairs a candidate file with the error encountered parsing
// it, so a single bad file never hides the packages that did parse.
type ParseFailure struct {
	Path string
	Err  error
}

// ListResult is the outcome of Repository.List: everything that parsed,
// and everything that didn't.
type ListResult struct {
	Valid   []Package
	Invalid []ParseFailure
}

// Repository is the directory-backed Package store (spec.md §4.3).
type Repository struct {
	fs        fsport.FS
	directory string

	// concurrency bounds the worker pool List uses to parse candidate
	// files; 0 defaults to runtime.NumCPU().
	concurrency int
}

// NewRepository returns a Repository rooted at directory.
func NewRepository(fs fsport.FS, directory string, concurrency int) *Repository {
	return &Repository{fs: fs, directory: directory, concurrency: concurrency}
}

// FindFiles returns every candidate path for name (i.e. <name>.yaml and
// <name>.yml) that actually exists under the package directory.
func (r *Repository) FindFiles(name string) []string {
	var found []string
	for _, ext := range yamlExtensions {
		p := filepath.Join(r.directory, name+ext)
		if r.fs.PathExists(p) {
			found = append(found, p)
		}
	}
	return found
}

// Get resolves name to a single Package, stamping its SourcePath.
func (r *Repository) Get(name string) (Package, error) {
	matches := r.FindFiles(name)
	switch len(matches) {
	case 0:
		return Package{}, &NotFoundError{
			Name:           name,
			SearchedPaths:  []string{r.directory},
			SearchPatterns: []string{name + ".yaml", name + ".yml"},
		}
	case 1:
		return r.parseFile(matches[0])
	default:
		return Package{}, &MultiplePackagesFoundError{Name: name, ConflictingPaths: matches}
	}
}

func (r *Repository) parseFile(path string) (Package, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return Package{}, &ParseError{Path: path, Err: err}
	}
	pkg, err := ParsePackage(data)
	if err != nil {
		return Package{}, &ParseError{Path: path, Size: int64(len(data)), Err: err}
	}
	pkg.SourcePath = path
	return pkg, nil
}

// List enumerates every *.yaml/*.yml file (case-insensitive) under the
// package directory and attempts to parse each one, fanning the parse
// work out across the teacher's generic internal/worker pool (there used
// to parallelize transcript-file fan-out for forge/search/inject; here it
// parallelizes package-file parsing) so a large package directory doesn't
// serialize on disk I/O.
func (r *Repository) List() (ListResult, error) {
	entries, err := r.fs.ListDirectory(r.directory)
	if err != nil {
		return ListResult{}, err
	}

	var candidates []string
	for _, entry := range entries {
		lower := strings.ToLower(entry)
		for _, ext := range yamlExtensions {
			if strings.HasSuffix(lower, ext) {
				candidates = append(candidates, entry)
				break
			}
		}
	}

	pool := worker.NewPool[Package](r.concurrency)
	results := pool.Process(candidates, r.parseFile)

	var out ListResult
	for i, res := range results {
		if res.Err != nil {
			out.Invalid = append(out.Invalid, ParseFailure{Path: candidates[i], Err: res.Err})
			continue
		}
		out.Valid = append(out.Valid, res.Value)
	}

	sort.Slice(out.Valid, func(i, j int) bool { return out.Valid[i].Name < out.Valid[j].Name })
	sort.Slice(out.Invalid, func(i, j int) bool { return out.Invalid[i].Path < out.Invalid[j].Path })
	return out, nil
}

// Save serializes pkg and writes it through the filesystem port at path.
func (r *Repository) Save(pkg Package, path string) error {
	data, err := SerializePackage(pkg)
	if err != nil {
		return err
	}
	return r.fs.WriteFile(path, data)
}

// Remove deletes every file backing name.
func (r *Repository) Remove(name string) error {
	matches := r.FindFiles(name)
	if len(matches) == 0 {
		return &NotFoundError{
			Name:           name,
			SearchedPaths:  []string{r.directory},
			SearchPatterns: []string{name + ".yaml", name + ".yml"},
		}
	}
	for _, path := range matches {
		if err := r.fs.RemoveFile(path); err != nil {
			return err
		}
	}
	return nil
}

// FindDependents returns every package whose environments list name as a
// dependency.
func (r *Repository) FindDependents(name string) ([]Package, error) {
	listed, err := r.List()
	if err != nil {
		return nil, err
	}
	var dependents []Package
	for _, pkg := range listed.Valid {
		if dependsOn(pkg, name) {
			dependents = append(dependents, pkg)
		}
	}
	return dependents, nil
}

func dependsOn(pkg Package, name string) bool {
	for _, env := range pkg.Environments {
		for _, dep := range env.Dependencies {
			if dep == name {
				return true
			}
		}
	}
	return false
}
