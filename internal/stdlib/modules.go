// Package stdlib holds the static, version-keyed dataset of importable
// standard library modules, and the partitions of deprecated modules and
// deprecated names.
//
// The dataset is embedded at build time. We maintain our own list instead of
// walking GOROOT at runtime, for the same reason the interpreter ships
// pre-extracted symbol tables: the set of importable packages is a property
// of the release, not of the machine the process happens to run on.
package stdlib

import (
	"embed"
	"fmt"
	"regexp"
	"runtime"
	"sort"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed versions/*.toml deprecated.toml
var datasets embed.FS

// Version is a (major, minor) pair of a Go release, e.g. go1.22 is {1, 22}.
type Version struct {
	Major int
	Minor int
}

// AtLeast reports whether v is the same release as w or a newer one.
func (v Version) AtLeast(w Version) bool {
	if v.Major != w.Major {
		return v.Major > w.Major
	}
	return v.Minor >= w.Minor
}

func (v Version) String() string {
	return fmt.Sprintf("go%d.%d", v.Major, v.Minor)
}

var versionPattern = regexp.MustCompile(`^go(\d+)\.(\d+)`)

// ParseVersion extracts the (major, minor) pair from a toolchain version
// string such as "go1.22.4". Patch levels and pre-release suffixes are
// discarded.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("unrecognized toolchain version %q", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	return Version{Major: major, Minor: minor}, nil
}

type moduleList struct {
	Version string   `toml:"version"`
	Modules []string `toml:"modules"`
}

type deprecatedData struct {
	ModuleSets []struct {
		Since   string   `toml:"since"`
		Modules []string `toml:"modules"`
	} `toml:"module_set"`
	NameSets []struct {
		Since  string   `toml:"since"`
		Module string   `toml:"module"`
		Names  []string `toml:"names"`
	} `toml:"name_set"`
}

var (
	moduleLists map[Version][]string
	deprecated  deprecatedData
)

func init() {
	moduleLists = make(map[Version][]string)

	entries, err := datasets.ReadDir("versions")
	if err != nil {
		panic(fmt.Sprintf("stdlib dataset missing: %v", err))
	}
	for _, entry := range entries {
		data, err := datasets.ReadFile("versions/" + entry.Name())
		if err != nil {
			panic(fmt.Sprintf("stdlib dataset unreadable: %v", err))
		}
		var list moduleList
		if err := toml.Unmarshal(data, &list); err != nil {
			panic(fmt.Sprintf("stdlib dataset %s malformed: %v", entry.Name(), err))
		}
		version, err := ParseVersion(list.Version)
		if err != nil {
			panic(fmt.Sprintf("stdlib dataset %s: %v", entry.Name(), err))
		}
		sort.Strings(list.Modules)
		moduleLists[version] = list.Modules
	}

	data, err := datasets.ReadFile("deprecated.toml")
	if err != nil {
		panic(fmt.Sprintf("deprecated dataset missing: %v", err))
	}
	if err := toml.Unmarshal(data, &deprecated); err != nil {
		panic(fmt.Sprintf("deprecated dataset malformed: %v", err))
	}
}

// RuntimeVersion is the release this process was built with.
func RuntimeVersion() Version {
	v, err := ParseVersion(runtime.Version())
	if err != nil {
		// Non-release toolchains (devel builds) get the newest dataset.
		return newestDataset()
	}
	return v
}

func newestDataset() Version {
	var newest Version
	for v := range moduleLists {
		if v.AtLeast(newest) {
			newest = v
		}
	}
	return newest
}

// Modules returns the importable module list for the given release, sorted in
// canonical enumeration order (lexicographic by import path). If no dataset
// matches the release exactly, the newest dataset not exceeding it is used,
// falling back to the oldest one for releases predating all datasets.
//
// The returned slice is a copy; callers may filter it freely.
func Modules(v Version) []string {
	best, ok := Version{}, false
	for candidate := range moduleLists {
		if v.AtLeast(candidate) && (!ok || candidate.AtLeast(best)) {
			best, ok = candidate, true
		}
	}
	if !ok {
		// Release older than every dataset: use the oldest we have.
		for candidate := range moduleLists {
			if !ok || best.AtLeast(candidate) {
				best, ok = candidate, true
			}
		}
	}
	modules := make([]string, len(moduleLists[best]))
	copy(modules, moduleLists[best])
	return modules
}

// DeprecatedModules returns the set of modules deprecated as of the given
// release.
func DeprecatedModules(v Version) map[string]bool {
	out := make(map[string]bool)
	for _, set := range deprecated.ModuleSets {
		since, err := ParseVersion(set.Since)
		if err != nil || !v.AtLeast(since) {
			continue
		}
		for _, module := range set.Modules {
			out[module] = true
		}
	}
	return out
}

// DeprecatedName reports whether the named symbol of the given module is
// deprecated as of the given release.
func DeprecatedName(v Version, module, name string) bool {
	for _, set := range deprecated.NameSets {
		if set.Module != module {
			continue
		}
		since, err := ParseVersion(set.Since)
		if err != nil || !v.AtLeast(since) {
			continue
		}
		for _, n := range set.Names {
			if n == name {
				return true
			}
		}
	}
	return false
}

// DatasetVersions returns the releases a dataset exists for, oldest first.
func DatasetVersions() []Version {
	versions := make([]Version, 0, len(moduleLists))
	for v := range moduleLists {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return !versions[i].AtLeast(versions[j]) })
	return versions
}
