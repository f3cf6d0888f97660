package diff

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Exclude returns a copy of data without the files whose path matches any of
// the doublestar patterns.
func Exclude(data *Data, patterns []string) (*Data, error) {
	if len(patterns) == 0 {
		return data, nil
	}

	out := &Data{Hunks: make(map[string][]Hunk, len(data.Hunks))}
	for _, f := range data.Files {
		skip, err := matchAny(patterns, f.Path)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		out.Files = append(out.Files, f)
		if hunks, ok := data.Hunks[f.Path]; ok {
			out.Hunks[f.Path] = hunks
		}
	}
	return out, nil
}

func matchAny(patterns []string, path string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, path)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
