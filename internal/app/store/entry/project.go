package entrystore

import (
	"sort"
	"strings"

	"github.com/SadiqNaizam/fileworkbench/internal/app/system/sizeutil"
	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// SortKey selects which entry field the listing is ordered by.
type SortKey string

// Sort keys accepted in the dashboard's sort query parameter.
const (
	SortName     SortKey = "name"
	SortModified SortKey = "modified"
	SortSize     SortKey = "size"
	SortKind     SortKey = "kind"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec is the active sort: exactly one key and one direction.
type SortSpec struct {
	Key SortKey
	Dir Direction
}

// DefaultSort is what the dashboard shows before the user picks anything.
var DefaultSort = SortSpec{Key: SortName, Dir: Asc}

// ParseSortSpec maps raw query values to a SortSpec, falling back to the
// default for anything unrecognized.
func ParseSortSpec(key, dir string) SortSpec {
	spec := DefaultSort
	switch SortKey(strings.ToLower(strings.TrimSpace(key))) {
	case SortName, SortModified, SortSize, SortKind:
		spec.Key = SortKey(strings.ToLower(strings.TrimSpace(key)))
	}
	if Direction(strings.ToLower(strings.TrimSpace(dir))) == Desc {
		spec.Dir = Desc
	}
	return spec
}

// Project derives the visible listing from a snapshot: filter by query,
// then sort by spec. The input slice is not modified.
//
// Folders always sort before files, whatever the key and direction; the
// direction only orders entries within each group. For the modified key
// the natural (ascending) order is newest first, so desc shows oldest
// first.
func Project(entries []models.Entry, query string, spec SortSpec) []models.Entry {
	folded := text.Fold(strings.TrimSpace(query))

	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if folded == "" || strings.Contains(e.NameCI, folded) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if a.IsFolder() != b.IsFolder() {
			return a.IsFolder()
		}

		less, equal := compare(a, b, spec.Key)
		if equal {
			return a.NameCI < b.NameCI
		}
		if spec.Dir == Desc {
			return !less
		}
		return less
	})

	return out
}

// compare orders a against b by key in ascending terms.
func compare(a, b models.Entry, key SortKey) (less, equal bool) {
	switch key {
	case SortModified:
		if a.ModifiedAt.Equal(b.ModifiedAt) {
			return false, true
		}
		// Newest first is the natural order for this key.
		return a.ModifiedAt.After(b.ModifiedAt), false
	case SortSize:
		as := parsedSize(a)
		bs := parsedSize(b)
		if as == bs {
			return false, true
		}
		return as < bs, false
	case SortKind:
		// Same-kind pairs fall through to the name tiebreak; the
		// folders-first partition already handled the cross-kind case.
		return false, true
	default: // SortName
		if a.NameCI == b.NameCI {
			return false, true
		}
		return a.NameCI < b.NameCI, false
	}
}

// parsedSize reads an entry's display label back to bytes. Folders carry
// no label and count as zero; a malformed label also counts as zero so a
// bad fixture cannot break the listing.
func parsedSize(e models.Entry) int64 {
	if e.IsFolder() || e.SizeLabel == "" {
		return 0
	}
	n, err := sizeutil.Parse(e.SizeLabel)
	if err != nil {
		return 0
	}
	return n
}

// Usage sums the parsed sizes of file entries and reports the usage
// percentage against the quota. Folders do not consume quota.
func Usage(entries []models.Entry, quotaBytes int64) (usedBytes int64, percent int) {
	for _, e := range entries {
		usedBytes += parsedSize(e)
	}
	return usedBytes, sizeutil.Percent(usedBytes, quotaBytes)
}
