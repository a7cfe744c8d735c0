package entity

import "fmt"

type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortName   SortKey = "name"
	SortSize   SortKey = "size"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortNewest, SortOldest, SortName, SortSize:
		return k, nil
	case "":
		return SortNewest, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (allowed: newest, oldest, name, size)", s)
	}
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case ViewGrid, ViewList:
		return m, nil
	case "":
		return ViewGrid, nil
	default:
		return "", fmt.Errorf("unknown view mode %q (allowed: grid, list)", s)
	}
}
