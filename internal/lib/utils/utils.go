// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidIDList is returned for an empty list or a non-positive/non-numeric id.
var ErrInvalidIDList = errors.New("invalid id list")

// ParseIDList parses "1,2,3" into ids, dropping duplicates and keeping order.
func ParseIDList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIDList, p)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, ErrInvalidIDList
	}
	return ids, nil
}
