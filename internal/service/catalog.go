package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
)

// Catalog is the permission table loaded once at startup. It is read-only
// afterwards and safe for concurrent use.
type Catalog struct {
	category map[string]string
	groups   []model.PermissionGroup
}

// LoadCatalog reads the seeded permissions.
func LoadCatalog(ctx context.Context, perms repository.PermissionRepository) (*Catalog, error) {
	all, err := perms.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load permission catalog: %w", err)
	}
	return NewCatalog(all), nil
}

func NewCatalog(perms []model.Permission) *Catalog {
	c := &Catalog{category: make(map[string]string, len(perms))}
	index := map[string]int{}
	for _, p := range perms {
		c.category[p.Key] = p.Category
		i, ok := index[p.Category]
		if !ok {
			i = len(c.groups)
			index[p.Category] = i
			c.groups = append(c.groups, model.PermissionGroup{Category: p.Category})
		}
		c.groups[i].Keys = append(c.groups[i].Keys, p.Key)
	}
	return c
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.category[key]
	return ok
}

// Check rejects keys missing from the catalog.
func (c *Catalog) Check(keys []string) error {
	var unknown []string
	for _, k := range keys {
		if !c.Has(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return apperror.Validation(map[string]string{"permissions": "unknown: " + strings.Join(unknown, ", ")})
}

// Groups returns the catalog grouped by category, in seed order.
func (c *Catalog) Groups() []model.PermissionGroup {
	out := make([]model.PermissionGroup, len(c.groups))
	for i, g := range c.groups {
		out[i] = model.PermissionGroup{Category: g.Category, Keys: append([]string(nil), g.Keys...)}
	}
	return out
}
