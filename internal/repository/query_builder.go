package repository

import "github.com/doug-martin/goqu/v9"

// QueryBuilder turns filter keys into goqu expressions, translating keys
// through aliases so callers never spell out table prefixes.
type QueryBuilder interface {
	AddCondition(key string, value interface{})
	BuildConditions(aliases map[string]string) goqu.Ex
}
