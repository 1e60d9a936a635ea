package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterDefauts(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.True(t, f.WithPagination)
	assert.Empty(t, f.Search)
}

func TestParseFilterLimiteEtPage(t *testing.T) {
	q := url.Values{}
	q.Set("limit", "50")
	q.Set("page", "3")

	f := ParseFilterFromQuery(q)
	assert.Equal(t, 50, f.Limit)
	assert.Equal(t, 3, f.Page)
	// Sans offset explicite, il se déduit de la page.
	assert.Equal(t, 100, f.Offset)
}

func TestParseFilterLimitePlafonnee(t *testing.T) {
	q := url.Values{}
	q.Set("limit", "9999")

	f := ParseFilterFromQuery(q)
	assert.Equal(t, MaxLimit, f.Limit)
}

func TestParseFilterValeursInvalidesIgnorees(t *testing.T) {
	q := url.Values{}
	q.Set("limit", "abc")
	q.Set("page", "-2")
	q.Set("offset", "x")

	f := ParseFilterFromQuery(q)
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
}

func TestParseFilterTriEtFiltres(t *testing.T) {
	q := url.Values{}
	q.Set("search", "dupont")
	q.Set("sort[nom]", "ASC")
	q.Set("sort[created_at]", "sideways")
	q.Set("filter[status]", "EN_ATTENTE")
	q.Add("filter[status]", "SERVIE")
	q.Set("withPagination", "false")

	f := ParseFilterFromQuery(q)
	assert.Equal(t, "dupont", f.Search)
	assert.Equal(t, map[string]string{"nom": "asc"}, f.Sort)
	assert.Equal(t, "EN_ATTENTE", f.Filter["status"])
	assert.False(t, f.WithPagination)
}
