package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
)

func boolPtr(b bool) *bool { return &b }

func normalized(p repository.GuestListParams) repository.GuestListParams {
	p.Normalize()
	return p
}

func TestBuildGuestListQueryDefaults(t *testing.T) {
	sql, args := buildGuestListQuery(normalized(repository.GuestListParams{}))

	assert.Contains(t, sql, "WHERE deleted_at IS NULL")
	assert.Contains(t, sql, "ORDER BY (first_name || ' ' || middle_name || ' ' || last_name) ASC")
	assert.Equal(t, []any{10, 0}, args, "limit 10, offset 0")
}

func TestBuildGuestListQuerySearch(t *testing.T) {
	sql, args := buildGuestListQuery(normalized(repository.GuestListParams{Search: "ana"}))

	assert.Contains(t, sql, "first_name ILIKE $1")
	assert.Contains(t, sql, "(first_name || ' ' || middle_name || ' ' || last_name) ILIKE $1")
	assert.Equal(t, "%ana%", args[0])
}

func TestBuildGuestListQueryFilters(t *testing.T) {
	sql, args := buildGuestListQuery(normalized(repository.GuestListParams{
		Assist: boolPtr(true),
		SawSD:  boolPtr(false),
	}))

	assert.Contains(t, sql, "assist = $1")
	assert.Contains(t, sql, "saw_sd = $2")
	assert.Equal(t, []any{true, false, 10, 0}, args)
}

func TestBuildGuestListQueryPagination(t *testing.T) {
	_, args := buildGuestListQuery(normalized(repository.GuestListParams{Page: 3, Limit: 25}))
	assert.Equal(t, []any{25, 50}, args)
}

func TestBuildGuestListQueryClampsPagination(t *testing.T) {
	_, args := buildGuestListQuery(normalized(repository.GuestListParams{Page: -4, Limit: 0}))
	assert.Equal(t, []any{10, 0}, args, "negative page clamps to the first")
}

func TestBuildGuestListQuerySortWhitelist(t *testing.T) {
	sql, _ := buildGuestListQuery(normalized(repository.GuestListParams{
		SortBy: "password; DROP TABLE guests",
		Sort:   "desc",
	}))

	assert.NotContains(t, sql, "DROP TABLE")
	assert.Contains(t, sql, "ORDER BY (first_name || ' ' || middle_name || ' ' || last_name) DESC")
}

func TestBuildGuestListQuerySortColumns(t *testing.T) {
	for col := range guestSortColumns {
		sql, _ := buildGuestListQuery(normalized(repository.GuestListParams{SortBy: col}))
		assert.True(t, strings.Contains(sql, "ORDER BY "+guestSortColumns[col]+" ASC"), col)
	}
}
