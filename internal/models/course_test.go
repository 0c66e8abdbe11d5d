package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_CacheKey(t *testing.T) {
	q := DefaultListQuery("다모아 요리:학원", 2025, 8)

	assert.Equal(t, "hrd:list:%EB%8B%A4%EB%AA%A8%EC%95%84+%EC%9A%94%EB%A6%AC%3A%ED%95%99%EC%9B%90:20250101:20251231:1:8:2:DESC", q.CacheKey())

	other := q
	other.Page = 2
	assert.NotEqual(t, q.CacheKey(), other.CacheKey())

	other = q
	other.SortDir = "ASC"
	assert.NotEqual(t, q.CacheKey(), other.CacheKey())
}

func TestDetailQuery_Keys(t *testing.T) {
	withInst := DetailQuery{CourseID: "AIG2025001", SessionIndex: "3", InstitutionID: "500020012345"}
	without := DetailQuery{CourseID: "AIG2025001", SessionIndex: "3"}

	assert.Equal(t, "hrd:detail:AIG2025001:3:500020012345", withInst.CacheKey())
	assert.NotEqual(t, withInst.CacheKey(), without.CacheKey())
	assert.Equal(t, withInst.ResolutionKey(), without.ResolutionKey())
}

func TestDefaultListQuery(t *testing.T) {
	q := DefaultListQuery("org", 2026, 12)

	assert.Equal(t, "20260101", q.StartDate)
	assert.Equal(t, "20261231", q.EndDate)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.PageSize)
	assert.Equal(t, "DESC", q.SortDir)
}
