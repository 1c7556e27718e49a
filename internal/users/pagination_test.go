package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePageNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"-3", 1},
		{"0", 1},
		{"1", 1},
		{"7", 7},
		{"9999", 9999},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolvePageNumber(tc.raw), "raw=%q", tc.raw)
	}
}

func TestResolvePageSize(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 10},
		{"abc", 10},
		{"0", 10},
		{"-5", 10},
		{"1", 1},
		{"15", 15},
		{"20", 20},
		{"100", 20},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolvePageSize(tc.raw), "raw=%q", tc.raw)
	}
}

func TestBuildPageMeta(t *testing.T) {
	links := NewLinkBuilder()

	t.Run("first page of three", func(t *testing.T) {
		meta := BuildPageMeta(&UserPage{TotalCount: 25, PageSize: 10, CurrentPage: 1, TotalPages: 3}, links)

		assert.Nil(t, meta.PreviousPageLink)
		require.NotNil(t, meta.NextPageLink)
		assert.Contains(t, *meta.NextPageLink, "pageNumber=2")
		assert.Contains(t, *meta.NextPageLink, "pageSize=10")
		assert.Equal(t, 25, meta.TotalCount)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("middle page", func(t *testing.T) {
		meta := BuildPageMeta(&UserPage{TotalCount: 25, PageSize: 10, CurrentPage: 2, TotalPages: 3}, links)

		require.NotNil(t, meta.PreviousPageLink)
		require.NotNil(t, meta.NextPageLink)
		assert.Contains(t, *meta.PreviousPageLink, "pageNumber=1")
		assert.Contains(t, *meta.NextPageLink, "pageNumber=3")
	})

	t.Run("last page", func(t *testing.T) {
		meta := BuildPageMeta(&UserPage{TotalCount: 25, PageSize: 10, CurrentPage: 3, TotalPages: 3}, links)

		require.NotNil(t, meta.PreviousPageLink)
		assert.Contains(t, *meta.PreviousPageLink, "pageNumber=2")
		assert.Nil(t, meta.NextPageLink)
	})

	t.Run("single page has no links", func(t *testing.T) {
		meta := BuildPageMeta(&UserPage{TotalCount: 3, PageSize: 10, CurrentPage: 1, TotalPages: 1}, links)

		assert.Nil(t, meta.PreviousPageLink)
		assert.Nil(t, meta.NextPageLink)
	})
}

func TestResourceLink(t *testing.T) {
	links := NewLinkBuilder()
	assert.Equal(t, "/users/abc", links.ResourceLink("users.read", "abc"))
}
