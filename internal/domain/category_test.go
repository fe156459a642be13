package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id uint) *uint { return &id }

// The forest below, in storage order:
//
//	music (1, approved)
//	  jazz (2, approved)
//	    bebop (3, approved)
//	  metal (4, unapproved)
//	    doom (5, approved)
//	sports (6, approved)
func choicesFixture() []Category {
	return []Category{
		{ID: 1, Name: "music", Approved: true},
		{ID: 2, Name: "jazz", Approved: true, ParentID: ptr(1)},
		{ID: 3, Name: "bebop", Approved: true, ParentID: ptr(2)},
		{ID: 4, Name: "metal", ParentID: ptr(1)},
		{ID: 5, Name: "doom", Approved: true, ParentID: ptr(4)},
		{ID: 6, Name: "sports", Approved: true},
	}
}

func labels(choices []CategoryChoice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Label
	}

	return out
}

func TestBuildCategoryChoices(t *testing.T) {
	t.Run("depth-first with markers, unapproved subtree pruned", func(t *testing.T) {
		choices := BuildCategoryChoices(choicesFixture(), false, ApprovedOnly)

		// doom is approved but stays hidden behind its unapproved parent.
		assert.Equal(t, []string{"music", ">jazz", ">>bebop", "sports"}, labels(choices))
	})

	t.Run("moderator view keeps unapproved branches", func(t *testing.T) {
		choices := BuildCategoryChoices(choicesFixture(), false, AllCategories)

		assert.Equal(t, []string{"music", ">jazz", ">>bebop", ">metal", ">>doom", "sports"}, labels(choices))
	})

	t.Run("none sentinel is prepended with a nil ID", func(t *testing.T) {
		choices := BuildCategoryChoices(choicesFixture(), true, ApprovedOnly)

		require.NotEmpty(t, choices)
		assert.Equal(t, "---none---", choices[0].Label)
		assert.Nil(t, choices[0].ID)
		assert.Equal(t, "music", choices[1].Label)
	})

	t.Run("IDs survive the flattening", func(t *testing.T) {
		choices := BuildCategoryChoices(choicesFixture(), false, AllCategories)

		ids := make([]uint, len(choices))
		for i, c := range choices {
			require.NotNil(t, c.ID)
			ids[i] = *c.ID
		}
		assert.Equal(t, []uint{1, 2, 3, 4, 5, 6}, ids)
	})

	t.Run("roots keep storage order", func(t *testing.T) {
		categories := []Category{
			{ID: 10, Name: "zebra", Approved: true},
			{ID: 11, Name: "alpha", Approved: true},
		}
		choices := BuildCategoryChoices(categories, false, ApprovedOnly)

		assert.Equal(t, []string{"zebra", "alpha"}, labels(choices))
	})

	t.Run("empty forest", func(t *testing.T) {
		assert.Empty(t, BuildCategoryChoices(nil, false, ApprovedOnly))

		choices := BuildCategoryChoices(nil, true, ApprovedOnly)
		assert.Len(t, choices, 1)
	})
}
