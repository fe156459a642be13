package domain

import "time"

// Category forms a forest: roots have no parent. The parent is set at
// creation only, so cycles cannot be introduced later.
type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Approved    bool      `json:"approved"`
	ParentID    *uint     `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryChoice is one row of a selection list. ID is nil for the
// "no parent" sentinel.
type CategoryChoice struct {
	ID    *uint  `json:"id"`
	Label string `json:"label"`
}

const (
	choiceNoneLabel   = "---none---"
	choiceDepthMarker = ">"
)

// ApprovedOnly is the default visibility predicate for category
// listings shown to regular users.
func ApprovedOnly(c Category) bool {
	return c.Approved
}

// AllCategories makes unapproved categories visible, for moderator and
// administrator listings.
func AllCategories(Category) bool {
	return true
}

// BuildCategoryChoices flattens the category forest into an ordered
// selection list. Roots are visited in the order given (storage order,
// not re-sorted) and each subtree depth-first; labels get one marker
// per depth level. A node failing the predicate is skipped together
// with its whole subtree, so an unapproved branch stays hidden even if
// a descendant is itself approved.
func BuildCategoryChoices(categories []Category, includeNone bool, visible func(Category) bool) []CategoryChoice {
	children := make(map[uint][]Category)
	var roots []Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var choices []CategoryChoice
	if includeNone {
		choices = append(choices, CategoryChoice{ID: nil, Label: choiceNoneLabel})
	}

	var walk func(c Category, prefix string)
	walk = func(c Category, prefix string) {
		id := c.ID
		choices = append(choices, CategoryChoice{ID: &id, Label: prefix + c.Name})
		for _, sub := range children[c.ID] {
			if visible(sub) {
				walk(sub, prefix+choiceDepthMarker)
			}
		}
	}

	for _, root := range roots {
		if visible(root) {
			walk(root, "")
		}
	}

	return choices
}
