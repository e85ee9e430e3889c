package model

// AllCategoryID is the synthetic "show everything" category.
// It is a filter value only and never a stored, deletable category.
const AllCategoryID = "all"

// UncategorizedName is the category name used for imported links
// that live outside any folder.
const UncategorizedName = "Uncategorized"

// Category groups bookmarks. Order defines the display sequence;
// ties break by slice position.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// NewCategoryParams holds parameters for creating a new Category.
type NewCategoryParams struct {
	Name  string
	Order int
}

// NewCategory creates a Category with a generated UUID.
func NewCategory(params NewCategoryParams) Category {
	return Category{
		ID:    GenerateUUID(),
		Name:  params.Name,
		Order: params.Order,
	}
}

// IsAll reports whether c is the reserved "all" pseudo-category.
func (c Category) IsAll() bool {
	return c.ID == AllCategoryID
}

// CategoryPatch is a partial update for a Category.
type CategoryPatch struct {
	Name  *string
	Order *int
}

// Apply merges the patch into c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Order != nil {
		c.Order = *p.Order
	}
}

// CloneCategories copies a category slice, never returning nil.
func CloneCategories(in []Category) []Category {
	out := make([]Category, len(in))
	copy(out, in)
	return out
}
