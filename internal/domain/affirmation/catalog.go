package affirmation

// Catalog is the read-only content store: categories in declaration order
// plus their affirmation lists.
type Catalog struct {
	categories   []Category
	affirmations map[string][]string
}

// NewCatalog builds a catalog from the given categories and lists.
// Inputs are copied so later mutation by the caller has no effect.
func NewCatalog(categories []Category, affirmations map[string][]string) *Catalog {
	c := &Catalog{
		categories:   make([]Category, len(categories)),
		affirmations: make(map[string][]string, len(affirmations)),
	}
	copy(c.categories, categories)
	for id, list := range affirmations {
		c.affirmations[id] = append([]string(nil), list...)
	}
	return c
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultCategories, defaultAffirmations)
}

// RandomAffirmation picks a category uniformly from categoryIDs, then an
// affirmation uniformly from that category.
func (c *Catalog) RandomAffirmation(categoryIDs []string, rng Rand) string {
	if len(categoryIDs) == 0 {
		return NoCategoriesPrompt
	}

	id := categoryIDs[rng.IntN(len(categoryIDs))]
	list := c.affirmations[id]
	if len(list) == 0 {
		return FallbackAffirmation
	}
	return list[rng.IntN(len(list))]
}

// AllCategories returns every category in declaration order.
func (c *Catalog) AllCategories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// CategoryByID looks up a category's metadata.
func (c *Catalog) CategoryByID(id string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// AffirmationsForCategory returns the category's affirmations, or an empty
// slice when the id is unknown.
func (c *Catalog) AffirmationsForCategory(id string) []string {
	list := c.affirmations[id]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Has reports whether id names a declared category.
func (c *Catalog) Has(id string) bool {
	_, ok := c.CategoryByID(id)
	return ok
}
