package models

// Patch structs carry partial updates. A nil field is left untouched in the
// store; a non-nil field overwrites the stored value.

type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ProductPatch struct {
	Name        *string   `json:"name,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	CategoryID  *int      `json:"category_id,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	Fabric      *string   `json:"fabric,omitempty"`
	WorkDetails *string   `json:"work_details,omitempty"`
	InStock     *bool     `json:"in_stock,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`

	// ClearCategory detaches the product from its category. CategoryID nil
	// alone means "leave as is", so clearing needs its own flag.
	ClearCategory bool `json:"clear_category,omitempty"`
}

type CartItemPatch struct {
	Quantity *int `json:"quantity,omitempty"`
}

// ProductFilter narrows ListProducts. All predicates are conjunctive; a nil
// field applies no constraint. CategorySlug is resolved to a category id
// first; an unknown slug skips the predicate rather than emptying the result.
type ProductFilter struct {
	CategoryID   *int     `schema:"category_id"`
	CategorySlug *string  `schema:"category"`
	Featured     *bool    `schema:"featured"`
	MinPrice     *float64 `schema:"min_price"`
	MaxPrice     *float64 `schema:"max_price"`
	Search       *string  `schema:"search"`
	Fabric       *string  `schema:"fabric"`
	WorkDetails  *string  `schema:"work"`
}
