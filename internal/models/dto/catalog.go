package dto

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  *int64  `json:"category_id"`
	ImageURL    *string `json:"image_url"`
}

// UpdateProductRequest carries the optional fields of a partial product edit.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *int64   `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
}

func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil &&
		r.CategoryID == nil && r.ImageURL == nil
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}
