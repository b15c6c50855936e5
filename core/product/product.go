package product

import "time"

type Product struct {
	ID            string    `json:"id" db:"product_id"`
	Slug          string    `json:"slug" db:"slug"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Price         int       `json:"price" db:"price"`
	OriginalPrice *int      `json:"originalPrice,omitempty" db:"original_price"`
	Stock         int       `json:"stock" db:"stock"`
	ImageURL      string    `json:"imageUrl" db:"image_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	Version       int       `json:"-" db:"version"`
}

type ProductNew struct {
	Slug          string `json:"slug" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Price         int    `json:"price" validate:"required,gte=0"`
	OriginalPrice *int   `json:"originalPrice" validate:"omitempty,gte=0"`
	Stock         int    `json:"stock" validate:"gte=0"`
	ImageURL      string `json:"imageUrl"`
}

type ProductUp struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *int    `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice *int    `json:"originalPrice" validate:"omitempty,gte=0"`
	Stock         *int    `json:"stock" validate:"omitempty,gte=0"`
	ImageURL      *string `json:"imageUrl"`
}
