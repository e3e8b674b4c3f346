package domain

import "time"

type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
}
