package execution

import (
	"fmt"
	"math/rand"
)

// BookRouter assigns a settlement book to an execution.
type BookRouter interface {
	RouteBook() string
}

// RandomRouter picks uniformly among the configured settlement books.
type RandomRouter struct {
	books []string
	rng   *rand.Rand
}

// NewRandomRouter creates a router over the given books.
func NewRandomRouter(books []string, rng *rand.Rand) (*RandomRouter, error) {
	if len(books) == 0 {
		return nil, fmt.Errorf("router requires at least one settlement book")
	}
	return &RandomRouter{books: books, rng: rng}, nil
}

// RouteBook returns one of the configured books.
func (r *RandomRouter) RouteBook() string {
	return r.books[r.rng.Intn(len(r.books))]
}
