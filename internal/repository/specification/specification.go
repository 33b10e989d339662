package specification

import "gorm.io/gorm"

// Specification narrows a query. Choice lists and repositories apply them in order.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Orderer marks specifications that impose an ordering, so a choice list
// knows not to add its default one.
type Orderer interface {
	Specification
	ordering()
}

func HasOrdering(specs []Specification) bool {
	for _, s := range specs {
		if _, ok := s.(Orderer); ok {
			return true
		}
	}
	return false
}
