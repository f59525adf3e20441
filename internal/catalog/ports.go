package catalog

import (
	"context"
)

// Catalog is the handler-facing contract implemented by *Service.
//
// Create, Update and Delete always complete and report business failures
// in the MutationResult. Get, List and GetAll return an error only for
// unexpected internal faults, which the transport surfaces as INTERNAL.
type Catalog interface {
	Create(ctx context.Context, f Fields) MutationResult
	Get(ctx context.Context, id int64) (Book, bool, error)
	Update(ctx context.Context, id int64, f Fields, paths []string) MutationResult
	Delete(ctx context.Context, id int64) MutationResult
	List(ctx context.Context, q ListQuery) ([]Book, int, error)
	GetAll(ctx context.Context) ([]Book, int, error)
}

var _ Catalog = (*Service)(nil)
