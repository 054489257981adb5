package db

import (
	"context"
	"fmt"

	"coaching-backend/internal/models"
)

type testimonialRepository struct {
	store DocumentStore
}

// NewTestimonialRepository creates a TestimonialRepository on top of a DocumentStore.
func NewTestimonialRepository(store DocumentStore) TestimonialRepository {
	return &testimonialRepository{store: store}
}

func (r *testimonialRepository) List(ctx context.Context) ([]*models.Testimonial, error) {
	docs, err := r.store.Query(ctx, TestimonialsCollection, Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	out := make([]*models.Testimonial, 0, len(docs))
	for _, doc := range docs {
		var t models.Testimonial
		if err := doc.DataTo(&t); err != nil {
			return nil, fmt.Errorf("failed to decode testimonial '%s': %w", doc.ID, err)
		}
		t.ID = doc.ID
		out = append(out, &t)
	}
	return out, nil
}

func (r *testimonialRepository) Create(ctx context.Context, t *models.Testimonial) (string, error) {
	id, err := r.store.Add(ctx, TestimonialsCollection, t.ToFirestore())
	if err != nil {
		return "", fmt.Errorf("failed to create testimonial: %w", err)
	}
	t.ID = id
	return id, nil
}
