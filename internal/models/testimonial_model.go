package models

// Testimonial is read-only marketing content.
type Testimonial struct {
	ID          string `json:"id" firestore:"-"`
	Name        string `json:"name" firestore:"name"`
	Role        string `json:"role" firestore:"role"`
	Company     string `json:"company" firestore:"company"`
	Avatar      string `json:"avatar" firestore:"avatar"`
	Rating      int    `json:"rating" firestore:"rating"` // 1-5
	Testimonial string `json:"testimonial" firestore:"testimonial"`
	Date        string `json:"date" firestore:"date"`
	Service     string `json:"service" firestore:"service"`
}

// ToFirestore encodes the testimonial document.
func (t *Testimonial) ToFirestore() map[string]interface{} {
	return map[string]interface{}{
		"name":        t.Name,
		"role":        t.Role,
		"company":     t.Company,
		"avatar":      t.Avatar,
		"rating":      t.Rating,
		"testimonial": t.Testimonial,
		"date":        t.Date,
		"service":     t.Service,
	}
}
