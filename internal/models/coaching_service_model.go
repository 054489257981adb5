package models

// CoachingService is a coaching topic. Its ID is the service tag used on
// goals, profiles and assessments.
type CoachingService struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var coachingServices = []CoachingService{
	{ID: "career", Name: "Career", Description: "Guidance on career choices, job search strategies, and professional development."},
	{ID: "health", Name: "Health and Wellness", Description: "Support for achieving health goals, such as weight loss, fitness, and stress management."},
	{ID: "relationship", Name: "Relationship", Description: "Assistance with improving personal and professional relationships."},
	{ID: "financial", Name: "Financial", Description: "Advice on budgeting, saving, investing, and overall financial management."},
	{ID: "life-balance", Name: "Life Balance", Description: "Strategies for creating a balanced and fulfilling life."},
	{ID: "executive", Name: "Executive", Description: "Leadership development and performance enhancement for executives and managers."},
	{ID: "confidence", Name: "Confidence", Description: "Building self-esteem and confidence to achieve personal and professional goals."},
	{ID: "time", Name: "Time Management", Description: "Techniques for effective time management and productivity."},
	{ID: "stress", Name: "Stress Management", Description: "Coping strategies to manage and reduce stress."},
	{ID: "spiritual", Name: "Spiritual", Description: "Guidance on spiritual growth and finding inner peace."},
	{ID: "mindfulness", Name: "Mindfulness", Description: "Techniques to increase mindfulness and present-moment awareness."},
	{ID: "parenting", Name: "Parenting", Description: "Support for effective parenting strategies and improving family dynamics."},
	{ID: "motivation", Name: "Motivation", Description: "Techniques to stay motivated and achieve goals."},
	{ID: "personal", Name: "Personal Development", Description: "Focus on self-improvement and achieving one's potential."},
	{ID: "speaking", Name: "Public Speaking", Description: "Improving public speaking and communication skills."},
	{ID: "entrepreneurial", Name: "Entrepreneurial", Description: "Guidance for starting and growing a business."},
	{ID: "creativity", Name: "Creativity", Description: "Unleashing creativity and fostering innovation."},
	{ID: "retirement", Name: "Retirement", Description: "Planning for a fulfilling and purposeful retirement."},
	{ID: "purpose", Name: "Life Purpose", Description: "Discovering one's life purpose and passions."},
	{ID: "holistic", Name: "Holistic Life", Description: "Integrating all aspects of life for overall well-being."},
}

// CoachingServices returns a copy of the catalog in display order.
func CoachingServices() []CoachingService {
	out := make([]CoachingService, len(coachingServices))
	copy(out, coachingServices)
	return out
}

// LookupCoachingService finds a catalog entry by tag.
func LookupCoachingService(id string) (CoachingService, bool) {
	for _, s := range coachingServices {
		if s.ID == id {
			return s, true
		}
	}
	return CoachingService{}, false
}
