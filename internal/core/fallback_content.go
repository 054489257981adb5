package core

import (
	"time"

	"coaching-backend/internal/models"
)

const day = 24 * time.Hour

// FallbackEvents returns the events shown when the events collection is
// empty. Start dates are relative to now.
func FallbackEvents(now time.Time) []*models.Event {
	type seed struct {
		title, description, location string
		startIn, length              time.Duration
		capacity                     int
	}
	seeds := []seed{
		{
			title:       "Leadership Excellence Workshop",
			description: "Join us for an intensive workshop focused on developing key leadership skills. Learn from industry experts about effective communication, team management, and strategic decision-making.",
			location:    "Virtual Conference Room",
			startIn:     7 * day, length: 3 * time.Hour, capacity: 50,
		},
		{
			title:       "Career Growth Masterclass",
			description: "Discover proven strategies for accelerating your career growth. Topics include personal branding, networking, and identifying opportunities for advancement.",
			location:    "Innovation Hub, Downtown",
			startIn:     14 * day, length: 2 * time.Hour, capacity: 30,
		},
		{
			title:       "Business Strategy Summit",
			description: "A comprehensive event covering the latest trends in business strategy, market analysis, and growth opportunities. Network with industry leaders and gain valuable insights.",
			location:    "Grand Conference Center",
			startIn:     21 * day, length: 6 * time.Hour, capacity: 100,
		},
		{
			title:       "Personal Development Workshop",
			description: "Focus on your personal growth with this interactive workshop. Topics include goal setting, time management, and maintaining work-life balance.",
			location:    "Community Learning Center",
			startIn:     28 * day, length: 4 * time.Hour, capacity: 40,
		},
		{
			title:       "Networking Mixer",
			description: "Connect with fellow professionals in a relaxed setting. Build meaningful relationships and explore collaboration opportunities while enjoying refreshments.",
			location:    "Skyline Lounge",
			startIn:     35 * day, length: 150 * time.Minute, capacity: 75,
		},
	}

	now = now.UTC()
	events := make([]*models.Event, 0, len(seeds))
	for _, s := range seeds {
		start := now.Add(s.startIn)
		events = append(events, &models.Event{
			Title:       s.title,
			Description: s.description,
			StartDate:   start,
			EndDate:     start.Add(s.length),
			Location:    s.location,
			Capacity:    s.capacity,
			Attendees:   map[string]models.RSVPStatus{},
		})
	}
	return events
}

// FallbackTestimonials returns the testimonials shown when the store has none.
func FallbackTestimonials() []*models.Testimonial {
	return []*models.Testimonial{
		{
			ID:          "test-1",
			Name:        "Sarah Chen",
			Role:        "Chief Technology Officer",
			Company:     "TechVision Solutions",
			Avatar:      "https://images.unsplash.com/photo-1534528741775-53994a69daeb?q=80&w=200&auto=format&fit=crop",
			Rating:      5,
			Testimonial: "Working with 3 Cords Coaching transformed my leadership approach completely. The personalized guidance helped me navigate complex organizational challenges and develop a more empathetic management style. The results have been remarkable - improved team productivity and stronger workplace relationships.",
			Date:        "2024-03-15",
			Service:     "Executive Leadership",
		},
		{
			ID:          "test-2",
			Name:        "Marcus Johnson",
			Role:        "Startup Founder",
			Company:     "InnovateLab",
			Avatar:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?q=80&w=200&auto=format&fit=crop",
			Rating:      5,
			Testimonial: "The business strategy coaching I received was invaluable. My coach helped me refine my business model, identify growth opportunities, and develop a clear roadmap for success. Within six months, we've doubled our customer base and secured significant funding.",
			Date:        "2024-03-10",
			Service:     "Business Strategy",
		},
		{
			ID:          "test-3",
			Name:        "Emily Rodriguez",
			Role:        "Senior Product Manager",
			Company:     "GlobalTech Inc.",
			Avatar:      "https://images.unsplash.com/photo-1494790108377-be9c29b29330?q=80&w=200&auto=format&fit=crop",
			Rating:      5,
			Testimonial: "The career development program exceeded my expectations. Through targeted coaching sessions, I gained clarity on my professional goals and developed the confidence to pursue higher responsibilities. Recently promoted to a senior position, I credit much of my success to this coaching experience.",
			Date:        "2024-03-05",
			Service:     "Career Development",
		},
		{
			ID:          "test-4",
			Name:        "David Kim",
			Role:        "Team Lead",
			Company:     "Cloud Systems",
			Avatar:      "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?q=80&w=200&auto=format&fit=crop",
			Rating:      5,
			Testimonial: "The team leadership coaching program provided practical strategies that I could implement immediately. The focus on emotional intelligence and conflict resolution has helped me build a more cohesive and high-performing team. Our productivity metrics have improved significantly.",
			Date:        "2024-02-28",
			Service:     "Team Leadership",
		},
		{
			ID:          "test-5",
			Name:        "Lisa Thompson",
			Role:        "Marketing Director",
			Company:     "Creative Solutions",
			Avatar:      "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?q=80&w=200&auto=format&fit=crop",
			Rating:      5,
			Testimonial: "The personal development coaching has been transformative. Beyond career growth, it helped me achieve better work-life balance and develop resilience in facing challenges. The holistic approach to coaching has impacted all areas of my life positively.",
			Date:        "2024-02-20",
			Service:     "Personal Development",
		},
	}
}

const sampleVideoURL = "https://assets.mixkit.co/videos/preview/mixkit-business-team-meeting-in-an-office-4819-large.mp4"

// VideoCatalog returns the built-in topic videos.
func VideoCatalog() []models.Video {
	return []models.Video{
		{
			ID:          "1",
			Title:       "Leadership Fundamentals",
			Description: "Learn the core principles of effective leadership and team management.",
			Thumbnail:   "https://images.unsplash.com/photo-1542744173-8e7e53415bb0?q=80&w=2940&auto=format&fit=crop",
			Duration:    "15:30",
			ServiceID:   "executive",
			URL:         sampleVideoURL,
		},
		{
			ID:          "2",
			Title:       "Career Development Strategies",
			Description: "Strategic approaches to advancing your professional career.",
			Thumbnail:   "https://images.unsplash.com/photo-1521791136064-7986c2920216?q=80&w=2940&auto=format&fit=crop",
			Duration:    "12:45",
			ServiceID:   "career",
			URL:         sampleVideoURL,
		},
		{
			ID:          "3",
			Title:       "Personal Growth Mindset",
			Description: "Developing a growth mindset for continuous personal development.",
			Thumbnail:   "https://images.unsplash.com/photo-1522202176988-66273c2fd55f?q=80&w=2940&auto=format&fit=crop",
			Duration:    "18:20",
			ServiceID:   "personal",
			URL:         sampleVideoURL,
		},
	}
}
