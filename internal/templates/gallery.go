package templates

import "github.com/alexisbeaulieu97/pagesmith/internal/domain/page"

var gallery = []Template{
	{
		ID:          "portfolio-basic",
		Name:        "Basic Portfolio",
		Description: "Clean and simple portfolio template for developers and designers",
		Category:    "portfolio",
		Tags:        []string{"portfolio", "developer", "minimal"},
		Difficulty:  Beginner,
		Blocks: []Block{
			{Type: page.TypeHero, Props: map[string]any{
				"title":           "Hello, I'm [Your Name]",
				"subtitle":        "Web Developer & Designer",
				"backgroundType":  "gradient",
				"showSocialLinks": true,
				"socialLinks": map[string]any{
					"github":   "https://github.com",
					"linkedin": "https://linkedin.com",
					"twitter":  "https://twitter.com",
				},
			}},
			{Type: page.TypeAbout, Props: map[string]any{
				"title":      "About Me",
				"content":    "I'm a passionate web developer with expertise in modern technologies. I love creating beautiful and functional websites that solve real problems.",
				"layout":     "left-image",
				"showSkills": true,
				"skills": []any{
					map[string]any{"name": "React", "level": 90, "color": "#61dafb"},
					map[string]any{"name": "TypeScript", "level": 85, "color": "#3178c6"},
					map[string]any{"name": "Node.js", "level": 80, "color": "#339933"},
					map[string]any{"name": "UI/UX Design", "level": 75, "color": "#ff6b6b"},
				},
			}},
			{Type: page.TypePortfolio, Props: map[string]any{
				"title":       "My Projects",
				"layout":      "grid",
				"showFilters": true,
				"filters":     []any{"All", "Web", "Mobile", "Design"},
			}},
			{Type: page.TypeContact, Props: map[string]any{
				"title":      "Get in Touch",
				"layout":     "split",
				"showForm":   true,
				"formFields": []any{"name", "email", "message"},
			}},
		},
	},
	{
		ID:          "freelancer-pro",
		Name:        "Freelancer Pro",
		Description: "Professional template for freelancers and consultants",
		Category:    "freelancer",
		Tags:        []string{"freelancer", "professional", "services"},
		Difficulty:  Intermediate,
		Blocks: []Block{
			{Type: page.TypeHero, Props: map[string]any{
				"title":           "Professional Freelancer",
				"subtitle":        "High-quality services delivered on time",
				"backgroundType":  "image",
				"backgroundImage": "https://images.unsplash.com/photo-1551434678-e076c223a692?w=1200&h=600&fit=crop",
			}},
			{Type: page.TypeAbout, Props: map[string]any{
				"title":   "About My Services",
				"content": "With years of experience in the industry, I provide top-notch services to clients worldwide. My expertise spans across multiple domains.",
				"layout":  "right-image",
			}},
			{Type: page.TypePortfolio, Props: map[string]any{
				"title":  "Recent Work",
				"layout": "masonry",
			}},
			{Type: page.TypeContact, Props: map[string]any{
				"title":           "Let's Work Together",
				"layout":          "centered",
				"showContactInfo": true,
				"contactInfo": map[string]any{
					"email":   "hello@example.com",
					"phone":   "+1 (555) 123-4567",
					"address": "San Francisco, CA",
				},
			}},
		},
	},
	{
		ID:          "creative-portfolio",
		Name:        "Creative Portfolio",
		Description: "Bold and artistic template for creative professionals",
		Category:    "creative",
		Tags:        []string{"creative", "design", "art"},
		Difficulty:  Advanced,
		Blocks: []Block{
			{Type: page.TypeHero, Props: map[string]any{
				"title":          "Creative Designer",
				"subtitle":       "Visual Storytelling & Brand Identity",
				"backgroundType": "gradient",
				"gradientColors": map[string]any{"from": "#667eea", "to": "#764ba2"},
			}},
			{Type: page.TypePortfolio, Props: map[string]any{
				"title":  "Creative Works",
				"layout": "carousel",
			}},
			{Type: page.TypeAbout, Props: map[string]any{
				"title":   "My Creative Journey",
				"content": "I believe in the power of design to transform ideas into compelling visual experiences. Every project is an opportunity to tell a unique story.",
				"layout":  "center",
			}},
			{Type: page.TypeContact, Props: map[string]any{
				"title":  "Let's Create Together",
				"layout": "form-only",
			}},
		},
	},
	{
		ID:          "business-card",
		Name:        "Business Card",
		Description: "Simple and professional business introduction page",
		Category:    "business",
		Tags:        []string{"business", "simple", "professional"},
		Difficulty:  Beginner,
		Blocks: []Block{
			{Type: page.TypeHero, Props: map[string]any{
				"title":           "[Company Name]",
				"subtitle":        "Business Solutions & Consulting",
				"backgroundType":  "solid",
				"backgroundColor": "#1f2937",
			}},
			{Type: page.TypeAbout, Props: map[string]any{
				"title":   "About Our Company",
				"content": "We provide innovative business solutions that help companies grow and succeed in today's competitive market.",
				"layout":  "split",
			}},
			{Type: page.TypeContact, Props: map[string]any{
				"title":           "Contact Us",
				"layout":          "info-only",
				"showContactInfo": true,
				"contactInfo": map[string]any{
					"email":   "info@company.com",
					"phone":   "+1 (555) 987-6543",
					"address": "123 Business St, City, State",
				},
			}},
		},
	},
}
