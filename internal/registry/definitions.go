package registry

import (
	"fmt"
	"time"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

var definitions = []Definition{
	{
		Type:         page.TypeHero,
		Name:         "Hero Section",
		Description:  "Main landing section with headline and call-to-action",
		Category:     CategoryLayout,
		Icon:         "▣",
		IconFallback: "[H]",
		defaults: func() page.Props {
			return &page.HeroProps{
				Title:           "Welcome to my personal brand",
				Subtitle:        "I help businesses grow through strategic solutions",
				BackgroundType:  "gradient",
				CTAText:         "Get Started",
				CTALink:         "#contact",
				CTAStyle:        "primary",
				ShowCTA:         true,
				Alignment:       "center",
				Height:          "large",
				ShowSocialLinks: true,
			}
		},
	},
	{
		Type:         page.TypeAbout,
		Name:         "About Section",
		Description:  "Personal introduction and background information",
		Category:     CategoryContent,
		Icon:         "☺",
		IconFallback: "[A]",
		defaults: func() page.Props {
			return &page.AboutProps{
				Title:      "About Me",
				Content:    "I am a passionate professional with expertise in...",
				Layout:     "left-image",
				ShowSkills: true,
				Skills: []page.Skill{
					{Name: "JavaScript", Level: 90},
					{Name: "React", Level: 85},
					{Name: "Node.js", Level: 80},
				},
				ShowContactInfo: true,
			}
		},
	},
	{
		Type:         page.TypePortfolio,
		Name:         "Portfolio Section",
		Description:  "Showcase your work and projects",
		Category:     CategoryContent,
		Icon:         "▤",
		IconFallback: "[P]",
		defaults: func() page.Props {
			return &page.PortfolioProps{
				Title:    "My Work",
				Subtitle: "Featured projects and case studies",
				Projects: []page.Project{{
					ID:          "1",
					Title:       "Project One",
					Description: "A brief description of the project",
					Tags:        []string{"React", "TypeScript"},
				}},
				Layout:       "grid",
				ShowFilters:  true,
				Filters:      []string{"All", "Web", "Mobile", "Design"},
				ItemsPerPage: 6,
			}
		},
	},
	{
		Type:         page.TypeContact,
		Name:         "Contact Section",
		Description:  "Contact form and contact information",
		Category:     CategoryInteraction,
		Icon:         "✉",
		IconFallback: "[C]",
		defaults: func() page.Props {
			return &page.ContactProps{
				Title:            "Get In Touch",
				Subtitle:         "Let's discuss your next project",
				ShowForm:         true,
				FormFields:       []string{"name", "email", "message"},
				ShowContactInfo:  true,
				Layout:           "split",
				SubmitButtonText: "Send Message",
			}
		},
	},
	{
		Type:         page.TypeTestimonial,
		Name:         "Testimonials",
		Description:  "Client testimonials and reviews",
		Category:     CategoryMarketing,
		Icon:         "★",
		IconFallback: "[T]",
		defaults: func() page.Props {
			return &page.TestimonialProps{
				Title:    "What People Say",
				Subtitle: "Testimonials from satisfied clients",
				Testimonials: []page.Testimonial{{
					ID:      "1",
					Name:    "John Doe",
					Role:    "CEO, Company Inc.",
					Content: "Amazing work and great communication throughout the project.",
					Rating:  5,
				}},
				Layout:     "carousel",
				ShowRating: true,
				AutoPlay:   true,
				Interval:   5000,
			}
		},
	},
	{
		Type:         page.TypePricing,
		Name:         "Pricing Plans",
		Description:  "Service pricing and packages",
		Category:     CategoryMarketing,
		Icon:         "$",
		IconFallback: "[$]",
		defaults: func() page.Props {
			return &page.PricingProps{
				Title:    "Pricing Plans",
				Subtitle: "Choose the plan that fits your needs",
				Plans: []page.Plan{{
					ID:       "1",
					Name:     "Basic",
					Price:    99,
					Period:   "month",
					Features: []string{"Feature 1", "Feature 2", "Feature 3"},
					CTAText:  "Get Started",
				}},
				Layout:       "cards",
				ShowCurrency: true,
				Currency:     "USD",
				ShowPeriod:   true,
			}
		},
	},
	{
		Type:         page.TypeBlog,
		Name:         "Blog Section",
		Description:  "Latest articles and blog posts",
		Category:     CategoryContent,
		Icon:         "¶",
		IconFallback: "[B]",
		defaults: func() page.Props {
			return &page.BlogProps{
				Title:    "Latest Articles",
				Subtitle: "Insights and updates from my blog",
				Posts: []page.Post{{
					ID:       "1",
					Title:    "Sample Blog Post",
					Excerpt:  "This is a sample blog post excerpt...",
					Date:     nowFunc().UTC().Format(time.RFC3339),
					Author:   "Your Name",
					ReadTime: "5 min read",
				}},
				Layout:       "grid",
				ShowAuthor:   true,
				ShowDate:     true,
				ShowReadTime: true,
				ItemsPerPage: 6,
			}
		},
	},
	{
		Type:         page.TypeFooter,
		Name:         "Footer",
		Description:  "Site footer with links and information",
		Category:     CategoryNavigation,
		Icon:         "▁",
		IconFallback: "[F]",
		defaults: func() page.Props {
			return &page.FooterProps{
				ShowLogo:    true,
				CompanyName: "Your Company",
				Description: "Brief company description",
				Links: page.FooterLinks{
					Company: []page.Link{
						{Name: "About", URL: "#about"},
						{Name: "Contact", URL: "#contact"},
					},
					Services: []page.Link{
						{Name: "Web Design", URL: "#services"},
						{Name: "Development", URL: "#services"},
					},
				},
				ShowNewsletter: true,
				NewsletterText: "Subscribe to our newsletter",
				Copyright:      fmt.Sprintf("© %d Your Company. All rights reserved.", nowFunc().Year()),
			}
		},
	},
}
