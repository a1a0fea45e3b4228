package page

// Props is the typed property record of one block variant.
type Props interface {
	// Type names the variant the record belongs to.
	Type() ComponentType
	// Clone returns a deep copy.
	Clone() Props
	// Summary returns the headline shown in outlines.
	Summary() string
}

// NewProps returns an empty record for t, or nil when t is unknown.
func NewProps(t ComponentType) Props {
	switch t {
	case TypeHero:
		return &HeroProps{}
	case TypeAbout:
		return &AboutProps{}
	case TypePortfolio:
		return &PortfolioProps{}
	case TypeContact:
		return &ContactProps{}
	case TypeTestimonial:
		return &TestimonialProps{}
	case TypePricing:
		return &PricingProps{}
	case TypeBlog:
		return &BlogProps{}
	case TypeFooter:
		return &FooterProps{}
	default:
		return nil
	}
}

// SocialLinks is shared by hero, contact and footer blocks.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub    string `json:"github,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// Entries returns the non-empty links in a stable order.
func (s SocialLinks) Entries() [][2]string {
	var out [][2]string
	for _, kv := range [][2]string{
		{"twitter", s.Twitter},
		{"linkedin", s.LinkedIn},
		{"github", s.GitHub},
		{"instagram", s.Instagram},
		{"email", s.Email},
	} {
		if kv[1] != "" {
			out = append(out, kv)
		}
	}
	return out
}

// Gradient is a two-stop background.
type Gradient struct {
	From string `json:"from" validate:"required,hexcolor"`
	To   string `json:"to" validate:"required,hexcolor"`
}

// HeroProps configures the landing section.
type HeroProps struct {
	Title           string      `json:"title" validate:"required,max=100"`
	Subtitle        string      `json:"subtitle,omitempty" validate:"max=200"`
	Description     string      `json:"description,omitempty" validate:"max=500"`
	BackgroundType  string      `json:"backgroundType" validate:"oneof=solid gradient image video"`
	BackgroundImage string      `json:"backgroundImage,omitempty" validate:"omitempty,asset"`
	BackgroundColor string      `json:"backgroundColor,omitempty" validate:"omitempty,hexcolor"`
	Gradient        *Gradient   `json:"gradientColors,omitempty"`
	CTAText         string      `json:"ctaText,omitempty" validate:"max=50"`
	CTALink         string      `json:"ctaLink,omitempty" validate:"omitempty,href"`
	CTAStyle        string      `json:"ctaStyle,omitempty" validate:"omitempty,oneof=primary secondary outline ghost"`
	ShowCTA         bool        `json:"showCTA"`
	Alignment       string      `json:"alignment" validate:"oneof=left center right"`
	Height          string      `json:"height,omitempty" validate:"omitempty,oneof=small medium large full"`
	ShowSocialLinks bool        `json:"showSocialLinks"`
	SocialLinks     SocialLinks `json:"socialLinks"`
}

func (p *HeroProps) Type() ComponentType { return TypeHero }
func (p *HeroProps) Summary() string     { return p.Title }

func (p *HeroProps) Clone() Props {
	out := *p
	if p.Gradient != nil {
		g := *p.Gradient
		out.Gradient = &g
	}
	return &out
}

// Skill is one bar in the about section.
type Skill struct {
	Name  string `json:"name" validate:"required,max=50"`
	Level int    `json:"level" validate:"gte=0,lte=100"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// ContactInfo is the about section's contact block.
type ContactInfo struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
}

// AboutProps configures the personal introduction.
type AboutProps struct {
	Title           string      `json:"title" validate:"required,max=100"`
	Subtitle        string      `json:"subtitle,omitempty" validate:"max=200"`
	Content         string      `json:"content" validate:"required,max=2000"`
	Image           string      `json:"image,omitempty" validate:"omitempty,asset"`
	ImageAlt        string      `json:"imageAlt,omitempty" validate:"max=100"`
	Layout          string      `json:"layout" validate:"oneof=left-image right-image center split"`
	ShowSkills      bool        `json:"showSkills"`
	Skills          []Skill     `json:"skills" validate:"max=20,dive"`
	ShowContactInfo bool        `json:"showContactInfo"`
	ContactInfo     ContactInfo `json:"contactInfo"`
}

func (p *AboutProps) Type() ComponentType { return TypeAbout }
func (p *AboutProps) Summary() string     { return p.Title }

func (p *AboutProps) Clone() Props {
	out := *p
	out.Skills = cloneSlice(p.Skills)
	return &out
}

// Project is one portfolio entry.
type Project struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Image       string   `json:"image,omitempty" validate:"omitempty,asset"`
	Link        string   `json:"link,omitempty" validate:"omitempty,href"`
	Tags        []string `json:"tags" validate:"max=10,dive,max=20"`
}

// PortfolioProps configures the work showcase.
type PortfolioProps struct {
	Title        string    `json:"title" validate:"required,max=100"`
	Subtitle     string    `json:"subtitle,omitempty" validate:"max=200"`
	Projects     []Project `json:"projects" validate:"max=50,dive"`
	Layout       string    `json:"layout" validate:"oneof=grid masonry list carousel"`
	ShowFilters  bool      `json:"showFilters"`
	Filters      []string  `json:"filters" validate:"max=10,dive,max=20"`
	ItemsPerPage int       `json:"itemsPerPage" validate:"gte=1,lte=50"`
}

func (p *PortfolioProps) Type() ComponentType { return TypePortfolio }
func (p *PortfolioProps) Summary() string     { return p.Title }

func (p *PortfolioProps) Clone() Props {
	out := *p
	out.Projects = make([]Project, len(p.Projects))
	for i, project := range p.Projects {
		project.Tags = cloneSlice(project.Tags)
		out.Projects[i] = project
	}
	if p.Projects == nil {
		out.Projects = nil
	}
	out.Filters = cloneSlice(p.Filters)
	return &out
}

// ContactDetails is the contact section's information panel.
type ContactDetails struct {
	Email       string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string      `json:"phone,omitempty"`
	Address     string      `json:"address,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// ContactProps configures the contact form and details.
type ContactProps struct {
	Title            string         `json:"title" validate:"required,max=100"`
	Subtitle         string         `json:"subtitle,omitempty" validate:"max=200"`
	ShowForm         bool           `json:"showForm"`
	FormFields       []string       `json:"formFields" validate:"dive,oneof=name email phone message subject company"`
	ShowContactInfo  bool           `json:"showContactInfo"`
	ContactInfo      ContactDetails `json:"contactInfo"`
	Layout           string         `json:"layout" validate:"oneof=split centered form-only info-only"`
	SubmitButtonText string         `json:"submitButtonText" validate:"max=50"`
}

func (p *ContactProps) Type() ComponentType { return TypeContact }
func (p *ContactProps) Summary() string     { return p.Title }

func (p *ContactProps) Clone() Props {
	out := *p
	out.FormFields = cloneSlice(p.FormFields)
	return &out
}

// Testimonial is one quote.
type Testimonial struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required,max=100"`
	Role    string `json:"role,omitempty" validate:"max=100"`
	Company string `json:"company,omitempty" validate:"max=100"`
	Content string `json:"content" validate:"required,max=500"`
	Avatar  string `json:"avatar,omitempty" validate:"omitempty,asset"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
}

// TestimonialProps configures client quotes.
type TestimonialProps struct {
	Title        string        `json:"title" validate:"required,max=100"`
	Subtitle     string        `json:"subtitle,omitempty" validate:"max=200"`
	Testimonials []Testimonial `json:"testimonials" validate:"max=20,dive"`
	Layout       string        `json:"layout" validate:"oneof=carousel grid list"`
	ShowRating   bool          `json:"showRating"`
	AutoPlay     bool          `json:"autoPlay"`
	Interval     int           `json:"interval" validate:"gte=1000,lte=10000"`
}

func (p *TestimonialProps) Type() ComponentType { return TypeTestimonial }
func (p *TestimonialProps) Summary() string     { return p.Title }

func (p *TestimonialProps) Clone() Props {
	out := *p
	out.Testimonials = cloneSlice(p.Testimonials)
	return &out
}

// Plan is one pricing tier.
type Plan struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required,max=50"`
	Price     float64  `json:"price" validate:"gte=0"`
	Period    string   `json:"period,omitempty" validate:"omitempty,oneof=month year once"`
	Features  []string `json:"features" validate:"max=20,dive,max=100"`
	IsPopular bool     `json:"isPopular"`
	CTAText   string   `json:"ctaText,omitempty" validate:"max=50"`
}

// PricingProps configures service packages.
type PricingProps struct {
	Title        string `json:"title" validate:"required,max=100"`
	Subtitle     string `json:"subtitle,omitempty" validate:"max=200"`
	Plans        []Plan `json:"plans" validate:"max=6,dive"`
	Layout       string `json:"layout" validate:"oneof=grid list cards"`
	ShowCurrency bool   `json:"showCurrency"`
	Currency     string `json:"currency,omitempty" validate:"omitempty,iso4217"`
	ShowPeriod   bool   `json:"showPeriod"`
}

func (p *PricingProps) Type() ComponentType { return TypePricing }
func (p *PricingProps) Summary() string     { return p.Title }

func (p *PricingProps) Clone() Props {
	out := *p
	out.Plans = make([]Plan, len(p.Plans))
	for i, plan := range p.Plans {
		plan.Features = cloneSlice(plan.Features)
		out.Plans[i] = plan
	}
	if p.Plans == nil {
		out.Plans = nil
	}
	return &out
}

// Post is one blog teaser.
type Post struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required,max=150"`
	Excerpt  string `json:"excerpt" validate:"max=500"`
	Image    string `json:"image,omitempty" validate:"omitempty,asset"`
	Date     string `json:"date,omitempty"`
	Author   string `json:"author,omitempty" validate:"max=100"`
	ReadTime string `json:"readTime,omitempty" validate:"max=30"`
	URL      string `json:"url,omitempty" validate:"omitempty,href"`
}

// BlogProps configures the article list.
type BlogProps struct {
	Title        string `json:"title" validate:"required,max=100"`
	Subtitle     string `json:"subtitle,omitempty" validate:"max=200"`
	Posts        []Post `json:"posts" validate:"max=50,dive"`
	Layout       string `json:"layout" validate:"oneof=grid list masonry"`
	ShowAuthor   bool   `json:"showAuthor"`
	ShowDate     bool   `json:"showDate"`
	ShowReadTime bool   `json:"showReadTime"`
	ItemsPerPage int    `json:"itemsPerPage" validate:"gte=1,lte=50"`
}

func (p *BlogProps) Type() ComponentType { return TypeBlog }
func (p *BlogProps) Summary() string     { return p.Title }

func (p *BlogProps) Clone() Props {
	out := *p
	out.Posts = cloneSlice(p.Posts)
	return &out
}

// Link is a footer navigation entry.
type Link struct {
	Name string `json:"name" validate:"required,max=50"`
	URL  string `json:"url" validate:"required,href"`
}

// FooterLinks groups footer navigation columns.
type FooterLinks struct {
	Company  []Link `json:"company" validate:"max=10,dive"`
	Services []Link `json:"services" validate:"max=10,dive"`
}

// FooterProps configures the site footer.
type FooterProps struct {
	ShowLogo       bool        `json:"showLogo"`
	Logo           string      `json:"logo,omitempty" validate:"omitempty,asset"`
	CompanyName    string      `json:"companyName" validate:"max=100"`
	Description    string      `json:"description,omitempty" validate:"max=300"`
	Links          FooterLinks `json:"links"`
	SocialLinks    SocialLinks `json:"socialLinks"`
	ShowNewsletter bool        `json:"showNewsletter"`
	NewsletterText string      `json:"newsletterText,omitempty" validate:"max=100"`
	Copyright      string      `json:"copyright" validate:"max=200"`
}

func (p *FooterProps) Type() ComponentType { return TypeFooter }
func (p *FooterProps) Summary() string     { return p.CompanyName }

func (p *FooterProps) Clone() Props {
	out := *p
	out.Links.Company = cloneSlice(p.Links.Company)
	out.Links.Services = cloneSlice(p.Links.Services)
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
