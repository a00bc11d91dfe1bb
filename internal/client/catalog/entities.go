package catalog

import (
	"net/http"
	"sort"
)

const adminPrefix = "/api/admin/"

func base(slug string) string {
	return adminPrefix + slug + "/"
}

var orderField = Field{Name: "order", Label: "Order", Kind: KindInt}

var entities = []Entity{
	{
		Name:        "hero",
		DisplayName: "Hero Section",
		Noun:        "Hero section",
		BasePath:    base("hero-sections"),
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "subtitle", Label: "Subtitle", Kind: KindText, Required: true},
			{Name: "button_text", Label: "Button text", Kind: KindString, Required: true},
			{Name: "button_link", Label: "Button link", Kind: KindString, Required: true},
			{Name: "background_image", Label: "Background image", Kind: KindImage},
			{Name: "is_active", Label: "Active", Kind: KindBool, Default: true},
			orderField,
		},
	},
	{
		Name:        "about",
		DisplayName: "About Section",
		Noun:        "About section",
		BasePath:    base("about"),
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "description", Label: "Description", Kind: KindText, Required: true},
			{Name: "mission", Label: "Mission", Kind: KindText},
			{Name: "vision", Label: "Vision", Kind: KindText},
			{Name: "image", Label: "Image", Kind: KindImage},
		},
	},
	{
		Name:        "services",
		DisplayName: "Services",
		Noun:        "Service",
		BasePath:    base("services"),
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "description", Label: "Description", Kind: KindText, Required: true},
			{Name: "icon", Label: "Icon", Kind: KindString, Required: true},
			{Name: "image", Label: "Image", Kind: KindImage},
			{Name: "is_active", Label: "Active", Kind: KindBool, Default: true},
			orderField,
		},
	},
	{
		Name:        "testimonials",
		DisplayName: "Testimonials",
		Noun:        "Testimonial",
		BasePath:    base("testimonials"),
		Fields: []Field{
			{Name: "client_name", Label: "Client name", Kind: KindString, Required: true},
			{Name: "client_position", Label: "Client position", Kind: KindString, Required: true},
			{Name: "company", Label: "Company", Kind: KindString},
			{Name: "content", Label: "Content", Kind: KindText, Required: true, MaxLen: 500},
			{Name: "rating", Label: "Rating", Kind: KindInt, Default: int64(5)},
			{Name: "client_image", Label: "Client photo", Kind: KindImage},
			{Name: "is_featured", Label: "Featured", Kind: KindBool},
			orderField,
		},
	},
	{
		Name:        "team",
		DisplayName: "Team Members",
		Noun:        "Team member",
		BasePath:    base("team-members"),
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: KindString, Required: true},
			{Name: "position", Label: "Position", Kind: KindString, Required: true},
			{Name: "bio", Label: "Bio", Kind: KindText},
			{Name: "photo", Label: "Photo", Kind: KindImage},
			{Name: "linkedin_url", Label: "LinkedIn URL", Kind: KindString},
			{Name: "twitter_url", Label: "Twitter URL", Kind: KindString},
			orderField,
		},
	},
	{
		Name:        "blog",
		DisplayName: "Blog Posts",
		Noun:        "Blog post",
		BasePath:    base("blog-posts"),
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "slug", Label: "Slug", Kind: KindString, Required: true},
			{Name: "excerpt", Label: "Excerpt", Kind: KindText, Required: true, MaxLen: 300},
			{Name: "content", Label: "Content", Kind: KindText, Required: true},
			{Name: "author", Label: "Author", Kind: KindString, Required: true},
			{Name: "cover_image", Label: "Cover image", Kind: KindImage},
			{Name: "is_published", Label: "Published", Kind: KindBool},
		},
	},
	{
		Name:        "faq",
		DisplayName: "FAQ",
		Noun:        "FAQ",
		BasePath:    base("faqs"),
		Fields: []Field{
			{Name: "question", Label: "Question", Kind: KindString, Required: true},
			{Name: "answer", Label: "Answer", Kind: KindText, Required: true},
			{Name: "is_active", Label: "Active", Kind: KindBool, Default: true},
			orderField,
		},
	},
	{
		Name:         "contact",
		DisplayName:  "Contact Info",
		Noun:         "Contact info",
		BasePath:     base("contact-info"),
		UpdateMethod: http.MethodPatch,
		Fields: []Field{
			{Name: "address", Label: "Address", Kind: KindText, Required: true},
			{Name: "phone", Label: "Phone", Kind: KindString, Required: true},
			{Name: "email", Label: "Email", Kind: KindString, Required: true},
			{Name: "working_hours", Label: "Working hours", Kind: KindString},
			{Name: "map_embed_url", Label: "Map embed URL", Kind: KindString},
		},
	},
	{
		Name:        "process",
		DisplayName: "Working Process",
		Noun:        "Process step",
		BasePath:    base("working-process"),
		Fields: []Field{
			{Name: "step_number", Label: "Step number", Kind: KindInt, Default: int64(1)},
			{Name: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "description", Label: "Description", Kind: KindText, Required: true},
			{Name: "icon", Label: "Icon", Kind: KindString},
		},
	},
	{
		Name:        "features",
		DisplayName: "Why Choose Us",
		Noun:        "Feature",
		BasePath:    base("why-choose-us"),
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "description", Label: "Description", Kind: KindText, Required: true},
			{Name: "icon", Label: "Icon", Kind: KindString, Required: true},
			orderField,
		},
	},
	{
		Name:        "clients",
		DisplayName: "Client Logos",
		Noun:        "Client logo",
		BasePath:    base("client-logos"),
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: KindString, Required: true},
			{Name: "logo", Label: "Logo", Kind: KindImage, Required: true},
			{Name: "website_url", Label: "Website", Kind: KindString},
			{Name: "is_active", Label: "Active", Kind: KindBool, Default: true},
			orderField,
		},
	},
}

// All returns every entity sorted by name.
func All() []Entity {
	out := make([]Entity, len(entities))
	copy(out, entities)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func Lookup(name string) (Entity, bool) {
	for _, e := range entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}
