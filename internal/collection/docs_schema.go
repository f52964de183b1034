package collection

// BadgeVariants are the accepted sidebar badge styles.
var BadgeVariants = []string{"note", "danger", "success", "caution", "tip", "default"}

// Templates are the accepted page layouts.
var Templates = []string{"doc", "splash"}

// Option customizes DocsSchema.
type Option func(*Schema)

// WithExtend appends project-specific fields to the docs schema. A field that
// reuses a built-in name replaces it.
func WithExtend(fields ...Field) Option {
	return func(s *Schema) {
		for _, f := range fields {
			replaced := false
			for i := range s.Fields {
				if s.Fields[i].Name == f.Name {
					s.Fields[i] = f
					replaced = true
					break
				}
			}
			if !replaced {
				s.Fields = append(s.Fields, f)
			}
		}
	}
}

func intPtr(n int) *int { return &n }

func linkOrLabel() []Field {
	return []Field{
		{Kind: KindBool},
		{Kind: KindString},
		{Kind: KindObject, Fields: []Field{
			{Name: "link", Kind: KindString},
			{Name: "label", Kind: KindString},
		}},
	}
}

// DocsSchema returns the frontmatter schema for documentation pages.
func DocsSchema(opts ...Option) *Schema {
	headingLevel := func(name string, def int) Field {
		return Field{Name: name, Kind: KindInt, Min: intPtr(1), Max: intPtr(6), Default: def}
	}

	s := &Schema{
		Name: "docs",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "description", Kind: KindString},
			{Name: "slug", Kind: KindString},
			{Name: "editUrl", Kind: KindUnion, Default: true, Variants: []Field{{Kind: KindString}, {Kind: KindBool}}},
			{Name: "head", Kind: KindArray, Items: &Field{Kind: KindObject, Fields: []Field{
				{Name: "tag", Kind: KindEnum, Required: true, Enum: []string{"title", "base", "link", "style", "meta", "script", "noscript", "template"}},
				{Name: "attrs", Kind: KindObject},
				{Name: "content", Kind: KindString},
			}}},
			{Name: "tableOfContents", Kind: KindUnion, Variants: []Field{
				{Kind: KindBool},
				{Kind: KindObject, Fields: []Field{headingLevel("minHeadingLevel", 2), headingLevel("maxHeadingLevel", 3)}},
			}},
			{Name: "template", Kind: KindEnum, Enum: Templates, Default: "doc"},
			{Name: "hero", Kind: KindObject, Fields: []Field{
				{Name: "title", Kind: KindString},
				{Name: "tagline", Kind: KindString},
				{Name: "image", Kind: KindObject},
				{Name: "actions", Kind: KindArray, Items: &Field{Kind: KindObject, Fields: []Field{
					{Name: "text", Kind: KindString, Required: true},
					{Name: "link", Kind: KindString, Required: true},
					{Name: "variant", Kind: KindEnum, Enum: []string{"primary", "secondary", "minimal"}},
					{Name: "icon", Kind: KindString},
				}}},
			}},
			{Name: "lastUpdated", Kind: KindUnion, Variants: []Field{{Kind: KindDate}, {Kind: KindBool}}},
			{Name: "prev", Kind: KindUnion, Variants: linkOrLabel()},
			{Name: "next", Kind: KindUnion, Variants: linkOrLabel()},
			{Name: "sidebar", Kind: KindObject, Fields: []Field{
				{Name: "order", Kind: KindNumber},
				{Name: "label", Kind: KindString},
				{Name: "hidden", Kind: KindBool, Default: false},
				{Name: "badge", Kind: KindUnion, Variants: []Field{
					{Kind: KindString},
					{Kind: KindObject, Fields: []Field{
						{Name: "text", Kind: KindString, Required: true},
						{Name: "variant", Kind: KindEnum, Enum: BadgeVariants, Default: "default"},
					}},
				}},
				{Name: "attrs", Kind: KindObject},
			}},
			{Name: "banner", Kind: KindObject, Fields: []Field{
				{Name: "content", Kind: KindString, Required: true},
			}},
			{Name: "pagefind", Kind: KindBool, Default: true},
			{Name: "draft", Kind: KindBool, Default: false},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
