package sections

import (
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nawras-digital/sitecms/internal/domain"
)

// Bilingual is a logical field with separate Arabic and English values. It is
// persisted as two input rows sharing a base label with _ar/_en suffixes.
type Bilingual struct {
	Ar string `json:"ar"`
	En string `json:"en"`
}

// Validate requires both language values to be non-empty after trimming.
func (b Bilingual) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Ar, validation.Required, validation.By(notBlank)),
		validation.Field(&b.En, validation.Required, validation.By(notBlank)),
	)
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("sections.field_blank", "value must not be blank")
	}
	return nil
}

// Content is the closed set of typed section payloads. Each section type has
// exactly one matched encode/decode pair; there is no generic label dispatch.
type Content interface {
	SectionType() domain.SectionType
	Validate() error
}

// HeroContent is the typed shape of a HERO section.
type HeroContent struct {
	Title    Bilingual `json:"title"`
	SubTitle Bilingual `json:"sub_title"`
	Image    string    `json:"image,omitempty"`
}

func (HeroContent) SectionType() domain.SectionType { return domain.SectionHero }

func (c HeroContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title),
		validation.Field(&c.SubTitle),
	)
}

// StoryContent is the typed shape of a STORY section. Body holds markdown and
// is rendered as rich text on the public read path.
type StoryContent struct {
	Title Bilingual `json:"title"`
	Body  Bilingual `json:"body"`
	Image string    `json:"image,omitempty"`
}

func (StoryContent) SectionType() domain.SectionType { return domain.SectionStory }

func (c StoryContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title),
		validation.Field(&c.Body),
	)
}

// ServicesContent is the typed shape of a SERVICES intro section. The service
// cards themselves are independent catalog entities, not section inputs.
type ServicesContent struct {
	Title    Bilingual `json:"title"`
	SubTitle Bilingual `json:"sub_title"`
}

func (ServicesContent) SectionType() domain.SectionType { return domain.SectionServices }

func (c ServicesContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title),
		validation.Field(&c.SubTitle),
	)
}

// FeatureItem is one element of the FEATURES repeated group.
type FeatureItem struct {
	Title    Bilingual `json:"title"`
	SubTitle Bilingual `json:"sub_title"`
	Icon     string    `json:"icon,omitempty"`
}

func (i FeatureItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title),
		validation.Field(&i.SubTitle),
	)
}

// FeaturesContent is the typed shape of a FEATURES section.
type FeaturesContent struct {
	Title    Bilingual     `json:"title"`
	Features []FeatureItem `json:"features"`
}

func (FeaturesContent) SectionType() domain.SectionType { return domain.SectionFeatures }

func (c FeaturesContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title),
		validation.Field(&c.Features, validation.Required),
	)
}

// AboutContent is the typed shape of an ABOUT section.
type AboutContent struct {
	Title   Bilingual `json:"title"`
	Body    Bilingual `json:"body"`
	Vision  Bilingual `json:"vision"`
	Mission Bilingual `json:"mission"`
	Image   string    `json:"image,omitempty"`
}

func (AboutContent) SectionType() domain.SectionType { return domain.SectionAbout }

func (c AboutContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title),
		validation.Field(&c.Body),
		validation.Field(&c.Vision),
		validation.Field(&c.Mission),
	)
}

const featuresGroup = "feature"

// Encode flattens a typed section payload into labeled input rows. Positions
// are assigned by field declaration sequence starting at 1 and labels are
// never duplicated for legal payloads (round-trip property holds per type).
func Encode(content Content) ([]*Input, error) {
	w := &rowWriter{}
	switch c := content.(type) {
	case HeroContent:
		w.bilingual("title", domain.InputText, c.Title)
		w.bilingual("subTitle", domain.InputText, c.SubTitle)
		w.optional("image", domain.InputImage, c.Image)
	case StoryContent:
		w.bilingual("title", domain.InputText, c.Title)
		w.bilingual("body", domain.InputRichText, c.Body)
		w.optional("image", domain.InputImage, c.Image)
	case ServicesContent:
		w.bilingual("title", domain.InputText, c.Title)
		w.bilingual("subTitle", domain.InputText, c.SubTitle)
	case FeaturesContent:
		w.bilingual("title", domain.InputText, c.Title)
		for i, item := range c.Features {
			prefix := groupLabel(featuresGroup, i, "")
			w.bilingual(prefix+"title", domain.InputText, item.Title)
			w.bilingual(prefix+"subTitle", domain.InputText, item.SubTitle)
			w.optional(prefix+"icon", domain.InputImage, item.Icon)
		}
	case AboutContent:
		w.bilingual("title", domain.InputText, c.Title)
		w.bilingual("body", domain.InputRichText, c.Body)
		w.bilingual("vision", domain.InputText, c.Vision)
		w.bilingual("mission", domain.InputText, c.Mission)
		w.optional("image", domain.InputImage, c.Image)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownSectionType, content)
	}
	return w.rows, nil
}

// Decode reconstructs a typed payload from a section's input rows. Decoding is
// total: labels that do not belong to the section type's shape are skipped and
// missing labels decode to empty strings. Row order is irrelevant.
func Decode(sectionType domain.SectionType, inputs []*Input) (Content, error) {
	r := newRowReader(inputs)
	switch sectionType {
	case domain.SectionHero:
		return HeroContent{
			Title:    r.bilingual("title"),
			SubTitle: r.bilingual("subTitle"),
			Image:    r.value("image"),
		}, nil
	case domain.SectionStory:
		return StoryContent{
			Title: r.bilingual("title"),
			Body:  r.bilingual("body"),
			Image: r.value("image"),
		}, nil
	case domain.SectionServices:
		return ServicesContent{
			Title:    r.bilingual("title"),
			SubTitle: r.bilingual("subTitle"),
		}, nil
	case domain.SectionFeatures:
		content := FeaturesContent{Title: r.bilingual("title")}
		for i := 0; i <= len(inputs); i++ {
			prefix := groupLabel(featuresGroup, i, "")
			if !r.hasPrefix(prefix) {
				break
			}
			content.Features = append(content.Features, FeatureItem{
				Title:    r.bilingual(prefix + "title"),
				SubTitle: r.bilingual(prefix + "subTitle"),
				Icon:     r.value(prefix + "icon"),
			})
		}
		return content, nil
	case domain.SectionAbout:
		return AboutContent{
			Title:   r.bilingual("title"),
			Body:    r.bilingual("body"),
			Vision:  r.bilingual("vision"),
			Mission: r.bilingual("mission"),
			Image:   r.value("image"),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, sectionType)
	}
}

// DecodeSection is a convenience wrapper decoding a loaded section record.
func DecodeSection(section *Section) (Content, error) {
	if section == nil {
		return nil, ErrSectionRequired
	}
	return Decode(section.Type, section.Inputs)
}

func groupLabel(group string, index int, field string) string {
	return group + "_" + strconv.Itoa(index) + "_" + field
}

// rowWriter accumulates encoded rows, assigning positions in declaration order.
type rowWriter struct {
	rows []*Input
}

func (w *rowWriter) add(label string, inputType domain.InputType, value string) {
	w.rows = append(w.rows, &Input{
		Label:    label,
		Type:     inputType,
		Value:    value,
		Position: len(w.rows) + 1,
	})
}

func (w *rowWriter) bilingual(field string, inputType domain.InputType, b Bilingual) {
	w.add(field+"_ar", inputType, b.Ar)
	w.add(field+"_en", inputType, b.En)
}

// optional emits a row only when the value is set, keeping encode/decode
// symmetric for empty optional fields.
func (w *rowWriter) optional(label string, inputType domain.InputType, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	w.add(label, inputType, value)
}

// rowReader indexes rows by label. Labels are unique within a section; when a
// corrupted store carries duplicates the first row wins.
type rowReader struct {
	values   map[string]string
	prefixes []string
}

func newRowReader(inputs []*Input) rowReader {
	r := rowReader{values: make(map[string]string, len(inputs))}
	for _, input := range inputs {
		if input == nil {
			continue
		}
		if _, ok := r.values[input.Label]; ok {
			continue
		}
		r.values[input.Label] = input.Value
		r.prefixes = append(r.prefixes, input.Label)
	}
	return r
}

func (r rowReader) value(label string) string {
	return r.values[label]
}

func (r rowReader) bilingual(field string) Bilingual {
	return Bilingual{
		Ar: r.values[field+"_ar"],
		En: r.values[field+"_en"],
	}
}

func (r rowReader) hasPrefix(prefix string) bool {
	for _, label := range r.prefixes {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	return false
}
