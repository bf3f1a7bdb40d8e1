package domain

import "strings"

// SectionType identifies the fixed content shape stored in a page section.
type SectionType string

const (
	SectionHero     SectionType = "HERO"
	SectionStory    SectionType = "STORY"
	SectionServices SectionType = "SERVICES"
	SectionFeatures SectionType = "FEATURES"
	SectionAbout    SectionType = "ABOUT"
)

// ParseSectionType normalizes a raw tag into a known section type.
// The boolean reports whether the tag is recognized.
func ParseSectionType(raw string) (SectionType, bool) {
	switch SectionType(strings.ToUpper(strings.TrimSpace(raw))) {
	case SectionHero:
		return SectionHero, true
	case SectionStory:
		return SectionStory, true
	case SectionServices:
		return SectionServices, true
	case SectionFeatures:
		return SectionFeatures, true
	case SectionAbout:
		return SectionAbout, true
	default:
		return "", false
	}
}

// InputType identifies how a stored input value should be interpreted.
type InputType string

const (
	InputText     InputType = "TEXT"
	InputRichText InputType = "RICH_TEXT"
	InputImage    InputType = "IMAGE"
	InputFile     InputType = "FILE"
)

// Locale identifies one of the two supported content languages.
type Locale string

const (
	LocaleArabic  Locale = "ar"
	LocaleEnglish Locale = "en"
)
