package sections

import (
	"encoding/json"
	"fmt"

	"github.com/nawras-digital/sitecms/internal/domain"
)

// UnmarshalContent decodes a JSON content payload into the typed shape for the
// given section type.
func UnmarshalContent(sectionType domain.SectionType, data []byte) (Content, error) {
	switch sectionType {
	case domain.SectionHero:
		var c HeroContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("sections: decode hero content: %w", err)
		}
		return c, nil
	case domain.SectionStory:
		var c StoryContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("sections: decode story content: %w", err)
		}
		return c, nil
	case domain.SectionServices:
		var c ServicesContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("sections: decode services content: %w", err)
		}
		return c, nil
	case domain.SectionFeatures:
		var c FeaturesContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("sections: decode features content: %w", err)
		}
		return c, nil
	case domain.SectionAbout:
		var c AboutContent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("sections: decode about content: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, sectionType)
	}
}
