package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/nawras-digital/sitecms/internal/logging"
	"github.com/nawras-digital/sitecms/internal/sections"
	"github.com/nawras-digital/sitecms/pkg/interfaces"
)

// Seeder provisions first-run content so a fresh deployment renders a working
// site instead of empty pages. Seeding is idempotent: pages that already
// exist are left untouched.
type Seeder struct {
	sections sections.Service
	logger   interfaces.Logger
}

// Option configures the seeder.
type Option func(*Seeder)

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Seeder) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a seeder over the section content service.
func New(sectionService sections.Service, opts ...Option) *Seeder {
	s := &Seeder{
		sections: sectionService,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

type defaultPage struct {
	title    string
	slug     string
	sections []defaultSection
}

type defaultSection struct {
	title    string
	position int
	content  sections.Content
}

func defaultPages() []defaultPage {
	return []defaultPage{
		{
			title: "Home",
			slug:  "home",
			sections: []defaultSection{
				{
					title:    "Hero",
					position: 1,
					content: sections.HeroContent{
						Title:    sections.Bilingual{Ar: "نورس ديجيتال", En: "Nawras Digital"},
						SubTitle: sections.Bilingual{Ar: "حلول رقمية متكاملة", En: "Complete digital solutions"},
					},
				},
				{
					title:    "Services",
					position: 2,
					content: sections.ServicesContent{
						Title:    sections.Bilingual{Ar: "خدماتنا", En: "Our Services"},
						SubTitle: sections.Bilingual{Ar: "ما الذي نقدمه لعملائنا", En: "What we deliver for our clients"},
					},
				},
				{
					title:    "Features",
					position: 3,
					content: sections.FeaturesContent{
						Title: sections.Bilingual{Ar: "لماذا نحن", En: "Why Us"},
						Features: []sections.FeatureItem{
							{
								Title:    sections.Bilingual{Ar: "خبرة", En: "Experience"},
								SubTitle: sections.Bilingual{Ar: "سنوات من العمل المتخصص", En: "Years of focused delivery"},
							},
							{
								Title:    sections.Bilingual{Ar: "دعم", En: "Support"},
								SubTitle: sections.Bilingual{Ar: "متابعة مستمرة بعد الإطلاق", En: "Ongoing care after launch"},
							},
						},
					},
				},
			},
		},
		{
			title: "About",
			slug:  "about",
			sections: []defaultSection{
				{
					title:    "About Us",
					position: 1,
					content: sections.AboutContent{
						Title:   sections.Bilingual{Ar: "من نحن", En: "Who We Are"},
						Body:    sections.Bilingual{Ar: "فريق متخصص في بناء المواقع والأنظمة.", En: "A team focused on building sites and systems."},
						Vision:  sections.Bilingual{Ar: "أن نكون الخيار الأول للحلول الرقمية.", En: "To be the first choice for digital solutions."},
						Mission: sections.Bilingual{Ar: "تقديم منتجات رقمية عالية الجودة.", En: "Deliver high quality digital products."},
					},
				},
			},
		},
	}
}

// EnsureDefaults creates the stock pages when they are missing. Existing
// pages are never modified, so operator edits survive restarts.
func (s *Seeder) EnsureDefaults(ctx context.Context) error {
	for _, page := range defaultPages() {
		if _, err := s.sections.GetPage(ctx, page.slug); err == nil {
			continue
		} else {
			var notFound *sections.NotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("seed: check page %q: %w", page.slug, err)
			}
		}

		created, err := s.sections.CreatePage(ctx, sections.CreatePageRequest{
			Title: page.title,
			Slug:  page.slug,
		})
		if err != nil {
			return fmt.Errorf("seed: create page %q: %w", page.slug, err)
		}

		for _, section := range page.sections {
			_, err := s.sections.CreateSection(ctx, sections.CreateSectionRequest{
				PageID:   created.ID,
				Title:    section.title,
				Position: section.position,
				Content:  section.content,
			})
			if err != nil {
				return fmt.Errorf("seed: create section %q on %q: %w", section.title, page.slug, err)
			}
		}

		s.logger.Info("seeded page", "slug", page.slug, "sections", len(page.sections))
	}
	return nil
}
