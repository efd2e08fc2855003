package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Darios2021/coc-backend/internal/docs/domain"
)

// Heading heuristics tuned for the Spanish-language compliance manuals this
// system ingests: chapter/section markers or numbered titles.
var (
	headingRx      = regexp.MustCompile(`^(CAP[IÍ]TULO\b.*|Cap[ií]tulo\b.*|Secci[oó]n\b.*|\d+(\.\d+){0,4}\s+[A-ZÁÉÍÓÚÑ].{0,120})$`)
	upperLetterRx  = regexp.MustCompile(`[A-ZÁÉÍÓÚÑ]`)
	hyphenBreakRx  = regexp.MustCompile(`-\s*\n`)
	trailingWSRx   = regexp.MustCompile(`[ \t]+\n`)
	excessBreaksRx = regexp.MustCompile(`\n{3,}`)
)

// normalizeText rejoins words hyphenated across line breaks and collapses
// excess whitespace left behind by PDF text extraction.
func normalizeText(s string) string {
	s = hyphenBreakRx.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r", "")
	s = trailingWSRx.ReplaceAllString(s, "\n")
	s = excessBreaksRx.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func isHeading(line string) bool {
	if headingRx.MatchString(line) {
		return true
	}
	// Short all-caps lines read as headings too.
	return utf8.RuneCountInString(line) <= 90 &&
		line == strings.ToUpper(line) &&
		upperLetterRx.MatchString(line)
}

// SplitSections turns per-page text into heading-delimited sections. Pages
// with no recognizable heading collapse into one per-page introduction
// section; a document with no sections at all becomes a single whole-text one.
func SplitSections(pages []string) []domain.Section {
	var sections []domain.Section
	order := 0

	flush := func(pageNo int, heading, content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		p := pageNo
		sections = append(sections, domain.Section{
			SectionPath: fmt.Sprintf("Pág. %d", pageNo),
			Heading:     truncate(heading, 255),
			Content:     content,
			OrderIndex:  order,
			PageNo:      &p,
		})
		order++
	}

	for idx, rawPage := range pages {
		pageNo := idx + 1
		page := normalizeText(rawPage)

		heading := fmt.Sprintf("Pág. %d · Introducción", pageNo)
		var content strings.Builder

		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if isHeading(line) {
				flush(pageNo, heading, content.String())
				heading = fmt.Sprintf("Pág. %d · %s", pageNo, line)
				content.Reset()
				continue
			}

			if content.Len() > 0 {
				content.WriteByte('\n')
			}
			content.WriteString(line)
		}

		flush(pageNo, heading, content.String())
	}

	if len(sections) == 0 {
		normalized := make([]string, len(pages))
		for i, p := range pages {
			normalized[i] = normalizeText(p)
		}
		one := 1
		sections = append(sections, domain.Section{
			SectionPath: "Documento",
			Heading:     "Documento",
			Content:     strings.Join(normalized, "\n\n"),
			OrderIndex:  0,
			PageNo:      &one,
		})
	}

	return sections
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

var (
	spaceRx  = regexp.MustCompile(`\s+`)
	unsafeRx = regexp.MustCompile(`[^\w.\-]`)
)

// SafeName reduces an uploaded filename to a storage-safe object key part.
func SafeName(original string) string {
	if original == "" {
		original = "archivo.pdf"
	}
	name := spaceRx.ReplaceAllString(original, "_")
	return unsafeRx.ReplaceAllString(name, "")
}
