package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "rejoins hyphenated words",
			in:   "procedi-\nmiento",
			want: "procedimiento",
		},
		{
			name: "strips carriage returns and trailing spaces",
			in:   "uno  \r\ndos\r\n",
			want: "uno\ndos",
		},
		{
			name: "collapses excess breaks",
			in:   "uno\n\n\n\n\ndos",
			want: "uno\n\ndos",
		},
		{
			name: "trims",
			in:   "  texto  ",
			want: "texto",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeText(tt.in))
		})
	}
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"CAPÍTULO 1 DISPOSICIONES GENERALES", true},
		{"Capítulo 3", true},
		{"Sección segunda", true},
		{"2.1 Alcance del procedimiento", true},
		{"3.1.4.2 Requisitos", true},
		{"MARCO NORMATIVO", true},
		{"El presente documento describe el alcance.", false},
		{"2.1 alcance en minúsculas", false},
		{strings.Repeat("A", 120), false}, // all caps but too long
		{"12345", false},                  // no letters
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isHeading(tt.line))
		})
	}
}

func TestSplitSections_HeadingsDelimit(t *testing.T) {
	page := "Preámbulo del documento.\n" +
		"CAPÍTULO 1\n" +
		"Contenido del primer capítulo.\n" +
		"Sigue el primer capítulo.\n" +
		"CAPÍTULO 2\n" +
		"Contenido del segundo capítulo.\n"

	sections := SplitSections([]string{page})

	require.Len(t, sections, 3)

	assert.Equal(t, "Pág. 1 · Introducción", sections[0].Heading)
	assert.Equal(t, "Preámbulo del documento.", sections[0].Content)

	assert.Equal(t, "Pág. 1 · CAPÍTULO 1", sections[1].Heading)
	assert.Equal(t, "Contenido del primer capítulo.\nSigue el primer capítulo.", sections[1].Content)

	assert.Equal(t, "Pág. 1 · CAPÍTULO 2", sections[2].Heading)

	for i, s := range sections {
		assert.Equal(t, i, s.OrderIndex)
		require.NotNil(t, s.PageNo)
		assert.Equal(t, 1, *s.PageNo)
		assert.Equal(t, "Pág. 1", s.SectionPath)
	}
}

func TestSplitSections_PageNumbersAdvance(t *testing.T) {
	sections := SplitSections([]string{"Texto de la primera página.", "Texto de la segunda página."})

	require.Len(t, sections, 2)
	assert.Equal(t, 1, *sections[0].PageNo)
	assert.Equal(t, 2, *sections[1].PageNo)
	assert.Equal(t, "Pág. 2", sections[1].SectionPath)
}

func TestSplitSections_EmptyPagesSkipped(t *testing.T) {
	sections := SplitSections([]string{"", "Contenido.", "   \n  "})

	require.Len(t, sections, 1)
	assert.Equal(t, "Contenido.", sections[0].Content)
	assert.Equal(t, 2, *sections[0].PageNo)
}

func TestSplitSections_FallbackSingleDocument(t *testing.T) {
	sections := SplitSections([]string{"", ""})

	require.Len(t, sections, 1)
	assert.Equal(t, "Documento", sections[0].Heading)
	assert.Equal(t, "Documento", sections[0].SectionPath)
}

func TestSplitSections_HeadingTruncated(t *testing.T) {
	long := "CAPÍTULO 1 " + strings.Repeat("A", 300)
	sections := SplitSections([]string{long + "\nContenido."})

	require.Len(t, sections, 1)
	assert.LessOrEqual(t, len([]rune(sections[0].Heading)), 255)
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"manual de compras.pdf", "manual_de_compras.pdf"},
		{"informe (final) v2.pdf", "informe_final_v2.pdf"},
		{"../../etc/passwd", "......etcpasswd"},
		{"", "archivo.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}
