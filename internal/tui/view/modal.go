package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	ModalStyle             lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.ModalTitleStyle.Render(title))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalHintStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}

// RenderModalButtons renders a row of modal buttons with the active index highlighted.
func RenderModalButtons(styles ModalStyles, active int, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := styles.ModalButtonStyle
		if i == active {
			style = styles.ModalButtonActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

// Field is a labelled row in a modal body.
type Field struct {
	Label string
	Value string
}

// RenderFields lays out label/value rows with labels padded to a common width.
func RenderFields(styles ModalStyles, fields ...Field) string {
	labelW := 0
	for _, f := range fields {
		labelW = max(labelW, lipgloss.Width(f.Label))
	}
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		label := styles.ModalLabelStyle.Width(labelW + 2).Render(f.Label)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, styles.ModalBodyStyle.Render(f.Value)))
	}
	return strings.Join(lines, "\n")
}
