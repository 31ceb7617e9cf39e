package ui

import (
	"fmt"
	"strings"

	"github.com/nconklindev/pwrzones/internal/contact"
	"github.com/nconklindev/pwrzones/internal/export"
	"github.com/nconklindev/pwrzones/internal/types"

	"github.com/charmbracelet/lipgloss"
)

// Links are the contact actions shown on a selected card.
type Links struct {
	Message string
	Subject string
}

// RenderCard draws one athlete with their zone table. Contact details only
// appear when they pass the phone and email checks. links is nil for unselected cards.
func RenderCard(p types.Participant, selected bool, links *Links) string {
	var s strings.Builder

	header := NameStyle.Render(p.Name)
	if contact.IsValidPhone(p.Phone) {
		header += ContactStyle.Render(fmt.Sprintf(" (%s)", p.Phone))
	}
	if contact.IsValidEmail(p.Email) {
		header += ContactStyle.Render(fmt.Sprintf(" <%s>", p.Email))
	}
	s.WriteString(header)
	s.WriteString("\n")

	s.WriteString(fmt.Sprintf("FTP: %s watts", strings.TrimSpace(p.FTP)))
	if !p.HasUsableFTP() {
		s.WriteString(" ")
		s.WriteString(ErrorStyle.Render("(not a number, zones unavailable)"))
	}
	s.WriteString("\n")

	for _, r := range p.Zones {
		label := ZoneLabelStyle.
			Background(lipgloss.Color(export.ZoneColor(r.Zone.StyleClass))).
			Render(r.Zone.Name)
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			label,
			PctStyle.Render(export.FormatPct(r.Zone)),
			WattsStyle.Render(export.FormatRange(r)),
		))
		s.WriteString("\n")
	}

	if selected && links != nil {
		if sms := contact.SMSLink(p.Phone, links.Message); sms != "" {
			s.WriteString(LinkStyle.Render(sms))
			s.WriteString("\n")
		}
		if mail := contact.MailLink(p.Email, links.Subject, links.Message); mail != "" {
			s.WriteString(LinkStyle.Render(mail))
			s.WriteString("\n")
		}
	}

	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return style.Render(strings.TrimSuffix(s.String(), "\n"))
}

// RenderRoster stacks every card and returns the line each card starts on.
// selected is -1 when no card should be highlighted.
func RenderRoster(participants []types.Participant, selected int, links *Links) (string, []int) {
	var s strings.Builder
	offsets := make([]int, 0, len(participants))
	line := 0

	for i, p := range participants {
		card := RenderCard(p, i == selected, links)
		offsets = append(offsets, line)
		s.WriteString(card)
		s.WriteString("\n")
		line += lipgloss.Height(card)
	}

	return s.String(), offsets
}
