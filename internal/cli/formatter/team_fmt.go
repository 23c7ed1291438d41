package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/revgantt/internal/domain"
)

func FormatTeamList(teams []*domain.Team) string {
	headers := []string{"ID", "NAME", "MEMBERS"}
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{TruncID(t.ID), Bold(t.Name), fmt.Sprintf("%d", len(t.Members))})
	}
	return RenderBox("Teams", RenderTable(headers, rows))
}

func FormatMembers(teamName string, members []string) string {
	if len(members) == 0 {
		return RenderBox(teamName, Dim("No members yet."))
	}
	var b strings.Builder
	for _, m := range members {
		b.WriteString("• " + m + "\n")
	}
	return RenderBox(teamName, b.String())
}
