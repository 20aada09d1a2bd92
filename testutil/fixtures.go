package testutil

import (
	"fmt"
	"html"
	"strings"
)

// Vote is one <v> element in a session log fixture
type Vote struct {
	ID  string
	Ans string
}

// RosterCSV builds roster file content from participant,device pairs
func RosterCSV(rows ...[2]string) string {
	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "%s,%s\n", row[0], row[1])
	}
	return sb.String()
}

// SessionXML builds an iClicker-style session log, one <p> block per
// question. Extra attributes mirror what the base station writes.
func SessionXML(blocks ...[]Vote) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(`<ssn ssnn="Session 1" ts="10/14/26 10:30">` + "\n")
	for i, votes := range blocks {
		fmt.Fprintf(&sb, `  <p idx="%d" qn="Question %d" ans="" cans="A">`+"\n", i+1, i+1)
		for _, v := range votes {
			fmt.Fprintf(&sb, `    <v id="%s" ans="%s" fans="%s" tm="10.5"/>`+"\n",
				html.EscapeString(v.ID), html.EscapeString(v.Ans), html.EscapeString(v.Ans))
		}
		sb.WriteString("  </p>\n")
	}
	sb.WriteString("</ssn>\n")
	return sb.String()
}

// DefaultRoster is the two-student roster used across tests
func DefaultRoster() string {
	return RosterCSV([2]string{"Alice", "100"}, [2]string{"Bob", "101"})
}
