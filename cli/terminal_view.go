package cli

import (
	"fmt"
	"io"
	"strings"

	"claim_relay/wizard"
)

type terminalView struct {
	out io.Writer
}

func newTerminalView(out io.Writer) *terminalView {
	return &terminalView{out: out}
}

var stepMarks = map[wizard.StepStatus]string{
	wizard.StepCompleted: "[x]",
	wizard.StepActive:    "[>]",
	wizard.StepInactive:  "[ ]",
}

func (v *terminalView) Render(s wizard.Snapshot) {
	var steps []string
	for _, st := range wizard.StepStates(s.Step) {
		steps = append(steps, stepMarks[st.Status]+" "+string(st.Step))
	}
	fmt.Fprintln(v.out, strings.Join(steps, "  "))

	switch s.Screen {
	case wizard.ScreenStart:
		fmt.Fprintln(v.out, "Press Enter to start a new claim (or type quit).")
	case wizard.ScreenUpload:
		if s.Claim.File != nil {
			fmt.Fprintf(v.out, "Selected: %s. Press Enter to submit it, or type another path.\n", s.Claim.File.Name)
		} else {
			fmt.Fprintln(v.out, "Type the path of the invoice to upload.")
		}
	case wizard.ScreenProducts:
		fmt.Fprintf(v.out, "Summary: %s\n", s.Claim.Summary)
		for i, p := range s.Claim.Offered {
			mark := " "
			if s.Claim.IsSelected(p.ID) {
				mark = "*"
			}
			fmt.Fprintf(v.out, "  %s %d) %s\n", mark, i+1, p.Label)
		}
		fmt.Fprintln(v.out, "Type a number to toggle a product, done to submit.")
	case wizard.ScreenComplete:
		fmt.Fprintf(v.out, "Claim submitted. Your claim id is %s.\n", s.Claim.ClaimID)
		fmt.Fprintln(v.out, "Type new to start another claim, or quit.")
	}
}

func (v *terminalView) Alert(message string) {
	fmt.Fprintf(v.out, "! %s\n", message)
}
