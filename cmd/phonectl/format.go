package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"flagphone_backend/internal/phoneinput/domain"

	"github.com/spf13/cobra"
)

type formatLine struct {
	Input       string `json:"input"`
	Country     string `json:"country"`
	DisplayText string `json:"displayText"`
	IsValid     bool   `json:"isValid"`
	E164        string `json:"e164,omitempty"`
}

func newFormatCmd() *cobra.Command {
	var (
		maxDigits int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "format [text...]",
		Short: "Format input as it would be shown while typing",
		Long: `Feeds each argument, or each line of stdin when no arguments are given,
to a fresh phone input controller and prints the display text, validity and E.164
form. Input starting with '+' is set as a complete number, so the country
follows its calling code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxDigits <= 0 {
				maxDigits = current.cfg.GetPhoneMaxDigits()
			}
			newCtrl := func() *domain.Controller {
				return domain.NewController(current.dir, current.plan, domain.Options{
					Region:    current.cfg.GetDefaultRegion(),
					MaxDigits: maxDigits,
				})
			}
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				return formatAll(out, newCtrl, args, asJSON)
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if err := writeFormatLine(out, newCtrl(), scanner.Text(), asJSON); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().IntVar(&maxDigits, "max-digits", 0, "maximum number of digits kept (default PHONE_MAX_DIGITS)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per input")
	return cmd
}

// formatAll formats each input independently, so a country picked by one
// input does not carry over to the next.
func formatAll(w io.Writer, newCtrl func() *domain.Controller, inputs []string, asJSON bool) error {
	for _, input := range inputs {
		if err := writeFormatLine(w, newCtrl(), input, asJSON); err != nil {
			return err
		}
	}
	return nil
}

func writeFormatLine(w io.Writer, ctrl *domain.Controller, input string, asJSON bool) error {
	if !strings.HasPrefix(strings.TrimSpace(input), "+") || !ctrl.SetPhoneNumber(input) {
		ctrl.Edit(input)
	}

	state := ctrl.State()
	line := formatLine{Input: input, DisplayText: state.DisplayText, IsValid: state.IsValid}
	if state.Country != nil {
		line.Country = state.Country.Code
	}
	if state.IsValid {
		line.E164, _ = ctrl.RawPhoneNumber()
	}

	if asJSON {
		return json.NewEncoder(w).Encode(line)
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", line.Country, line.DisplayText, line.IsValid, line.E164)
	return err
}
