package main

import (
	"errors"
	"fmt"

	"flagphone_backend/internal/phoneinput/numbering"

	"github.com/spf13/cobra"
)

var errInvalidNumbers = errors.New("some numbers are invalid")

func newValidateCmd() *cobra.Command {
	var ignoreType bool

	cmd := &cobra.Command{
		Use:   "validate number...",
		Short: "Validate numbers and print their canonical forms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := numbering.NewValidator(current.plan)
			out := cmd.OutOrStdout()
			invalid := 0

			for _, arg := range args {
				n, err := v.Parse(arg, current.cfg.GetDefaultRegion(), ignoreType)
				if err != nil {
					invalid++
					fmt.Fprintf(out, "%s\tinvalid\t%v\n", arg, err)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", arg, n.Region, v.ToE164(n), v.ToNational(n), v.ToInternational(n))
			}

			if invalid > 0 {
				return errInvalidNumbers
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreType, "ignore-type", false, "accept numbers that are only possible, not valid")
	return cmd
}
