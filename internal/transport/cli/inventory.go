package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clinicops/internal/domain"
)

func medicationsCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medications",
		Short: "Manage pharmacy stock",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stock lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			meds, err := deps.Inventory.Medications(cmd.Context())
			if err != nil {
				return friendly(err)
			}
			for _, m := range meds {
				supplier := m.Supplier
				if supplier == "" {
					supplier = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %5d  %s\n", m.Name, m.Quantity, supplier)
			}
			return nil
		},
	}

	var name, supplier string
	var quantity int
	add := &cobra.Command{
		Use:   "add",
		Short: "Create or replace a stock line",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := deps.Inventory.AddMedication(cmd.Context(), name, quantity, supplier)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d in stock)\n", m.Name, m.Quantity)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "medication name")
	add.Flags().IntVar(&quantity, "quantity", 0, "units in stock")
	add.Flags().StringVar(&supplier, "supplier", "", "supplier name")
	add.MarkFlagRequired("name")

	cmd.AddCommand(list, add)
	return cmd
}

func replenishmentCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replenishment",
		Short: "Manage replenishment requests",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List open requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := deps.Inventory.Replenishments(cmd.Context())
			if err != nil {
				return friendly(err)
			}
			for _, r := range reqs {
				date := "-"
				if !r.RequestDate.IsZero() {
					date = r.RequestDate.Format(domain.DateLayout)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %5d  by=%s on=%s\n", r.MedicationName, r.Quantity, r.RequestedBy, date)
			}
			return nil
		},
	}

	var medication, requestedBy string
	var quantity int
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Request more stock of a medication",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := deps.Inventory.SubmitReplenishment(cmd.Context(), medication, quantity, requestedBy)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "requested %d of %s\n", r.Quantity, r.MedicationName)
			return nil
		},
	}
	submit.Flags().StringVar(&medication, "medication", "", "medication name")
	submit.Flags().IntVar(&quantity, "quantity", 0, "units to order")
	submit.Flags().StringVar(&requestedBy, "by", "", "pharmacist hospital ID")
	submit.MarkFlagRequired("medication")
	submit.MarkFlagRequired("quantity")
	submit.MarkFlagRequired("by")

	var approveName string
	approve := &cobra.Command{
		Use:   "approve",
		Short: "Approve a request and add the quantity to stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := deps.Inventory.ApproveReplenishment(cmd.Context(), approveName)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "approved; %s now at %d\n", m.Name, m.Quantity)
			return nil
		},
	}
	approve.Flags().StringVar(&approveName, "medication", "", "medication name")
	approve.MarkFlagRequired("medication")

	var rejectName string
	reject := &cobra.Command{
		Use:   "reject",
		Short: "Discard a request without changing stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.Inventory.RejectReplenishment(cmd.Context(), rejectName); err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rejected request for %s\n", rejectName)
			return nil
		},
	}
	reject.Flags().StringVar(&rejectName, "medication", "", "medication name")
	reject.MarkFlagRequired("medication")

	cmd.AddCommand(list, submit, approve, reject)
	return cmd
}
