package cli

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"

	"clinicops/internal/domain"
	"clinicops/internal/service/directory"
)

var seedSpecialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Pediatrics",
	"Neurology",
}

// seedCmd fills an empty data directory with plausible users and stock so
// the booking commands have something to work against.
func seedCmd(deps Deps) *cobra.Command {
	var doctors, patients, medications int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with sample users and medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			gofakeit.Seed(time.Now().UnixNano())

			for i := 0; i < doctors; i++ {
				if err := seedUser(cmd, deps, domain.RoleDoctor); err != nil {
					return err
				}
			}
			for i := 0; i < patients; i++ {
				if err := seedUser(cmd, deps, domain.RolePatient); err != nil {
					return err
				}
			}
			for i := 0; i < medications; i++ {
				name := gofakeit.Noun() + " " + fmt.Sprintf("%dmg", gofakeit.Number(5, 500))
				m, err := deps.Inventory.AddMedication(cmd.Context(), name, gofakeit.Number(10, 200), gofakeit.Company())
				if err != nil {
					return friendly(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "medication %s\n", m.Name)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d doctors, %d patients, %d medications\n",
				doctors, patients, medications)
			return nil
		},
	}
	cmd.Flags().IntVar(&doctors, "doctors", 3, "doctors to create")
	cmd.Flags().IntVar(&patients, "patients", 10, "patients to create")
	cmd.Flags().IntVar(&medications, "medications", 8, "stock lines to create")
	return cmd
}

func seedUser(cmd *cobra.Command, deps Deps, role domain.Role) error {
	dob := gofakeit.DateRange(
		time.Date(1950, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2005, time.December, 31, 0, 0, 0, 0, time.Local),
	)
	u, err := deps.Directory.Register(cmd.Context(), directory.RegisterInput{
		Password:    gofakeit.Password(true, true, true, false, false, 12),
		Name:        gofakeit.Name(),
		DateOfBirth: dob,
		Gender:      gofakeit.Gender(),
		Phone:       gofakeit.Phone(),
		Email:       gofakeit.Email(),
		Role:        role,
	})
	if err != nil {
		return friendly(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", u.Role, u.Name, u.HospitalID)
	return nil
}
