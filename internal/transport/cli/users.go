package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clinicops/internal/domain"
	"clinicops/internal/service/directory"
)

func usersCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the clinic directory",
	}
	cmd.AddCommand(usersRegisterCmd(deps), usersListCmd(deps), usersShowCmd(deps))
	return cmd
}

func usersRegisterCmd(deps Deps) *cobra.Command {
	var in struct {
		id, password, name, dob, gender, phone, email, role string
	}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var dob time.Time
			if in.dob != "" {
				var err error
				dob, err = parseDate(in.dob)
				if err != nil {
					return err
				}
			}
			u, err := deps.Directory.Register(cmd.Context(), directory.RegisterInput{
				HospitalID:  in.id,
				Password:    in.password,
				Name:        in.name,
				DateOfBirth: dob,
				Gender:      in.gender,
				Phone:       in.phone,
				Email:       in.email,
				Role:        domain.Role(in.role),
			})
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s) as %s\n", u.Name, u.HospitalID, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.id, "id", "", "hospital ID (minted when omitted)")
	cmd.Flags().StringVar(&in.password, "password", "", "password")
	cmd.Flags().StringVar(&in.name, "name", "", "full name")
	cmd.Flags().StringVar(&in.dob, "dob", "", "date of birth (2006-01-02)")
	cmd.Flags().StringVar(&in.gender, "gender", "", "gender")
	cmd.Flags().StringVar(&in.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.email, "email", "", "email address")
	cmd.Flags().StringVar(&in.role, "role", "", "administrator, doctor, pharmacist or patient")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("role")
	return cmd
}

func usersListCmd(deps Deps) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally by role",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := deps.Directory.List(cmd.Context(), domain.Role(role))
			if err != nil {
				return friendly(err)
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-13s %s\n", u.HospitalID, u.Role, u.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "filter by role")
	return cmd
}

func usersShowCmd(deps Deps) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one user record",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := deps.Directory.Get(cmd.Context(), id)
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:    %s\n", u.HospitalID)
			fmt.Fprintf(out, "name:  %s\n", u.Name)
			fmt.Fprintf(out, "role:  %s\n", u.Role)
			if !u.DateOfBirth.IsZero() {
				fmt.Fprintf(out, "dob:   %s\n", u.DateOfBirth.Format(domain.DateLayout))
			}
			if u.Phone != "" {
				fmt.Fprintf(out, "phone: %s\n", u.Phone)
			}
			if u.Email != "" {
				fmt.Fprintf(out, "email: %s\n", u.Email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "hospital ID")
	cmd.MarkFlagRequired("id")
	return cmd
}
