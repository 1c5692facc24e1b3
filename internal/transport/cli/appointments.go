package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"clinicops/internal/domain"
	"clinicops/internal/service/scheduling"
)

func slotsCmd(deps Deps) *cobra.Command {
	var doctorID, date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List a doctor's open slots for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			slots, err := deps.Scheduling.AvailableSlots(cmd.Context(), d, doctorID)
			if err != nil {
				return friendly(err)
			}
			if len(slots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no open slots")
				return nil
			}
			for _, s := range slots {
				fmt.Fprintln(cmd.OutOrStdout(), formatSlot(s))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor hospital ID")
	cmd.Flags().StringVar(&date, "date", "", "date (2006-01-02)")
	cmd.MarkFlagRequired("doctor")
	cmd.MarkFlagRequired("date")
	return cmd
}

func bookCmd(deps Deps) *cobra.Command {
	var patientID, doctorID, date, start string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment in an open slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			at, err := parseClockOn(d, start)
			if err != nil {
				return err
			}
			appt, err := deps.Scheduling.Book(cmd.Context(), scheduling.BookInput{
				PatientID: patientID,
				DoctorID:  doctorID,
				Date:      d,
				Start:     at,
			})
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "booked %s\n", formatAppointment(appt))
			return nil
		},
	}
	cmd.Flags().StringVar(&patientID, "patient", "", "patient hospital ID")
	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor hospital ID")
	cmd.Flags().StringVar(&date, "date", "", "date (2006-01-02)")
	cmd.Flags().StringVar(&start, "time", "", "slot start (15:04)")
	cmd.MarkFlagRequired("patient")
	cmd.MarkFlagRequired("doctor")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("time")
	return cmd
}

func rescheduleCmd(deps Deps) *cobra.Command {
	var patientID, doctorID, date, start string
	var id int

	cmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Move an appointment to a new doctor, date or slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			at, err := parseClockOn(d, start)
			if err != nil {
				return err
			}
			appt, err := deps.Scheduling.Reschedule(cmd.Context(), scheduling.RescheduleInput{
				PatientID:     patientID,
				AppointmentID: id,
				DoctorID:      doctorID,
				Date:          d,
				Start:         at,
			})
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rescheduled %s\n", formatAppointment(appt))
			return nil
		},
	}
	cmd.Flags().StringVar(&patientID, "patient", "", "patient hospital ID")
	cmd.Flags().IntVar(&id, "id", 0, "appointment ID")
	cmd.Flags().StringVar(&doctorID, "doctor", "", "new doctor hospital ID")
	cmd.Flags().StringVar(&date, "date", "", "new date (2006-01-02)")
	cmd.Flags().StringVar(&start, "time", "", "new slot start (15:04)")
	cmd.MarkFlagRequired("patient")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("doctor")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("time")
	return cmd
}

func cancelCmd(deps Deps) *cobra.Command {
	var patientID string
	var id int

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.Scheduling.Cancel(cmd.Context(), patientID, id); err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cancelled appointment #%d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&patientID, "patient", "", "patient hospital ID")
	cmd.Flags().IntVar(&id, "id", 0, "appointment ID")
	cmd.MarkFlagRequired("patient")
	cmd.MarkFlagRequired("id")
	return cmd
}

func completeCmd(deps Deps) *cobra.Command {
	var doctorID, outcome string
	var id int

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Record the outcome and close an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			appt, err := deps.Scheduling.Complete(cmd.Context(), doctorID, id, outcome)
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed %s\n", formatAppointment(appt))
			return nil
		},
	}
	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor hospital ID")
	cmd.Flags().IntVar(&id, "id", 0, "appointment ID")
	cmd.Flags().StringVar(&outcome, "outcome", "", "outcome summary")
	cmd.MarkFlagRequired("doctor")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("outcome")
	return cmd
}

func availabilityCmd(deps Deps) *cobra.Command {
	var doctorID, date string
	var slots []string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Replace a doctor's declared slots for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			parsed := make([]domain.TimeSlot, 0, len(slots))
			for _, s := range slots {
				slot, err := parseSlotOn(d, s)
				if err != nil {
					return err
				}
				parsed = append(parsed, slot)
			}
			if err := deps.Scheduling.SetAvailability(cmd.Context(), doctorID, d, parsed); err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "availability for %s on %s: %d slot(s)\n", doctorID, date, len(parsed))
			return nil
		},
	}
	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor hospital ID")
	cmd.Flags().StringVar(&date, "date", "", "date (2006-01-02)")
	cmd.Flags().StringArrayVar(&slots, "slot", nil, "slot as 09:00-09:30, repeatable; none blocks the day")
	cmd.MarkFlagRequired("doctor")
	cmd.MarkFlagRequired("date")
	return cmd
}

func appointmentsCmd(deps Deps) *cobra.Command {
	var patientID string

	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List a patient's appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			appts, err := deps.Scheduling.AppointmentsFor(cmd.Context(), patientID)
			if err != nil {
				return friendly(err)
			}
			if len(appts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no appointments")
				return nil
			}
			for _, a := range appts {
				fmt.Fprintln(cmd.OutOrStdout(), formatAppointment(a))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&patientID, "patient", "", "patient hospital ID")
	cmd.MarkFlagRequired("patient")
	return cmd
}
