package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/records"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// stringFlag returns the flag value when it was set on the command line and
// fallback otherwise, so edits keep fields the user did not mention.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

// deleteTarget resolves "delete <id>" or "delete --row N".
func deleteTarget(cmd *cobra.Command, args []string) (id int, row int, err error) {
	row, _ = cmd.Flags().GetInt("row")
	if len(args) == 1 {
		id, err = parseID(args[0])
		return id, -1, err
	}
	if !cmd.Flags().Changed("row") {
		return 0, -1, fmt.Errorf("give an id or --row")
	}
	if row < 0 {
		return 0, -1, fmt.Errorf("--row must not be negative")
	}
	return 0, row, nil
}

func deleteCmd(kind records.Kind, byID func(ctx context.Context, a *app, id int) error, byRow func(a *app, row int) (int, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a record by id or by list position",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, row, err := deleteTarget(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				if row >= 0 {
					if id, err = byRow(a, row); err != nil {
						return err
					}
				} else if err := byID(ctx, a, id); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %s %d\n", kind, id)
				return nil
			})
		},
	}
	cmd.Flags().Int("row", -1, "Zero-based position in the list instead of an id")
	return cmd
}

// -- patient --

func patientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage patients",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tNAME\tGENDER\tPHONE\tADDRESS\tDOB")
				for _, p := range a.store.Patients() {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Gender, p.Phone, p.Address, records.FormatDate(p.BirthDate))
				}
				return tw.Flush()
			})
		},
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := patientForm(cmd, identity.PatientForm{})
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				p, err := a.identity.CreatePatient(ctx, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added patient %d\n", p.ID)
				return nil
			})
		},
	}
	patientFlags(addCmd)
	cmd.AddCommand(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a patient; unspecified fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				cur, err := a.identity.GetPatient(ctx, id)
				if err != nil {
					return err
				}
				if _, err := a.identity.UpdatePatient(ctx, id, patientForm(cmd, identity.PatientFormFrom(cur))); err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated patient %d\n", id)
				return nil
			})
		},
	}
	patientFlags(editCmd)
	cmd.AddCommand(editCmd)

	cmd.AddCommand(deleteCmd(records.KindPatients,
		func(ctx context.Context, a *app, id int) error { return a.identity.DeletePatient(ctx, id) },
		func(a *app, row int) (int, error) {
			p, err := a.store.RemovePatientAt(row)
			return p.ID, err
		},
	))

	return cmd
}

func patientFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Full name (required)")
	cmd.Flags().String("gender", "", "Gender")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("address", "", "Address")
	cmd.Flags().String("dob", "", "Date of birth, yyyy-MM-dd")
}

func patientForm(cmd *cobra.Command, base identity.PatientForm) identity.PatientForm {
	return identity.PatientForm{
		Name:      stringFlag(cmd, "name", base.Name),
		Gender:    stringFlag(cmd, "gender", base.Gender),
		Phone:     stringFlag(cmd, "phone", base.Phone),
		Address:   stringFlag(cmd, "address", base.Address),
		BirthDate: stringFlag(cmd, "dob", base.BirthDate),
	}
}

// -- doctor --

func doctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Manage doctors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tNAME\tSPECIALIZATION\tPHONE")
				for _, d := range a.store.Doctors() {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.ID, d.Name, d.Specialization, d.Phone)
				}
				return tw.Flush()
			})
		},
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := doctorForm(cmd, identity.DoctorForm{})
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				d, err := a.identity.CreateDoctor(ctx, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added doctor %d\n", d.ID)
				return nil
			})
		},
	}
	doctorFlags(addCmd)
	cmd.AddCommand(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a doctor; unspecified fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				cur, err := a.identity.GetDoctor(ctx, id)
				if err != nil {
					return err
				}
				if _, err := a.identity.UpdateDoctor(ctx, id, doctorForm(cmd, identity.DoctorFormFrom(cur))); err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated doctor %d\n", id)
				return nil
			})
		},
	}
	doctorFlags(editCmd)
	cmd.AddCommand(editCmd)

	cmd.AddCommand(deleteCmd(records.KindDoctors,
		func(ctx context.Context, a *app, id int) error { return a.identity.DeleteDoctor(ctx, id) },
		func(a *app, row int) (int, error) {
			d, err := a.store.RemoveDoctorAt(row)
			return d.ID, err
		},
	))

	return cmd
}

func doctorFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Full name (required)")
	cmd.Flags().String("specialization", "", "Specialization")
	cmd.Flags().String("phone", "", "Phone number")
}

func doctorForm(cmd *cobra.Command, base identity.DoctorForm) identity.DoctorForm {
	return identity.DoctorForm{
		Name:           stringFlag(cmd, "name", base.Name),
		Specialization: stringFlag(cmd, "specialization", base.Specialization),
		Phone:          stringFlag(cmd, "phone", base.Phone),
	}
}
