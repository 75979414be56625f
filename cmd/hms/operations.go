package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/supply"
	"github.com/hms/hms/internal/platform/sandbox"
	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/internal/store"
)

// -- appointment --

func appointmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointment",
		Short: "Manage appointments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List appointments with patient and doctor names",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tPATIENT\tDOCTOR\tDATE/TIME\tNOTES")
				for _, v := range scheduling.Project(a.store, a.store.Appointments()) {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", v.ID, v.Patient, v.Doctor, v.DateTime, v.Notes)
				}
				return tw.Flush()
			})
		},
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Book an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := appointmentForm(cmd, scheduling.AppointmentForm{})
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				appt, err := a.scheduling.CreateAppointment(ctx, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added appointment %d\n", appt.ID)
				return nil
			})
		},
	}
	appointmentFlags(addCmd)
	cmd.AddCommand(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an appointment; unspecified fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				cur, err := a.store.Appointment(id)
				if err != nil {
					return err
				}
				if _, err := a.scheduling.UpdateAppointment(ctx, id, appointmentForm(cmd, scheduling.AppointmentFormFrom(cur))); err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated appointment %d\n", id)
				return nil
			})
		},
	}
	appointmentFlags(editCmd)
	cmd.AddCommand(editCmd)

	cmd.AddCommand(deleteCmd(records.KindAppointments,
		func(ctx context.Context, a *app, id int) error { return a.scheduling.DeleteAppointment(ctx, id) },
		func(a *app, row int) (int, error) {
			appt, err := a.store.RemoveAppointmentAt(row)
			return appt.ID, err
		},
	))

	return cmd
}

func appointmentFlags(cmd *cobra.Command) {
	cmd.Flags().String("patient", "", "Patient id")
	cmd.Flags().String("doctor", "", "Doctor id")
	cmd.Flags().String("at", "", "Date and time, yyyy-MM-dd HH:mm")
	cmd.Flags().String("notes", "", "Notes")
}

func appointmentForm(cmd *cobra.Command, base scheduling.AppointmentForm) scheduling.AppointmentForm {
	return scheduling.AppointmentForm{
		PatientID: stringFlag(cmd, "patient", base.PatientID),
		DoctorID:  stringFlag(cmd, "doctor", base.DoctorID),
		DateTime:  stringFlag(cmd, "at", base.DateTime),
		Notes:     stringFlag(cmd, "notes", base.Notes),
	}
}

// -- inventory --

func inventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage inventory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stock items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tUNIT PRICE")
				for _, i := range a.store.Inventory() {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\n", i.ID, i.Name, i.Quantity, i.UnitPrice)
				}
				return tw.Flush()
			})
		},
	})

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a stock item",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := inventoryForm(cmd, supply.InventoryForm{Quantity: "0", UnitPrice: "0"})
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				i, err := a.supply.CreateItem(ctx, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Added item %d\n", i.ID)
				return nil
			})
		},
	}
	inventoryFlags(addCmd)
	cmd.AddCommand(addCmd)

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a stock item; unspecified fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				cur, err := a.supply.GetItem(ctx, id)
				if err != nil {
					return err
				}
				if _, err := a.supply.UpdateItem(ctx, id, inventoryForm(cmd, supply.InventoryFormFrom(cur))); err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated item %d\n", id)
				return nil
			})
		},
	}
	inventoryFlags(editCmd)
	cmd.AddCommand(editCmd)

	cmd.AddCommand(deleteCmd(records.KindInventory,
		func(ctx context.Context, a *app, id int) error { return a.supply.DeleteItem(ctx, id) },
		func(a *app, row int) (int, error) {
			i, err := a.store.RemoveInventoryItemAt(row)
			return i.ID, err
		},
	))

	restock := &cobra.Command{
		Use:   "restock <id> <quantity>",
		Short: "Add quantity to a stock item (negative to remove)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				i, err := a.supply.Restock(ctx, id, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s now has %d\n", i.Name, i.Quantity)
				return nil
			})
		},
	}
	// Arguments after the id are never flags, so "restock 1 -3" works.
	restock.Flags().SetInterspersed(false)
	cmd.AddCommand(restock)

	return cmd
}

func inventoryFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Item name (required)")
	cmd.Flags().String("qty", "", "Quantity on hand")
	cmd.Flags().String("price", "", "Unit price")
}

func inventoryForm(cmd *cobra.Command, base supply.InventoryForm) supply.InventoryForm {
	return supply.InventoryForm{
		Name:      stringFlag(cmd, "name", base.Name),
		Quantity:  stringFlag(cmd, "qty", base.Quantity),
		UnitPrice: stringFlag(cmd, "price", base.UnitPrice),
	}
}

// -- bill --

func billCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Print a bill and optionally write it to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := billing.BillRequest{}
			req.PatientID, _ = cmd.Flags().GetString("patient")
			req.Service, _ = cmd.Flags().GetString("service")
			req.Medicine, _ = cmd.Flags().GetString("medicine")
			outPath, _ := cmd.Flags().GetString("out")
			export := cmd.Flags().Changed("out")

			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				b, err := a.billing.Generate(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprint(out, b.Text())
				if !export {
					return nil
				}
				path, err := a.billing.Export(ctx, outPath, b)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().String("patient", "", "Patient id (defaults to the first patient)")
	cmd.Flags().String("service", "0", "Service charge")
	cmd.Flags().String("medicine", "0", "Medicine charge")
	cmd.Flags().String("out", "", "Write the bill to this file; empty picks bill-<number>.txt in BILL_DIR")
	return cmd
}

// -- store --

func storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and persist the record store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Load and write back every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				res := a.store.Save(ctx)
				printResult(out, res.View())
				return res.Err()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show storage driver, collection sizes and next ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
				fmt.Fprintf(out, "driver: %s\n", a.store.Provider().Driver())
				counts := a.store.Counts()
				tw := newTable(out)
				fmt.Fprintln(tw, "COLLECTION\tRECORDS\tNEXT ID")
				for _, kind := range records.Kinds {
					next, _ := a.store.NextID(kind)
					fmt.Fprintf(tw, "%s\t%d\t%d\n", kind, counts[kind], next)
				}
				return tw.Flush()
			})
		},
	})

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Append synthetic demo records",
	}
	def := sandbox.DefaultSeedConfig()
	seedPatients := seed.Flags().Int("patients", def.Patients, "patients to generate")
	seedDoctors := seed.Flags().Int("doctors", def.Doctors, "doctors to generate")
	seedAppts := seed.Flags().Int("appointments", def.Appointments, "appointments to generate")
	seedItems := seed.Flags().Int("items", def.Items, "inventory items to generate")
	seedValue := seed.Flags().Int64("seed", 0, "random seed (0 picks one from the clock)")
	seed.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, a *app, out io.Writer) error {
			res, err := sandbox.NewSeeder(a.store).Seed(sandbox.SeedConfig{
				Patients:     *seedPatients,
				Doctors:      *seedDoctors,
				Appointments: *seedAppts,
				Items:        *seedItems,
				Seed:         *seedValue,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "seeded %d patients, %d doctors, %d appointments, %d items\n",
				len(res.Patients), len(res.Doctors), len(res.Appointments), len(res.Items))
			return nil
		})
	}
	cmd.AddCommand(seed)

	return cmd
}

func printResult(out io.Writer, v store.ResultView) {
	tw := newTable(out)
	fmt.Fprintln(tw, "COLLECTION\tRECORDS\tSTATUS")
	for _, o := range v.Outcomes {
		status := "ok"
		switch {
		case o.Error != "":
			status = o.Error
		case o.Missing:
			status = "missing"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", o.Kind, o.Records, status)
	}
	tw.Flush()
}
