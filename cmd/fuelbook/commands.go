package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"fuelbook/internal/core"
	"fuelbook/internal/services"
)

const usage = `Usage: fuelbook <command> [flags]

Account:
  register      create a local account
  login         log in and store the session
  logout        clear the stored session
  whoami        show the logged-in user

Vehicles:
  vehicle add   register a vehicle
  vehicle edit  edit a vehicle
  vehicle rm    delete a vehicle and its fuel entries
  vehicle list  list vehicles

Fuel:
  fuel add      record a fuel-up
  fuel list     list fuel-ups for a vehicle
  stats         statistics for one vehicle
  overview      fleet dashboard
`

type app struct {
	accounts *services.AccountService
	vehicles *services.VehicleService
	fuel     *services.FuelService
	out      io.Writer
	in       io.Reader
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	switch args[0] {
	case "register":
		return a.register(ctx, args[1:])
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		return a.accounts.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "vehicle":
		return a.vehicle(ctx, args[1:])
	case "fuel":
		return a.fuelCmd(ctx, args[1:])
	case "stats":
		return a.stats(ctx, args[1:])
	case "overview":
		return a.overview(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}
	repeat, err := a.readPassword("Repeat password: ")
	if err != nil {
		return err
	}

	account, err := a.accounts.Register(ctx, *name, *email, password, repeat)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created for %s <%s>\n", account.Name, account.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}

	sess, err := a.accounts.Login(ctx, *email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", sess.Name, sess.Email)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", sess.Name, sess.Email)
	return nil
}

func (a *app) vehicle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("vehicle: missing subcommand (add, edit, rm, list)")
	}
	switch args[0] {
	case "add":
		return a.vehicleAdd(ctx, args[1:])
	case "edit":
		return a.vehicleEdit(ctx, args[1:])
	case "rm":
		return a.vehicleRemove(ctx, args[1:])
	case "list":
		return a.vehicleList(ctx)
	default:
		return fmt.Errorf("vehicle: unknown subcommand %q", args[0])
	}
}

func (a *app) vehicleAdd(ctx context.Context, args []string) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("vehicle add", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	brand := fs.String("brand", "", "brand")
	plate := fs.String("plate", "", "license plate")
	year := fs.Int("year", 0, "model year")
	tank := fs.String("tank", "", "tank capacity in liters")
	insurance := fs.String("insurance", "", "insurance expiry (YYYY-MM-DD)")
	fuelType := fs.String("fuel", core.PetrolLPG.String(), "fuel type: lpg+petrol, petrol or diesel")
	odometer := fs.Int("odometer", 0, "starting odometer (km)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := core.Vehicle{
		Name:            *name,
		Brand:           *brand,
		Plate:           *plate,
		Year:            *year,
		FuelType:        core.FuelType(*fuelType),
		StartKilometers: *odometer,
	}
	if *tank != "" {
		capacity, err := core.ParseDecimal(*tank)
		if err != nil {
			return fmt.Errorf("tank capacity: %w", err)
		}
		v.TankCapacity = capacity
	}
	if *insurance != "" {
		d, err := parseDate(*insurance)
		if err != nil {
			return fmt.Errorf("insurance date: %w", err)
		}
		v.Insurance = d
	}

	added, err := a.vehicles.Add(ctx, sess, v)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vehicle added: %s %s (%s), id %s\n", added.Brand, added.Name, added.Plate, added.ID)
	return nil
}

func (a *app) vehicleEdit(ctx context.Context, args []string) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("vehicle edit", flag.ContinueOnError)
	id := fs.String("id", "", "vehicle id")
	name := fs.String("name", "", "display name")
	brand := fs.String("brand", "", "brand")
	plate := fs.String("plate", "", "license plate")
	year := fs.Int("year", 0, "model year")
	tank := fs.String("tank", "", "tank capacity in liters")
	insurance := fs.String("insurance", "", "insurance expiry (YYYY-MM-DD)")
	fuelType := fs.String("fuel", "", "fuel type: lpg+petrol, petrol or diesel")
	odometer := fs.Int("odometer", -1, "starting odometer (km)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("vehicle edit: -id is required")
	}

	v, err := a.vehicles.Get(ctx, sess, *id)
	if err != nil {
		return err
	}

	// Only flags that were actually set override the stored record.
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			v.Name = *name
		case "brand":
			v.Brand = *brand
		case "plate":
			v.Plate = *plate
		case "year":
			v.Year = *year
		case "tank":
			capacity, err := core.ParseDecimal(*tank)
			if err != nil {
				parseErr = fmt.Errorf("tank capacity: %w", err)
				return
			}
			v.TankCapacity = capacity
		case "insurance":
			d, err := parseDate(*insurance)
			if err != nil {
				parseErr = fmt.Errorf("insurance date: %w", err)
				return
			}
			v.Insurance = d
		case "fuel":
			v.FuelType = core.FuelType(*fuelType)
		case "odometer":
			v.StartKilometers = *odometer
		}
	})
	if parseErr != nil {
		return parseErr
	}

	if err := a.vehicles.Update(ctx, sess, v); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vehicle %s updated\n", v.ID)
	return nil
}

func (a *app) vehicleRemove(ctx context.Context, args []string) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("vehicle rm", flag.ContinueOnError)
	id := fs.String("id", "", "vehicle id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("vehicle rm: -id is required")
	}

	if err := a.vehicles.Delete(ctx, sess, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vehicle %s and its fuel entries deleted\n", *id)
	return nil
}

func (a *app) vehicleList(ctx context.Context) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}

	vehicles, err := a.vehicles.List(ctx, sess)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		fmt.Fprintln(a.out, "No vehicles yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tPLATE\tYEAR\tFUEL\tTANK (L)\tSTART (KM)\tINSURANCE")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%.0f\t%d\t%s\n",
			v.ID, v.Name, v.Brand, v.Plate, v.Year, v.FuelType, v.TankCapacity, v.StartKilometers, v.Insurance)
	}
	return w.Flush()
}

func (a *app) fuelCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("fuel: missing subcommand (add, list)")
	}
	switch args[0] {
	case "add":
		return a.fuelAdd(ctx, args[1:])
	case "list":
		return a.fuelList(ctx, args[1:])
	default:
		return fmt.Errorf("fuel: unknown subcommand %q", args[0])
	}
}

func (a *app) fuelAdd(ctx context.Context, args []string) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("fuel add", flag.ContinueOnError)
	vehicleID := fs.String("vehicle", "", "vehicle id")
	liters := fs.String("liters", "", "liters added")
	km := fs.String("km", "", "odometer reading (km)")
	cost := fs.String("cost", "", "cost (optional)")
	date := fs.String("date", "", "fill date (YYYY-MM-DD, default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e := core.FuelEntry{VehicleID: *vehicleID}
	if *km != "" {
		reading, err := core.ParseOdometer(*km)
		if err != nil {
			return fmt.Errorf("odometer: %w", err)
		}
		e.Kilometers = reading
	}
	if *liters != "" {
		l, err := core.ParseDecimal(*liters)
		if err != nil {
			return fmt.Errorf("liters: %w", err)
		}
		e.Liters = l
	}
	if *cost != "" {
		c, err := core.ParseDecimal(*cost)
		if err != nil {
			return fmt.Errorf("cost: %w", err)
		}
		e.Cost = &c
	}
	if *date != "" {
		d, err := parseDate(*date)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		e.Date = d.Time
	}

	added, err := a.fuel.AddEntry(ctx, sess, e)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Fuel-up recorded: %.1f L at %d km on %s\n",
		added.Liters, added.Kilometers, added.Date.Format("2006-01-02"))
	return nil
}

func (a *app) fuelList(ctx context.Context, args []string) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("fuel list", flag.ContinueOnError)
	vehicleID := fs.String("vehicle", "", "vehicle id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *vehicleID == "" {
		return fmt.Errorf("fuel list: -vehicle is required")
	}

	entries, err := a.fuel.EntriesForVehicle(ctx, sess, *vehicleID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No fuel-ups yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tLITERS\tODOMETER (KM)\tCOST")
	for _, e := range entries {
		costCol := "-"
		if e.HasCost() {
			costCol = fmt.Sprintf("%.2f", *e.Cost)
		}
		fmt.Fprintf(w, "%s\t%.1f\t%d\t%s\n",
			e.Date.Format("2006-01-02"), e.Liters, e.Kilometers, costCol)
	}
	return w.Flush()
}

func (a *app) stats(ctx context.Context, args []string) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	vehicleID := fs.String("vehicle", "", "vehicle id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *vehicleID == "" {
		return fmt.Errorf("stats: -vehicle is required")
	}

	summary, err := a.fuel.VehicleStats(ctx, sess, *vehicleID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Fueled:              %.1f L\n", summary.TotalLiters)
	fmt.Fprintf(a.out, "Distance:            %d km\n", summary.TotalDistanceKm)
	fmt.Fprintf(a.out, "Spent:               %.2f\n", summary.TotalCost)
	fmt.Fprintf(a.out, "Avg price per liter: %.2f\n", summary.AveragePricePerLiter)
	if summary.AverageConsumption > 0 {
		fmt.Fprintf(a.out, "Avg consumption:     %.2f L/100km\n", summary.AverageConsumption)
	} else {
		fmt.Fprintln(a.out, "Avg consumption:     -")
	}
	if summary.HasMonthlyProjection {
		fmt.Fprintf(a.out, "Month projection:    %d\n", summary.MonthlyProjection)
	} else {
		fmt.Fprintln(a.out, "Month projection:    -")
	}
	fmt.Fprintf(a.out, "CO2:                 %.1f kg (%d tree(s) per year)\n",
		summary.CO2.TotalKg, summary.CO2.Trees)
	return nil
}

func (a *app) overview(ctx context.Context) error {
	sess, err := a.accounts.Current(ctx)
	if err != nil {
		return err
	}

	o, err := a.fuel.Overview(ctx, sess)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Vehicles: %d\n", o.Vehicles)
	fmt.Fprintf(a.out, "Fueled:   %.1f L\n", o.TotalLiters)
	fmt.Fprintf(a.out, "Driven:   %d km\n", o.TotalKilometers)
	fmt.Fprintf(a.out, "Spent:    %.2f\n", o.TotalSpent)

	if len(o.LastRefuels) > 0 {
		fmt.Fprintln(a.out, "\nLast fuel-ups:")
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, e := range o.LastRefuels {
			costCol := "-"
			if e.HasCost() {
				costCol = fmt.Sprintf("%.2f", *e.Cost)
			}
			fmt.Fprintf(w, "  %s\t%.1f L\t%d km\t%s\n",
				e.Date.Format("2006-01-02"), e.Liters, e.Kilometers, costCol)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// readPassword prompts on stdout and reads without echo when stdin is a
// terminal, falling back to a plain line read otherwise (tests, pipes).
func (a *app) readPassword(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	r := bufio.NewReader(a.in)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: t}, nil
}
