// Command swiftcare is a terminal client for the SwiftCare appointment
// backend. It signs in, keeps the session alive across runs through the
// credential store, and exposes the appointment workflow as subcommands.
//
// Usage:
//
//	swiftcare login -email you@example.com -password secret
//	swiftcare doctors
//	swiftcare book -doctor d1 -date 2026-09-20 -time "10:30 AM"
//	swiftcare logout
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MubeenKhalid10/SwiftCare/internal/api"
	"github.com/MubeenKhalid10/SwiftCare/internal/credentials"
	"github.com/MubeenKhalid10/SwiftCare/internal/googlesignin"
	"github.com/MubeenKhalid10/SwiftCare/internal/models"
	"github.com/MubeenKhalid10/SwiftCare/internal/session"
	"github.com/MubeenKhalid10/SwiftCare/pkg/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel)
	if os.Getenv("SWIFTCARE_DEBUG") != "" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load configuration: %v", err)
	}

	store, closer, err := newStore(cfg)
	if err != nil {
		fatal("failed to open credential store: %v", err)
	}
	if closer != nil {
		defer closer()
	}

	client := api.New(cfg.API, store)
	manager := session.NewManager(client)
	manager.Restore()

	ctx := context.Background()

	switch os.Args[1] {
	case "login":
		cmdLogin(ctx, manager, os.Args[2:])
	case "register":
		cmdRegister(ctx, manager, os.Args[2:])
	case "google-login":
		cmdGoogleLogin(ctx, manager, cfg.Google, os.Args[2:])
	case "logout":
		manager.Logout(ctx)
		fmt.Println("Signed out.")
	case "whoami":
		cmdWhoami(manager)
	case "doctors":
		cmdDoctors(ctx, client, os.Args[2:])
	case "appointments":
		cmdAppointments(ctx, client, manager)
	case "book":
		cmdBook(ctx, client, manager, os.Args[2:])
	case "stats":
		cmdStats(ctx, client)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: swiftcare <command> [flags]

Commands:
  login         Sign in with email and password
  register      Create a patient account
  google-login  Sign in with a Google account
  logout        Sign out and clear stored credentials
  whoami        Show the signed-in user
  doctors       List doctors
  appointments  List your appointments
  book          Book an appointment
  stats         Show the admin dashboard summary`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "swiftcare: "+format+"\n", args...)
	os.Exit(1)
}

// newStore opens the credential backend named by the configuration.
func newStore(cfg *config.Config) (credentials.Store, func(), error) {
	switch cfg.Credentials.Backend {
	case "memory":
		return credentials.NewMemoryStore(), nil, nil
	case "redis":
		store, err := credentials.NewRedisStore(&cfg.Redis, "swiftcare:")
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return credentials.NewFileStore(cfg.Credentials.Path), nil, nil
	}
}

func cmdLogin(ctx context.Context, manager *session.Manager, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		fatal("login requires -email and -password")
	}

	result := manager.Login(ctx, *email, *password)
	if !result.Success {
		fatal("login failed: %s", result.Error)
	}

	user, _ := manager.CurrentUser()
	fmt.Printf("Signed in as %s (%s).\n", user.Email, user.Role)
}

func cmdRegister(ctx context.Context, manager *session.Manager, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "patient", "account role")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		fatal("register requires -email and -password")
	}

	result := manager.Register(ctx, *name, *email, *password, models.Role(*role))
	if !result.Success {
		fatal("registration failed: %s", result.Error)
	}

	fmt.Printf("Account created for %s.\n", *email)
}

func cmdGoogleLogin(ctx context.Context, manager *session.Manager, google config.GoogleConfig, args []string) {
	fs := flag.NewFlagSet("google-login", flag.ExitOnError)
	role := fs.String("role", "patient", "account role hint")
	_ = fs.Parse(args)

	flow, err := googlesignin.NewFlow(google)
	if err != nil {
		fatal("google sign-in unavailable: %v", err)
	}

	fmt.Println("Visit this URL to authorize:")
	fmt.Println("  " + flow.AuthURL())
	fmt.Print("Paste the authorization code: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		fatal("failed to read code: %v", err)
	}

	idToken, err := flow.ExchangeCode(ctx, strings.TrimSpace(code))
	if err != nil {
		fatal("authorization failed: %v", err)
	}

	result := manager.GoogleAuth(ctx, idToken, models.Role(*role))
	if !result.Success {
		fatal("google sign-in failed: %s", result.Error)
	}

	user, _ := manager.CurrentUser()
	fmt.Printf("Signed in (user %s, role %s).\n", user.ID, user.Role)
}

func cmdWhoami(manager *session.Manager) {
	user, ok := manager.CurrentUser()
	if !ok {
		fmt.Println("Not signed in.")
		return
	}

	fmt.Printf("ID:    %s\n", user.ID)
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Role:  %s\n", user.Role)
	if user.Name != "" {
		fmt.Printf("Name:  %s\n", user.Name)
	}
}

func cmdDoctors(ctx context.Context, client *api.Client, args []string) {
	fs := flag.NewFlagSet("doctors", flag.ExitOnError)
	specialty := fs.String("specialty", "", "filter by specialty")
	_ = fs.Parse(args)

	doctors, err := client.Doctors(ctx)
	if err != nil {
		fatal("%v", err)
	}

	for _, d := range doctors {
		if *specialty != "" && !strings.EqualFold(d.Specialty, *specialty) {
			continue
		}
		availability := "unavailable"
		if d.Available {
			availability = "available"
		}
		fmt.Printf("%-8s %-24s %-16s %-10s %.1f★ %s\n",
			d.ID, d.Name, d.Specialty, d.Fee, d.Rating, availability)
	}
}

func cmdAppointments(ctx context.Context, client *api.Client, manager *session.Manager) {
	user, ok := manager.CurrentUser()
	if !ok {
		fatal("not signed in")
	}

	var (
		appointments []models.Appointment
		err          error
	)
	switch user.Role {
	case models.RoleDoctor:
		appointments, err = client.AppointmentsByDoctorID(ctx, user.ID)
	case models.RoleAdmin:
		appointments, err = client.Appointments(ctx)
	default:
		appointments, err = client.AppointmentsByPatientID(ctx, user.ID)
	}
	if err != nil {
		fatal("%v", err)
	}

	if len(appointments) == 0 {
		fmt.Println("No appointments.")
		return
	}
	for _, a := range appointments {
		fmt.Printf("%-8s %-12s %-10s %-24s %-12s %s\n",
			a.ID, a.Date, a.Time, a.DoctorName, a.Type, a.Status)
	}
}

func cmdBook(ctx context.Context, client *api.Client, manager *session.Manager, args []string) {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	doctorID := fs.String("doctor", "", "doctor id")
	date := fs.String("date", "", "appointment date")
	timeSlot := fs.String("time", "", "appointment time")
	kind := fs.String("type", models.AppointmentVideoCall, "appointment type")
	_ = fs.Parse(args)

	user, ok := manager.CurrentUser()
	if !ok {
		fatal("not signed in")
	}
	if *doctorID == "" || *date == "" || *timeSlot == "" {
		fatal("book requires -doctor, -date and -time")
	}

	doctor, err := client.DoctorByID(ctx, *doctorID)
	if err != nil {
		fatal("%v", err)
	}

	booked, err := client.CreateAppointment(ctx, models.Appointment{
		PatientID:       user.ID,
		DoctorID:        doctor.ID,
		PatientName:     user.Name,
		DoctorName:      doctor.Name,
		DoctorSpecialty: doctor.Specialty,
		Date:            *date,
		Time:            *timeSlot,
		Type:            *kind,
		Status:          models.StatusUpcoming,
	})
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Booked appointment %s with %s on %s at %s.\n",
		booked.ID, doctor.Name, *date, *timeSlot)
}

func cmdStats(ctx context.Context, client *api.Client) {
	stats, err := client.DashboardStats(ctx)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Doctors:      %d\n", stats.TotalDoctors)
	fmt.Printf("Patients:     %d\n", stats.TotalPatients)
	fmt.Printf("Appointments: %d\n", stats.TotalAppointments)
	fmt.Printf("Revenue:      $%d\n", stats.TotalRevenue)

	if len(stats.TopDoctors) > 0 {
		fmt.Println("\nTop doctors:")
		for _, d := range stats.TopDoctors {
			fmt.Printf("  %-24s %d appointments\n", d.Name, d.TotalAppointments)
		}
	}
}
