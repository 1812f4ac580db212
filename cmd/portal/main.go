package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prestige-strategies/academy/internal/portal/app"
	"github.com/prestige-strategies/academy/internal/portal/session"
	"github.com/prestige-strategies/academy/pkg/academysdk"
)

const usage = `usage: portal [-config file] <command> [args]

catalog:
  courses [-category c] [-level l]   list published courses
  course <id>                        show a course
  jobs | events | resources          list the job board, events, resource library
  apply <job-id>                     start a job application

student:
  login | logout | whoami
  enroll <course-id>                 sign in, pay and open the player as needed
  learn <course-id> [-module n]      show modules and progress
  complete <course-id>               mark the current module complete

admin:
  admin login -email e [-password p] [-otp code]
  admin logout | admin whoami
  admin seed <file.yaml>

ops:
  health
`

func main() {
	configPath := flag.String("config", app.DefaultConfigPath(), "path to portal.yaml")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize portal: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, a, flag.Args())
	stop()
	_ = a.Close()

	var usageErr usageError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintln(os.Stderr, usageErr)
		flag.Usage()
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func run(ctx context.Context, a *app.App, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "courses":
		fs := flag.NewFlagSet("courses", flag.ContinueOnError)
		category := fs.String("category", "", "filter by category")
		level := fs.String("level", "", "filter by level (beginner, intermediate, advanced)")
		if err := fs.Parse(rest); err != nil {
			return usageError(err.Error())
		}
		return a.PrintCourses(ctx, academysdk.CourseFilter{Category: *category, Level: academysdk.Level(*level)})

	case "course":
		id, err := oneArg(cmd, rest)
		if err != nil {
			return err
		}
		return a.PrintCourse(ctx, id)

	case "jobs":
		return a.PrintJobs(ctx)
	case "events":
		return a.PrintEvents(ctx)
	case "resources":
		return a.PrintResources(ctx)

	case "apply":
		id, err := oneArg(cmd, rest)
		if err != nil {
			return err
		}
		return a.Apply(ctx, id)

	case "login":
		return a.StudentLogin(ctx)

	case "logout":
		a.InitStudent(ctx)
		if err := a.Student.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.Out(), "Signed out.")
		return nil

	case "whoami":
		st := a.InitStudent(ctx)
		if st.Status != session.StatusSignedIn {
			fmt.Fprintln(a.Out(), "Not signed in.")
			return nil
		}
		fmt.Fprintf(a.Out(), "%s <%s>\n", st.User.Name, st.User.Email)
		return nil

	case "enroll":
		id, err := oneArg(cmd, rest)
		if err != nil {
			return err
		}
		return a.Enroll(ctx, id)

	case "learn":
		if len(rest) == 0 {
			return usageError("learn: course id required")
		}
		fs := flag.NewFlagSet("learn", flag.ContinueOnError)
		module := fs.Int("module", 0, "select module n (1-based)")
		if err := fs.Parse(rest[1:]); err != nil {
			return usageError(err.Error())
		}
		return a.Learn(ctx, rest[0], *module-1)

	case "complete":
		id, err := oneArg(cmd, rest)
		if err != nil {
			return err
		}
		return a.Complete(ctx, id)

	case "admin":
		return runAdmin(ctx, a, rest)

	case "health":
		live, err := a.Client.GetLiveness(ctx)
		if err != nil {
			fmt.Fprintln(a.Out(), academysdk.UserMessage(err))
			return err
		}
		ready, err := a.Client.GetReadiness(ctx)
		if err != nil {
			fmt.Fprintln(a.Out(), academysdk.UserMessage(err))
			return err
		}
		fmt.Fprintf(a.Out(), "live: %s (up %s, %s)\nready: %s\n", live.Status, live.Uptime, live.Version, ready.Status)
		return nil

	default:
		return usageError("unknown command " + strconv.Quote(cmd))
	}
}

func runAdmin(ctx context.Context, a *app.App, args []string) error {
	if len(args) == 0 {
		return usageError("admin: subcommand required")
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		fs := flag.NewFlagSet("admin login", flag.ContinueOnError)
		email := fs.String("email", "", "admin email")
		password := fs.String("password", os.Getenv("ACADEMY_ADMIN_PASSWORD"), "admin password")
		otp := fs.String("otp", "", "TOTP code, when enabled")
		if err := fs.Parse(rest); err != nil {
			return usageError(err.Error())
		}
		if *email == "" {
			return usageError("admin login: -email required")
		}
		return a.AdminLogin(ctx, session.AdminCredential{Email: *email, Password: *password, OTPCode: *otp})

	case "logout":
		a.InitAdmin(ctx)
		if err := a.Admin.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.Out(), "Signed out.")
		return nil

	case "whoami":
		st := a.InitAdmin(ctx)
		if st.Status != session.StatusSignedIn {
			fmt.Fprintln(a.Out(), "Not signed in.")
			return nil
		}
		fmt.Fprintln(a.Out(), st.User.Email)
		return nil

	case "seed":
		path, err := oneArg("admin seed", rest)
		if err != nil {
			return err
		}
		if a.InitAdmin(ctx).Status != session.StatusSignedIn {
			fmt.Fprintln(a.Out(), academysdk.SignInRequiredMessage)
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		seed, err := app.ParseSeed(f)
		if err != nil {
			return err
		}
		if err := a.ApplySeed(ctx, seed); err != nil {
			fmt.Fprintln(a.Out(), academysdk.UserMessage(err))
			return err
		}
		return nil

	default:
		return usageError("unknown admin command " + strconv.Quote(cmd))
	}
}

func oneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError(cmd + ": exactly one argument required")
	}
	return args[0], nil
}
