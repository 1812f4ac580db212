package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/prestige-strategies/academy/internal/portal/enrollment"
	"github.com/prestige-strategies/academy/internal/portal/identity"
	"github.com/prestige-strategies/academy/internal/portal/payment"
	"github.com/prestige-strategies/academy/internal/portal/player"
	"github.com/prestige-strategies/academy/internal/portal/session"
	"github.com/prestige-strategies/academy/internal/portal/storage"
	"github.com/prestige-strategies/academy/pkg/academysdk"
)

// signInContainer is where the sign-in widget renders.
const signInContainer = "google-signin"

// Prompter returns the student sign-in prompt.
func (a *App) Prompter() *identity.Prompter {
	return identity.NewPrompter(a.Widget, a.Student, signInContainer, a.Log)
}

// StudentLogin runs the sign-in widget once.
func (a *App) StudentLogin(ctx context.Context) error {
	a.InitStudent(ctx)
	p := a.Prompter()
	if err := p.PromptSignIn(ctx, nil); err != nil {
		return err
	}
	if err := p.Err(); err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	if u := a.Student.State().User; u != nil {
		a.printf("Signed in as %s <%s>\n", u.Name, u.Email)
	}
	return nil
}

// AdminLogin signs the back-office user in.
func (a *App) AdminLogin(ctx context.Context, cred session.AdminCredential) error {
	a.InitAdmin(ctx)
	user, err := a.Admin.Login(ctx, cred)
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	a.printf("Signed in as %s\n", user.Email)
	return nil
}

// Enroll runs the enroll action for a course and follows wherever it leads:
// sign-in, checkout, then the player.
func (a *App) Enroll(ctx context.Context, courseID string) error {
	a.InitStudent(ctx)

	course, err := a.Client.GetCourse(ctx, courseID)
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}

	term := NewTerminal(a.out)
	prompter := a.Prompter()
	gate := a.courseGate(course.ID, term, prompter)
	defer gate.Dispose()
	defer gate.Watch(ctx)()

	decision, err := gate.Enroll(ctx)
	gate.Wait()
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	switch decision {
	case enrollment.DecisionDisabled:
		a.printf("Still checking your sign-in. Please try again.\n")
		return nil
	case enrollment.DecisionSignInPrompted:
		if err := prompter.Err(); err != nil {
			a.printf("%s\n", prompter.Message())
			return err
		}
	}

	for {
		route, ok := term.Next()
		if !ok {
			return nil
		}
		switch route.Kind {
		case RoutePayment:
			if err := a.Checkout(ctx, *course, term); err != nil {
				return err
			}
		case RoutePlayer:
			return a.Learn(ctx, route.CourseID, -1)
		}
	}
}

// Checkout drives the payment modal on the terminal until it succeeds or
// the user gives up.
func (a *App) Checkout(ctx context.Context, course academysdk.Course, nav enrollment.Navigator) error {
	changes := make(chan payment.Snapshot, 16)
	completed := make(chan struct{}, 1)

	ctrl := payment.New(payment.Config{
		CourseID:     course.ID,
		Amount:       course.Price,
		Initiator:    a.StudentSession(),
		Throttle:     a.Throttle(),
		SuccessDelay: a.Config.Payment.SuccessDelay,
		PollInterval: a.Config.Payment.PollInterval,
		OnComplete:   func() { completed <- struct{}{} },
		OnChange: func(s payment.Snapshot) {
			select {
			case changes <- s:
			default:
			}
		},
		Logger: a.Log,
	})
	defer ctrl.Dispose()

	a.printf("Enroll in %q for %s %.2f via mobile money.\n", course.Title, course.Currency, course.Price)

	for {
		phone, err := a.readLine("Phone number: ")
		if err != nil {
			_ = ctrl.Close()
			return err
		}
		if phone == "" {
			_ = ctrl.Close()
			a.printf("Checkout closed.\n")
			return nil
		}

		if err := ctrl.Submit(ctx, phone); err != nil {
			var verr *academysdk.ValidationError
			switch {
			case errors.As(err, &verr):
				a.printf("%s\n", verr.Message)
				continue
			case errors.Is(err, payment.ErrThrottled):
				a.printf("%s\n", payment.ThrottleMessage)
				return nil
			default:
				return err
			}
		}

		snap := awaitSettled(ctx, ctrl, changes)
		switch snap.State {
		case payment.StateSuccess:
			a.printf("Payment confirmed. %s\n", snap.Message)
			if snap.TestMode {
				a.printf("(test mode: no money was charged)\n")
			}
			select {
			case <-completed:
			case <-ctx.Done():
				return ctx.Err()
			}
			nav.OpenPlayer(course.ID)
			return nil

		case payment.StateError:
			a.printf("%s\n", snap.Message)
			answer, err := a.readLine("Try again? [y/N]: ")
			if err != nil || !strings.EqualFold(answer, "y") {
				_ = ctrl.Close()
				return nil
			}
			if err := ctrl.Retry(); err != nil {
				return err
			}

		default:
			a.printf("Payment is still processing. Check your phone to confirm.\n")
			return ctx.Err()
		}
	}
}

// awaitSettled blocks until the controller leaves Processing or ctx ends.
func awaitSettled(ctx context.Context, ctrl *payment.Controller, changes <-chan payment.Snapshot) payment.Snapshot {
	for {
		snap := ctrl.Snapshot()
		if snap.State != payment.StateProcessing {
			return snap
		}
		select {
		case <-changes:
		case <-ctx.Done():
			return ctrl.Snapshot()
		}
	}
}

// Learn loads the course player and prints the module list. selectIndex
// moves the cursor when it is not negative.
func (a *App) Learn(ctx context.Context, courseID string, selectIndex int) error {
	p, err := a.loadPlayer(ctx, courseID)
	if err != nil || p == nil {
		return err
	}
	defer p.Dispose()

	if selectIndex >= 0 {
		if err := p.Select(selectIndex); err != nil {
			return err
		}
	}
	a.printPlayer(p)
	return nil
}

// Complete marks the current module of a course complete.
func (a *App) Complete(ctx context.Context, courseID string) error {
	p, err := a.loadPlayer(ctx, courseID)
	if err != nil || p == nil {
		return err
	}
	defer p.Dispose()

	if err := p.MarkCurrentComplete(ctx); err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	a.printPlayer(p)
	return nil
}

// loadPlayer returns nil without error when the student was redirected.
func (a *App) loadPlayer(ctx context.Context, courseID string) (*player.Player, error) {
	if a.InitStudent(ctx).Status != session.StatusSignedIn {
		a.printf("%s\n", academysdk.SignInRequiredMessage)
		return nil, nil
	}

	term := NewTerminal(a.out)
	p := player.New(courseID, a.StudentSession(), term, a.Log)
	switch err := p.Load(ctx); {
	case errors.Is(err, player.ErrNotEnrolled):
		a.printf("You are not enrolled in this course.\n")
		return nil, nil
	case err != nil:
		a.printf("%s\n", academysdk.UserMessage(err))
		return nil, err
	}
	return p, nil
}

func (a *App) printPlayer(p *player.Player) {
	cur, idx, ok := p.Current()
	if !ok {
		a.printf("This course has no modules yet.\n")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for i, m := range p.Modules() {
		marker, done := " ", " "
		if i == idx {
			marker = ">"
		}
		if m.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t[%s]\t%d.\t%s\t%d min\n", marker, done, i+1, m.Title, m.DurationMinutes)
	}
	_ = tw.Flush()

	a.printf("Progress: %d%%\n", p.Progress())
	a.printf("Now playing: %s (%s)\n", cur.Title, cur.VideoURL)
}

// Apply starts a job application, guarded by the same local throttle as
// payments. The CV upload itself happens on the website.
func (a *App) Apply(ctx context.Context, jobID string) error {
	jobs, err := a.Client.ListJobs(ctx)
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	var job *academysdk.Job
	for i := range jobs {
		if jobs[i].ID == jobID {
			job = &jobs[i]
			break
		}
	}
	if job == nil {
		a.printf("Job not found.\n")
		return nil
	}

	throttle := a.Throttle()
	key := storage.JobAttemptKey(jobID)
	switch err := throttle.Check(ctx, key); {
	case errors.Is(err, payment.ErrThrottled):
		a.printf("You applied for this job recently. Please wait before applying again.\n")
		return nil
	case err != nil:
		a.Log.Warn("throttle unavailable", "err", err)
	}
	if err := throttle.Record(ctx, key); err != nil {
		a.Log.Warn("record application attempt", "err", err)
	}

	a.printf("Application started for %s at %s. Upload your CV on the website to finish.\n", job.Title, job.Company)
	return nil
}

// PrintCourses lists published courses.
func (a *App) PrintCourses(ctx context.Context, filter academysdk.CourseFilter) error {
	courses, err := a.Client.ListCourses(ctx, filter)
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLEVEL\tCATEGORY\tPRICE")
	for _, c := range courses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %.2f\n", c.ID, c.Title, c.Level, c.Category, c.Currency, c.Price)
	}
	return tw.Flush()
}

// PrintCourse shows one course. A signed-in student who already owns it is
// taken straight to the player.
func (a *App) PrintCourse(ctx context.Context, courseID string) error {
	course, err := a.Client.GetCourse(ctx, courseID)
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	a.printf("%s\n%s\n\nLevel: %s  Duration: %.1fh  Price: %s %.2f\n",
		course.Title, course.Description, course.Level, course.DurationHours, course.Currency, course.Price)

	a.InitStudent(ctx)
	term := NewTerminal(a.out)
	gate := a.courseGate(course.ID, term, a.Prompter())
	defer gate.Dispose()

	stop := gate.Watch(ctx)
	gate.Wait()
	stop()

	if route, ok := term.Next(); ok && route.Kind == RoutePlayer {
		return a.Learn(ctx, route.CourseID, -1)
	}
	a.printf("Run `portal enroll %s` to enroll.\n", course.ID)
	return nil
}

// courseGate binds an enrollment gate to a course view on the terminal.
func (a *App) courseGate(courseID string, term *Terminal, prompter enrollment.SignInPrompter) *enrollment.Gate {
	return enrollment.New(courseID, enrollment.Deps{
		Auth:     a.Student,
		Checker:  a.StudentSession(),
		Navigate: term,
		SignIn:   prompter,
		Payment:  term,
		Logger:   a.Log,
	})
}

// PrintJobs lists the job board.
func (a *App) PrintJobs(ctx context.Context) error {
	jobs, err := a.Client.ListJobs(ctx)
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tTYPE")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Company, j.Location, j.Type)
	}
	return tw.Flush()
}

// PrintEvents lists upcoming events.
func (a *App) PrintEvents(ctx context.Context) error {
	events, err := a.Client.ListEvents(ctx)
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tTITLE\tLOCATION")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.StartsAt.Format("2006-01-02 15:04"), e.Title, e.Location)
	}
	return tw.Flush()
}

// PrintResources lists the resource library.
func (a *App) PrintResources(ctx context.Context) error {
	resources, err := a.Client.ListResources(ctx)
	if err != nil {
		a.printf("%s\n", academysdk.UserMessage(err))
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCATEGORY\tURL")
	for _, r := range resources {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Title, r.Category, r.URL)
	}
	return tw.Flush()
}
