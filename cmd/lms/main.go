package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ganeshlonare/lms-client/internal/app/courses"
	"github.com/ganeshlonare/lms-client/internal/app/models/dto"
	"github.com/ganeshlonare/lms-client/internal/app/session"
	"github.com/ganeshlonare/lms-client/internal/bootstrap"
	"github.com/ganeshlonare/lms-client/internal/config"
	"github.com/ganeshlonare/lms-client/internal/pkg/apperrors"
)

const usage = `lms - terminal client for the LMS platform

Usage: lms [-config path] <command> [flags]

Commands:
  signup           create an account
  login            sign in and persist the session
  logout           sign out and wipe local state
  whoami           show the locally held session
  profile          fetch the profile from the server
  courses          list the course catalog
  change-password  change the account password
  forgot-password  request a password reset email
  reset-password   set a new password with a reset token
  update-profile   change profile fields
  theme            get or set the UI theme preference
`

func main() {
	configPath := flag.String("config", config.GetEnv("LMS_CONFIG", "config.yaml"), "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	deps, err := bootstrap.Setup(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lms: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	// The toast analog: action phases surface here, outside the data
	// path, so the stores stay notification-free.
	deps.Session.Subscribe(func(e session.Event) {
		switch e.Phase {
		case session.PhasePending:
			fmt.Fprintf(os.Stderr, "... %s\n", e.Message)
		case session.PhaseFulfilled:
			if e.Message != "" {
				fmt.Fprintf(os.Stderr, "ok: %s\n", e.Message)
			}
		case session.PhaseRejected:
			fmt.Fprintf(os.Stderr, "error: %s\n", e.Message)
		}
	})

	if err := run(deps, flag.Arg(0), flag.Args()[1:]); err != nil {
		if msg := apperrors.UserMessage(err, ""); msg != "" {
			fmt.Fprintf(os.Stderr, "lms: %s\n", msg)
		} else {
			fmt.Fprintf(os.Stderr, "lms: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(deps *bootstrap.Dependencies, command string, args []string) error {
	ctx := context.Background()

	switch command {
	case "signup":
		return runSignup(ctx, deps, args)
	case "login":
		return runLogin(ctx, deps, args)
	case "logout":
		return deps.Actions.Logout(ctx)
	case "whoami":
		return runWhoami(deps)
	case "profile":
		return runProfile(ctx, deps)
	case "courses":
		return runCourses(ctx, deps, args)
	case "change-password":
		return runChangePassword(ctx, deps, args)
	case "forgot-password":
		return runForgotPassword(ctx, deps, args)
	case "reset-password":
		return runResetPassword(ctx, deps, args)
	case "update-profile":
		return runUpdateProfile(ctx, deps, args)
	case "theme":
		return runTheme(deps, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireSession fails authenticated commands fast, before a request
// the server would reject anyway.
func requireSession(deps *bootstrap.Dependencies) error {
	if !deps.Session.State().IsLoggedIn {
		return apperrors.ErrNotLoggedIn
	}
	if !deps.Jar.SessionValid() {
		return apperrors.ErrSessionExpired
	}
	return nil
}

func runSignup(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	avatar := fs.String("avatar", "", "path to an avatar image (optional)")
	fs.Parse(args)

	_, err := deps.Actions.Signup(ctx, dto.SignupRequest{
		FullName:   *name,
		Email:      *email,
		Password:   *password,
		AvatarPath: *avatar,
	})
	if err != nil {
		return err
	}

	fmt.Println("Account created. Log in with: lms login")
	return nil
}

func runLogin(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	user, err := deps.Actions.Login(ctx, dto.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", user.FullName, user.Role)
	return nil
}

func runWhoami(deps *bootstrap.Dependencies) error {
	state := deps.Session.State()
	if !state.IsLoggedIn {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("%s <%s>\n", state.CurrentUser.FullName, state.CurrentUser.Email)
	fmt.Printf("Role: %s\n", state.Role)
	if state.CurrentUser.HasActiveSubscription() {
		fmt.Println("Subscription: active")
	} else {
		fmt.Println("Subscription: inactive")
	}

	if !deps.Jar.SessionValid() {
		fmt.Println("Note: the saved session has expired; log in again")
	}
	return nil
}

func runProfile(ctx context.Context, deps *bootstrap.Dependencies) error {
	user, err := deps.Actions.FetchProfile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s <%s>\n", user.FullName, user.Email)
	fmt.Printf("Role: %s\n", user.Role)
	if user.AvatarURL != "" {
		fmt.Printf("Avatar: %s\n", user.AvatarURL)
	}
	return nil
}

func runCourses(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("courses", flag.ExitOnError)
	search := fs.String("search", "", "filter by title or description")
	fs.Parse(args)

	all, err := deps.Courses.FetchAll(ctx)
	if err != nil {
		return err
	}

	listing := courses.Filter(all, *search)
	if len(listing) == 0 {
		fmt.Println("No courses found")
		return nil
	}

	for _, c := range listing {
		fmt.Printf("%s — %s (%d lectures, by %s)\n", c.ID, c.Title, c.NumberOfLectures, c.CreatedBy)
	}
	return nil
}

func runChangePassword(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("change-password", flag.ExitOnError)
	oldPassword := fs.String("old", "", "current password")
	newPassword := fs.String("new", "", "new password")
	fs.Parse(args)

	if err := requireSession(deps); err != nil {
		return err
	}

	_, err := deps.Actions.ChangePassword(ctx, dto.ChangePasswordRequest{
		OldPassword: *oldPassword,
		NewPassword: *newPassword,
	})
	return err
}

func runForgotPassword(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	fs.Parse(args)

	_, err := deps.Actions.ForgotPassword(ctx, *email)
	return err
}

func runResetPassword(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
	token := fs.String("token", "", "reset token from the email link")
	password := fs.String("password", "", "new password")
	fs.Parse(args)

	_, err := deps.Actions.ResetPassword(ctx, *token, *password)
	return err
}

func runUpdateProfile(ctx context.Context, deps *bootstrap.Dependencies, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
	name := fs.String("name", "", "new full name")
	fs.Parse(args)

	if err := requireSession(deps); err != nil {
		return err
	}

	if _, err := deps.Actions.UpdateProfile(ctx, dto.UpdateProfileRequest{FullName: *name}); err != nil {
		return err
	}

	// The session only learns about the edit through the profile
	// endpoint, never from the update response itself.
	_, err := deps.Actions.FetchProfile(ctx)
	return err
}

func runTheme(deps *bootstrap.Dependencies, args []string) error {
	if deps.Storage == nil {
		return fmt.Errorf("theme preference needs working storage")
	}

	if len(args) == 0 {
		fmt.Println(deps.Storage.Theme())
		return nil
	}

	if err := deps.Storage.SetTheme(args[0]); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", args[0])
	return nil
}
