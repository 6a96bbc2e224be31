package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/mywallet/internal/auth"
	"github.com/theirongolddev/mywallet/internal/cli"
	"github.com/theirongolddev/mywallet/internal/model"
)

var (
	flagEmail    string
	flagPassword string
	flagName     string
	flagContact  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your wallet",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who is logged in",
	RunE:  runWhoami,
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&flagEmail, "email", "", "Account email")
		c.Flags().StringVar(&flagPassword, "password", "", "Account password (prompted when omitted)")
	}
	registerCmd.Flags().StringVar(&flagName, "name", "", "Your name")
	registerCmd.Flags().StringVar(&flagContact, "contact", "", "Phone number")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	creds := auth.Credentials{Email: flagEmail, Password: flagPassword}
	if creds.Email == "" || creds.Password == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Email").Value(&creds.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&creds.Password),
		))
		if err := form.Run(); err != nil {
			return promptErr(err)
		}
	}

	sess, err := e.gate.Authenticate(creds)
	if err != nil {
		return err
	}
	printWelcome(sess)
	return nil
}

func runRegister(_ *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	reg := auth.Registration{
		Name:     flagName,
		Email:    flagEmail,
		Contact:  flagContact,
		Password: flagPassword,
	}
	if reg.Email == "" || reg.Password == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Name").Value(&reg.Name),
			huh.NewInput().Title("Email").Value(&reg.Email),
			huh.NewInput().Title("Contact").Value(&reg.Contact),
			huh.NewInput().Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&reg.Password),
		))
		if err := form.Run(); err != nil {
			return promptErr(err)
		}
	}

	sess, err := e.gate.Register(reg)
	if err != nil {
		return err
	}
	printWelcome(sess)
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.gate.Logout(); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Println(cli.RenderNotice("Logged out."))
	}
	return nil
}

func runWhoami(_ *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	sess, err := e.requireSession()
	if err != nil {
		return err
	}
	fmt.Printf("  %s <%s>\n", sess.DisplayName(), sess.Email)
	return nil
}

func printWelcome(sess model.Session) {
	if flagQuiet {
		return
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle("MY WALLET"))
	fmt.Printf("\n  Welcome, %s.\n\n", sess.DisplayName())
}

func promptErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("canceled")
	}
	return fmt.Errorf("prompt: %w", err)
}
