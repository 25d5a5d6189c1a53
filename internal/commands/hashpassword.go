package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/transit-dashboard/internal/app"
	"github.com/klabast/wb-services/transit-dashboard/internal/config"
)

// prompter reads answers for the hash-password dialog. Passwords are read with a
// masked terminal prompt unless unmask is set or stdin is not a terminal.
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	unmask bool
	tty    bool
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) password(prompt string) (string, error) {
	if p.unmask || !p.tty {
		return p.line(prompt)
	}
	return readPasswordWithMask(p.out, prompt), nil
}

func (p *prompter) confirm(path string) bool {
	answer, err := p.line(fmt.Sprintf("%s already exists. Overwrite? [y/N]: ", path))
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// authFilePath picks the --auth-file flag, then AUTH_FILE, then the default.
func authFilePath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := strings.TrimSpace(os.Getenv("AUTH_FILE")); env != "" {
		return env
	}
	return config.DefaultAuthFile
}

// NewHashPasswordCmd creates the credentials file that protects write endpoints.
func NewHashPasswordCmd() *cobra.Command {
	var (
		authFile       string
		overwrite      bool
		insecureUnmask bool
	)
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Create the auth file with an Argon2id password hash",
		Long: `Creates an auth file (default ./auth.secret, or $AUTH_FILE) holding
username:argon2id-hash. While the file exists every write endpoint requires
HTTP Basic Auth with these credentials.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := &prompter{
				in:     bufio.NewReader(cmd.InOrStdin()),
				out:    cmd.OutOrStdout(),
				unmask: insecureUnmask,
				tty:    cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(syscall.Stdin)),
			}
			if insecureUnmask {
				fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: Password will be visible on screen!")
			}
			path := authFilePath(authFile)
			if err := hashPassword(p, path, overwrite); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&authFile, "auth-file", "", "Path to auth file (default $AUTH_FILE or ./auth.secret)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing auth file without asking")
	cmd.Flags().BoolVar(&insecureUnmask, "insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	return cmd
}

// hashPassword runs the username and password dialog and writes path.
func hashPassword(p *prompter, path string, overwrite bool) error {
	username, err := p.line("Enter username: ")
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if strings.Contains(username, ":") {
		return errors.New("username cannot contain ':'")
	}

	password, err := p.password("Enter password:   ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	passwordConfirm, err := p.password("Confirm password: ")
	if err != nil {
		return fmt.Errorf("reading password confirmation: %w", err)
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != passwordConfirm {
		return errors.New("passwords do not match")
	}

	return app.CreateAuthFile(path, username, password, overwrite, p.confirm)
}

// readPasswordWithMask reads password input and displays asterisks
func readPasswordWithMask(out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	fd := int(syscall.Stdin)

	// Save original terminal state
	oldState, err := term.GetState(fd)
	if err != nil {
		// Fallback to hidden input if we can't set raw mode
		password, _ := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	if _, err := term.MakeRaw(fd); err != nil {
		password, _ := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password)
	}

	var password []byte
	reader := bufio.NewReader(os.Stdin)

	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			break
		}

		switch char {
		case '\n', '\r': // Enter key
			fmt.Fprint(out, "\r\n")
			return string(password)
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				// Clear the asterisk: backspace, space, backspace
				fmt.Fprint(out, "\b \b")
			}
		case 3: // Ctrl+C
			_ = term.Restore(fd, oldState)
			fmt.Fprintln(out)
			os.Exit(1)
		default:
			// Only accept printable characters
			if char >= 32 && char <= 126 {
				password = append(password, byte(char))
				fmt.Fprint(out, "*")
			}
		}
	}

	fmt.Fprintln(out)
	return string(password)
}
