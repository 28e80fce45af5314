package main

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sayan-tan/Unicorn/internal/auth"
)

var (
	hashPasswordValue string
	hashPasswordStdin bool
)

// hashPasswordCmd produces the argon2id hash that AUTH_MODE=local
// expects in ADMIN_PASSWORD_HASH.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash an admin password for local auth mode.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := resolvePassword(cmd)
		if err != nil {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		cmd.Println(hash)
		return nil
	},
}

func init() {
	hashPasswordCmd.Flags().StringVar(&hashPasswordValue, "password", "", "password to hash (prompted when omitted)")
	hashPasswordCmd.Flags().BoolVar(&hashPasswordStdin, "password-stdin", false, "read the password from stdin")
}

func resolvePassword(cmd *cobra.Command) (string, error) {
	if hashPasswordStdin && hashPasswordValue != "" {
		return "", errors.New("--password-stdin and --password are mutually exclusive")
	}

	if hashPasswordStdin {
		raw, err := readStdinLine()
		if err != nil {
			return "", err
		}
		password := strings.TrimRight(raw, "\r\n")
		if password == "" {
			return "", errors.New("password is empty")
		}
		return password, nil
	}

	if hashPasswordValue != "" {
		return hashPasswordValue, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no password provided (use --password or --password-stdin)")
	}

	cmd.Print("Password: ")
	pass1, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", err
	}
	if len(pass1) == 0 {
		return "", errors.New("password is empty")
	}

	cmd.Print("Confirm password: ")
	pass2, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", err
	}

	if string(pass1) != string(pass2) {
		return "", errors.New("passwords do not match")
	}

	return string(pass1), nil
}

func readStdinLine() (string, error) {
	in, err := os.Stdin.Stat()
	if err != nil {
		return "", err
	}
	if in.Mode()&os.ModeCharDevice != 0 {
		return "", errors.New("stdin is a terminal; use --password or omit to prompt")
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return scanner.Text(), nil
}
