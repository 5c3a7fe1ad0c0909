// Command accountctl is a small operator CLI for a running accountd server.
//
//	accountctl [-addr http://localhost:8080] signup -login <id> -name <name>
//	accountctl [-addr ...] login  -login <id>
//	accountctl [-addr ...] verify -token <jwt>
//	accountctl [-addr ...] close  -token <jwt>
//
// Passwords are read from the terminal without echo.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	addr := flag.String("addr", "http://localhost:8080", "accountd server base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	if err := run(*addr, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: accountctl [-addr URL] signup|login|verify|close [flags]")
}

func run(addr, command string, args []string) error {
	switch command {
	case "signup":
		fs := flag.NewFlagSet("signup", flag.ExitOnError)
		login := fs.String("login", "", "loginId")
		name := fs.String("name", "", "displayName")
		_ = fs.Parse(args)
		password, err := promptPassword()
		if err != nil {
			return err
		}
		return post(addr+"/accounts/signup", map[string]string{
			"loginId":     *login,
			"password":    password,
			"displayName": *name,
		}, "")
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		login := fs.String("login", "", "loginId")
		_ = fs.Parse(args)
		password, err := promptPassword()
		if err != nil {
			return err
		}
		return post(addr+"/token/issue", map[string]string{
			"loginId":  *login,
			"password": password,
		}, "")
	case "verify":
		fs := flag.NewFlagSet("verify", flag.ExitOnError)
		token := fs.String("token", "", "bearer token")
		_ = fs.Parse(args)
		return post(addr+"/token/verify", nil, *token)
	case "close":
		fs := flag.NewFlagSet("close", flag.ExitOnError)
		token := fs.String("token", "", "bearer token")
		_ = fs.Parse(args)
		return post(addr+"/accounts/close", nil, *token)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// post sends the request and prints the server's JSON response to stdout.
// A non-2xx status is reported as an error after printing the body.
func post(url string, body map[string]string, bearer string) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, url, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(os.Stdout, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
