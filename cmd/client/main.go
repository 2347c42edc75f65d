// Command client is a small CLI against the auth service: signup, login,
// verify, and logout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"aerosafe/internal/client"
)

func main() {
	serverURL := flag.String("server", "http://localhost:5121", "auth service base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		log.Fatalf("resolve session path: %v", err)
	}
	c := client.New(*serverURL, client.NewFileStore(sessionPath), client.NewMemStore())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch args[0] {
	case "signup":
		runSignup(ctx, c, args[1:])
	case "login":
		runLogin(ctx, c, args[1:])
	case "verify":
		runVerify(ctx, c)
	case "logout":
		if err := c.Logout(); err != nil {
			log.Fatalf("logout: %v", err)
		}
		fmt.Println("session cleared")
	default:
		usage()
		os.Exit(2)
	}
}

func runSignup(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	role := fs.String("role", "Admin", "account role: Admin or Pilot")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	uid := fs.String("uid", "", "role-specific identifier (AdminId / PilotId)")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	_ = fs.Parse(args)

	var (
		session *client.Session
		err     error
	)
	switch *role {
	case "Admin":
		session, err = c.AdminSignup(ctx, *name, *email, *uid, *password, *confirm)
	case "Pilot":
		session, err = c.PilotSignup(ctx, *name, *email, *uid, *password, *confirm)
	default:
		log.Fatalf("unknown role %q (want Admin or Pilot)", *role)
	}
	if err != nil {
		log.Fatalf("signup: %v", err)
	}
	fmt.Printf("account created: %s <%s> role=%s\n", session.User.Name, session.User.Email, session.User.Role)
}

func runLogin(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	role := fs.String("role", "Admin", "account role: Admin or Pilot")
	remember := fs.Bool("remember", false, "persist the session across restarts")
	_ = fs.Parse(args)

	session, err := c.Login(ctx, *email, *password, *role, *remember)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	fmt.Printf("logged in as %s <%s> role=%s\n", session.User.Name, session.User.Email, session.User.Role)
}

func runVerify(ctx context.Context, c *client.Client) {
	result, err := c.Verify(ctx)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	fmt.Printf("token valid for %s <%s> role=%s uid=%s\n",
		result.User.Name, result.User.Email, result.User.Role, result.User.UID)
	for _, claim := range result.Claims {
		fmt.Printf("  %s = %s\n", claim.Type, claim.Value)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: client [-server URL] <command> [flags]

commands:
  signup  -role Admin|Pilot -name NAME -email EMAIL -uid ID -password PW -confirm PW
  login   -email EMAIL -password PW -role Admin|Pilot [-remember]
  verify
  logout`)
}
