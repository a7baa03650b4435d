// Command shopctl is a terminal front end for the shop API: it logs in,
// browses the catalogue, keeps a local cart and checks it out into PDF
// invoices.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/diewo77/go-videoshop/internal/apiclient"
	"github.com/joho/godotenv"
)

const usage = `usage: shopctl <command> [flags]

commands:
  register -email E -password P [-name N]
  login    -email E -password P
  logout
  list     clients|produits|vendeurs|ventes|achats
  history  <client id>
  cart     add -product ID -client ID -vendor ID [-qty N]
  cart     list | qty <item> <n> | rm <item> | clear
  checkout [-out DIR]
  dashboard [-local]

environment:
  SHOPCTL_API   API base URL (default http://localhost:5000)
  SHOPCTL_HOME  state directory (default ~/.shopctl)
`

func main() {
	_ = godotenv.Load()
	log.SetFlags(0)
	log.SetPrefix("shopctl: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := loadEnv()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(ctx, env, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

var errUsage = errors.New("usage")

// env is everything a command needs besides its arguments.
type env struct {
	home   string
	api    *apiclient.Client
	stdout io.Writer
}

func loadEnv() (*env, error) {
	home := os.Getenv("SHOPCTL_HOME")
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home directory: %w", err)
		}
		home = filepath.Join(dir, ".shopctl")
	}
	base := os.Getenv("SHOPCTL_API")
	if base == "" {
		base = "http://localhost:5000"
	}
	return newEnv(home, apiclient.New(base, 30*time.Second), os.Stdout)
}

func newEnv(home string, api *apiclient.Client, stdout io.Writer) (*env, error) {
	if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, fmt.Errorf("create %s: %w", home, err)
	}
	e := &env{home: home, api: api, stdout: stdout}
	token, err := e.readToken()
	if err != nil {
		return nil, err
	}
	api.Token = token
	return e, nil
}

func run(ctx context.Context, e *env, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	rest := args[1:]
	switch args[0] {
	case "register":
		return e.register(ctx, rest)
	case "login":
		return e.login(ctx, rest)
	case "logout":
		return e.logout()
	case "list":
		return e.list(ctx, rest)
	case "history":
		return e.history(ctx, rest)
	case "cart":
		return e.cart(ctx, rest)
	case "checkout":
		return e.checkout(ctx, rest)
	case "dashboard":
		return e.dashboard(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(e.stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}
