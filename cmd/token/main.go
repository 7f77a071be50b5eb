// Command token mints a merchant bearer token for the payment API, signed
// with JWT_SECRET.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"paygate-be/internal/auth"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Getenv("JWT_SECRET"), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, secret string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	merchant := fs.String("merchant", "", "merchant the token is issued to")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime, 0 for none")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if secret == "" {
		return errors.New("JWT_SECRET not set in environment")
	}

	token, err := auth.IssueMerchantToken([]byte(secret), *merchant, *ttl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
