// genhash prints bcrypt hashes for seeding accounts by hand:
//
//	go run ./scripts alice:secret bob:hunter2
package main

import (
	"fmt"
	"os"
	"strings"

	"jobkit-backend/pkg/password"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash username:password ...")
		os.Exit(2)
	}

	for _, arg := range os.Args[1:] {
		user, pass, ok := strings.Cut(arg, ":")
		if !ok || pass == "" {
			fmt.Fprintf(os.Stderr, "skipping %q: expected username:password\n", arg)
			continue
		}
		hash, err := password.Hash(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("User: %s\nHash: %s\n\n", user, hash)
	}
}
