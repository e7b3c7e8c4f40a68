// Command hashpw prints the bcrypt hash of a password, for setting
// ADMIN_PASSWORD_HASH. The password comes from the first argument or,
// when omitted, from stdin.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jihokoo/campus-reservation/internal/utils"
)

func main() {
	var plain string
	if len(os.Args) > 1 {
		plain = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			log.Fatal(err)
		}
		plain = strings.TrimSpace(line)
	}
	if plain == "" {
		log.Fatal("empty password")
	}

	hash, err := utils.HashPassword(plain, bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}
