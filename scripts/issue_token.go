// Dev helper: mints a traveler JWT accepted by the local API.
//
// Usage:
//
//	JWT_SECRET=dev-secret go run ./scripts -sub <traveler-uuid> -ttl 1h
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

var (
	sub    = flag.String("sub", "", "traveler id claim, a fresh UUID when empty")
	role   = flag.String("role", "TRAVELER", "role claim")
	issuer = flag.String("issuer", "homestay-platform", "issuer claim")
	ttl    = flag.Duration("ttl", time.Hour, "token lifetime")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	id := *sub
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":   id,
		"role": *role,
		"iss":  *issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(*ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("signing token: %v", err)
	}
	fmt.Println(token)
}
