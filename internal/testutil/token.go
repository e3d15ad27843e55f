package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token returns an HS256-signed JWT for email expiring at exp. A zero exp
// leaves the claim out.
func Token(t TestingTB, email string, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{"email": email, "sub": "1"}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
