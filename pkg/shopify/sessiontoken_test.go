package shopify

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signSessionToken(t *testing.T, secret string, claims SessionTokenClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerifySessionToken_AudienceAndDest(t *testing.T) {
	s := publicSettings("my-shop.myshopify.com")
	now := time.Unix(1700000000, 0)

	token := signSessionToken(t, s.Password, SessionTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  []string{s.APIKey},
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
		Dest: "https://my-shop.myshopify.com",
	})

	got, err := VerifySessionToken(token, s, now)
	require.NoError(t, err)
	assert.Equal(t, "my-shop.myshopify.com", got.ShopDomain)
}

func TestVerifySessionToken_Rejections(t *testing.T) {
	s := publicSettings("my-shop.myshopify.com")
	now := time.Unix(1700000000, 0)
	valid := SessionTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  []string{s.APIKey},
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		},
		Dest: "https://my-shop.myshopify.com",
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	otherAudience := valid
	otherAudience.Audience = []string{"someone-else"}

	otherShop := valid
	otherShop.Dest = "https://other.myshopify.com"

	cases := map[string]string{
		"wrong secret":   signSessionToken(t, "not-the-secret", valid),
		"expired":        signSessionToken(t, s.Password, expired),
		"audience":       signSessionToken(t, s.Password, otherAudience),
		"different shop": signSessionToken(t, s.Password, otherShop),
		"empty":          "",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := VerifySessionToken(token, s, now)
			assert.Error(t, err)
		})
	}
}
