package jwt

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := Generate("secreto", "u-1", "org-1", "manager", "suministros", 5)
	require.NoError(t, err)

	userID, orgID, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "org-1", orgID)
	assert.Equal(t, "manager", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto", "u-1", "org-1", "user", "suministros", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate("secreto", "u-1", "org-1", "user", "suministros", -1)
	require.NoError(t, err)

	_, _, _, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u-1", "org-1", "user", "suministros", 5)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestParse_RechazaAlgoritmoNone(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1", OrganizationID: "org-1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, _, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestParse_SinOrganizacion(t *testing.T) {
	token, err := Generate("secreto", "u-1", "", "user", "suministros", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("secreto", token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
