package keygen

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestGenerateRSAKeyPair(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)
	require.NotNil(t, keyPair)

	block, rest := pem.Decode(keyPair.PrivateKey)
	require.NotNil(t, block)
	assert.Empty(t, bytes.TrimSpace(rest))
	assert.Equal(t, "RSA PRIVATE KEY", block.Type)

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(keyPair.PublicKey), "ssh-rsa "))
	assert.True(t, strings.HasSuffix(string(keyPair.PublicKey), "\n"))

	parsedPub, _, _, _, err := ssh.ParseAuthorizedKey(keyPair.PublicKey)
	require.NoError(t, err)

	expectedPub, err := ssh.NewPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, expectedPub.Marshal(), parsedPub.Marshal())
}

func TestGenerateRSAKeyPair_InvalidBits(t *testing.T) {
	t.Parallel()
	for _, bits := range []int{0, -1} {
		_, err := GenerateRSAKeyPair(bits)
		assert.Error(t, err)
	}
}

func TestGenerateED25519KeyPair(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateED25519KeyPair()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(keyPair.PublicKey), "ssh-ed25519 "))

	// The private key must parse back as a usable signer.
	signer, err := ssh.ParsePrivateKey(keyPair.PrivateKey)
	require.NoError(t, err)

	parsedPub, _, _, _, err := ssh.ParseAuthorizedKey(keyPair.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, parsedPub.Marshal(), signer.PublicKey().Marshal())
}

func TestGenerateKeyPair_Uniqueness(t *testing.T) {
	t.Parallel()
	first, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)
	second, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)

	assert.NotEqual(t, first.PrivateKey, second.PrivateKey)
	assert.NotEqual(t, first.PublicKey, second.PublicKey)
}
