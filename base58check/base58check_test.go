package base58check

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ripemd160"
)

func TestBase58check(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	pub := elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y)

	hash := sha256.Sum256(pub)
	r := ripemd160.New()
	r.Write(hash[:])
	hash160 := r.Sum(nil)

	address := Encode(PubKeyHashVersion, hash160)
	require.Equal(t, byte('1'), address[0])

	version, decoded, err := Decode(address)
	require.NoError(t, err)
	require.Equal(t, PubKeyHashVersion, version)
	require.Equal(t, hash160, decoded)
}

func TestDecodeKnownAddress(t *testing.T) {
	// genesis coinbase address
	version, hash160, err := Decode([]byte("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"))
	require.NoError(t, err)
	require.Equal(t, PubKeyHashVersion, version)
	require.Len(t, hash160, 20)
	require.Equal(t, byte(0x62), hash160[0])
}

func TestDecodeChecksumError(t *testing.T) {
	address := Encode(PubKeyHashVersion, []byte{1, 2, 3, 4})
	address[len(address)-1]++
	_, _, err := Decode(address)
	require.Error(t, err)
}

func TestDecodeShort(t *testing.T) {
	_, _, err := Decode([]byte("1"))
	require.True(t, errors.Is(err, ErrInvalidFormat))
}
