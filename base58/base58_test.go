package base58

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBase58(t *testing.T) {
	src := []byte("this is the example")
	e := Encode(src)
	d, err := Decode(e)
	require.NoError(t, err)
	require.Equal(t, src, d)
}

func TestBase58LeadingZeros(t *testing.T) {
	src := []byte{0, 0, 0x01, 0x02}
	e := Encode(src)
	require.Equal(t, "11", string(e[:2]))
	d, err := Decode(e)
	require.NoError(t, err)
	require.Equal(t, src, d)

	e = Encode([]byte{0, 0})
	require.Equal(t, "11", string(e))
}

func TestBase58KnownVector(t *testing.T) {
	require.Equal(t, "StV1DL6CwTryKyV", string(Encode([]byte("hello world"))))
}

func TestBase58InvalidCharacter(t *testing.T) {
	_, err := Decode([]byte("0OIl"))
	require.Error(t, err)
}

func BenchmarkEncode(b *testing.B) {
	src := []byte("this is the example")
	for i := 0; i < b.N; i++ {
		_ = Encode(src)
	}
}

func BenchmarkDecode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Decode([]byte("2Cf1ZEY1opMKrSbSgCAYAMw3epujqbUL3Rbg5Tv5omXXUd4qrK"))
	}
}
