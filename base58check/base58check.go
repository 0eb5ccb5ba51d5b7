package base58check

import (
	"bytes"
	"crypto/sha256"

	"github.com/pkg/errors"
	"github.com/treeforest/easyscript/base58"
)

const (
	// PubKeyHashVersion P2PKH 地址的版本号
	PubKeyHashVersion = byte(0x00)

	checksumLen = 4
)

var (
	ErrChecksum      = errors.New("checksum error")
	ErrInvalidFormat = errors.New("invalid format: version and/or checksum bytes missing")
)

// Encode 版本号 + payload + 4字节校验码，再做 base58 编码
func Encode(version byte, payload []byte) []byte {
	encoded := make([]byte, 0, 1+len(payload)+checksumLen)
	encoded = append(encoded, version)
	encoded = append(encoded, payload...)
	encoded = append(encoded, checksum(encoded)...)
	return base58.Encode(encoded)
}

// Decode 解码并校验，返回版本号与 payload
func Decode(address []byte) (version byte, payload []byte, err error) {
	decoded, err := base58.Decode(address)
	if err != nil {
		return 0, nil, errors.WithStack(err)
	}
	if len(decoded) < 1+checksumLen {
		return 0, nil, ErrInvalidFormat
	}

	body := decoded[:len(decoded)-checksumLen]
	if !bytes.Equal(checksum(body), decoded[len(decoded)-checksumLen:]) {
		return 0, nil, ErrChecksum
	}
	return body[0], body[1:], nil
}

// checksum 两次 SHA-256 的前4字节
func checksum(b []byte) []byte {
	hash := sha256.Sum256(b)
	hash2 := sha256.Sum256(hash[:])
	return hash2[:checksumLen]
}
