package script

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"

	"github.com/pkg/errors"
	"github.com/treeforest/easyscript/base58check"
	"golang.org/x/crypto/ripemd160"
)

const (
	// PubKeyHashSize 公钥哈希（hash160）长度
	PubKeyHashSize = ripemd160.Size

	// MaxDataCarrierSize OP_RETURN 输出允许携带的最大数据长度
	MaxDataCarrierSize = 220
)

// Hash160 RIPEMD160(SHA256(b))
func Hash160(b []byte) []byte {
	hash := sha256.Sum256(b)
	r := ripemd160.New()
	r.Write(hash[:])
	return r.Sum(nil)
}

// PayToPubKeyHash 生成 P2PKH 锁定脚本：
// OP_DUP OP_HASH160 <pubKeyHash> OP_EQUALVERIFY OP_CHECKSIG
func PayToPubKeyHash(pubKeyHash []byte) (*Script, error) {
	if len(pubKeyHash) != PubKeyHashSize {
		return nil, errors.Wrapf(ErrInvalidPubKeyHash, "length %d", len(pubKeyHash))
	}
	return New(OP_DUP, OP_HASH160, pubKeyHash, OP_EQUALVERIFY, OP_CHECKSIG)
}

// PayToAddress 根据 base58check 地址生成 P2PKH 锁定脚本
func PayToAddress(address []byte) (*Script, error) {
	version, hash160, err := base58check.Decode(address)
	if err != nil {
		return nil, errors.Wrapf(err, "decode address %s", address)
	}
	if version != base58check.PubKeyHashVersion {
		return nil, errors.Errorf("unsupported address version %d", version)
	}
	return PayToPubKeyHash(hash160)
}

// SignatureScript 生成解锁脚本：<sig> <pubKey>
func SignatureScript(hash []byte, key *ecdsa.PrivateKey) (*Script, error) {
	// 对交易哈希的签名
	sig, err := ecdsa.SignASN1(rand.Reader, key, hash)
	if err != nil {
		return nil, errors.Wrap(err, "sign failed")
	}
	pub := elliptic.Marshal(key.Curve, key.PublicKey.X, key.PublicKey.Y)
	return New(sig, pub)
}

// NullData 生成不可花费的 OP_RETURN <data> 脚本
func NullData(data []byte) (*Script, error) {
	if len(data) > MaxDataCarrierSize {
		return nil, errors.Wrapf(ErrTooMuchNullData, "%d bytes, max %d", len(data), MaxDataCarrierSize)
	}
	return New(OP_RETURN, data)
}

// IsPayToPubKeyHash 是否是 P2PKH 锁定脚本
func IsPayToPubKeyHash(s *Script) bool {
	if s.Len() != 5 {
		return false
	}
	c := s.chunks
	return isOp(c[0], OP_DUP) &&
		isOp(c[1], OP_HASH160) &&
		c[2].IsData() && len(c[2].data) == PubKeyHashSize &&
		isOp(c[3], OP_EQUALVERIFY) &&
		isOp(c[4], OP_CHECKSIG)
}

// IsSignatureScript 是否是 <sig> <pubKey> 形式的解锁脚本
func IsSignatureScript(s *Script) bool {
	if s.Len() != 2 {
		return false
	}
	for _, c := range s.chunks {
		if !c.IsData() || len(c.data) == 0 {
			return false
		}
	}
	return true
}

// IsNullData 是否是 OP_RETURN 数据脚本
func IsNullData(s *Script) bool {
	switch s.Len() {
	case 1:
		return isOp(s.chunks[0], OP_RETURN)
	case 2:
		return isOp(s.chunks[0], OP_RETURN) && s.chunks[1].IsData() &&
			len(s.chunks[1].data) <= MaxDataCarrierSize
	}
	return false
}

// ExtractPubKeyHash 从 P2PKH 锁定脚本或解锁脚本中取出公钥哈希
func ExtractPubKeyHash(s *Script) ([]byte, error) {
	switch {
	case IsPayToPubKeyHash(s):
		return s.chunks[2].Data(), nil
	case IsSignatureScript(s):
		return Hash160(s.chunks[1].data), nil
	}
	return nil, errors.Errorf("not a pay-to-pubkey-hash script: %s", s)
}

// IsPushOnly 脚本只包含数据推送（OP_16 及以下的操作码也视为推送）
func IsPushOnly(s *Script) bool {
	for _, c := range s.chunks {
		if c.IsOpcode() && c.op > OP_16 {
			return false
		}
	}
	return true
}

func isOp(c Chunk, op OpCode) bool {
	return c.kind == OpcodeChunk && c.op == op
}
