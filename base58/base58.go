package base58

import (
	"math/big"

	"github.com/pkg/errors"
)

const (
	// base58 编码基数表
	alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

var (
	radix = big.NewInt(58)

	// decodeTable 字符 => 数值，-1 表示非法字符
	decodeTable [256]int8
)

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = int8(i)
	}
}

// Encode base58 编码。每个前导 0x00 字节编码为一个 '1'。
func Encode(b []byte) []byte {
	x := new(big.Int).SetBytes(b)
	mod := new(big.Int)
	dst := make([]byte, 0, len(b)*138/100+1)
	for x.Sign() > 0 {
		x.DivMod(x, radix, mod) // 除余法
		dst = append(dst, alphabet[mod.Int64()])
	}
	for _, v := range b {
		if v != 0 {
			break
		}
		dst = append(dst, alphabet[0])
	}
	reverse(dst)
	return dst
}

// Decode base58 解码，遇到非法字符返回错误
func Decode(b []byte) ([]byte, error) {
	r := new(big.Int)
	digit := new(big.Int)
	for i, c := range b {
		v := decodeTable[c]
		if v < 0 {
			return nil, errors.Errorf("invalid base58 character %q at %d", c, i)
		}
		r.Mul(r, radix)
		r.Add(r, digit.SetInt64(int64(v)))
	}

	zeros := 0
	for zeros < len(b) && b[zeros] == alphabet[0] {
		zeros++
	}
	decoded := r.Bytes()
	out := make([]byte, zeros+len(decoded))
	copy(out[zeros:], decoded)
	return out, nil
}

func reverse(b []byte) {
	i, j := 0, len(b)-1
	for i < j {
		b[i], b[j] = b[j], b[i]
		i++
		j--
	}
}
